package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/eventscript-team/eventscript/errors"
	"github.com/eventscript-team/eventscript/internal/domain/entities"
	"github.com/eventscript-team/eventscript/internal/domain/repositories"
)

// Service defines the event use case
type Service interface {
	// CreateEvent creates a new event in draft status
	CreateEvent(ctx context.Context, input CreateEventInput) (*entities.Event, error)

	// GetEvent retrieves an event by ID
	GetEvent(ctx context.Context, eventID uuid.UUID) (*entities.Event, error)
}

// CreateEventInput represents input for creating an event
type CreateEventInput struct {
	Title           string
	EventType       string
	DurationMinutes int
	StartTime       *time.Time
}

// EventService handles event business logic
type EventService struct {
	eventRepo repositories.EventRepository
}

// Ensure EventService implements Service interface
var _ Service = (*EventService)(nil)

// NewEventService creates a new event service
func NewEventService(eventRepo repositories.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// CreateEvent creates a new event in draft status
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*entities.Event, error) {
	if input.DurationMinutes <= 0 {
		return nil, apperrors.ErrInvalidArgument("event duration must be positive")
	}

	eventType := input.EventType
	if eventType == "" {
		eventType = "general"
	}

	event := &entities.Event{
		ID:              uuid.New(),
		Title:           input.Title,
		EventType:       eventType,
		Status:          entities.EventStatusDraft,
		DurationMinutes: input.DurationMinutes,
		StartTime:       input.StartTime,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, eventID uuid.UUID) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound(eventID.String())
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}
