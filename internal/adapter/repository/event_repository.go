package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
	"github.com/eventscript-team/eventscript/internal/domain/repositories"
)

// eventRepository implements the EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) repositories.EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event
func (r *eventRepository) Create(ctx context.Context, event *entities.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByID retrieves an event by its ID
func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Event, error) {
	var event entities.Event
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&event).Error

	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Update updates an existing event
func (r *eventRepository) Update(ctx context.Context, event *entities.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// UpdateStatus updates only the pipeline status of an event
func (r *eventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.EventStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Event{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}
