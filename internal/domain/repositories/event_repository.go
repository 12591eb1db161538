package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
)

// EventRepository defines the interface for event persistence
type EventRepository interface {
	// Create creates a new event
	Create(ctx context.Context, event *entities.Event) error

	// FindByID retrieves an event by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Event, error)

	// Update updates an existing event
	Update(ctx context.Context, event *entities.Event) error

	// UpdateStatus updates only the pipeline status of an event
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.EventStatus) error
}
