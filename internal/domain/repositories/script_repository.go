package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
)

// ScriptRepository defines the interface for script segment persistence
type ScriptRepository interface {
	// FindByEventID retrieves all script segments for an event ordered by position
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entities.ScriptSegment, error)

	// FindByID retrieves one script segment
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ScriptSegment, error)

	// ReplaceForEvent deletes every script segment for the event and inserts
	// the new batch in one transaction. Regeneration is therefore idempotent
	// with respect to row count, and destructive of prior edits by intent.
	ReplaceForEvent(ctx context.Context, eventID uuid.UUID, segments []*entities.ScriptSegment) error

	// SplitSegment deletes the original segment and inserts its chunks in one
	// transaction
	SplitSegment(ctx context.Context, originalID uuid.UUID, chunks []*entities.ScriptSegment) error

	// CountByEventID returns the number of script segments stored for an event
	CountByEventID(ctx context.Context, eventID uuid.UUID) (int64, error)
}
