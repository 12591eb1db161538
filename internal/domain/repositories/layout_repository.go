package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
)

// LayoutRepository defines the interface for the normalized layout
// representation (event_layouts + layout_segments tables). Implementations
// bump the layout version on every mutation and keep the total_duration
// aggregate consistent: incrementally for single-segment mutations, by
// absolute recompute on a full batch replace.
type LayoutRepository interface {
	// FindByEventID retrieves a layout with its segments ordered by position
	FindByEventID(ctx context.Context, eventID uuid.UUID) (*entities.EventLayout, error)

	// ReplaceSegments replaces the whole segment set for an event: existing
	// segments are deleted and the new batch inserted in one transaction.
	// Creates the layout row when absent.
	ReplaceSegments(ctx context.Context, eventID uuid.UUID, segments []entities.LayoutSegment) (*entities.EventLayout, error)

	// AddSegment appends one segment, assigning the next contiguous order
	AddSegment(ctx context.Context, eventID uuid.UUID, segment *entities.LayoutSegment) (*entities.EventLayout, error)

	// UpdateSegment updates one segment in place, adjusting total_duration
	// by the duration delta
	UpdateSegment(ctx context.Context, eventID uuid.UUID, segment *entities.LayoutSegment) (*entities.EventLayout, error)

	// DeleteSegment removes one segment and reindexes the remaining orders
	// to stay contiguous
	DeleteSegment(ctx context.Context, eventID uuid.UUID, segmentID uuid.UUID) (*entities.EventLayout, error)
}

// LayoutDocumentRepository defines the interface for the embedded-document
// representation: one JSON blob per event, versioned independently of the
// normalized tables and never synchronized with them.
type LayoutDocumentRepository interface {
	// Get retrieves the document for an event
	Get(ctx context.Context, eventID uuid.UUID) (*entities.LayoutDocument, error)

	// Decode retrieves and decodes the document payload for an event
	Decode(ctx context.Context, eventID uuid.UUID) (*entities.DocumentPayload, error)

	// Save persists the whole payload back, overwriting any previous document
	Save(ctx context.Context, eventID uuid.UUID, payload entities.DocumentPayload) error
}
