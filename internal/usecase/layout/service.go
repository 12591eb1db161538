package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/eventscript-team/eventscript/errors"
	"github.com/eventscript-team/eventscript/internal/domain/entities"
	"github.com/eventscript-team/eventscript/internal/domain/repositories"
	"github.com/eventscript-team/eventscript/internal/infrastructure/cache"
)

// Service defines the layout use case: layout generation plus the
// single-segment mutations, all written through the two-representation
// reconciliation discipline.
type Service interface {
	// GenerateLayout allocates a fresh program for the event and persists it,
	// replacing any previous layout
	GenerateLayout(ctx context.Context, eventID uuid.UUID) (*entities.EventLayout, error)

	// GetLayout reads the layout: normalized representation first, embedded
	// document only when the normalized one is empty or absent
	GetLayout(ctx context.Context, eventID uuid.UUID) (*entities.EventLayout, error)

	// AddSegment appends one segment to the layout
	AddSegment(ctx context.Context, eventID uuid.UUID, input SegmentInput) (*entities.EventLayout, error)

	// UpdateSegment updates one segment in place
	UpdateSegment(ctx context.Context, eventID, segmentID uuid.UUID, input SegmentInput) (*entities.EventLayout, error)

	// DeleteSegment removes one segment, keeping the remaining orders contiguous
	DeleteSegment(ctx context.Context, eventID, segmentID uuid.UUID) (*entities.EventLayout, error)
}

// SegmentInput carries the mutable fields of a layout segment
type SegmentInput struct {
	Name        string
	Type        string
	Description string
	Duration    int
}

// LayoutService handles layout business logic. Every mutation runs a
// two-path strategy: the normalized tables are the primary representation;
// on any primary failure the same mutation is applied to the event's
// embedded JSON document instead. The two representations are never
// synchronized with each other.
type LayoutService struct {
	eventRepo  repositories.EventRepository
	layoutRepo repositories.LayoutRepository
	docRepo    repositories.LayoutDocumentRepository
	store      cache.Store
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// Ensure LayoutService implements Service interface
var _ Service = (*LayoutService)(nil)

// NewLayoutService creates a new layout service
func NewLayoutService(
	eventRepo repositories.EventRepository,
	layoutRepo repositories.LayoutRepository,
	docRepo repositories.LayoutDocumentRepository,
	store cache.Store,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *LayoutService {
	return &LayoutService{
		eventRepo:  eventRepo,
		layoutRepo: layoutRepo,
		docRepo:    docRepo,
		store:      store,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// GenerateLayout allocates a fresh program for the event and persists it
func (s *LayoutService) GenerateLayout(ctx context.Context, eventID uuid.UUID) (*entities.EventLayout, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound(eventID.String())
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	segments := Allocate(event.EventType, event.DurationMinutes)

	layout, err := s.layoutRepo.ReplaceSegments(ctx, eventID, segments)
	if err != nil {
		layout, err = s.fallbackReplace(ctx, eventID, segments, err)
		if err != nil {
			return nil, err
		}
	}

	if err := s.eventRepo.UpdateStatus(ctx, eventID, entities.EventStatusLayoutReady); err != nil {
		s.logger.Warn("layout.status_update_failed",
			zap.String("event_id", eventID.String()),
			zap.Error(err),
		)
	}

	s.invalidate(ctx, eventID)
	return layout, nil
}

// GetLayout reads the layout with the normalized representation as the
// authority; the embedded document is consulted only when the normalized
// one has nothing for this event.
func (s *LayoutService) GetLayout(ctx context.Context, eventID uuid.UUID) (*entities.EventLayout, error) {
	if cached, ok := s.store.Get(ctx, layoutCacheKey(eventID)); ok {
		var layout entities.EventLayout
		if err := json.Unmarshal([]byte(cached), &layout); err == nil {
			return &layout, nil
		}
		s.store.Delete(ctx, layoutCacheKey(eventID))
	}

	layout, err := s.layoutRepo.FindByEventID(ctx, eventID)
	if err == nil && len(layout.Segments) > 0 {
		s.cacheLayout(ctx, eventID, layout)
		return layout, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("layout.normalized_read_failed",
			zap.String("event_id", eventID.String()),
			zap.Error(err),
		)
	}

	payload, docErr := s.docRepo.Decode(ctx, eventID)
	if docErr != nil {
		if errors.Is(docErr, entities.ErrDocumentNotFound) {
			return nil, apperrors.ErrLayoutNotFound(eventID.String())
		}
		return nil, fmt.Errorf("failed to read layout document: %w", docErr)
	}

	fallback := layoutFromPayload(eventID, payload)
	return fallback, nil
}

// AddSegment appends one segment to the layout
func (s *LayoutService) AddSegment(ctx context.Context, eventID uuid.UUID, input SegmentInput) (*entities.EventLayout, error) {
	if input.Duration < 0 {
		return nil, apperrors.ErrInvalidArgument("segment duration must be non-negative")
	}

	segment := &entities.LayoutSegment{
		ID:          uuid.New(),
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		Duration:    input.Duration,
	}

	layout, err := s.layoutRepo.AddSegment(ctx, eventID, segment)
	if err != nil {
		layout, err = s.fallbackMutate(ctx, eventID, "add_segment", err, func(payload *entities.DocumentPayload) error {
			doc := segment.ToDocumentSegment()
			doc.Order = len(payload.Segments) + 1
			payload.Segments = append(payload.Segments, doc)
			payload.TotalDuration += segment.Duration
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	s.invalidate(ctx, eventID)
	return layout, nil
}

// UpdateSegment updates one segment in place
func (s *LayoutService) UpdateSegment(ctx context.Context, eventID, segmentID uuid.UUID, input SegmentInput) (*entities.EventLayout, error) {
	if input.Duration < 0 {
		return nil, apperrors.ErrInvalidArgument("segment duration must be non-negative")
	}

	segment := &entities.LayoutSegment{
		ID:          segmentID,
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		Duration:    input.Duration,
	}

	layout, err := s.layoutRepo.UpdateSegment(ctx, eventID, segment)
	if err != nil {
		layout, err = s.fallbackMutate(ctx, eventID, "update_segment", err, func(payload *entities.DocumentPayload) error {
			for i := range payload.Segments {
				if payload.Segments[i].ID == segmentID {
					payload.TotalDuration += input.Duration - payload.Segments[i].Duration
					payload.Segments[i].Name = input.Name
					payload.Segments[i].Type = input.Type
					payload.Segments[i].Description = input.Description
					payload.Segments[i].Duration = input.Duration
					return nil
				}
			}
			return entities.ErrSegmentNotFound
		})
		if err != nil {
			return nil, err
		}
	}

	s.invalidate(ctx, eventID)
	return layout, nil
}

// DeleteSegment removes one segment, keeping the remaining orders contiguous
func (s *LayoutService) DeleteSegment(ctx context.Context, eventID, segmentID uuid.UUID) (*entities.EventLayout, error) {
	layout, err := s.layoutRepo.DeleteSegment(ctx, eventID, segmentID)
	if err != nil {
		layout, err = s.fallbackMutate(ctx, eventID, "delete_segment", err, func(payload *entities.DocumentPayload) error {
			kept := payload.Segments[:0]
			found := false
			for _, seg := range payload.Segments {
				if seg.ID == segmentID {
					payload.TotalDuration -= seg.Duration
					found = true
					continue
				}
				kept = append(kept, seg)
			}
			if !found {
				return entities.ErrSegmentNotFound
			}
			for i := range kept {
				kept[i].Order = i + 1
			}
			payload.Segments = kept
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	s.invalidate(ctx, eventID)
	return layout, nil
}

// fallbackReplace applies a full segment replacement to the embedded
// document after the normalized path failed
func (s *LayoutService) fallbackReplace(ctx context.Context, eventID uuid.UUID, segments []entities.LayoutSegment, primaryErr error) (*entities.EventLayout, error) {
	return s.fallbackMutate(ctx, eventID, "replace_segments", primaryErr, func(payload *entities.DocumentPayload) error {
		docs := make([]entities.DocumentSegment, 0, len(segments))
		total := 0
		for _, seg := range segments {
			docs = append(docs, seg.ToDocumentSegment())
			total += seg.Duration
		}
		payload.Segments = docs
		payload.TotalDuration = total
		return nil
	})
}

// fallbackMutate reads the event's embedded document (or synthesizes an
// empty one), applies the mutation in memory, bumps the document's own
// version counter and persists the whole blob back. The normalized tables
// are deliberately left untouched.
func (s *LayoutService) fallbackMutate(
	ctx context.Context,
	eventID uuid.UUID,
	operation string,
	primaryErr error,
	mutate func(*entities.DocumentPayload) error,
) (*entities.EventLayout, error) {
	s.logger.Warn("layout.primary_path_failed",
		zap.String("event_id", eventID.String()),
		zap.String("operation", operation),
		zap.Error(primaryErr),
	)

	payload, err := s.docRepo.Decode(ctx, eventID)
	if err != nil {
		if !errors.Is(err, entities.ErrDocumentNotFound) {
			return nil, apperrors.ErrFallbackFailed(operation, err)
		}
		empty := entities.EmptyDocument()
		payload = &empty
	}

	if err := mutate(payload); err != nil {
		if errors.Is(err, entities.ErrSegmentNotFound) {
			return nil, apperrors.ErrNotFound("segment")
		}
		return nil, apperrors.ErrFallbackFailed(operation, err)
	}

	payload.Version++
	payload.LastUpdated = time.Now().UTC()

	save := func() error {
		return s.docRepo.Save(ctx, eventID, *payload)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(save, policy); err != nil {
		s.logger.Error("layout.fallback_path_failed",
			zap.String("event_id", eventID.String()),
			zap.String("operation", operation),
			zap.Error(err),
		)
		return nil, apperrors.ErrFallbackFailed(operation, err)
	}

	s.logger.Info("layout.fallback_path_succeeded",
		zap.String("event_id", eventID.String()),
		zap.String("operation", operation),
		zap.Int("document_version", payload.Version),
	)

	return layoutFromPayload(eventID, payload), nil
}

// layoutFromPayload converts the embedded document into the normalized
// caller-facing shape
func layoutFromPayload(eventID uuid.UUID, payload *entities.DocumentPayload) *entities.EventLayout {
	segments := make([]entities.LayoutSegment, 0, len(payload.Segments))
	for _, doc := range payload.Segments {
		segments = append(segments, doc.ToLayoutSegment())
	}
	return &entities.EventLayout{
		EventID:       eventID,
		TotalDuration: payload.TotalDuration,
		LayoutVersion: payload.Version,
		UpdatedAt:     payload.LastUpdated,
		Segments:      segments,
	}
}

func (s *LayoutService) cacheLayout(ctx context.Context, eventID uuid.UUID, layout *entities.EventLayout) {
	raw, err := json.Marshal(layout)
	if err != nil {
		return
	}
	s.store.Set(ctx, layoutCacheKey(eventID), string(raw), s.cacheTTL)
}

func (s *LayoutService) invalidate(ctx context.Context, eventID uuid.UUID) {
	s.store.Delete(ctx, layoutCacheKey(eventID))
}

func layoutCacheKey(eventID uuid.UUID) string {
	return fmt.Sprintf("layout:%s", eventID)
}
