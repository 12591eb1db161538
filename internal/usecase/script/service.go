package script

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/eventscript-team/eventscript/errors"
	"github.com/eventscript-team/eventscript/internal/domain/entities"
	"github.com/eventscript-team/eventscript/internal/domain/repositories"
	"github.com/eventscript-team/eventscript/internal/usecase/layout"
)

// Service defines the script use case: template expansion of a layout into
// narration and the chunking pass that bounds each segment for speech synthesis
type Service interface {
	// GenerateFromLayout expands the event's layout into script segments,
	// replacing any previous script
	GenerateFromLayout(ctx context.Context, eventID uuid.UUID) ([]*entities.ScriptSegment, error)

	// ChunkAll splits every script segment of the event concurrently and
	// reports how many succeeded
	ChunkAll(ctx context.Context, eventID uuid.UUID, targetWords int) (*ChunkReport, error)

	// GetScript retrieves the stored script segments in order
	GetScript(ctx context.Context, eventID uuid.UUID) ([]*entities.ScriptSegment, error)
}

// ChunkResult reports the outcome of chunking one segment
type ChunkResult struct {
	SegmentID uuid.UUID `json:"segment_id"`
	Chunks    int       `json:"chunks"`
	Error     string    `json:"error,omitempty"`
}

// ChunkReport aggregates a batch chunking pass. Partial failures are
// reported, never rolled back.
type ChunkReport struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Results   []ChunkResult `json:"results"`
}

// Message renders the "M of N succeeded" summary
func (r *ChunkReport) Message() string {
	return fmt.Sprintf("%d of %d segments chunked", r.Succeeded, r.Total)
}

// ScriptService handles script generation business logic
type ScriptService struct {
	eventRepo  repositories.EventRepository
	scriptRepo repositories.ScriptRepository
	layoutSvc  layout.Service
	workers    int
	logger     *zap.Logger
}

// Ensure ScriptService implements Service interface
var _ Service = (*ScriptService)(nil)

// NewScriptService creates a new script service
func NewScriptService(
	eventRepo repositories.EventRepository,
	scriptRepo repositories.ScriptRepository,
	layoutSvc layout.Service,
	workers int,
	logger *zap.Logger,
) *ScriptService {
	if workers < 1 {
		workers = 1
	}
	return &ScriptService{
		eventRepo:  eventRepo,
		scriptRepo: scriptRepo,
		layoutSvc:  layoutSvc,
		workers:    workers,
		logger:     logger,
	}
}

// GenerateFromLayout expands the event's layout into script segments. All
// previous script segments for the event are deleted first, so running the
// generation twice yields the same row count as running it once -- and wipes
// any manual edits, by intent.
func (s *ScriptService) GenerateFromLayout(ctx context.Context, eventID uuid.UUID) ([]*entities.ScriptSegment, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound(eventID.String())
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	lay, err := s.layoutSvc.GetLayout(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(lay.Segments) == 0 {
		return nil, apperrors.ErrLayoutNotFound(eventID.String())
	}

	var segments []*entities.ScriptSegment
	for _, layoutSeg := range lay.Segments {
		drafts := Expand(layoutSeg, event.Title, event.EventType)
		for _, draft := range drafts {
			draft.EventID = eventID
		}
		segments = append(segments, drafts...)
	}

	if err := s.scriptRepo.ReplaceForEvent(ctx, eventID, segments); err != nil {
		return nil, apperrors.ErrGenerationFailed("script", err)
	}

	if err := s.eventRepo.UpdateStatus(ctx, eventID, entities.EventStatusScripting); err != nil {
		s.logger.Warn("script.status_update_failed",
			zap.String("event_id", eventID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("script.generated",
		zap.String("event_id", eventID.String()),
		zap.Int("layout_segments", len(lay.Segments)),
		zap.Int("script_segments", len(segments)),
	)

	return segments, nil
}

// ChunkAll splits every script segment of the event into word-bounded
// chunks. Segments are processed as a concurrent task group with no
// ordering between them; each task owns exactly one segment's lifecycle.
// Failures are aggregated, not rolled back.
func (s *ScriptService) ChunkAll(ctx context.Context, eventID uuid.UUID, targetWords int) (*ChunkReport, error) {
	if targetWords <= 0 {
		targetWords = DefaultTargetWords
	}

	segments, err := s.scriptRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to read script segments: %w", err)
	}
	if len(segments) == 0 {
		return nil, apperrors.ErrScriptNotFound(eventID.String())
	}

	report := &ChunkReport{
		Total:   len(segments),
		Results: make([]ChunkResult, 0, len(segments)),
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		semaphore = make(chan struct{}, s.workers)
	)

	for _, segment := range segments {
		wg.Add(1)
		go func(segment *entities.ScriptSegment) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result := s.chunkOne(ctx, segment, targetWords)

			mu.Lock()
			report.Results = append(report.Results, result)
			if result.Error == "" {
				report.Succeeded++
			}
			mu.Unlock()
		}(segment)
	}
	wg.Wait()

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].SegmentID.String() < report.Results[j].SegmentID.String()
	})

	if report.Succeeded == report.Total {
		if err := s.eventRepo.UpdateStatus(ctx, eventID, entities.EventStatusScriptReady); err != nil {
			s.logger.Warn("script.status_update_failed",
				zap.String("event_id", eventID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("script.chunked",
		zap.String("event_id", eventID.String()),
		zap.Int("total", report.Total),
		zap.Int("succeeded", report.Succeeded),
	)

	return report, nil
}

// chunkOne chunks a single segment and persists the split when the content
// actually divides. A single-chunk result is a no-op: nothing is deleted or
// inserted.
func (s *ScriptService) chunkOne(ctx context.Context, segment *entities.ScriptSegment, targetWords int) ChunkResult {
	chunks := Chunk(segment, targetWords)
	if len(chunks) == 1 {
		return ChunkResult{SegmentID: segment.ID, Chunks: 1}
	}

	if err := s.scriptRepo.SplitSegment(ctx, segment.ID, chunks); err != nil {
		s.logger.Warn("script.chunk_failed",
			zap.String("segment_id", segment.ID.String()),
			zap.Error(err),
		)
		return ChunkResult{SegmentID: segment.ID, Chunks: 0, Error: err.Error()}
	}

	return ChunkResult{SegmentID: segment.ID, Chunks: len(chunks)}
}

// GetScript retrieves the stored script segments in order
func (s *ScriptService) GetScript(ctx context.Context, eventID uuid.UUID) ([]*entities.ScriptSegment, error) {
	segments, err := s.scriptRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to read script segments: %w", err)
	}
	if len(segments) == 0 {
		return nil, apperrors.ErrScriptNotFound(eventID.String())
	}
	return segments, nil
}
