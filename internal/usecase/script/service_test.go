package script

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/eventscript-team/eventscript/errors"
	"github.com/eventscript-team/eventscript/internal/domain/entities"
	"github.com/eventscript-team/eventscript/internal/usecase/layout"
)

type fakeEventRepo struct {
	events map[uuid.UUID]*entities.Event
}

func (f *fakeEventRepo) Create(_ context.Context, event *entities.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *entities.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entities.EventStatus) error {
	if event, ok := f.events[id]; ok {
		event.Status = status
	}
	return nil
}

// fakeScriptRepo is an in-memory ScriptRepository
type fakeScriptRepo struct {
	mu           sync.Mutex
	segments     map[uuid.UUID][]*entities.ScriptSegment // by event
	failSplitFor map[uuid.UUID]bool
}

func newFakeScriptRepo() *fakeScriptRepo {
	return &fakeScriptRepo{
		segments:     map[uuid.UUID][]*entities.ScriptSegment{},
		failSplitFor: map[uuid.UUID]bool{},
	}
}

func (f *fakeScriptRepo) FindByEventID(_ context.Context, eventID uuid.UUID) ([]*entities.ScriptSegment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entities.ScriptSegment(nil), f.segments[eventID]...), nil
}

func (f *fakeScriptRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.ScriptSegment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, list := range f.segments {
		for _, seg := range list {
			if seg.ID == id {
				return seg, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeScriptRepo) ReplaceForEvent(_ context.Context, eventID uuid.UUID, segments []*entities.ScriptSegment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.segments[eventID] = append([]*entities.ScriptSegment(nil), segments...)
	return nil
}

func (f *fakeScriptRepo) SplitSegment(_ context.Context, originalID uuid.UUID, chunks []*entities.ScriptSegment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSplitFor[originalID] {
		return errors.New("split rejected")
	}
	for eventID, list := range f.segments {
		for i, seg := range list {
			if seg.ID == originalID {
				replaced := append([]*entities.ScriptSegment(nil), list[:i]...)
				replaced = append(replaced, chunks...)
				replaced = append(replaced, list[i+1:]...)
				f.segments[eventID] = replaced
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeScriptRepo) CountByEventID(_ context.Context, eventID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.segments[eventID])), nil
}

// fakeLayoutService serves a fixed layout for every event
type fakeLayoutService struct {
	layout *entities.EventLayout
}

func (f *fakeLayoutService) GenerateLayout(context.Context, uuid.UUID) (*entities.EventLayout, error) {
	return f.layout, nil
}

func (f *fakeLayoutService) GetLayout(context.Context, uuid.UUID) (*entities.EventLayout, error) {
	if f.layout == nil {
		return nil, apperrors.ErrLayoutNotFound("missing")
	}
	return f.layout, nil
}

func (f *fakeLayoutService) AddSegment(context.Context, uuid.UUID, layout.SegmentInput) (*entities.EventLayout, error) {
	return f.layout, nil
}

func (f *fakeLayoutService) UpdateSegment(context.Context, uuid.UUID, uuid.UUID, layout.SegmentInput) (*entities.EventLayout, error) {
	return f.layout, nil
}

func (f *fakeLayoutService) DeleteSegment(context.Context, uuid.UUID, uuid.UUID) (*entities.EventLayout, error) {
	return f.layout, nil
}

func webinarLayout(eventID uuid.UUID) *entities.EventLayout {
	return &entities.EventLayout{
		EventID:       eventID,
		TotalDuration: 90,
		Segments: []entities.LayoutSegment{
			{ID: uuid.New(), Name: "Welcome", Type: "introduction", Duration: 7, Order: 1},
			{ID: uuid.New(), Name: "Main Presentation", Type: "presentation", Duration: 45, Order: 2},
			{ID: uuid.New(), Name: "Q&A", Type: "q_and_a", Duration: 18, Order: 3},
			{ID: uuid.New(), Name: "Closing", Type: "conclusion", Duration: 5, Order: 4},
		},
	}
}

func newScriptTestService(t *testing.T) (*ScriptService, *fakeEventRepo, *fakeScriptRepo, uuid.UUID) {
	t.Helper()

	eventID := uuid.New()
	eventRepo := &fakeEventRepo{events: map[uuid.UUID]*entities.Event{
		eventID: {
			ID:              eventID,
			Title:           "Launch Webinar",
			EventType:       "webinar",
			Status:          entities.EventStatusLayoutReady,
			DurationMinutes: 90,
		},
	}}
	scriptRepo := newFakeScriptRepo()
	layoutSvc := &fakeLayoutService{layout: webinarLayout(eventID)}

	svc := NewScriptService(eventRepo, scriptRepo, layoutSvc, 4, zap.NewNop())
	return svc, eventRepo, scriptRepo, eventID
}

func TestGenerateFromLayout(t *testing.T) {
	svc, eventRepo, _, eventID := newScriptTestService(t)

	segments, err := svc.GenerateFromLayout(context.Background(), eventID)

	require.NoError(t, err)
	// introduction 1 + presentation 3 + q_and_a 4 + conclusion 1
	require.Len(t, segments, 9)

	for _, seg := range segments {
		assert.Equal(t, eventID, seg.EventID)
		assert.Equal(t, entities.ScriptStatusDraft, seg.Status)
		assert.NotEmpty(t, seg.Content)
	}

	assert.Equal(t, entities.EventStatusScripting, eventRepo.events[eventID].Status)
}

func TestGenerateFromLayoutIsIdempotentOnRowCount(t *testing.T) {
	svc, _, scriptRepo, eventID := newScriptTestService(t)

	first, err := svc.GenerateFromLayout(context.Background(), eventID)
	require.NoError(t, err)

	second, err := svc.GenerateFromLayout(context.Background(), eventID)
	require.NoError(t, err)

	assert.Equal(t, len(first), len(second))

	count, err := scriptRepo.CountByEventID(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, int64(len(second)), count)
}

func TestGenerateFromLayoutUnknownEvent(t *testing.T) {
	svc, _, _, _ := newScriptTestService(t)

	_, err := svc.GenerateFromLayout(context.Background(), uuid.New())

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_EVENT_NOT_FOUND, appErr.Code)
}

func TestChunkAllSplitsLongSegments(t *testing.T) {
	svc, eventRepo, scriptRepo, eventID := newScriptTestService(t)

	_, err := svc.GenerateFromLayout(context.Background(), eventID)
	require.NoError(t, err)
	before, _ := scriptRepo.CountByEventID(context.Background(), eventID)

	report, err := svc.ChunkAll(context.Background(), eventID, 10)

	require.NoError(t, err)
	assert.Equal(t, int(before), report.Total)
	assert.Equal(t, report.Total, report.Succeeded)
	assert.Equal(t, entities.EventStatusScriptReady, eventRepo.events[eventID].Status)

	after, _ := scriptRepo.CountByEventID(context.Background(), eventID)
	assert.Greater(t, after, before, "long narration must split into more rows")

	stored, err := svc.GetScript(context.Background(), eventID)
	require.NoError(t, err)
	for _, seg := range stored {
		words := len(strings.Fields(seg.Content))
		// A chunk may exceed the target only when a single sentence does
		if words > 10 {
			assert.LessOrEqual(t, len(SplitSentences(seg.Content)), 1,
				"oversized chunk %q must be a single sentence", seg.Content)
		}
	}
}

func TestChunkAllReportsPartialFailure(t *testing.T) {
	svc, eventRepo, scriptRepo, eventID := newScriptTestService(t)

	_, err := svc.GenerateFromLayout(context.Background(), eventID)
	require.NoError(t, err)

	segments, _ := scriptRepo.FindByEventID(context.Background(), eventID)
	require.NotEmpty(t, segments)
	victim := segments[0]
	scriptRepo.failSplitFor[victim.ID] = true

	report, err := svc.ChunkAll(context.Background(), eventID, 5)

	require.NoError(t, err)
	assert.Equal(t, report.Total-1, report.Succeeded)
	assert.Contains(t, report.Message(), "segments chunked")

	var failed *ChunkResult
	for i := range report.Results {
		if report.Results[i].SegmentID == victim.ID {
			failed = &report.Results[i]
		}
	}
	require.NotNil(t, failed)
	assert.NotEmpty(t, failed.Error)
	assert.Zero(t, failed.Chunks)

	// A partial pass must not advance the event
	assert.NotEqual(t, entities.EventStatusScriptReady, eventRepo.events[eventID].Status)
}

func TestChunkAllWithoutScript(t *testing.T) {
	svc, _, _, eventID := newScriptTestService(t)

	_, err := svc.ChunkAll(context.Background(), eventID, 50)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_SCRIPT_NOT_FOUND, appErr.Code)
}

func TestChunkAllSingleChunkSegmentsAreUntouched(t *testing.T) {
	svc, _, scriptRepo, eventID := newScriptTestService(t)

	original := &entities.ScriptSegment{
		ID:      uuid.New(),
		EventID: eventID,
		Content: "Short line.",
		Timing:  30,
		Order:   entities.PrimaryKey(1).Position(),
	}
	require.NoError(t, scriptRepo.ReplaceForEvent(context.Background(), eventID, []*entities.ScriptSegment{original}))

	report, err := svc.ChunkAll(context.Background(), eventID, 50)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)

	stored, _ := scriptRepo.FindByEventID(context.Background(), eventID)
	require.Len(t, stored, 1)
	// Same row survives: no delete-and-reinsert for a single chunk
	assert.Equal(t, original.ID, stored[0].ID)
}

func TestGetScriptEmpty(t *testing.T) {
	svc, _, _, eventID := newScriptTestService(t)

	_, err := svc.GetScript(context.Background(), eventID)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_SCRIPT_NOT_FOUND, appErr.Code)
}
