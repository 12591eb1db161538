package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
)

// testSchema mirrors migrations/0001_init.sql without the Postgres-only
// pieces (pgcrypto defaults, jsonb), so the repositories can run against
// sqlite in tests.
const testSchema = `
CREATE TABLE events (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    event_type TEXT NOT NULL DEFAULT 'general',
    status TEXT NOT NULL DEFAULT 'draft',
    duration_minutes INTEGER NOT NULL DEFAULT 60,
    start_time DATETIME,
    created_at DATETIME,
    updated_at DATETIME
);
CREATE TABLE event_layouts (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL UNIQUE,
    total_duration INTEGER NOT NULL DEFAULT 0,
    layout_version INTEGER NOT NULL DEFAULT 1,
    updated_at DATETIME
);
CREATE TABLE layout_segments (
    id TEXT PRIMARY KEY,
    layout_id TEXT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    description TEXT,
    duration INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL,
    start_time TEXT,
    end_time TEXT,
    custom_properties TEXT
);
CREATE TABLE layout_documents (
    event_id TEXT PRIMARY KEY,
    document TEXT NOT NULL,
    updated_at DATETIME
);
CREATE TABLE script_segments (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL,
    layout_segment_id TEXT NOT NULL,
    segment_type TEXT NOT NULL,
    content TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'draft',
    timing INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL
);
CREATE UNIQUE INDEX idx_layout_segments_layout_position ON layout_segments (layout_id, position);
CREATE UNIQUE INDEX idx_script_segments_event_position ON script_segments (event_id, position);
`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(testSchema).Error)
	return db
}

func seedEvent(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	event := &entities.Event{
		ID:              uuid.New(),
		Title:           "Launch Webinar",
		EventType:       "webinar",
		Status:          entities.EventStatusDraft,
		DurationMinutes: 90,
	}
	require.NoError(t, NewEventRepository(db).Create(context.Background(), event))
	return event.ID
}

func testSegments(n int) []entities.LayoutSegment {
	segments := make([]entities.LayoutSegment, 0, n)
	for i := 0; i < n; i++ {
		segments = append(segments, entities.LayoutSegment{
			ID:       uuid.New(),
			Name:     "Segment",
			Type:     "main_content",
			Duration: 10,
			Order:    i + 1,
		})
	}
	return segments
}

func TestEventRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	eventID := seedEvent(t, db)

	event, err := repo.FindByID(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, "Launch Webinar", event.Title)
	assert.Equal(t, entities.EventStatusDraft, event.Status)

	require.NoError(t, repo.UpdateStatus(ctx, eventID, entities.EventStatusLayoutReady))

	event, err = repo.FindByID(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, entities.EventStatusLayoutReady, event.Status)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReplaceSegmentsCreatesAndReplaces(t *testing.T) {
	db := openTestDB(t)
	repo := NewLayoutRepository(db)
	ctx := context.Background()
	eventID := seedEvent(t, db)

	first, err := repo.ReplaceSegments(ctx, eventID, testSegments(3))
	require.NoError(t, err)
	assert.Equal(t, 30, first.TotalDuration)
	assert.Equal(t, 1, first.LayoutVersion)

	second, err := repo.ReplaceSegments(ctx, eventID, testSegments(5))
	require.NoError(t, err)
	assert.Equal(t, 50, second.TotalDuration)
	assert.Equal(t, 2, second.LayoutVersion)
	assert.Equal(t, first.ID, second.ID, "layout row is reused, not recreated")

	stored, err := repo.FindByEventID(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, stored.Segments, 5, "old segments must be gone")
	for i, seg := range stored.Segments {
		assert.Equal(t, i+1, seg.Order)
	}
}

func TestAddSegmentAssignsNextOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewLayoutRepository(db)
	ctx := context.Background()
	eventID := seedEvent(t, db)

	_, err := repo.ReplaceSegments(ctx, eventID, testSegments(2))
	require.NoError(t, err)

	layout, err := repo.AddSegment(ctx, eventID, &entities.LayoutSegment{
		ID: uuid.New(), Name: "Encore", Type: "demo", Duration: 15,
	})
	require.NoError(t, err)

	require.Len(t, layout.Segments, 3)
	assert.Equal(t, 3, layout.Segments[2].Order)
	assert.Equal(t, 35, layout.TotalDuration)
	assert.Equal(t, 2, layout.LayoutVersion)
}

func TestUpdateSegmentAdjustsTotalByDelta(t *testing.T) {
	db := openTestDB(t)
	repo := NewLayoutRepository(db)
	ctx := context.Background()
	eventID := seedEvent(t, db)

	segments := testSegments(3)
	_, err := repo.ReplaceSegments(ctx, eventID, segments)
	require.NoError(t, err)

	layout, err := repo.UpdateSegment(ctx, eventID, &entities.LayoutSegment{
		ID: segments[1].ID, Name: "Extended", Type: "main_content", Duration: 25,
	})
	require.NoError(t, err)

	assert.Equal(t, 45, layout.TotalDuration) // 30 - 10 + 25
	assert.Equal(t, "Extended", layout.Segments[1].Name)
	assert.Equal(t, 2, layout.Segments[1].Order, "order survives the update")
}

func TestDeleteSegmentReindexes(t *testing.T) {
	db := openTestDB(t)
	repo := NewLayoutRepository(db)
	ctx := context.Background()
	eventID := seedEvent(t, db)

	segments := testSegments(4)
	_, err := repo.ReplaceSegments(ctx, eventID, segments)
	require.NoError(t, err)

	layout, err := repo.DeleteSegment(ctx, eventID, segments[1].ID)
	require.NoError(t, err)

	require.Len(t, layout.Segments, 3)
	for i, seg := range layout.Segments {
		assert.Equal(t, i+1, seg.Order, "orders must stay contiguous after delete")
	}
	assert.Equal(t, 30, layout.TotalDuration)

	_, err = repo.DeleteSegment(ctx, eventID, segments[1].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLayoutDocumentSaveAndDecode(t *testing.T) {
	db := openTestDB(t)
	repo := NewLayoutDocumentRepository(db)
	ctx := context.Background()
	eventID := seedEvent(t, db)

	_, err := repo.Decode(ctx, eventID)
	assert.ErrorIs(t, err, entities.ErrDocumentNotFound)

	payload := entities.EmptyDocument()
	payload.Segments = []entities.DocumentSegment{
		{ID: uuid.New(), Name: "Opening", Type: "introduction", Duration: 10, Order: 1},
	}
	payload.TotalDuration = 10
	payload.Version = 1

	require.NoError(t, repo.Save(ctx, eventID, payload))

	decoded, err := repo.Decode(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 1, decoded.Version)
	require.Len(t, decoded.Segments, 1)
	assert.Equal(t, "Opening", decoded.Segments[0].Name)

	// Saving again must overwrite, not duplicate
	payload.Version = 2
	require.NoError(t, repo.Save(ctx, eventID, payload))

	decoded, err = repo.Decode(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Version)
}

func TestScriptRepositoryReplaceAndSplit(t *testing.T) {
	db := openTestDB(t)
	repo := NewScriptRepository(db)
	ctx := context.Background()
	eventID := seedEvent(t, db)

	layoutSegID := uuid.New()
	original := &entities.ScriptSegment{
		ID:              uuid.New(),
		EventID:         eventID,
		LayoutSegmentID: layoutSegID,
		SegmentType:     "presentation",
		Content:         "First part. Second part.",
		Status:          entities.ScriptStatusDraft,
		Timing:          600,
		Order:           entities.PrimaryKey(2).Position(),
	}
	require.NoError(t, repo.ReplaceForEvent(ctx, eventID, []*entities.ScriptSegment{original}))

	count, err := repo.CountByEventID(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	chunks := []*entities.ScriptSegment{
		{ID: uuid.New(), EventID: eventID, LayoutSegmentID: layoutSegID, SegmentType: "presentation",
			Content: "First part.", Status: entities.ScriptStatusDraft, Timing: 300,
			Order: entities.PrimaryKey(2).ChunkKey(1).Position()},
		{ID: uuid.New(), EventID: eventID, LayoutSegmentID: layoutSegID, SegmentType: "presentation",
			Content: "Second part.", Status: entities.ScriptStatusDraft, Timing: 300,
			Order: entities.PrimaryKey(2).ChunkKey(2).Position()},
	}
	require.NoError(t, repo.SplitSegment(ctx, original.ID, chunks))

	stored, err := repo.FindByEventID(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "First part.", stored[0].Content)
	assert.Equal(t, "Second part.", stored[1].Content)
	assert.Less(t, stored[0].Order, stored[1].Order)

	_, err = repo.FindByID(ctx, original.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Splitting an already-split segment must fail loudly
	err = repo.SplitSegment(ctx, original.ID, chunks)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSplitChunkAgainKeepsPositionsUnique(t *testing.T) {
	db := openTestDB(t)
	repo := NewScriptRepository(db)
	ctx := context.Background()
	eventID := seedEvent(t, db)

	layoutSegID := uuid.New()
	newChunk := func(content string, order int) *entities.ScriptSegment {
		return &entities.ScriptSegment{
			ID: uuid.New(), EventID: eventID, LayoutSegmentID: layoutSegID,
			SegmentType: "presentation", Content: content,
			Status: entities.ScriptStatusDraft, Timing: 150, Order: order,
		}
	}

	original := newChunk("One. Two. Three. Four.", entities.PrimaryKey(3).Position())
	require.NoError(t, repo.ReplaceForEvent(ctx, eventID, []*entities.ScriptSegment{original}))

	firstKey := entities.PrimaryKey(3).ChunkKey(1)
	chunks := []*entities.ScriptSegment{
		newChunk("One. Two.", firstKey.Position()),
		newChunk("Three. Four.", entities.PrimaryKey(3).ChunkKey(2).Position()),
	}
	require.NoError(t, repo.SplitSegment(ctx, original.ID, chunks))

	// Splitting the first chunk again must insert below it, not land on the
	// surviving second chunk's position and trip the unique index.
	nested := []*entities.ScriptSegment{
		newChunk("One.", firstKey.ChunkKey(1).Position()),
		newChunk("Two.", firstKey.ChunkKey(2).Position()),
	}
	require.NoError(t, repo.SplitSegment(ctx, chunks[0].ID, nested))

	stored, err := repo.FindByEventID(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	seen := make(map[int]bool)
	for _, seg := range stored {
		assert.False(t, seen[seg.Order], "duplicate position %d", seg.Order)
		seen[seg.Order] = true
	}
	assert.True(t, seen[entities.PrimaryKey(3).ChunkKey(2).Position()],
		"surviving sibling keeps its position")
}

func TestReplaceForEventClearsPreviousScript(t *testing.T) {
	db := openTestDB(t)
	repo := NewScriptRepository(db)
	ctx := context.Background()
	eventID := seedEvent(t, db)

	first := []*entities.ScriptSegment{
		{ID: uuid.New(), EventID: eventID, LayoutSegmentID: uuid.New(), SegmentType: "introduction",
			Content: "Old take.", Status: entities.ScriptStatusDraft, Order: 10},
		{ID: uuid.New(), EventID: eventID, LayoutSegmentID: uuid.New(), SegmentType: "conclusion",
			Content: "Old ending.", Status: entities.ScriptStatusDraft, Order: 20},
	}
	require.NoError(t, repo.ReplaceForEvent(ctx, eventID, first))

	second := []*entities.ScriptSegment{
		{ID: uuid.New(), EventID: eventID, LayoutSegmentID: uuid.New(), SegmentType: "introduction",
			Content: "New take.", Status: entities.ScriptStatusDraft, Order: 10},
	}
	require.NoError(t, repo.ReplaceForEvent(ctx, eventID, second))

	stored, err := repo.FindByEventID(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "New take.", stored[0].Content)
}
