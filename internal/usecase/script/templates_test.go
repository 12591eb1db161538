package script

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
	"github.com/eventscript-team/eventscript/pkg/prosody"
)

func layoutSegment(segType string, order, duration int) entities.LayoutSegment {
	return entities.LayoutSegment{
		ID:       uuid.New(),
		Name:     "Test Segment",
		Type:     segType,
		Duration: duration,
		Order:    order,
	}
}

func TestExpandSimpleType(t *testing.T) {
	seg := layoutSegment("introduction", 1, 7)

	drafts := Expand(seg, "Launch Day", "webinar")

	require.Len(t, drafts, 1)
	primary := drafts[0]
	assert.Equal(t, "introduction", primary.SegmentType)
	assert.Equal(t, seg.ID, primary.LayoutSegmentID)
	assert.Equal(t, entities.ScriptStatusDraft, primary.Status)
	assert.Equal(t, 7*60, primary.Timing)
	assert.Equal(t, 10, primary.Order)
	assert.Contains(t, primary.Content, "Launch Day")
	assert.NotEmpty(t, prosody.Tokens(primary.Content), "narration carries prosody markup")
}

func TestExpandCompoundType(t *testing.T) {
	seg := layoutSegment("keynote", 2, 60)

	drafts := Expand(seg, "DevSummit", "conference")

	require.Len(t, drafts, 3)

	primary, intro, transition := drafts[0], drafts[1], drafts[2]

	assert.Equal(t, "keynote", primary.SegmentType)
	assert.Equal(t, 20, primary.Order)
	assert.Equal(t, 3600, primary.Timing)

	assert.Equal(t, "keynote_intro", intro.SegmentType)
	assert.Equal(t, 21, intro.Order)
	assert.Equal(t, 6*60, intro.Timing) // round(60 * 0.10) minutes

	assert.Equal(t, "keynote_transition", transition.SegmentType)
	assert.Equal(t, 22, transition.Order)
	assert.Equal(t, 3*60, transition.Timing) // round(60 * 0.05) minutes

	for _, d := range drafts {
		assert.Equal(t, seg.ID, d.LayoutSegmentID)
	}
}

func TestExpandQAProducesExactlyThreePairs(t *testing.T) {
	// The question bank is fixed: three pairs regardless of duration.
	for _, duration := range []int{5, 18, 120} {
		seg := layoutSegment("q_and_a", 3, duration)

		drafts := Expand(seg, "DevSummit", "conference")

		require.Len(t, drafts, 4, "duration %d", duration)
		assert.Equal(t, "q_and_a", drafts[0].SegmentType)
		for i, pair := range drafts[1:] {
			assert.Equal(t, "q_and_a_pair", pair.SegmentType)
			assert.Equal(t, 30+i+1, pair.Order)
		}
	}
}

func TestExpandQAPairTiming(t *testing.T) {
	seg := layoutSegment("q_and_a", 3, 18)

	drafts := Expand(seg, "DevSummit", "conference")

	require.Len(t, drafts, 4)
	for _, pair := range drafts[1:] {
		// round(18 * 0.20) = 4 minutes
		assert.Equal(t, 4*60, pair.Timing)
	}
}

func TestExpandUnknownTypeUsesDefaultTemplate(t *testing.T) {
	seg := layoutSegment("fire_drill", 5, 10)

	drafts := Expand(seg, "Safety Day", "corporate")

	require.Len(t, drafts, 1)
	assert.Contains(t, drafts[0].Content, "Coming up next")
	assert.Contains(t, drafts[0].Content, "Test Segment")
}

func TestExpandSatelliteOrdersNeverCollide(t *testing.T) {
	// All positions produced by a ten-segment compound layout must stay
	// unique and strictly between neighbouring primaries.
	seen := map[int]bool{}
	for order := 1; order <= 10; order++ {
		seg := layoutSegment("panel", order, 30)
		for _, d := range Expand(seg, "Event", "conference") {
			require.False(t, seen[d.Order], "duplicate position %d", d.Order)
			seen[d.Order] = true
		}
	}
}

func TestExpandedContentIsSpeakable(t *testing.T) {
	seg := layoutSegment("presentation", 4, 45)

	drafts := Expand(seg, "DevSummit", "conference")

	for _, d := range drafts {
		plain := strings.TrimSpace(prosody.Strip(d.Content))
		assert.NotEmpty(t, plain, "stripping markup must leave narration text")
		assert.NotContains(t, plain, "[", "no unrecognised bracket tokens")
	}
}
