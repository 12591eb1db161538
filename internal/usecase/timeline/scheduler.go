// Package timeline assigns wall-clock times to layout segments. It is a
// side-branch consumer of the layout: pure computation, no persistence.
package timeline

import (
	"sort"
	"time"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
)

// timeFormat is the caller-facing clock format ("3:04 PM")
const timeFormat = time.Kitchen

// ScheduledSegment is a layout segment with its wall-clock start and end
type ScheduledSegment struct {
	entities.LayoutSegment
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

// Schedule walks the segments in order and assigns start and end times from
// the event start. The sort is stable: segments with equal orders keep
// their original relative position. The input slice is not modified.
func Schedule(segments []entities.LayoutSegment, eventStart time.Time) []ScheduledSegment {
	ordered := make([]entities.LayoutSegment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	scheduled := make([]ScheduledSegment, 0, len(ordered))
	clock := eventStart
	for _, seg := range ordered {
		end := clock.Add(time.Duration(seg.Duration) * time.Minute)

		start := clock.Format(timeFormat)
		finish := end.Format(timeFormat)
		seg.StartTime = &start
		seg.EndTime = &finish

		scheduled = append(scheduled, ScheduledSegment{
			LayoutSegment: seg,
			StartsAt:      start,
			EndsAt:        finish,
		})

		clock = end
	}

	return scheduled
}
