package layout

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
)

// segmentTemplate is one entry of a category's program template: a share of
// the total duration with a floor in minutes
type segmentTemplate struct {
	Name        string
	Type        string
	Description string
	Pct         float64
	Floor       int
}

// Category template tables. Percentages are intentionally not renormalized:
// some categories reserve slack (sums under 100%) and floor minimums can push
// the allocated total past the requested one. Callers must not assume the
// segment durations sum to the requested total.
var categoryTemplates = map[string][]segmentTemplate{
	"conference": {
		{Name: "Welcome & Introduction", Type: "introduction", Description: "Opening remarks and housekeeping", Pct: 0.05, Floor: 3},
		{Name: "Keynote Address", Type: "keynote", Description: "Headline keynote presentation", Pct: 0.25, Floor: 15},
		{Name: "Panel Discussion", Type: "panel", Description: "Moderated panel with invited speakers", Pct: 0.15, Floor: 10},
		{Name: "Featured Presentation", Type: "presentation", Description: "In-depth session on the main topic", Pct: 0.20, Floor: 15},
		{Name: "Networking Break", Type: "break", Description: "Refreshments and networking", Pct: 0.10, Floor: 10},
		{Name: "Q&A Session", Type: "q_and_a", Description: "Audience questions and answers", Pct: 0.15, Floor: 10},
		{Name: "Closing Remarks", Type: "conclusion", Description: "Summary and farewell", Pct: 0.05, Floor: 3},
	},
	"webinar": {
		{Name: "Welcome & Introduction", Type: "introduction", Description: "Opening remarks and speaker introduction", Pct: 0.08, Floor: 5},
		{Name: "Main Presentation", Type: "presentation", Description: "Core webinar content", Pct: 0.50, Floor: 20},
		{Name: "Q&A Session", Type: "q_and_a", Description: "Audience questions and answers", Pct: 0.20, Floor: 10},
		{Name: "Panel Discussion", Type: "panel", Description: "Discussion with invited guests", Pct: 0.17, Floor: 10},
		{Name: "Closing Remarks", Type: "conclusion", Description: "Summary and next steps", Pct: 0.05, Floor: 3},
	},
	"workshop": {
		{Name: "Welcome & Introduction", Type: "introduction", Description: "Goals and agenda for the workshop", Pct: 0.07, Floor: 5},
		{Name: "Hands-on Session I", Type: "workshop", Description: "First guided working block", Pct: 0.35, Floor: 25},
		{Name: "Break", Type: "break", Description: "Short recovery break", Pct: 0.08, Floor: 10},
		{Name: "Hands-on Session II", Type: "workshop", Description: "Second guided working block", Pct: 0.30, Floor: 20},
		{Name: "Q&A Session", Type: "q_and_a", Description: "Open questions from participants", Pct: 0.10, Floor: 5},
		{Name: "Action Items", Type: "action_items", Description: "Takeaways and follow-up actions", Pct: 0.05, Floor: 3},
		{Name: "Closing Remarks", Type: "conclusion", Description: "Wrap-up and feedback", Pct: 0.05, Floor: 3},
	},
	"corporate": {
		{Name: "Welcome & Introduction", Type: "introduction", Description: "Opening remarks", Pct: 0.05, Floor: 3},
		{Name: "Agenda Overview", Type: "agenda", Description: "Walkthrough of today's agenda", Pct: 0.05, Floor: 3},
		{Name: "Main Session", Type: "main_content", Description: "Primary business content", Pct: 0.45, Floor: 20},
		{Name: "Break", Type: "break", Description: "Coffee break", Pct: 0.10, Floor: 10},
		{Name: "Action Items", Type: "action_items", Description: "Decisions and assigned actions", Pct: 0.15, Floor: 10},
		{Name: "Closing Remarks", Type: "conclusion", Description: "Summary and close", Pct: 0.10, Floor: 5},
	},
}

// generalTemplate is the fallback for categories that match nothing
var generalTemplate = []segmentTemplate{
	{Name: "Welcome & Introduction", Type: "introduction", Description: "Opening remarks", Pct: 0.10, Floor: 5},
	{Name: "Main Session", Type: "main_content", Description: "Primary event content", Pct: 0.60, Floor: 20},
	{Name: "Q&A Session", Type: "q_and_a", Description: "Audience questions and answers", Pct: 0.20, Floor: 10},
	{Name: "Closing Remarks", Type: "conclusion", Description: "Summary and farewell", Pct: 0.10, Floor: 5},
}

// matchOrder fixes the category lookup order so substring matching stays
// deterministic
var matchOrder = []string{"conference", "webinar", "workshop", "corporate"}

// templateFor selects the template list for an event category by
// case-insensitive substring match, falling back to the general template
func templateFor(category string) []segmentTemplate {
	lowered := strings.ToLower(category)
	for _, key := range matchOrder {
		if strings.Contains(lowered, key) {
			return categoryTemplates[key]
		}
	}
	return generalTemplate
}

// Allocate produces the ordered segment list for an event category and a
// total duration in minutes. Each duration is max(floor, round(total*pct));
// orders are contiguous 1..N. The result is deterministic for a fixed input
// and never empty.
func Allocate(category string, totalMinutes int) []entities.LayoutSegment {
	template := templateFor(category)

	segments := make([]entities.LayoutSegment, 0, len(template))
	for i, entry := range template {
		duration := int(math.Round(float64(totalMinutes) * entry.Pct))
		if duration < entry.Floor {
			duration = entry.Floor
		}

		segments = append(segments, entities.LayoutSegment{
			ID:          uuid.New(),
			Name:        entry.Name,
			Type:        entry.Type,
			Description: entry.Description,
			Duration:    duration,
			Order:       i + 1,
		})
	}

	return segments
}
