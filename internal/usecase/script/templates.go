package script

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
	"github.com/eventscript-team/eventscript/pkg/prosody"
)

// templateContext carries the parameters every narration template may use
type templateContext struct {
	Name       string
	Duration   int // minutes
	EventTitle string
	EventType  string
}

// templateFunc renders the narration text for one segment type
type templateFunc func(tc templateContext) string

// narrationTemplates is the registry of narration templates keyed by layout
// segment type. Content generation is a pure lookup, not branching logic;
// adding a segment type means adding an entry here.
var narrationTemplates = map[string]templateFunc{
	"introduction": func(tc templateContext) string {
		return fmt.Sprintf(
			"Hello everyone, and a very warm welcome to %s. %s %s It is wonderful to see so many of you joining us today. %s Over the next while we have a carefully planned program ahead, and we begin with %s. %s Please settle in, silence your devices, and let's get started.",
			prosody.Emphasis(tc.EventTitle), prosody.Pause(600), prosody.Breathe,
			prosody.Pause(400), tc.Name, prosody.Pause(500),
		)
	},
	"keynote": func(tc templateContext) string {
		return fmt.Sprintf(
			"And now, the moment many of you have been waiting for. %s It is my great pleasure to introduce our keynote, %s. %s For the next %d minutes, we will hear a perspective that goes to the heart of what %s is all about. %s Please give our speaker your full attention.",
			prosody.Pause(700), prosody.Emphasis(tc.Name), prosody.Breathe,
			tc.Duration, tc.EventTitle, prosody.Pause(500),
		)
	},
	"panel": func(tc templateContext) string {
		return fmt.Sprintf(
			"Next up is %s. %s We have brought together a group of voices with very different experiences, and for the next %d minutes they will challenge each other, and perhaps challenge you as well. %s %s Let's welcome our panelists.",
			prosody.Emphasis(tc.Name), prosody.Pause(500), tc.Duration,
			prosody.Breathe, prosody.Pause(400),
		)
	},
	"presentation": func(tc templateContext) string {
		return fmt.Sprintf(
			"We now move on to %s. %s This session runs for about %d minutes and dives deep into the material at the core of this %s. %s You may want to take notes, as there is a lot of practical detail coming up. %s",
			prosody.Emphasis(tc.Name), prosody.Pause(500), tc.Duration, tc.EventType,
			prosody.Breathe, prosody.Pause(400),
		)
	},
	"q_and_a": func(tc templateContext) string {
		return fmt.Sprintf(
			"It is time for %s. %s For the next %d minutes the floor belongs to you. %s Please keep your questions short so we can get through as many as possible. %s Who would like to begin?",
			prosody.Emphasis(tc.Name), prosody.Pause(500), tc.Duration,
			prosody.Breathe, prosody.Pause(400),
		)
	},
	"break": func(tc templateContext) string {
		return fmt.Sprintf(
			"We have now reached %s. %s Please take the next %d minutes to stretch your legs, grab a refreshment, and connect with the people around you. %s We will resume promptly, so keep an eye on the time. %s See you shortly.",
			tc.Name, prosody.Pause(500), tc.Duration, prosody.Breathe, prosody.Pause(600),
		)
	},
	"agenda": func(tc templateContext) string {
		return fmt.Sprintf(
			"Before we dive in, let's take %d minutes for %s. %s I will walk you through each part of today's program so you know exactly what to expect. %s %s",
			tc.Duration, tc.Name, prosody.Pause(400), prosody.Breathe, prosody.Pause(300),
		)
	},
	"conclusion": func(tc templateContext) string {
		return fmt.Sprintf(
			"And with that, we arrive at %s. %s Thank you all for being part of %s today. %s Your energy and your questions made this a genuine exchange rather than a one-way broadcast. %s Safe travels, and we hope to see you at the next one.",
			tc.Name, prosody.Pause(500), prosody.Emphasis(tc.EventTitle),
			prosody.Breathe, prosody.Pause(600),
		)
	},
	"demo": func(tc templateContext) string {
		return fmt.Sprintf(
			"Now for something you can see with your own eyes: %s. %s For the next %d minutes we will step away from the slides and show you the real thing, live. %s Fingers crossed the demo gods are kind to us today. %s",
			prosody.Emphasis(tc.Name), prosody.Pause(500), tc.Duration,
			prosody.Breathe, prosody.Pause(400),
		)
	},
	"action_items": func(tc templateContext) string {
		return fmt.Sprintf(
			"Let's spend %d minutes on %s. %s We will go through the decisions made today, who owns each follow-up, and when we expect to close them. %s Please note down anything with your name on it. %s",
			tc.Duration, tc.Name, prosody.Pause(400), prosody.Breathe, prosody.Pause(300),
		)
	},
	"main_content": func(tc templateContext) string {
		return fmt.Sprintf(
			"We now come to the heart of today's program: %s. %s This is the longest part of our %s, planned for %d minutes, so make yourselves comfortable. %s %s Let's begin.",
			prosody.Emphasis(tc.Name), prosody.Pause(500), tc.EventType, tc.Duration,
			prosody.Breathe, prosody.Pause(400),
		)
	},
	"workshop": func(tc templateContext) string {
		return fmt.Sprintf(
			"Time to roll up your sleeves for %s. %s For the next %d minutes you will be working hands-on, with our facilitators moving around the room to help. %s Don't hesitate to ask questions as you go. %s",
			prosody.Emphasis(tc.Name), prosody.Pause(500), tc.Duration,
			prosody.Breathe, prosody.Pause(400),
		)
	},
}

// defaultTemplate handles segment types without a dedicated entry
var defaultTemplate templateFunc = func(tc templateContext) string {
	return fmt.Sprintf(
		"Coming up next: %s. %s This part of %s is planned for %d minutes. %s Enjoy.",
		prosody.Emphasis(tc.Name), prosody.Pause(500), tc.EventTitle, tc.Duration,
		prosody.Pause(300),
	)
}

// compoundTypes are the segment types that receive an introduction and a
// transition satellite around the primary narration
var compoundTypes = map[string]bool{
	"keynote":      true,
	"panel":        true,
	"presentation": true,
	"workshop":     true,
}

// qaPair is one entry of the fixed question bank used for q_and_a segments
type qaPair struct {
	question string
	answer   string
}

// qaBank holds exactly three question/answer templates keyed by position.
// There is no fourth template, so a Q&A segment always yields three pairs
// regardless of its allocated duration.
var qaBank = [3]qaPair{
	{
		question: "Our first question asks how the ideas presented today apply to smaller teams with limited resources.",
		answer:   "That's a great place to start. The core approach scales down well: begin with the single highest-impact change, measure it, and only then widen the scope.",
	},
	{
		question: "The next question is about timing: how long does it usually take before the results discussed here become visible?",
		answer:   "In most cases you will see the first measurable movement within a few weeks, though the full effect typically takes one to two quarters to materialize.",
	},
	{
		question: "And our final question: what is the single most common mistake people make when starting out?",
		answer:   "Without a doubt, trying to do everything at once. Pick one thing, finish it properly, and let that success fund the next step.",
	},
}

// satelliteTimingPct fixes each satellite's share of the parent duration
const (
	introTimingPct      = 0.10
	transitionTimingPct = 0.05
	qaPairTimingPct     = 0.20
)

// Expand turns one layout segment into its script segment drafts: exactly
// one primary segment, plus satellites for compound and Q&A types. The
// caller stamps the event reference before persisting.
func Expand(seg entities.LayoutSegment, eventTitle, eventType string) []*entities.ScriptSegment {
	tc := templateContext{
		Name:       seg.Name,
		Duration:   seg.Duration,
		EventTitle: eventTitle,
		EventType:  eventType,
	}

	render, ok := narrationTemplates[seg.Type]
	if !ok {
		render = defaultTemplate
	}

	primary := &entities.ScriptSegment{
		ID:              uuid.New(),
		LayoutSegmentID: seg.ID,
		SegmentType:     seg.Type,
		Content:         render(tc),
		Status:          entities.ScriptStatusDraft,
		Timing:          seg.Duration * 60,
		Order:           entities.PrimaryKey(seg.Order).Position(),
	}

	segments := []*entities.ScriptSegment{primary}

	switch {
	case compoundTypes[seg.Type]:
		segments = append(segments, expandCompound(seg, tc)...)
	case seg.Type == "q_and_a":
		segments = append(segments, expandQA(seg)...)
	}

	return segments
}

// expandCompound produces the introduction and transition satellites for a
// compound-type segment
func expandCompound(seg entities.LayoutSegment, tc templateContext) []*entities.ScriptSegment {
	intro := &entities.ScriptSegment{
		ID:              uuid.New(),
		LayoutSegmentID: seg.ID,
		SegmentType:     seg.Type + "_intro",
		Content: fmt.Sprintf(
			"Before we begin %s, a quick word of context. %s What you are about to hear was put together specifically for %s, and it sets the stage for everything that follows. %s",
			prosody.Emphasis(tc.Name), prosody.Pause(400), tc.EventTitle, prosody.Breathe,
		),
		Status: entities.ScriptStatusDraft,
		Timing: satelliteTiming(seg.Duration, introTimingPct),
		Order:  entities.SatelliteKey(seg.Order, 1).Position(),
	}

	transition := &entities.ScriptSegment{
		ID:              uuid.New(),
		LayoutSegmentID: seg.ID,
		SegmentType:     seg.Type + "_transition",
		Content: fmt.Sprintf(
			"That concludes %s. %s Please join me in thanking everyone involved. %s In a moment we will move on to the next part of the program.",
			tc.Name, prosody.Pause(500), prosody.Pause(600),
		),
		Status: entities.ScriptStatusDraft,
		Timing: satelliteTiming(seg.Duration, transitionTimingPct),
		Order:  entities.SatelliteKey(seg.Order, 2).Position(),
	}

	return []*entities.ScriptSegment{intro, transition}
}

// expandQA produces the three fixed question/answer satellites for a Q&A
// segment. The bank caps the output at three pairs no matter how long the
// segment is.
func expandQA(seg entities.LayoutSegment) []*entities.ScriptSegment {
	pairs := make([]*entities.ScriptSegment, 0, len(qaBank))
	for i, pair := range qaBank {
		pairs = append(pairs, &entities.ScriptSegment{
			ID:              uuid.New(),
			LayoutSegmentID: seg.ID,
			SegmentType:     "q_and_a_pair",
			Content: fmt.Sprintf(
				"%s %s %s %s",
				pair.question, prosody.Pause(800), prosody.Breathe, pair.answer,
			),
			Status: entities.ScriptStatusDraft,
			Timing: satelliteTiming(seg.Duration, qaPairTimingPct),
			Order:  entities.SatelliteKey(seg.Order, i+1).Position(),
		})
	}
	return pairs
}

// satelliteTiming converts a share of the parent duration into whole-minute
// seconds: the minute share is rounded first, then scaled to seconds
func satelliteTiming(durationMinutes int, pct float64) int {
	return int(math.Round(float64(durationMinutes)*pct)) * 60
}
