// Package prosody defines the inline markup vocabulary consumed by the
// downstream speech synthesizer: pause, breath and emphasis tokens embedded
// directly in narration text. Tokens have no escaping mechanism; this
// package builds them and scans for them but never validates nesting.
package prosody

import (
	"fmt"
	"regexp"
)

const (
	// Breathe marks a natural breathing point
	Breathe = "[BREATHE]"

	// EmphasisOpen and EmphasisClose wrap stressed text
	EmphasisOpen  = "[EMPHASIS]"
	EmphasisClose = "[/EMPHASIS]"
)

// Pause returns a pause token for the given number of milliseconds
func Pause(ms int) string {
	return fmt.Sprintf("[PAUSE=%d]", ms)
}

// Emphasis wraps text in emphasis tokens
func Emphasis(text string) string {
	return EmphasisOpen + text + EmphasisClose
}

var tokenPattern = regexp.MustCompile(`\[(?:PAUSE=\d+|BREATHE|/?EMPHASIS)\]`)

// Tokens returns every prosody token in the text, in order of appearance
func Tokens(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// Strip removes all prosody tokens from the text, leaving plain narration
func Strip(text string) string {
	return tokenPattern.ReplaceAllString(text, "")
}
