package prosody

import "testing"

func TestPause(t *testing.T) {
	if got := Pause(500); got != "[PAUSE=500]" {
		t.Errorf("Pause(500) = %q", got)
	}
}

func TestEmphasis(t *testing.T) {
	if got := Emphasis("keynote"); got != "[EMPHASIS]keynote[/EMPHASIS]" {
		t.Errorf("Emphasis = %q", got)
	}
}

func TestTokens(t *testing.T) {
	text := "Welcome. [PAUSE=600] [BREATHE] And now [EMPHASIS]the keynote[/EMPHASIS]."

	tokens := Tokens(text)

	expected := []string{"[PAUSE=600]", "[BREATHE]", "[EMPHASIS]", "[/EMPHASIS]"}
	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(expected), tokens)
	}
	for i := range expected {
		if tokens[i] != expected[i] {
			t.Errorf("token %d = %q, want %q", i, tokens[i], expected[i])
		}
	}
}

func TestStrip(t *testing.T) {
	text := "Hello [PAUSE=300]there [BREATHE]everyone"

	if got := Strip(text); got != "Hello there everyone" {
		t.Errorf("Strip = %q", got)
	}
}

func TestStripLeavesUnknownBracketsAlone(t *testing.T) {
	text := "Agenda item [3] stays."

	if got := Strip(text); got != text {
		t.Errorf("Strip modified non-prosody text: %q", got)
	}
}
