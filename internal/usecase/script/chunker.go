package script

import (
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
)

// DefaultTargetWords is the chunk size bound used when the caller does not
// supply one
const DefaultTargetWords = 50

// SplitSentences splits narration text on sentence boundaries: after any
// '.', '!' or '?' followed by whitespace. Fragments are trimmed and empty
// ones discarded. Prosody tokens are treated as ordinary words.
func SplitSentences(content string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(content)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				sentence := strings.TrimSpace(current.String())
				if sentence != "" {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	if tail := strings.TrimSpace(current.String()); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}

// ChunkContent greedily packs sentences into word-bounded chunks. A sentence
// is never split: if adding it would push a non-empty chunk past targetWords,
// the chunk is flushed first. A single sentence longer than targetWords
// becomes its own oversized chunk.
func ChunkContent(content string, targetWords int) []string {
	if targetWords <= 0 {
		targetWords = DefaultTargetWords
	}

	sentences := SplitSentences(content)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	runningWords := 0

	for _, sentence := range sentences {
		words := len(strings.Fields(sentence))
		if runningWords+words > targetWords && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			runningWords = 0
		}
		current = append(current, sentence)
		runningWords += words
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// Chunk splits one script segment into size-bounded script segments. The
// result always has length >= 1: when the whole content fits in a single
// chunk the original segment is returned unchanged and the caller must not
// delete or reinsert anything.
//
// Chunk timings are proportional to character length, not word count, and
// each is rounded independently. The chunk texts exclude the joining spaces
// between sentences, so the timings sum to slightly less than the original:
// the deficit is about Timing*(chunks-1)/len(Content) plus at most half a
// second of rounding per chunk. It is accepted, never redistributed.
func Chunk(segment *entities.ScriptSegment, targetWords int) []*entities.ScriptSegment {
	texts := ChunkContent(segment.Content, targetWords)
	if len(texts) <= 1 {
		return []*entities.ScriptSegment{segment}
	}

	key := segment.Key()
	totalLen := len(segment.Content)

	chunks := make([]*entities.ScriptSegment, 0, len(texts))
	for i, text := range texts {
		timing := 0
		if totalLen > 0 {
			timing = int(math.Round(float64(segment.Timing) * float64(len(text)) / float64(totalLen)))
		}
		chunks = append(chunks, &entities.ScriptSegment{
			ID:              uuid.New(),
			EventID:         segment.EventID,
			LayoutSegmentID: segment.LayoutSegmentID,
			SegmentType:     segment.SegmentType,
			Content:         text,
			Status:          segment.Status,
			Timing:          timing,
			Order:           key.ChunkKey(i + 1).Position(),
		})
	}

	return chunks
}
