package fetcher

import (
	"strings"
	"testing"

	"ewintr.nl/yt2blog/model"
	"github.com/stretchr/testify/assert"
)

func segs(texts ...string) []model.TranscriptSegment {
	segments := make([]model.TranscriptSegment, 0, len(texts))
	for i, text := range texts {
		segments = append(segments, model.TranscriptSegment{Start: float64(i), Duration: 1, Text: text})
	}
	return segments
}

func TestNormalize(t *testing.T) {
	for _, tc := range []struct {
		name     string
		segments []model.TranscriptSegment
		exp      string
	}{
		{
			name: "empty",
			exp:  "",
		},
		{
			name:     "joins in source order",
			segments: segs("hello", "world"),
			exp:      "hello world",
		},
		{
			name:     "collapses whitespace",
			segments: segs("  hello\n\n", "\tbig   ", "world  "),
			exp:      "hello big world",
		},
		{
			name:     "removes annotations",
			segments: segs("[Music]", "welcome back [APPLAUSE] everyone", "[laughter] [Inaudible]", "[background noise]"),
			exp:      "welcome back everyone",
		},
		{
			name:     "annotation split over whitespace",
			segments: segs("[background\n  noise] so"),
			exp:      "so",
		},
		{
			name:     "keeps other brackets",
			segments: segs("[John] hi there", "[Speaker 2] [music] hello [sic]"),
			exp:      "[John] hi there [Speaker 2] hello [sic]",
		},
		{
			name:     "nested leftovers",
			segments: segs("a [mu[music]sic] b"),
			exp:      "a b",
		},
		{
			name:     "only noise",
			segments: segs("[Music]", "  ", "[Applause]"),
			exp:      "",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			act := Normalize(tc.segments)
			assert.Equal(t, tc.exp, act)
			assert.NotContains(t, act, "  ")
			assert.Equal(t, act, NormalizeText(act))
		})
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	for _, input := range []string{
		"plain text",
		" [MUSIC]  we are [Speaker] live  [applause]",
		"[[music]]",
		"[music[music]]",
		strings.Repeat("word [laughter] ", 20),
	} {
		once := NormalizeText(input)
		assert.Equal(t, once, NormalizeText(once), input)
		lower := strings.ToLower(once)
		for _, a := range []string{"[music]", "[applause]", "[laughter]", "[inaudible]", "[background noise]"} {
			assert.NotContains(t, lower, a)
		}
	}
}
