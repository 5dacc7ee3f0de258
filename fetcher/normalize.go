package fetcher

import (
	"regexp"
	"strings"

	"ewintr.nl/yt2blog/model"
)

// Only these annotations are dropped, other bracketed text like speaker
// names stays.
var annotationPattern = regexp.MustCompile(`(?i)\[(music|applause|laughter|inaudible|background noise)\]`)

// Normalize merges the segments, in source order, into one clean text.
func Normalize(segments []model.TranscriptSegment) string {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}

	return NormalizeText(strings.Join(texts, " "))
}

// NormalizeText collapses whitespace and removes non-speech annotations. It
// repeats until the text is stable, so a second call never changes the result.
func NormalizeText(text string) string {
	for {
		cleaned := collapseSpace(annotationPattern.ReplaceAllString(collapseSpace(text), ""))
		if cleaned == text {
			return cleaned
		}
		text = cleaned
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
