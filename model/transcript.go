package model

import "errors"

var ErrEmptyTranscript = errors.New("transcript text is empty")

type TranscriptTrack struct {
	LanguageCode  string
	Name          string
	AutoGenerated bool
	URL           string
}

type TranscriptSegment struct {
	Start    float64
	Duration float64
	Text     string
}

type Transcript struct {
	YoutubeID    YoutubeVideoID `json:"video_id"`
	LanguageCode string         `json:"language"`
	Text         string         `json:"text"`
}

func NewTranscript(id YoutubeVideoID, languageCode, text string) (*Transcript, error) {
	if text == "" {
		return nil, ErrEmptyTranscript
	}

	return &Transcript{
		YoutubeID:    id,
		LanguageCode: languageCode,
		Text:         text,
	}, nil
}

// Preview returns at most n characters of the text, with an ellipsis when cut.
func (t *Transcript) Preview(n int) string {
	runes := []rune(t.Text)
	if len(runes) <= n {
		return t.Text
	}
	return string(runes[:n]) + "..."
}
