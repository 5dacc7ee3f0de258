package session

import (
	"time"

	"ewintr.nl/yt2blog/model"
	"github.com/google/uuid"
)

type Stage string

const (
	StageEmpty           Stage = "empty"
	StageTranscriptReady Stage = "transcript_ready"
	StageBlogReady       Stage = "blog_ready"
)

// State is everything a single user has produced so far. It is owned by the
// caller and only changed by Flow on success.
type State struct {
	ID         uuid.UUID            `json:"id"`
	Transcript *model.Transcript    `json:"transcript,omitempty"`
	Metadata   *model.VideoMetadata `json:"metadata,omitempty"`
	Document   *model.BlogDocument  `json:"document,omitempty"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

func NewState() *State {
	return &State{
		ID:        uuid.New(),
		UpdatedAt: time.Now(),
	}
}

func (s *State) Stage() Stage {
	switch {
	case s.Document != nil:
		return StageBlogReady
	case s.Transcript != nil:
		return StageTranscriptReady
	default:
		return StageEmpty
	}
}

func (s *State) Expired(ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(s.UpdatedAt) > ttl
}
