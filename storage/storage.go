package storage

import (
	"context"
	"errors"

	"ewintr.nl/yt2blog/session"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// SessionRepository keeps session state between requests. Sessions that were
// not saved within the ttl of the repository are treated as not found.
type SessionRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*session.State, error)
	Save(ctx context.Context, state *session.State) error
	Delete(ctx context.Context, id uuid.UUID) error
}
