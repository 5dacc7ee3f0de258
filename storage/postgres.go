package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ewintr.nl/yt2blog/session"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type Postgres struct {
	db  *sql.DB
	ttl time.Duration
}

func NewPostgres(db *sql.DB, ttl time.Duration) (*Postgres, error) {
	p := &Postgres{db: db, ttl: ttl}
	if err := p.migrate(pgMigration); err != nil {
		return &Postgres{}, err
	}

	return p, nil
}

func (p *Postgres) Find(ctx context.Context, id uuid.UUID) (*session.State, error) {
	var (
		data      []byte
		updatedAt time.Time
	)
	err := p.db.QueryRowContext(ctx, `SELECT state, updated_at FROM session WHERE id = $1`, id).Scan(&data, &updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}

	state := &session.State{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("could not decode session %s: %w", id, err)
	}
	state.ID = id
	state.UpdatedAt = updatedAt
	if state.Expired(p.ttl, time.Now()) {
		if err := p.Delete(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}

	return state, nil
}

func (p *Postgres) Save(ctx context.Context, state *session.State) error {
	state.UpdatedAt = time.Now()
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not encode session %s: %w", state.ID, err)
	}

	query := `INSERT INTO session (id, state, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (id)
DO UPDATE SET
  state = EXCLUDED.state,
  updated_at = EXCLUDED.updated_at`
	if _, err := p.db.ExecContext(ctx, query, state.ID, data, state.UpdatedAt); err != nil {
		return err
	}

	// sweep
	if p.ttl > 0 {
		if _, err := p.db.ExecContext(ctx, `DELETE FROM session WHERE updated_at < $1`, expiryCutoff(p.ttl, state.UpdatedAt)); err != nil {
			return err
		}
	}

	return nil
}

// expiryCutoff is the moment before which a session counts as expired.
func expiryCutoff(ttl time.Duration, now time.Time) time.Time {
	return now.Add(-ttl)
}

func (p *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM session WHERE id = $1`, id); err != nil {
		return err
	}

	return nil
}

func (p *Postgres) migrate(wanted []string) error {
	query := `CREATE TABLE IF NOT EXISTS migration
("id" SERIAL PRIMARY KEY, "query" TEXT)`
	_, err := p.db.Exec(query)
	if err != nil {
		return err
	}

	// find existing
	rows, err := p.db.Query(`SELECT query FROM migration ORDER BY id`)
	if err != nil {
		return err
	}

	existing := []string{}
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			return err
		}
		existing = append(existing, query)
	}
	rows.Close()

	// compare
	missing, err := compareMigrations(wanted, existing)
	if err != nil {
		return err
	}

	// execute missing
	for _, query := range missing {
		if _, err := p.db.Exec(query); err != nil {
			return err
		}

		// register
		if _, err := p.db.Exec(`
INSERT INTO migration
(query) VALUES ($1)
`, query); err != nil {
			return err
		}
	}

	return nil
}

func compareMigrations(wanted, existing []string) ([]string, error) {
	needed := []string{}
	if len(wanted) < len(existing) {
		return []string{}, fmt.Errorf("not enough migrations")
	}

	for i, want := range wanted {
		switch {
		case i >= len(existing):
			needed = append(needed, want)
		case want == existing[i]:
			// do nothing
		case want != existing[i]:
			return []string{}, fmt.Errorf("incompatible migration: %v", want)
		}
	}

	return needed, nil
}
