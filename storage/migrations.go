package storage

var pgMigration = []string{
	`CREATE TABLE session (
id uuid PRIMARY KEY,
state JSONB NOT NULL,
updated_at TIMESTAMP WITH TIME ZONE NOT NULL
)`,
	`CREATE INDEX session_updated_at_idx ON session (updated_at)`,
}
