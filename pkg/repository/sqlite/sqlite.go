package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Schema is the full DDL for the stats database. Idempotent; also executed
// by the migrate command.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id    INTEGER PRIMARY KEY,
	first_seen TEXT NOT NULL,
	last_seen  TEXT NOT NULL,
	username   TEXT,
	full_name  TEXT
);

CREATE TABLE IF NOT EXISTS events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	ts         TEXT NOT NULL,
	user_id    INTEGER NOT NULL,
	chat_id    INTEGER,
	event_type TEXT NOT NULL,
	dept       TEXT,
	query      TEXT,
	extra      TEXT
);

CREATE INDEX IF NOT EXISTS idx_events_ts   ON events(ts);
CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type);
CREATE INDEX IF NOT EXISTS idx_events_dept ON events(dept);
CREATE INDEX IF NOT EXISTS idx_events_user ON events(user_id);
`

// Repository is the SQLite-backed implementation of interfaces.Repository.
// Concurrency control is the store's own single-writer WAL locking; every
// append and upsert is its own atomic statement.
type Repository struct {
	db     *sql.DB
	users  *userRepository
	events *eventRepository
}

// New opens (creating if needed) the stats database at path and applies
// the schema.
func New(ctx context.Context, path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}
	// modernc.org/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, goerr.Wrap(err, "failed to set pragma", goerr.V("pragma", pragma))
		}
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{
		db:     db,
		users:  &userRepository{db: db},
		events: &eventRepository{db: db},
	}, nil
}

// Migrate applies the schema to an open database
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return goerr.Wrap(err, "failed to apply schema")
	}
	return nil
}

// Users returns the user repository
func (x *Repository) Users() interfaces.UserRepository {
	return x.users
}

// Events returns the event repository
func (x *Repository) Events() interfaces.EventRepository {
	return x.events
}

// Close closes the underlying database
func (x *Repository) Close() error {
	if err := x.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close sqlite database")
	}
	return nil
}

// Timestamps are stored as RFC3339 UTC strings so that lexicographic SQL
// comparison and chronological order agree.
func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
