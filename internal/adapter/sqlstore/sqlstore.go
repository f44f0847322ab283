// Package sqlstore implements the domain repositories over a relational
// database. The same store serves PostgreSQL in production and SQLite for
// local development; every query sticks to syntax both engines accept.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql     *sql.DB
	dialect string
}

// Open connects to the database named by url, pings, and runs migrations.
// URLs with a "sqlite:" prefix open a SQLite file; everything else is
// treated as a PostgreSQL connection string.
func Open(url string) (*DB, error) {
	dialect := "postgres"
	driver := "postgres"
	dsn := url
	if path, ok := strings.CutPrefix(url, "sqlite:"); ok {
		dialect = "sqlite"
		driver = "sqlite"
		dsn = path
	}

	s, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if dialect == "sqlite" {
		// modernc's driver is in-process; a single connection avoids
		// SQLITE_BUSY on concurrent writes.
		s.SetMaxOpenConns(1)
	} else {
		s.SetMaxOpenConns(10)
		s.SetMaxIdleConns(5)
		s.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s, dialect: dialect}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	if d.dialect == "sqlite" {
		if _, err := d.sql.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			name TEXT,
			gender TEXT,
			date_of_birth TEXT,
			place_of_birth TEXT,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMP NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);",
		`CREATE TABLE IF NOT EXISTS journal_entries (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			prompt TEXT,
			ai_insights TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_journal_entries_user_id ON journal_entries(user_id, created_at);",
		`CREATE TABLE IF NOT EXISTS beliefs (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			statement TEXT NOT NULL,
			status TEXT NOT NULL CHECK(status IN ('active','shifting','integrated')),
			functional_belief TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_beliefs_user_id ON beliefs(user_id);",
		`CREATE TABLE IF NOT EXISTS belief_origins (
			id TEXT PRIMARY KEY,
			belief_id TEXT NOT NULL REFERENCES beliefs(id) ON DELETE CASCADE,
			question TEXT NOT NULL,
			response TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_belief_origins_belief_id ON belief_origins(belief_id);",
		`CREATE TABLE IF NOT EXISTS affirmations (
			id TEXT PRIMARY KEY,
			belief_id TEXT NOT NULL REFERENCES beliefs(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			is_ai_generated BOOLEAN NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_affirmations_belief_id ON affirmations(belief_id);",
		`CREATE TABLE IF NOT EXISTS stories (
			id TEXT PRIMARY KEY,
			belief_id TEXT NOT NULL REFERENCES beliefs(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT,
			content TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_stories_belief_id ON stories(belief_id);",
		`CREATE TABLE IF NOT EXISTS life_visions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT,
			content TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_life_visions_user_id ON life_visions(user_id);",
		`CREATE TABLE IF NOT EXISTS reflections (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			belief_id TEXT REFERENCES beliefs(id) ON DELETE CASCADE,
			journal_entry_id TEXT REFERENCES journal_entries(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_reflections_journal_entry_id ON reflections(journal_entry_id);",
		`CREATE TABLE IF NOT EXISTS journal_entry_beliefs (
			journal_entry_id TEXT NOT NULL REFERENCES journal_entries(id) ON DELETE CASCADE,
			belief_id TEXT NOT NULL REFERENCES beliefs(id) ON DELETE CASCADE,
			PRIMARY KEY (journal_entry_id, belief_id)
		);`,
		`CREATE TABLE IF NOT EXISTS ai_feedback (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			source_type TEXT NOT NULL,
			source_id TEXT NOT NULL,
			ai_output TEXT NOT NULL,
			feedback TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
