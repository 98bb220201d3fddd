// Package sqlite implements the repository interfaces on SQLite via the pure
// Go modernc.org/sqlite driver, so no C toolchain is needed to build.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB pool. One DB is created at startup and shared; sql.DB is
// safe for concurrent use. Per-entity repositories are obtained from the
// accessors below and all share the same pool.
type DB struct {
	conn *sql.DB
}

// Users returns the user repository backed by this pool.
func (db *DB) Users() *UserDB { return &UserDB{conn: db.conn} }

// Comments returns the comment repository backed by this pool.
func (db *DB) Comments() *CommentDB { return &CommentDB{conn: db.conn} }

// Skills returns the skill repository backed by this pool.
func (db *DB) Skills() *SkillDB { return &SkillDB{conn: db.conn} }

// Sessions returns the session repository backed by this pool.
func (db *DB) Sessions() *SessionDB { return &SessionDB{conn: db.conn} }

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for an in-memory database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database exists per connection; without this, every new
	// pool connection would see an empty schema.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight; foreign keys are
	// off by default in SQLite and must be enabled per connection.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'regular'
		);

		CREATE TABLE IF NOT EXISTS comments (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			text    TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_comments_user_id ON comments(user_id);

		CREATE TABLE IF NOT EXISTS skills (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type        TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS sessions (
			token        TEXT PRIMARY KEY,
			is_logged_in INTEGER NOT NULL DEFAULT 0,
			user_id      INTEGER NOT NULL DEFAULT 0,
			username     TEXT NOT NULL DEFAULT '',
			is_admin     INTEGER NOT NULL DEFAULT 0,
			expires_at   DATETIME NOT NULL,
			created_at   DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}
