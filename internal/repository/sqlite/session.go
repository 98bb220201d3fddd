package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ebostrom/personal-site/internal/apperror"
	"github.com/ebostrom/personal-site/internal/model"
	"github.com/ebostrom/personal-site/internal/repository"
)

// SessionDB implements repository.SessionRepository. Sessions live in their
// own table so they survive process restarts.
type SessionDB struct {
	conn *sql.DB
}

var _ repository.SessionRepository = (*SessionDB)(nil)

// Create inserts a session row.
func (db *SessionDB) Create(ctx context.Context, session *model.Session) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO sessions (token, is_logged_in, user_id, username, is_admin, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.Token,
		session.IsLoggedIn,
		session.UserID,
		session.Username,
		session.IsAdmin,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting session: %w", err)
	}
	return nil
}

// GetByToken retrieves a session. An expired session is deleted on read and
// reported as not found.
func (db *SessionDB) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	var s model.Session
	err := db.conn.QueryRowContext(ctx,
		`SELECT token, is_logged_in, user_id, username, is_admin, expires_at, created_at
		 FROM sessions WHERE token = ?`,
		token,
	).Scan(
		&s.Token,
		&s.IsLoggedIn,
		&s.UserID,
		&s.Username,
		&s.IsAdmin,
		&s.ExpiresAt,
		&s.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("session", token)
		}
		return nil, fmt.Errorf("sqlite: getting session: %w", err)
	}

	if time.Now().After(s.ExpiresAt) {
		// Lazy expiry: drop the row so the table doesn't accumulate garbage.
		_ = db.Delete(ctx, token)
		return nil, apperror.NotFound("session", token)
	}

	return &s, nil
}

// Update overwrites the mutable session fields. Last write wins; concurrent
// requests from the same browser need no stronger guarantee.
func (db *SessionDB) Update(ctx context.Context, session *model.Session) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE sessions SET is_logged_in = ?, user_id = ?, username = ?, is_admin = ?, expires_at = ?
		 WHERE token = ?`,
		session.IsLoggedIn,
		session.UserID,
		session.Username,
		session.IsAdmin,
		session.ExpiresAt,
		session.Token,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking updated sessions: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("session", session.Token)
	}
	return nil
}

// Delete removes a session row. Deleting an unknown token is not an error;
// logout must be idempotent.
func (db *SessionDB) Delete(ctx context.Context, token string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("sqlite: deleting session: %w", err)
	}
	return nil
}

// DeleteExpired removes all sessions past their expiry and returns how many
// were dropped. Called once at startup.
func (db *SessionDB) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("sqlite: cleaning up expired sessions: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting cleaned sessions: %w", err)
	}
	return affected, nil
}
