package model

import "time"

// Session is the server-side state for one browser, referenced by the opaque
// token held in the session cookie. It lives in its own database table so
// sessions survive a process restart.
//
// The identity fields are a snapshot taken at login time. They are not kept
// in sync with later changes to the user row.
type Session struct {
	Token      string    `db:"token"`
	IsLoggedIn bool      `db:"is_logged_in"`
	UserID     int64     `db:"user_id"`
	Username   string    `db:"username"`
	IsAdmin    bool      `db:"is_admin"`
	ExpiresAt  time.Time `db:"expires_at"`
	CreatedAt  time.Time `db:"created_at"`
}
