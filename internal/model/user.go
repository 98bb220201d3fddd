// Package model defines the data structures used throughout the application.
package model

// Role determines what a user is allowed to do. It is stored as its own
// column rather than derived from the username, so renaming an account never
// silently changes its privileges.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleRegular Role = "regular"
)

// User represents a registered account.
//
// PasswordHash holds the full bcrypt output (salt and cost included) and is
// never rendered or serialized.
type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Role         Role   `db:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
