package model

// Skill is a read-only catalog entry, seeded once at first startup.
type Skill struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Type        string `db:"type"`
}
