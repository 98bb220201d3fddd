package model

// Comment is a message on the board, owned by the user who posted it.
type Comment struct {
	ID     int64  `db:"id"`
	UserID int64  `db:"user_id"`
	Text   string `db:"text"`

	// AuthorUsername is populated by listing queries that join against the
	// users table. It is not a column on the comments table itself.
	AuthorUsername string `db:"username"`
}
