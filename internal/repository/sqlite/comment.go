package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ebostrom/personal-site/internal/apperror"
	"github.com/ebostrom/personal-site/internal/model"
	"github.com/ebostrom/personal-site/internal/repository"
)

// CommentDB implements repository.CommentRepository.
type CommentDB struct {
	conn *sql.DB
}

var _ repository.CommentRepository = (*CommentDB)(nil)

// Create inserts a comment and fills in the generated ID.
func (db *CommentDB) Create(ctx context.Context, comment *model.Comment) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO comments (user_id, text) VALUES (?, ?)`,
		comment.UserID, comment.Text,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting comment (userID=%d): %w", comment.UserID, err)
	}

	comment.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading comment id: %w", err)
	}
	return nil
}

// GetByID retrieves a single comment without the author join.
func (db *CommentDB) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var c model.Comment
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, text FROM comments WHERE id = ?`, id,
	).Scan(&c.ID, &c.UserID, &c.Text)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("comment", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting comment %d: %w", id, err)
	}
	return &c, nil
}

// List returns all comments joined with the author's username, oldest first
// (ascending comment id).
func (db *CommentDB) List(ctx context.Context) ([]model.Comment, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.text, u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.Text, &c.AuthorUsername); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}

// UpdateText replaces a comment's text, leaving id and owner untouched.
func (db *CommentDB) UpdateText(ctx context.Context, id int64, text string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE comments SET text = ? WHERE id = ?`, text, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating comment %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking updated rows: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("comment", strconv.FormatInt(id, 10))
	}
	return nil
}

// Delete removes a comment by id.
func (db *CommentDB) Delete(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comment %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking deleted rows: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("comment", strconv.FormatInt(id, 10))
	}
	return nil
}
