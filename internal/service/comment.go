package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ebostrom/personal-site/internal/apperror"
	"github.com/ebostrom/personal-site/internal/model"
	"github.com/ebostrom/personal-site/internal/repository"
)

// MaxCommentLength caps comment text. The board renders comments in full, so
// unbounded input is just an invitation to paste novels.
const MaxCommentLength = 2000

// CommentService owns the comment board rules:
//
//   - anyone can read
//   - posting requires a logged-in session; the author is always the session
//     identity, never a client-supplied id
//   - editing is allowed to the comment's author or an admin
//   - deleting is admin-only, regardless of authorship
type CommentService struct {
	comments repository.CommentRepository
	logger   *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(comments repository.CommentRepository, logger *slog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		logger:   logger,
	}
}

// List returns all comments with author usernames, oldest first.
func (s *CommentService) List(ctx context.Context) ([]model.Comment, error) {
	comments, err := s.comments.List(ctx)
	if err != nil {
		s.logger.Error("failed to list comments", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// Add posts a new comment as the session's user.
func (s *CommentService) Add(ctx context.Context, sess *model.Session, text string) (*model.Comment, error) {
	if sess == nil || !sess.IsLoggedIn {
		return nil, apperror.Forbidden("you must be logged in to post a comment")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("commentText", "comment text is required")
	}
	if len(text) > MaxCommentLength {
		return nil, apperror.ValidationFailed("commentText",
			fmt.Sprintf("comment must be %d characters or less", MaxCommentLength))
	}

	comment := &model.Comment{
		UserID: sess.UserID,
		Text:   text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		s.logger.Error("failed to add comment",
			slog.Int64("userID", sess.UserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("adding comment: %w", err)
	}

	s.logger.Info("comment added",
		slog.Int64("commentID", comment.ID),
		slog.String("author", sess.Username),
	)

	return comment, nil
}

// Edit replaces a comment's text. Only the author or an admin may edit.
func (s *CommentService) Edit(ctx context.Context, sess *model.Session, id int64, newText string) error {
	if sess == nil || !sess.IsLoggedIn {
		return apperror.Forbidden("you must be logged in to edit a comment")
	}

	newText = strings.TrimSpace(newText)
	if newText == "" {
		return apperror.ValidationFailed("editedCommentText", "comment text is required")
	}
	if len(newText) > MaxCommentLength {
		return apperror.ValidationFailed("editedCommentText",
			fmt.Sprintf("comment must be %d characters or less", MaxCommentLength))
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.UserID != sess.UserID && !sess.IsAdmin {
		return apperror.Forbidden("only the author or an admin can edit this comment")
	}

	if err := s.comments.UpdateText(ctx, id, newText); err != nil {
		s.logger.Error("failed to edit comment",
			slog.Int64("commentID", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("editing comment: %w", err)
	}

	s.logger.Info("comment edited",
		slog.Int64("commentID", id),
		slog.String("by", sess.Username),
	)
	return nil
}

// Delete removes a comment. Admin only; authorship doesn't matter.
func (s *CommentService) Delete(ctx context.Context, sess *model.Session, id int64) error {
	if sess == nil || !sess.IsAdmin {
		return apperror.Forbidden("admin privileges required to delete a comment")
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete comment",
			slog.Int64("commentID", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting comment: %w", err)
	}

	s.logger.Info("comment deleted",
		slog.Int64("commentID", id),
		slog.String("by", sess.Username),
	)
	return nil
}
