package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/ebostrom/personal-site/internal/apperror"
	"github.com/ebostrom/personal-site/internal/model"
)

func TestCommentCreateAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db.Users(), "author")
	c := db.Comments()

	first := &model.Comment{UserID: author.ID, Text: "first comment"}
	second := &model.Comment{UserID: author.ID, Text: "second comment"}
	if err := c.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := c.Create(ctx, second); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.ID == 0 || second.ID == 0 {
		t.Fatal("Create() did not set comment IDs")
	}

	comments, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("len(comments) = %d, want 2", len(comments))
	}

	// Ascending comment id: insertion order.
	if comments[0].ID != first.ID || comments[1].ID != second.ID {
		t.Errorf("List() order = [%d %d], want [%d %d]",
			comments[0].ID, comments[1].ID, first.ID, second.ID)
	}
	if comments[0].AuthorUsername != "author" {
		t.Errorf("AuthorUsername = %q, want %q", comments[0].AuthorUsername, "author")
	}
}

func TestCommentList_EmptyBoard(t *testing.T) {
	db := newTestDB(t)

	comments, err := db.Comments().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("len(comments) = %d, want 0", len(comments))
	}
}

func TestCommentCreate_UnknownUserRejected(t *testing.T) {
	db := newTestDB(t)

	// foreign_keys=ON makes the declared FK actually enforced.
	err := db.Comments().Create(context.Background(), &model.Comment{UserID: 4242, Text: "orphan"})
	if err == nil {
		t.Fatal("Create() should fail for a user id that doesn't exist")
	}
}

func TestCommentUpdateText(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db.Users(), "author")
	c := db.Comments()

	comment := &model.Comment{UserID: author.ID, Text: "original"}
	if err := c.Create(ctx, comment); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := c.UpdateText(ctx, comment.ID, "edited"); err != nil {
		t.Fatalf("UpdateText() error = %v", err)
	}

	found, err := c.GetByID(ctx, comment.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Text != "edited" {
		t.Errorf("Text = %q, want %q", found.Text, "edited")
	}
	// Only the text changes; id and owner are untouched.
	if found.ID != comment.ID || found.UserID != author.ID {
		t.Errorf("UpdateText() changed id/owner: got (%d,%d), want (%d,%d)",
			found.ID, found.UserID, comment.ID, author.ID)
	}
}

func TestCommentUpdateText_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Comments().UpdateText(context.Background(), 777, "whatever")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateText() error = %v, want ErrNotFound", err)
	}
}

func TestCommentDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db.Users(), "author")
	c := db.Comments()

	comment := &model.Comment{UserID: author.ID, Text: "to be removed"}
	if err := c.Create(ctx, comment); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := c.Delete(ctx, comment.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := c.GetByID(ctx, comment.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestCommentDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Comments().Delete(context.Background(), 777)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
