package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/ebostrom/personal-site/internal/apperror"
	"github.com/ebostrom/personal-site/internal/model"
)

// mockCommentRepo keeps comments in memory, ordered by id on List.
type mockCommentRepo struct {
	comments map[int64]*model.Comment
	nextID   int64
	failAll  error
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int64]*model.Comment)}
}

func (m *mockCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	if m.failAll != nil {
		return m.failAll
	}
	m.nextID++
	comment.ID = m.nextID
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *mockCommentRepo) GetByID(_ context.Context, id int64) (*model.Comment, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	comment, ok := m.comments[id]
	if !ok {
		return nil, apperror.NotFound("comment", strconv.FormatInt(id, 10))
	}
	result := *comment
	return &result, nil
}

func (m *mockCommentRepo) List(_ context.Context) ([]model.Comment, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	result := make([]model.Comment, 0, len(m.comments))
	for _, c := range m.comments {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCommentRepo) UpdateText(_ context.Context, id int64, text string) error {
	if m.failAll != nil {
		return m.failAll
	}
	comment, ok := m.comments[id]
	if !ok {
		return apperror.NotFound("comment", strconv.FormatInt(id, 10))
	}
	comment.Text = text
	return nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id int64) error {
	if m.failAll != nil {
		return m.failAll
	}
	if _, ok := m.comments[id]; !ok {
		return apperror.NotFound("comment", strconv.FormatInt(id, 10))
	}
	delete(m.comments, id)
	return nil
}

// Session fixtures. The service only looks at the snapshot fields.
func anonSession() *model.Session {
	return &model.Session{Token: "anon"}
}

func userSession(id int64, username string) *model.Session {
	return &model.Session{Token: "user", IsLoggedIn: true, UserID: id, Username: username}
}

func adminSession() *model.Session {
	return &model.Session{Token: "admin", IsLoggedIn: true, UserID: 1, Username: "admin", IsAdmin: true}
}

func newTestCommentService(t *testing.T) (*CommentService, *mockCommentRepo) {
	t.Helper()
	repo := newMockCommentRepo()
	return NewCommentService(repo, testLogger()), repo
}

func TestCommentAdd_UsesSessionIdentity(t *testing.T) {
	svc, repo := newTestCommentService(t)

	comment, err := svc.Add(context.Background(), userSession(42, "mira"), "hello board")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if comment.UserID != 42 {
		t.Errorf("UserID = %d, want the session's user id 42", comment.UserID)
	}
	if len(repo.comments) != 1 {
		t.Errorf("stored comments = %d, want 1", len(repo.comments))
	}
}

func TestCommentAdd_RequiresLogin(t *testing.T) {
	svc, repo := newTestCommentService(t)

	for _, sess := range []*model.Session{nil, anonSession()} {
		_, err := svc.Add(context.Background(), sess, "drive-by")
		if !errors.Is(err, apperror.ErrForbidden) {
			t.Errorf("Add() with session %v error = %v, want ErrForbidden", sess, err)
		}
	}
	if len(repo.comments) != 0 {
		t.Error("forbidden Add() must not store anything")
	}
}

func TestCommentAdd_ValidatesText(t *testing.T) {
	svc, _ := newTestCommentService(t)
	sess := userSession(1, "jerome")

	if _, err := svc.Add(context.Background(), sess, "   "); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Add(blank) error = %v, want ErrValidation", err)
	}
	long := strings.Repeat("x", MaxCommentLength+1)
	if _, err := svc.Add(context.Background(), sess, long); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Add(too long) error = %v, want ErrValidation", err)
	}
}

func TestCommentDelete_AdminOnly(t *testing.T) {
	svc, repo := newTestCommentService(t)
	author := userSession(7, "jerome")

	comment, err := svc.Add(context.Background(), author, "mine")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// The author cannot delete their own comment; delete is admin-only.
	before, _ := repo.List(context.Background())
	err = svc.Delete(context.Background(), author, comment.ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Delete() as author error = %v, want ErrForbidden", err)
	}
	after, _ := repo.List(context.Background())
	if len(before) != len(after) {
		t.Error("forbidden Delete() must leave the store unchanged")
	}

	// Admin can.
	if err := svc.Delete(context.Background(), adminSession(), comment.ID); err != nil {
		t.Fatalf("Delete() as admin error = %v", err)
	}
	remaining, _ := repo.List(context.Background())
	if len(remaining) != 0 {
		t.Errorf("comments after admin delete = %d, want 0", len(remaining))
	}
}

func TestCommentDelete_Unauthenticated(t *testing.T) {
	svc, _ := newTestCommentService(t)

	err := svc.Delete(context.Background(), nil, 1)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Delete() with nil session error = %v, want ErrForbidden", err)
	}
}

func TestCommentDelete_NotFound(t *testing.T) {
	svc, _ := newTestCommentService(t)

	err := svc.Delete(context.Background(), adminSession(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestCommentEdit_AuthorCanEdit(t *testing.T) {
	svc, repo := newTestCommentService(t)
	author := userSession(7, "jerome")

	comment, _ := svc.Add(context.Background(), author, "original")
	if err := svc.Edit(context.Background(), author, comment.ID, "edited"); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), comment.ID)
	if stored.Text != "edited" {
		t.Errorf("Text = %q, want %q", stored.Text, "edited")
	}
	if stored.UserID != 7 || stored.ID != comment.ID {
		t.Error("Edit() must only change the text field")
	}
}

func TestCommentEdit_AdminCanEditOthers(t *testing.T) {
	svc, repo := newTestCommentService(t)

	comment, _ := svc.Add(context.Background(), userSession(7, "jerome"), "original")
	if err := svc.Edit(context.Background(), adminSession(), comment.ID, "moderated"); err != nil {
		t.Fatalf("Edit() as admin error = %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), comment.ID)
	if stored.Text != "moderated" {
		t.Errorf("Text = %q, want %q", stored.Text, "moderated")
	}
}

func TestCommentEdit_StrangerForbidden(t *testing.T) {
	svc, repo := newTestCommentService(t)

	comment, _ := svc.Add(context.Background(), userSession(7, "jerome"), "original")

	err := svc.Edit(context.Background(), userSession(8, "mira"), comment.ID, "vandalized")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Edit() by non-author error = %v, want ErrForbidden", err)
	}

	stored, _ := repo.GetByID(context.Background(), comment.ID)
	if stored.Text != "original" {
		t.Error("forbidden Edit() must leave the text unchanged")
	}
}

func TestCommentEdit_RequiresLogin(t *testing.T) {
	svc, _ := newTestCommentService(t)

	err := svc.Edit(context.Background(), anonSession(), 1, "sneaky")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Edit() anonymous error = %v, want ErrForbidden", err)
	}
}

func TestCommentEdit_NotFound(t *testing.T) {
	svc, _ := newTestCommentService(t)

	err := svc.Edit(context.Background(), adminSession(), 999, "whatever")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Edit() error = %v, want ErrNotFound", err)
	}
}

func TestCommentList_OrderedByID(t *testing.T) {
	svc, _ := newTestCommentService(t)
	sess := userSession(1, "jerome")

	for _, text := range []string{"one", "two", "three"} {
		if _, err := svc.Add(context.Background(), sess, text); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	comments, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("len(comments) = %d, want 3", len(comments))
	}
	for i := 1; i < len(comments); i++ {
		if comments[i-1].ID >= comments[i].ID {
			t.Errorf("List() not in ascending id order: %d before %d", comments[i-1].ID, comments[i].ID)
		}
	}
}

func TestCommentList_StoreFailure(t *testing.T) {
	svc, repo := newTestCommentService(t)
	repo.failAll = errors.New("disk on fire")

	if _, err := svc.List(context.Background()); err == nil {
		t.Fatal("List() should propagate a store failure")
	}
}
