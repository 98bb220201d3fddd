// Package repository declares the persistence interfaces implemented by the
// sqlite subpackage. Services depend on these interfaces, never on the
// concrete database, so tests can substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/ebostrom/personal-site/internal/model"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// CommentRepository persists board comments. List returns comments joined
// with the author's username, ordered by ascending comment id.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	List(ctx context.Context) ([]model.Comment, error)
	UpdateText(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
}

// SkillRepository reads the static skill catalog.
type SkillRepository interface {
	List(ctx context.Context) ([]model.Skill, error)
}

// SessionRepository persists browser sessions keyed by opaque token.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByToken(ctx context.Context, token string) (*model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
