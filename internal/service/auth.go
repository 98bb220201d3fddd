// Package service contains the business logic layer: validation, permission
// gating, and orchestration between repositories. Services know nothing about
// HTTP; handlers translate their errors to status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ebostrom/personal-site/internal/apperror"
	"github.com/ebostrom/personal-site/internal/auth"
	"github.com/ebostrom/personal-site/internal/model"
	"github.com/ebostrom/personal-site/internal/repository"
)

// AuthService verifies login attempts against the credential store.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with its dependencies injected.
func NewAuthService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Login verifies a username/password pair.
//
// An unknown username returns ErrNotFound and a wrong password returns
// ErrInvalidCredentials — two distinct outcomes, matching the site's login
// page behavior (see DESIGN.md on the account-existence disclosure).
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Info("login rejected",
			slog.String("username", username),
		)
		return nil, err
	}

	s.logger.Info("login succeeded",
		slog.String("username", user.Username),
		slog.Bool("admin", user.IsAdmin()),
	)

	return user, nil
}

// GetUserByID returns the user for the given id.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching user %d: %w", id, err)
	}
	return user, nil
}
