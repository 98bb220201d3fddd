// Package session manages durable browser sessions.
//
// Each browser holds one opaque uuid token in a cookie; the matching row in
// the sessions table carries the login state, so sessions survive a process
// restart and logout genuinely invalidates the server-side state. A session
// row is created lazily on the first request from a new browser.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ebostrom/personal-site/internal/model"
	"github.com/ebostrom/personal-site/internal/repository"
)

type contextKey struct{}

// Manager attaches a session to every request and exposes login/logout
// transitions on it.
type Manager struct {
	store      repository.SessionRepository
	cookieName string
	ttl        time.Duration
	secure     bool
	logger     *slog.Logger
}

// Config holds the session settings taken from the application config.
type Config struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// NewManager creates a Manager backed by the given store.
func NewManager(store repository.SessionRepository, cfg Config, logger *slog.Logger) *Manager {
	return &Manager{
		store:      store,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
		logger:     logger,
	}
}

// Middleware loads the request's session (creating an anonymous one if the
// browser presents no valid token) and stores it in the request context.
//
// A store failure here does not fail the request: the handler still runs,
// just with no session attached, and page rendering degrades to logged-out.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.load(w, r)
		if sess != nil {
			r = r.WithContext(context.WithValue(r.Context(), contextKey{}, sess))
		}
		next.ServeHTTP(w, r)
	})
}

// FromContext returns the session attached by Middleware, or nil when the
// middleware didn't run or the store was unavailable.
func FromContext(ctx context.Context) *model.Session {
	sess, _ := ctx.Value(contextKey{}).(*model.Session)
	return sess
}

// Login writes the user's identity snapshot into the session. The snapshot
// is copied at login time and not kept in sync with later user changes.
func (m *Manager) Login(ctx context.Context, sess *model.Session, user *model.User) error {
	sess.IsLoggedIn = true
	sess.UserID = user.ID
	sess.Username = user.Username
	sess.IsAdmin = user.IsAdmin()
	sess.ExpiresAt = time.Now().Add(m.ttl)
	return m.store.Update(ctx, sess)
}

// Logout destroys the server-side session and expires the cookie. The next
// request from this browser starts a fresh anonymous session.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) {
	sess := FromContext(r.Context())
	if sess != nil {
		if err := m.store.Delete(r.Context(), sess.Token); err != nil {
			m.logger.Error("failed to delete session", slog.String("error", err.Error()))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CleanupExpired drops expired session rows. Called once at startup.
func (m *Manager) CleanupExpired(ctx context.Context) {
	n, err := m.store.DeleteExpired(ctx)
	if err != nil {
		m.logger.Warn("failed to clean up expired sessions", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		m.logger.Info("cleaned up expired sessions", slog.Int64("count", n))
	}
}

// load resolves the request's session, creating and persisting an anonymous
// one when the cookie is absent, unknown, or expired.
func (m *Manager) load(w http.ResponseWriter, r *http.Request) *model.Session {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		sess, err := m.store.GetByToken(r.Context(), cookie.Value)
		if err == nil {
			return sess
		}
		// Unknown or expired token: fall through and issue a fresh session.
	}

	now := time.Now()
	sess := &model.Session{
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}
	if err := m.store.Create(r.Context(), sess); err != nil {
		m.logger.Error("failed to create session", slog.String("error", err.Error()))
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return sess
}
