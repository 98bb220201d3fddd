package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ebostrom/personal-site/internal/apperror"
	"github.com/ebostrom/personal-site/internal/service"
	"github.com/ebostrom/personal-site/internal/session"
)

// AuthHandler serves the login form and the login/logout endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	renderer *Renderer
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *session.Manager, renderer *Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleLoginForm renders the login page.
//
// HTTP: GET /login
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "login.html", PageData{Title: "Login"})
}

// HandleLogin verifies the submitted credentials and populates the session.
//
// HTTP: POST /login, form fields username/password
//
// Status codes mirror the login outcomes: 200 on success, 404 for an unknown
// username, 401 for a wrong password, 500 on a store failure. The 404/401
// split discloses whether an account exists; kept deliberately, see DESIGN.md.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, r, http.StatusBadRequest, "login.html", PageData{
			Title: "Login",
			Error: "Could not read the login form.",
		})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		h.renderLoginError(w, r, err)
		return
	}

	sess := session.FromContext(r.Context())
	if sess == nil {
		h.renderer.RenderError(w, r, errors.New("no session attached to request"))
		return
	}
	if err := h.sessions.Login(r.Context(), sess, user); err != nil {
		h.renderer.RenderError(w, r, err)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "login.html", PageData{
		Title:   "Login",
		Session: sess,
		Message: "Logged in as " + user.Username + ".",
	})
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		h.renderer.Render(w, r, http.StatusNotFound, "login.html", PageData{
			Title: "Login",
			Error: "No account with that username.",
		})
	case errors.Is(err, apperror.ErrInvalidCredentials):
		h.renderer.Render(w, r, http.StatusUnauthorized, "login.html", PageData{
			Title: "Login",
			Error: "Wrong password.",
		})
	case errors.Is(err, apperror.ErrValidation):
		h.renderer.Render(w, r, http.StatusBadRequest, "login.html", PageData{
			Title: "Login",
			Error: "Username and password are required.",
		})
	default:
		h.renderer.RenderError(w, r, err)
	}
}

// HandleLogout destroys the session and sends the browser home.
//
// HTTP: POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
