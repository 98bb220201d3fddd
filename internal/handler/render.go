// Package handler contains the HTTP layer: request parsing, session checks,
// template rendering, and the mapping from service errors to status codes.
package handler

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/ebostrom/personal-site/internal/apperror"
	"github.com/ebostrom/personal-site/internal/model"
	"github.com/ebostrom/personal-site/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is the view model handed to every template. Fields irrelevant to
// a given page are simply left zero.
type PageData struct {
	Title    string
	Session  *model.Session
	Comments []model.Comment
	Skills   []model.Skill
	Skill    *SkillPage
	Error    string
	Message  string
}

// SkillPage is the static copy for one subject page.
type SkillPage struct {
	Subject string
	Blurb   string
}

// Renderer executes the embedded HTML templates. Templates are parsed once
// at construction; every page pulls in the shared header and footer partials.
type Renderer struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewRenderer parses the embedded templates.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{
		templates: tmpl,
		logger:    logger,
	}, nil
}

// Render writes the named page with the given status code. The session is
// pulled from the request context so every page can show identity flags.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data PageData) {
	if data.Session == nil {
		data.Session = session.FromContext(r.Context())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rd.templates.ExecuteTemplate(w, page, data); err != nil {
		// Headers are already sent; all we can do is log.
		rd.logger.Error("failed to render template",
			slog.String("template", page),
			slog.String("error", err.Error()),
		)
	}
}

// RenderNotFound writes the 404 page.
func (rd *Renderer) RenderNotFound(w http.ResponseWriter, r *http.Request) {
	rd.Render(w, r, http.StatusNotFound, "404.html", PageData{Title: "Not Found"})
}

// RenderError maps a service error to a status code and renders the error
// page. Store failures become a generic 500; the underlying error is logged
// server-side only.
func (rd *Renderer) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong. Please try again later."

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrInvalidCredentials):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		}
	}

	if status == http.StatusInternalServerError {
		rd.logger.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	rd.Render(w, r, status, "error.html", PageData{Title: "Error", Error: message})
}
