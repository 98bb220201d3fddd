package handler

import (
	"log/slog"
	"net/http"

	"github.com/ebostrom/personal-site/internal/service"
)

// PageHandler serves the rendered site pages.
type PageHandler struct {
	comments *service.CommentService
	skills   *service.SkillService
	renderer *Renderer
	logger   *slog.Logger
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(comments *service.CommentService, skills *service.SkillService, renderer *Renderer, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		comments: comments,
		skills:   skills,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleHome renders the landing page with the session's identity flags.
//
// HTTP: GET /
func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "home.html", PageData{Title: "Home"})
}

// HandleAbout renders the about page: the comment board joined with author
// usernames plus the full skill catalog. A store failure renders the same
// page with an error banner and a 500.
//
// HTTP: GET /about
func (h *PageHandler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	data := PageData{Title: "About"}

	comments, err := h.comments.List(r.Context())
	if err != nil {
		data.Error = "Could not load the comment board."
		h.renderer.Render(w, r, http.StatusInternalServerError, "about.html", data)
		return
	}

	skills, err := h.skills.List(r.Context())
	if err != nil {
		data.Error = "Could not load the skill catalog."
		h.renderer.Render(w, r, http.StatusInternalServerError, "about.html", data)
		return
	}

	data.Comments = comments
	data.Skills = skills
	h.renderer.Render(w, r, http.StatusOK, "about.html", data)
}

// HandleContact renders the static contact page.
//
// HTTP: GET /contact
func (h *PageHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "contact.html", PageData{Title: "Contact"})
}

// skillPages is the static copy for the three subject pages.
var skillPages = map[string]SkillPage{
	"go": {
		Subject: "Go",
		Blurb:   "Servers, CLIs, and the glue between them. This whole site is a Go binary.",
	},
	"javascript": {
		Subject: "JavaScript",
		Blurb:   "Enough frontend scripting to make pages interactive without a framework.",
	},
	"sql": {
		Subject: "SQL",
		Blurb:   "Schemas, joins, and keeping the data honest. SQLite in small projects, Postgres in bigger ones.",
	},
}

// HandleSkillPage renders one of the static subject pages. The subject comes
// from the route pattern, e.g. /go-skill.
func (h *PageHandler) HandleSkillPage(subject string) http.HandlerFunc {
	page := skillPages[subject]
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.Render(w, r, http.StatusOK, "skill.html", PageData{
			Title: page.Subject,
			Skill: &page,
		})
	}
}

// HandleNotFound renders the 404 page for every unmatched route.
func (h *PageHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderNotFound(w, r)
}
