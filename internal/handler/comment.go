package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ebostrom/personal-site/internal/apperror"
	"github.com/ebostrom/personal-site/internal/service"
	"github.com/ebostrom/personal-site/internal/session"
)

// CommentHandler serves the comment board's write endpoints. All three
// redirect back to /about on success; permission failures surface as 403
// pages and store failures as 500.
type CommentHandler struct {
	comments *service.CommentService
	renderer *Renderer
	logger   *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments *service.CommentService, renderer *Renderer, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleSubmit posts a new comment as the logged-in user.
//
// HTTP: POST /submit-comment, form field commentText
//
// The legacy userID field is accepted but ignored: the author is always the
// session identity.
func (h *CommentHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, apperror.ValidationFailed("form", "could not read the comment form"))
		return
	}

	sess := session.FromContext(r.Context())
	if _, err := h.comments.Add(r.Context(), sess, r.PostFormValue("commentText")); err != nil {
		h.renderer.RenderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/about", http.StatusSeeOther)
}

// HandleDelete removes a comment. Admin only.
//
// HTTP: POST /delete-comment, form field commentID
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.commentID(w, r)
	if !ok {
		return
	}

	sess := session.FromContext(r.Context())
	if err := h.comments.Delete(r.Context(), sess, id); err != nil {
		h.renderer.RenderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/about", http.StatusSeeOther)
}

// HandleEdit replaces a comment's text. Author or admin only.
//
// HTTP: POST /edit-comment, form fields commentID/editedCommentText
func (h *CommentHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.commentID(w, r)
	if !ok {
		return
	}

	sess := session.FromContext(r.Context())
	if err := h.comments.Edit(r.Context(), sess, id, r.PostFormValue("editedCommentText")); err != nil {
		h.renderer.RenderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/about", http.StatusSeeOther)
}

// commentID parses the commentID form field, rendering a 400 on failure.
func (h *CommentHandler) commentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, apperror.ValidationFailed("form", "could not read the form"))
		return 0, false
	}

	id, err := strconv.ParseInt(r.PostFormValue("commentID"), 10, 64)
	if err != nil {
		h.renderer.RenderError(w, r, apperror.ValidationFailed("commentID", "commentID must be an integer"))
		return 0, false
	}
	return id, true
}
