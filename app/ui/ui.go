// Package ui serves the browser pages that host the post details view.
package ui

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"commentboard/app/client"
	"commentboard/app/components"
	"commentboard/app/middleware"
	"commentboard/app/models"
	"commentboard/app/session"

	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{
	"index": template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/index.html")),
	"post":  template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/post.html")),
	"error": template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/error.html")),
}

// PostsAPI is the part of the REST client the pages need.
type PostsAPI interface {
	GetPosts(ctx context.Context, page int) ([]*models.Post, error)
	GetPost(ctx context.Context, id int) (*models.Post, error)
}

// Handler serves the UI pages.
type Handler struct {
	api        PostsAPI
	sessions   *session.Manager
	renderWait time.Duration
	logger     *slog.Logger
}

// NewHandler creates the page handler. renderWait bounds how long a page
// waits for the comments of a newly selected post before rendering the
// loader instead.
func NewHandler(api PostsAPI, sessions *session.Manager, renderWait time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		api:        api,
		sessions:   sessions,
		renderWait: renderWait,
		logger:     logger,
	}
}

// SetupUIRoutes registers the pages and wraps them in the global
// middleware.
func SetupUIRoutes(h *Handler, logger *slog.Logger) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.Logger(logger))

	router.HandleFunc("/", h.Index).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")

	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("/{id:[0-9]+}", h.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/write", h.Write).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/comments", h.CreateComment).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/comments/{commentId:[0-9]+}/delete", h.DeleteComment).Methods("POST")

	return router
}

type indexPage struct {
	Title    string
	Posts    []*models.Post
	Page     int
	PrevPage int
	NextPage int
	Error    bool
}

// Index lists posts.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	data := indexPage{Title: "Posts", Page: page, PrevPage: page - 1, NextPage: page + 1}
	status := http.StatusOK

	posts, err := h.api.GetPosts(r.Context(), page)
	if err != nil {
		h.logger.Error("failed to load posts", "page", page, "error", err)
		data.Error = true
		status = http.StatusBadGateway
	}
	data.Posts = posts

	h.render(w, status, "index", data)
}

type postPage struct {
	Title   string
	Details template.HTML
}

// Show selects the post in the session's view and renders it. The page
// waits up to renderWait for the comments.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	post, err := h.api.GetPost(r.Context(), id)
	if err != nil {
		if client.IsNotFound(err) {
			h.renderError(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("failed to load post", "post_id", id, "error", err)
		h.renderError(w, http.StatusBadGateway, "Something went wrong")
		return
	}

	s := h.sessions.Get(w, r)
	done := s.Details.SetPost(*post)

	timer := time.NewTimer(h.renderWait)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
	case <-r.Context().Done():
		return
	}

	h.renderDetails(w, http.StatusOK, s.Details)
}

// Write opens the comment form.
func (h *Handler) Write(w http.ResponseWriter, r *http.Request) {
	s, id, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	s.Details.ShowForm()
	redirectToPost(w, r, id)
}

// CreateComment submits the comment form. Invalid input re-renders the
// page with the field errors; everything else redirects back to the post.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	s, id, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	data := models.CommentData{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Body:  r.PostFormValue("body"),
	}

	s.Details.ShowForm()
	err := s.Details.SubmitForm(r.Context(), data)
	switch {
	case errors.Is(err, components.ErrFormInvalid):
		h.renderDetails(w, http.StatusUnprocessableEntity, s.Details)
		return
	case errors.Is(err, components.ErrSubmitting):
		h.renderDetails(w, http.StatusConflict, s.Details)
		return
	}
	// Other failures already raised the error flag shown on the page.
	redirectToPost(w, r, id)
}

// DeleteComment removes a comment from the view and the server.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	s, id, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	commentID, _ := strconv.Atoi(mux.Vars(r)["commentId"])

	// Failures are logged by the view and not reconciled.
	_ = s.Details.DeleteComment(r.Context(), commentID)
	redirectToPost(w, r, id)
}

// sessionFor returns the session when its view shows the post in the
// path. Otherwise it redirects to the post page, which selects it.
func (h *Handler) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Session, int, bool) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	s := h.sessions.Get(w, r)
	if post, ok := s.Details.Post(); !ok || post.ID != id {
		redirectToPost(w, r, id)
		return nil, 0, false
	}
	return s, id, true
}

func redirectToPost(w http.ResponseWriter, r *http.Request, id int) {
	http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusSeeOther)
}

func (h *Handler) renderDetails(w http.ResponseWriter, status int, details *components.PostDetails) {
	var buf bytes.Buffer
	if err := details.Render(&buf); err != nil {
		h.logger.Error("failed to render post details", "error", err)
		h.renderError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	post, _ := details.Post()
	h.render(w, status, "post", postPage{
		Title:   post.Title,
		Details: template.HTML(buf.String()),
	})
}

func (h *Handler) renderError(w http.ResponseWriter, status int, message string) {
	h.render(w, status, "error", struct {
		Title   string
		Message string
	}{Title: "Error", Message: message})
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data interface{}) {
	var buf bytes.Buffer
	if err := pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("template error", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
