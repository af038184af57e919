package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"commentboard/app/models"
	"commentboard/app/services"
)

// PostController handles HTTP requests for posts
type PostController struct {
	postService *services.PostService
	logger      *slog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, logger *slog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// PostList is the body of GET /api/posts.
type PostList struct {
	Posts []*models.Post `json:"posts"`
	Page  int            `json:"page"`
}

// Index handles listing posts, one page at a time
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 10)

	posts, err := pc.postService.ListPosts(page, perPage)
	if err != nil {
		sendServiceError(w, pc.logger, "fetch posts", err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	sendJSON(w, http.StatusOK, PostList{Posts: posts, Page: page})
}

// Show handles displaying a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		sendServiceError(w, pc.logger, "fetch post", err)
		return
	}

	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	post.ID = 0
	post.Comments = nil

	if err := pc.postService.CreatePost(&post); err != nil {
		sendServiceError(w, pc.logger, "create post", err)
		return
	}

	sendJSON(w, http.StatusCreated, post)
}

// Edit handles updating an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	post.ID = id

	if err := pc.postService.UpdatePost(&post); err != nil {
		sendServiceError(w, pc.logger, "update post", err)
		return
	}

	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post and its comments
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := pc.postService.DeletePost(id); err != nil {
		sendServiceError(w, pc.logger, "delete post", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
