package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"commentboard/app/models"
	"commentboard/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	logger         *slog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, logger *slog.Logger) *CommentController {
	return &CommentController{
		commentService: commentService,
		logger:         logger,
	}
}

// postIDOf reads the post id from the {postId} path variable or, on the
// flat /api/comments routes, from the postId query parameter.
func postIDOf(r *http.Request) (int, bool) {
	raw, ok := mux.Vars(r)["postId"]
	if !ok {
		raw = r.URL.Query().Get("postId")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Index handles listing all comments of a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDOf(r)
	if !ok {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := cc.commentService.ListPostComments(postID)
	if err != nil {
		sendServiceError(w, cc.logger, "fetch comments", err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	sendJSON(w, http.StatusOK, comments)
}

// Show handles fetching a single comment
func (cc *CommentController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	comment, err := cc.commentService.GetComment(id)
	if err != nil {
		sendServiceError(w, cc.logger, "fetch comment", err)
		return
	}

	sendJSON(w, http.StatusOK, comment)
}

// Create handles creating a new comment. On the nested route the path
// post id wins over any postId in the body.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.NewComment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, nested := mux.Vars(r)["postId"]; nested {
		postID, ok := postIDOf(r)
		if !ok {
			sendError(w, "Invalid post ID", http.StatusBadRequest)
			return
		}
		req.PostID = postID
	}

	comment, err := cc.commentService.CreateComment(req)
	if err != nil {
		sendServiceError(w, cc.logger, "create comment", err)
		return
	}

	cc.logger.Debug("comment created", "id", comment.ID, "post_id", comment.PostID)
	sendJSON(w, http.StatusCreated, comment)
}

// Edit handles updating an existing comment
func (cc *CommentController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	var data models.CommentData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := cc.commentService.UpdateComment(id, data)
	if err != nil {
		sendServiceError(w, cc.logger, "update comment", err)
		return
	}

	sendJSON(w, http.StatusOK, comment)
}

// Delete handles deleting a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	if err := cc.commentService.DeleteComment(id); err != nil {
		sendServiceError(w, cc.logger, "delete comment", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
