package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"commentboard/app/logger"
	"commentboard/app/models"
	"commentboard/app/repositories/mock"
	"commentboard/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCommentController(t *testing.T) (*CommentController, *mock.Storage, *models.Post) {
	storage := mock.NewStorage()
	commentService := services.NewCommentService(storage.CommentRepo, storage.PostRepo)

	post := &models.Post{Title: "Test Post", Body: "Test Body"}
	require.NoError(t, storage.PostRepo.Create(post))

	return NewCommentController(commentService, logger.Discard()), storage, post
}

func setupCommentRouter(controller *CommentController) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/posts/{postId:[0-9]+}/comments", controller.Create).Methods("POST")
	router.HandleFunc("/posts/{postId:[0-9]+}/comments", controller.Index).Methods("GET")
	router.HandleFunc("/comments", controller.Index).Methods("GET")
	router.HandleFunc("/comments", controller.Create).Methods("POST")
	router.HandleFunc("/comments/{id:[0-9]+}", controller.Show).Methods("GET")
	router.HandleFunc("/comments/{id:[0-9]+}", controller.Edit).Methods("PUT")
	router.HandleFunc("/comments/{id:[0-9]+}", controller.Delete).Methods("DELETE")

	return router
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCommentController(t *testing.T) {
	controller, storage, post := setupTestCommentController(t)
	router := setupCommentRouter(controller)

	t.Run("create comment on flat route", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/comments",
			`{"postId": 1, "name": "Ann", "email": "ann@example.com", "body": "Hello"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var comment models.Comment
		require.NoError(t, json.NewDecoder(w.Body).Decode(&comment))
		assert.Equal(t, 1, comment.ID)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, "Hello", comment.Body)
	})

	t.Run("create comment on nested route ignores body postId", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/posts/1/comments",
			`{"postId": 42, "name": "Bob", "email": "bob@example.com", "body": "Second"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var comment models.Comment
		require.NoError(t, json.NewDecoder(w.Body).Decode(&comment))
		assert.Equal(t, post.ID, comment.PostID)
	})

	t.Run("create comment validation", func(t *testing.T) {
		tests := []struct {
			name   string
			path   string
			body   string
			status int
		}{
			{"bad email", "/comments", `{"postId": 1, "name": "Ann", "email": "nope", "body": "x"}`, http.StatusBadRequest},
			{"empty body", "/comments", `{"postId": 1, "name": "Ann", "email": "ann@example.com", "body": "  "}`, http.StatusBadRequest},
			{"missing post id", "/comments", `{"name": "Ann", "email": "ann@example.com", "body": "x"}`, http.StatusBadRequest},
			{"unknown post", "/comments", `{"postId": 99, "name": "Ann", "email": "ann@example.com", "body": "x"}`, http.StatusNotFound},
			{"unknown nested post", "/posts/99/comments", `{"name": "Ann", "email": "ann@example.com", "body": "x"}`, http.StatusNotFound},
			{"malformed JSON", "/comments", `{"postId":`, http.StatusBadRequest},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := doRequest(router, http.MethodPost, tt.path, tt.body)
				assert.Equal(t, tt.status, w.Code)
				assert.Contains(t, w.Body.String(), `"error"`)
			})
		}
	})

	t.Run("list comments by query", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/comments?postId=1", "")

		require.Equal(t, http.StatusOK, w.Code)
		var comments []models.Comment
		require.NoError(t, json.NewDecoder(w.Body).Decode(&comments))
		require.Len(t, comments, 2)
		assert.Equal(t, "Hello", comments[0].Body)
		assert.Equal(t, "Second", comments[1].Body)
	})

	t.Run("list comments nested", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/posts/1/comments", "")

		require.Equal(t, http.StatusOK, w.Code)
		var comments []models.Comment
		require.NoError(t, json.NewDecoder(w.Body).Decode(&comments))
		assert.Len(t, comments, 2)
	})

	t.Run("list comments without post id", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/comments", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list comments of a post without any", func(t *testing.T) {
		empty := &models.Post{Title: "Quiet Post", Body: "Nobody talks"}
		require.NoError(t, storage.PostRepo.Create(empty))

		w := doRequest(router, http.MethodGet, "/posts/2/comments", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("show comment", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/comments/1", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Ann"`)
	})

	t.Run("update comment", func(t *testing.T) {
		w := doRequest(router, http.MethodPut, "/comments/1",
			`{"name": "Ann", "email": "ann@example.com", "body": "Edited"}`)

		require.Equal(t, http.StatusOK, w.Code)
		stored, err := storage.CommentRepo.GetByID(1)
		require.NoError(t, err)
		assert.Equal(t, "Edited", stored.Body)
		assert.Equal(t, post.ID, stored.PostID)
	})

	t.Run("update comment with invalid data", func(t *testing.T) {
		w := doRequest(router, http.MethodPut, "/comments/1",
			`{"name": "A", "email": "ann@example.com", "body": "Edited"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete comment", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/comments/1", "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		_, err := storage.CommentRepo.GetByID(1)
		assert.Error(t, err)
	})

	t.Run("delete missing comment", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/comments/1", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		storage.CommentRepo.Err = errors.New("disk on fire")
		defer func() { storage.CommentRepo.Err = nil }()

		w := doRequest(router, http.MethodGet, "/comments?postId=1", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk on fire")
	})
}
