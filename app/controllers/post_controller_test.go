package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
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

func setupTestPostController(t *testing.T) (*PostController, *mock.Storage) {
	storage := mock.NewStorage()
	postService := services.NewPostService(storage.PostRepo, storage.CommentRepo)
	return NewPostController(postService, logger.Discard()), storage
}

func setupRouter(controller *PostController) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/posts", controller.Create).Methods("POST")
	router.HandleFunc("/posts", controller.Index).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}", controller.Show).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}", controller.Edit).Methods("PUT")
	router.HandleFunc("/posts/{id:[0-9]+}", controller.Delete).Methods("DELETE")

	return router
}

func TestPostController(t *testing.T) {
	controller, storage := setupTestPostController(t)
	router := setupRouter(controller)

	var created models.Post

	t.Run("create post", func(t *testing.T) {
		payload := `{"userId": 7, "title": "Test Post", "body": "This is a test post body"}`

		req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.Equal(t, 1, created.ID)
		assert.Equal(t, 7, created.UserID)
		assert.Equal(t, "Test Post", created.Title)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("create post with invalid data", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title": "x", "body": ""}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Contains(t, body.Error, "invalid input")
	})

	t.Run("create post with malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("show post with comments", func(t *testing.T) {
		require.NoError(t, storage.CommentRepo.Create(&models.Comment{
			PostID: created.ID, Name: "Ann", Email: "ann@example.com", Body: "First",
		}))

		req := httptest.NewRequest(http.MethodGet, "/posts/"+strconv.Itoa(created.ID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var post models.Post
		require.NoError(t, json.NewDecoder(w.Body).Decode(&post))
		assert.Equal(t, created.Title, post.Title)
		require.Len(t, post.Comments, 1)
		assert.Equal(t, "First", post.Comments[0].Body)
	})

	t.Run("show missing post", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts/999", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("list posts", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts?page=1&per_page=5", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var list PostList
		require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
		assert.Equal(t, 1, list.Page)
		require.Len(t, list.Posts, 1)
		assert.Empty(t, list.Posts[0].Comments)
	})

	t.Run("list past the last page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts?page=9", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"posts": [], "page": 9}`, w.Body.String())
	})

	t.Run("update post", func(t *testing.T) {
		payload := `{"title": "Updated Post", "body": "Updated body"}`
		req := httptest.NewRequest(http.MethodPut, "/posts/"+strconv.Itoa(created.ID), strings.NewReader(payload))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		stored, err := storage.PostRepo.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated Post", stored.Title)
		assert.Equal(t, created.CreatedAt.Unix(), stored.CreatedAt.Unix())
	})

	t.Run("update missing post", func(t *testing.T) {
		payload := `{"title": "Updated Post", "body": "Updated body"}`
		req := httptest.NewRequest(http.MethodPut, "/posts/999", strings.NewReader(payload))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete post", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/posts/"+strconv.Itoa(created.ID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		comments, err := storage.CommentRepo.ListByPost(created.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("delete missing post", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/posts/"+strconv.Itoa(created.ID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
