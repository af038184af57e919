package ui

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"commentboard/app/client"
	"commentboard/app/components"
	"commentboard/app/logger"
	"commentboard/app/models"
	"commentboard/app/repositories/mock"
	"commentboard/app/routes"
	"commentboard/app/session"
	"commentboard/app/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	storage *mock.Storage
	ui      *httptest.Server
	browser *http.Client
	post    *models.Post
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.Discard()

	storage := mock.NewStorage()
	post := &models.Post{UserID: 1, Title: "sunt aut facere", Body: "quia et suscipit"}
	post.BeforeCreate()
	require.NoError(t, storage.PostRepo.Create(post))

	apiServer := httptest.NewServer(routes.SetupAPIRoutes(storage, log, nil))
	t.Cleanup(apiServer.Close)
	api := client.New(apiServer.URL, client.WithLogger(log))

	sessions, err := session.NewManager("test-secret", time.Minute, func() *components.PostDetails {
		return components.NewPostDetails(api, store.New(log), log, components.Options{})
	}, log)
	require.NoError(t, err)

	uiServer := httptest.NewServer(SetupUIRoutes(NewHandler(api, sessions, 2*time.Second, log), log))
	t.Cleanup(uiServer.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		storage: storage,
		ui:      uiServer,
		browser: &http.Client{Jar: jar, Timeout: 5 * time.Second},
		post:    post,
	}
}

func (e *testEnv) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := e.browser.Get(e.ui.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func (e *testEnv) submit(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := e.browser.PostForm(e.ui.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestIndex(t *testing.T) {
	env := setupTestEnv(t)

	status, body := env.get(t, "/")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `data-cy="PostsList"`)
	assert.Contains(t, body, "sunt aut facere")
	assert.Contains(t, body, `href="/posts/1"`)
}

func TestIndexEmpty(t *testing.T) {
	env := setupTestEnv(t)
	require.NoError(t, env.storage.PostRepo.Delete(env.post.ID))

	status, body := env.get(t, "/")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "No posts yet")
}

func TestShowPost(t *testing.T) {
	env := setupTestEnv(t)

	status, body := env.get(t, "/posts/1")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "#1: sunt aut facere")
	assert.Contains(t, body, "No comments yet")
	assert.Contains(t, body, `data-cy="WriteCommentButton"`)
	assert.NotContains(t, body, `data-cy="NewCommentForm"`)
}

func TestShowMissingPost(t *testing.T) {
	env := setupTestEnv(t)

	status, body := env.get(t, "/posts/99")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Post not found")
}

func TestCommentLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	env.get(t, "/posts/1")

	t.Run("write opens the form", func(t *testing.T) {
		status, body := env.submit(t, "/posts/1/write", nil)

		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `data-cy="NewCommentForm"`)
		assert.NotContains(t, body, `data-cy="WriteCommentButton"`)
	})

	t.Run("invalid submission shows field errors", func(t *testing.T) {
		status, body := env.submit(t, "/posts/1/comments", url.Values{
			"name": {"Leanne"}, "email": {"not-an-email"}, "body": {""},
		})

		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Contains(t, body, "Email is required")
		assert.Contains(t, body, "Enter some text")
		assert.Contains(t, body, `value="Leanne"`)

		comments, err := env.storage.CommentRepo.ListByPost(1)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("valid submission appends the comment", func(t *testing.T) {
		status, body := env.submit(t, "/posts/1/comments", url.Values{
			"name": {"Leanne"}, "email": {"leanne@example.com"}, "body": {"laudantium enim"},
		})

		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "laudantium enim")
		assert.Contains(t, body, `href="mailto:leanne@example.com"`)
		assert.NotContains(t, body, "No comments yet")
		assert.Equal(t, 1, strings.Count(body, `data-cy="Comment"`))

		comments, err := env.storage.CommentRepo.ListByPost(1)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("delete removes the comment", func(t *testing.T) {
		comments, err := env.storage.CommentRepo.ListByPost(1)
		require.NoError(t, err)
		require.Len(t, comments, 1)

		status, body := env.submit(t, "/posts/1/comments/"+strconv.Itoa(comments[0].ID)+"/delete", nil)

		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "No comments yet")

		comments, err = env.storage.CommentRepo.ListByPost(1)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}

func TestActionsOnAnotherPostRedirect(t *testing.T) {
	env := setupTestEnv(t)
	second := &models.Post{Title: "qui est esse", Body: "est rerum tempore"}
	second.BeforeCreate()
	require.NoError(t, env.storage.PostRepo.Create(second))

	env.get(t, "/posts/1")

	status, body := env.submit(t, "/posts/2/write", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "#2: qui est esse")
	assert.NotContains(t, body, `data-cy="NewCommentForm"`)
}

