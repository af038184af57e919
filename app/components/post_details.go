package components

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"commentboard/app/models"
	"commentboard/app/store"
)

// ErrNoPost is returned by operations that need a post before SetPost was
// called.
var ErrNoPost = errors.New("no post selected")

// API is the part of the comments API the view talks to.
type API interface {
	store.CommentsFetcher
	CreateComment(ctx context.Context, req models.NewComment) (models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

// Options tunes a PostDetails.
type Options struct {
	// FetchTimeout bounds each comments fetch. Zero means 10s.
	FetchTimeout time.Duration
	// BasePath prefixes the form actions rendered into the page. Defaults
	// to "/posts".
	BasePath string
}

// PostDetails shows one post and its comments. Comments live in the shared
// store; the form visibility and values are local to the view.
type PostDetails struct {
	api    API
	store  *store.Store
	logger *slog.Logger
	opts   Options

	mu          sync.Mutex
	post        *models.Post
	formVisible bool
	form        *NewCommentForm
	fetchDone   chan struct{}
	cancelFetch context.CancelFunc
}

// NewPostDetails creates a view with no post selected.
func NewPostDetails(api API, st *store.Store, logger *slog.Logger, opts Options) *PostDetails {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.BasePath == "" {
		opts.BasePath = "/posts"
	}
	done := make(chan struct{})
	close(done)
	return &PostDetails{
		api:         api,
		store:       st,
		logger:      logger,
		opts:        opts,
		form:        &NewCommentForm{},
		fetchDone:   done,
		cancelFetch: func() {},
	}
}

// SetPost shows post. When it differs from the current post the form is
// hidden and reset and one comments fetch for post.ID starts in the
// background. The returned channel is closed when the latest fetch has
// settled.
func (pd *PostDetails) SetPost(post models.Post) <-chan struct{} {
	pd.mu.Lock()
	defer pd.mu.Unlock()

	if pd.post != nil && pd.post.Same(post) {
		return pd.fetchDone
	}

	pd.cancelFetch()

	post.Comments = nil
	pd.post = &post
	pd.formVisible = false
	pd.form.Reset()

	// Pending goes out under pd.mu so request ids follow SetPost order.
	requestID := store.BeginFetchComments(pd.store.Dispatch, post.ID)

	ctx, cancel := context.WithTimeout(context.Background(), pd.opts.FetchTimeout)
	done := make(chan struct{})
	pd.fetchDone = done
	pd.cancelFetch = cancel

	go func() {
		defer close(done)
		defer cancel()
		if err := pd.store.Run(ctx, store.CompleteFetchComments(pd.api, post.ID, requestID)); err != nil {
			pd.logger.Warn("failed to load comments", "post_id", post.ID, "error", err)
		}
	}()

	return done
}

// Post returns the current post.
func (pd *PostDetails) Post() (models.Post, bool) {
	pd.mu.Lock()
	defer pd.mu.Unlock()
	if pd.post == nil {
		return models.Post{}, false
	}
	return *pd.post, true
}

// ShowForm opens the write-comment form.
func (pd *PostDetails) ShowForm() {
	pd.mu.Lock()
	defer pd.mu.Unlock()
	pd.formVisible = true
}

// Form returns the write-comment form.
func (pd *PostDetails) Form() *NewCommentForm {
	return pd.form
}

// SubmitForm validates data through the form and adds the comment.
func (pd *PostDetails) SubmitForm(ctx context.Context, data models.CommentData) error {
	return pd.form.Submit(ctx, data, pd.AddComment)
}

// AddComment creates a comment on the current post. The comment is added
// to the list only after the server accepted it; a failure raises the
// store's error flag.
func (pd *PostDetails) AddComment(ctx context.Context, data models.CommentData) error {
	post, ok := pd.Post()
	if !ok {
		return ErrNoPost
	}

	comment, err := pd.api.CreateComment(ctx, data.ForPost(post.ID))
	if err != nil {
		pd.store.Dispatch(store.TakeError())
		pd.logger.Warn("failed to create comment", "post_id", post.ID, "error", err)
		return err
	}

	pd.store.Dispatch(store.AddNewComment(comment))
	return nil
}

// DeleteComment removes the comment from the list right away and then asks
// the server to delete it. A failed request is logged and returned; the
// comment stays removed from the list.
func (pd *PostDetails) DeleteComment(ctx context.Context, id int) error {
	pd.store.Dispatch(store.DeleteComment(id))

	if err := pd.api.DeleteComment(ctx, id); err != nil {
		pd.logger.Warn("failed to delete comment", "comment_id", id, "error", err)
		return err
	}
	return nil
}

// View is what PostDetails shows at a moment.
type View struct {
	Post     models.Post
	Comments []models.Comment

	ShowLoader      bool
	ShowError       bool
	ShowNoComments  bool
	ShowList        bool
	ShowWriteButton bool
	ShowForm        bool

	WriteAction  string
	DeleteAction string
	Form         FormView
}

// View computes the visible parts from the store and local state. While the
// store still holds another post's comments the view counts as loading.
func (pd *PostDetails) View() (View, error) {
	pd.mu.Lock()
	if pd.post == nil {
		pd.mu.Unlock()
		return View{}, ErrNoPost
	}
	post := *pd.post
	formVisible := pd.formVisible
	pd.mu.Unlock()

	state := pd.store.GetState().Comments
	loading := state.Loading || state.PostID != post.ID
	ready := !loading && !state.HasError

	base := pd.opts.BasePath + "/" + strconv.Itoa(post.ID)
	v := View{
		Post:            post,
		ShowLoader:      loading,
		ShowError:       !loading && state.HasError,
		ShowNoComments:  ready && len(state.Items) == 0,
		ShowList:        ready && len(state.Items) > 0,
		ShowWriteButton: ready && !formVisible,
		ShowForm:        ready && formVisible,
		WriteAction:     base + "/write",
		DeleteAction:    base + "/comments",
	}
	if v.ShowList {
		v.Comments = state.Items
	}
	if v.ShowForm {
		v.Form = pd.form.view(base + "/comments")
	}
	return v, nil
}

// Render writes the view as HTML.
func (pd *PostDetails) Render(w io.Writer) error {
	v, err := pd.View()
	if err != nil {
		return err
	}
	return templates.ExecuteTemplate(w, "PostDetails", v)
}

// Close stops a fetch still in flight.
func (pd *PostDetails) Close() {
	pd.mu.Lock()
	defer pd.mu.Unlock()
	pd.cancelFetch()
}
