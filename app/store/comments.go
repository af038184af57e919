package store

import (
	"context"
	"sync/atomic"

	"commentboard/app/models"
)

// CommentsState is the comments slice of the store.
type CommentsState struct {
	// PostID is the post whose comments were requested last.
	PostID int
	// RequestID identifies the fetch whose result the slice is waiting for.
	RequestID uint64
	Loading   bool
	HasError  bool
	Items     []models.Comment
}

func initialComments() CommentsState {
	return CommentsState{Items: []models.Comment{}}
}

// CommentsFetcher loads the comments of a post.
type CommentsFetcher interface {
	GetPostComments(ctx context.Context, postID int) ([]models.Comment, error)
}

// Comment actions.
type (
	FetchCommentsPending struct {
		PostID    int
		RequestID uint64
	}
	FetchCommentsFulfilled struct {
		PostID    int
		RequestID uint64
		Comments  []models.Comment
	}
	FetchCommentsRejected struct {
		PostID    int
		RequestID uint64
		Err       error
	}
	CommentAdded struct {
		Comment models.Comment
	}
	CommentDeleted struct {
		ID int
	}
	ErrorTaken struct{}
)

func (FetchCommentsPending) Type() string   { return "comments/fetchPostComments/pending" }
func (FetchCommentsFulfilled) Type() string { return "comments/fetchPostComments/fulfilled" }
func (FetchCommentsRejected) Type() string  { return "comments/fetchPostComments/rejected" }
func (CommentAdded) Type() string           { return "comments/addNewComment" }
func (CommentDeleted) Type() string         { return "comments/deleteComment" }
func (ErrorTaken) Type() string             { return "comments/takeError" }

var fetchSeq atomic.Uint64

// FetchPostComments loads the comments of postID. It dispatches pending
// before the request and fulfilled or rejected after it; the reducer drops
// results of any fetch that is no longer the latest.
func FetchPostComments(api CommentsFetcher, postID int) Thunk {
	return func(ctx context.Context, dispatch func(Action), getState func() State) error {
		requestID := BeginFetchComments(dispatch, postID)
		return CompleteFetchComments(api, postID, requestID)(ctx, dispatch, getState)
	}
}

// BeginFetchComments dispatches pending for a new fetch of postID and
// returns its request id. Callers that start fetches from several
// goroutines must call it in the order the posts were requested.
func BeginFetchComments(dispatch func(Action), postID int) uint64 {
	requestID := fetchSeq.Add(1)
	dispatch(FetchCommentsPending{PostID: postID, RequestID: requestID})
	return requestID
}

// CompleteFetchComments requests the comments for a fetch started with
// BeginFetchComments and dispatches its outcome.
func CompleteFetchComments(api CommentsFetcher, postID int, requestID uint64) Thunk {
	return func(ctx context.Context, dispatch func(Action), _ func() State) error {
		comments, err := api.GetPostComments(ctx, postID)
		if err != nil {
			dispatch(FetchCommentsRejected{PostID: postID, RequestID: requestID, Err: err})
			return err
		}

		dispatch(FetchCommentsFulfilled{PostID: postID, RequestID: requestID, Comments: comments})
		return nil
	}
}

// AddNewComment appends a comment the server has acknowledged.
func AddNewComment(c models.Comment) Action { return CommentAdded{Comment: c} }

// DeleteComment removes a comment from the list.
func DeleteComment(id int) Action { return CommentDeleted{ID: id} }

// TakeError raises the error flag.
func TakeError() Action { return ErrorTaken{} }

// ReduceComments is the comments slice reducer. Items is never modified in
// place.
func ReduceComments(s CommentsState, a Action) CommentsState {
	switch a := a.(type) {
	case FetchCommentsPending:
		return CommentsState{
			PostID:    a.PostID,
			RequestID: a.RequestID,
			Loading:   true,
			Items:     []models.Comment{},
		}

	case FetchCommentsFulfilled:
		if !s.awaits(a.PostID, a.RequestID) {
			return s
		}
		s.Loading = false
		s.HasError = false
		s.Items = append([]models.Comment{}, a.Comments...)
		return s

	case FetchCommentsRejected:
		if !s.awaits(a.PostID, a.RequestID) {
			return s
		}
		s.Loading = false
		s.HasError = true
		s.Items = []models.Comment{}
		return s

	case CommentAdded:
		if a.Comment.PostID != s.PostID {
			return s
		}
		items := make([]models.Comment, 0, len(s.Items)+1)
		items = append(items, s.Items...)
		s.Items = append(items, a.Comment)
		return s

	case CommentDeleted:
		items := make([]models.Comment, 0, len(s.Items))
		for _, c := range s.Items {
			if c.ID != a.ID {
				items = append(items, c)
			}
		}
		s.Items = items
		return s

	case ErrorTaken:
		s.HasError = true
		return s
	}
	return s
}

func (s CommentsState) awaits(postID int, requestID uint64) bool {
	return s.Loading && s.PostID == postID && s.RequestID == requestID
}
