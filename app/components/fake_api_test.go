package components

import (
	"context"
	"errors"
	"sync"

	"commentboard/app/models"
)

var errOffline = errors.New("offline")

// fakeAPI records calls and serves comments from memory. Setting a gate
// makes DeleteComment block until the gate is closed.
type fakeAPI struct {
	mu         sync.Mutex
	comments   map[int][]models.Comment
	fetches    map[int]int
	nextID     int
	fetchErr   error
	createErr  error
	deleteErr  error
	deleteGate chan struct{}
	createGate chan struct{}
	deleted    []int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		comments: make(map[int][]models.Comment),
		fetches:  make(map[int]int),
		nextID:   100,
	}
}

func (f *fakeAPI) seed(postID int, comments ...models.Comment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments[postID] = append(f.comments[postID], comments...)
}

func (f *fakeAPI) fetchCount(postID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[postID]
}

func (f *fakeAPI) GetPostComments(ctx context.Context, postID int) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[postID]++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]models.Comment{}, f.comments[postID]...), nil
}

func (f *fakeAPI) CreateComment(ctx context.Context, req models.NewComment) (models.Comment, error) {
	f.mu.Lock()
	gate := f.createGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Comment{}, f.createErr
	}
	f.nextID++
	c := models.Comment{ID: f.nextID, PostID: req.PostID, Name: req.Name, Email: req.Email, Body: req.Body}
	f.comments[req.PostID] = append(f.comments[req.PostID], c)
	return c, nil
}

func (f *fakeAPI) DeleteComment(ctx context.Context, id int) error {
	f.mu.Lock()
	gate := f.deleteGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}
