// Package store is a small flux-style state container: state changes only
// through dispatched actions, reducers are pure, and asynchronous work runs
// as thunks that dispatch actions as they progress.
package store

import (
	"context"
	"log/slog"
	"sync"
)

// Action describes a state change.
type Action interface {
	Type() string
}

// State is the whole application state held by a Store.
type State struct {
	Comments CommentsState
}

// Reducer computes the next state. It must not modify its input.
type Reducer func(State, Action) State

// Thunk is asynchronous work that reports progress through dispatch.
type Thunk func(ctx context.Context, dispatch func(Action), getState func() State) error

// Store holds the current State. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	state   State
	reducer Reducer

	// notifyMu keeps subscriber notifications in dispatch order.
	notifyMu    sync.Mutex
	subscribers map[int]func(State)
	nextSubID   int

	logger *slog.Logger
}

// New creates a store with the root reducer and an initial state.
func New(logger *slog.Logger) *Store {
	return NewWithReducer(rootReducer, State{Comments: initialComments()}, logger)
}

// NewWithReducer creates a store driven by reducer.
func NewWithReducer(reducer Reducer, initial State, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		state:       initial,
		reducer:     reducer,
		subscribers: make(map[int]func(State)),
		logger:      logger,
	}
}

func rootReducer(s State, a Action) State {
	s.Comments = ReduceComments(s.Comments, a)
	return s
}

// GetState returns the current state. Slices inside it are shared and
// must be treated as read-only.
func (s *Store) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a to the state and notifies subscribers. Subscribers run
// on the dispatching goroutine and must not call Dispatch themselves.
func (s *Store) Dispatch(a Action) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.state = s.reducer(s.state, a)
	next := s.state
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.logger.Debug("action dispatched", "type", a.Type())

	for _, fn := range subs {
		fn(next)
	}
}

// Run executes a thunk with the store's dispatch and returns its error.
func (s *Store) Run(ctx context.Context, thunk Thunk) error {
	return thunk(ctx, s.Dispatch, s.GetState)
}

// Subscribe registers fn to be called after every dispatch. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}
