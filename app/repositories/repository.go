package repositories

import (
	"fmt"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// Repository is the badger-backed Storage.
type Repository struct {
	db       *badger.DB
	mutex    sync.Mutex
	dbPath   string
	isTestDB bool
	posts    *BadgerPostRepository
	comments *BadgerCommentRepository
}

// NewRepository opens a badger database at path. An empty path or
// "test_db" opens a throwaway database in a fresh temporary directory that
// is removed again by Close.
func NewRepository(path string) (*Repository, error) {
	isTest := false
	if path == "" || path == "test_db" {
		tempPath, err := os.MkdirTemp("", "commentboard_test_db_")
		if err != nil {
			return nil, fmt.Errorf("error creating temp dir: %w", err)
		}
		path = tempPath
		isTest = true
	}
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return newRepository(db, path, isTest), nil
}

// NewInMemoryRepository opens a badger database that never touches disk.
func NewInMemoryRepository() (*Repository, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return newRepository(db, "", false), nil
}

func newRepository(db *badger.DB, path string, isTest bool) *Repository {
	return &Repository{
		db:       db,
		dbPath:   path,
		isTestDB: isTest,
		posts:    NewBadgerPostRepository(db),
		comments: NewBadgerCommentRepository(db),
	}
}

// Posts returns the post repository.
func (r *Repository) Posts() PostRepository { return r.posts }

// Comments returns the comment repository.
func (r *Repository) Comments() CommentRepository { return r.comments }

// DB exposes the underlying badger handle for backup and restore.
func (r *Repository) DB() *badger.DB { return r.db }

func (r *Repository) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if err := r.db.Close(); err != nil {
		return err
	}

	if r.isTestDB {
		if err := os.RemoveAll(r.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup test database: %w", err)
		}
	}
	return nil
}

// Clear drops every key, sequences included.
func (r *Repository) Clear() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.db.DropAll()
}
