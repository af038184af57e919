package repositories

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Backuper is implemented by storages that can dump and reload all data.
type Backuper interface {
	Backup(w io.Writer) error
	Restore(r io.Reader) error
}

// Backup writes a full badger backup to w.
func (r *Repository) Backup(w io.Writer) error {
	if _, err := r.db.Backup(w, 0); err != nil {
		return fmt.Errorf("failed to backup database: %w", err)
	}
	return nil
}

// Restore loads a backup written by Backup.
func (r *Repository) Restore(rd io.Reader) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic occurred during restore: %v", p)
		}
	}()
	if err := r.db.Load(rd, 256); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

// Backup writes a consistent copy of the database file to w.
func (s *SQLiteStorage) Backup(w io.Writer) error {
	dir, err := os.MkdirTemp("", "commentboard_backup_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	snapshot := filepath.Join(dir, "snapshot.db")
	if _, err := s.conn.Exec(`VACUUM INTO ?`, snapshot); err != nil {
		return fmt.Errorf("failed to snapshot database: %w", err)
	}

	f, err := os.Open(snapshot)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// Restore replaces all posts and comments with those of a backup written
// by Backup.
func (s *SQLiteStorage) Restore(rd io.Reader) error {
	dir, err := os.MkdirTemp("", "commentboard_restore_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	snapshot := filepath.Join(dir, "snapshot.db")
	f, err := os.Create(snapshot)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, rd); err != nil {
		f.Close()
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	// The pool holds a single connection, so the attachment is visible to
	// the transaction below.
	if _, err := s.conn.Exec(`ATTACH DATABASE ? AS backup`, snapshot); err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer s.conn.Exec(`DETACH DATABASE backup`)

	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	statements := []string{
		`DELETE FROM comments`,
		`DELETE FROM posts`,
		`INSERT INTO posts (id, user_id, title, body, created_at)
			SELECT id, user_id, title, body, created_at FROM backup.posts`,
		`INSERT INTO comments (id, post_id, name, email, body, created_at)
			SELECT id, post_id, name, email, body, created_at FROM backup.comments`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to restore database: %w", err)
		}
	}
	return tx.Commit()
}
