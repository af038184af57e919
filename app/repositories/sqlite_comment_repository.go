package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"commentboard/app/models"
)

// SQLiteCommentRepository implements CommentRepository on sqlite.
type SQLiteCommentRepository struct {
	db *sql.DB
}

func (r *SQLiteCommentRepository) Create(comment *models.Comment) error {
	res, err := r.db.Exec(
		`INSERT INTO comments (post_id, name, email, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		comment.PostID, comment.Name, comment.Email, comment.Body, comment.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	comment.ID = int(id)
	return nil
}

func (r *SQLiteCommentRepository) GetByID(id int) (*models.Comment, error) {
	var c models.Comment
	err := r.db.QueryRow(
		`SELECT id, post_id, name, email, body, created_at FROM comments WHERE id = ?`, id,
	).Scan(&c.ID, &c.PostID, &c.Name, &c.Email, &c.Body, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &c, nil
}

func (r *SQLiteCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	rows, err := r.db.Query(
		`SELECT id, post_id, name, email, body, created_at FROM comments WHERE post_id = ? ORDER BY id`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Name, &c.Email, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

func (r *SQLiteCommentRepository) Update(comment *models.Comment) error {
	res, err := r.db.Exec(
		`UPDATE comments SET name = ?, email = ?, body = ? WHERE id = ?`,
		comment.Name, comment.Email, comment.Body, comment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return expectAffected(res)
}

func (r *SQLiteCommentRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return expectAffected(res)
}

func (r *SQLiteCommentRepository) DeleteByPost(postID int) error {
	if _, err := r.db.Exec(`DELETE FROM comments WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("failed to delete comments of post %d: %w", postID, err)
	}
	return nil
}
