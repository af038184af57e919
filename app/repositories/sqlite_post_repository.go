package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"commentboard/app/models"
)

// SQLitePostRepository implements PostRepository on sqlite.
type SQLitePostRepository struct {
	db *sql.DB
}

func (r *SQLitePostRepository) Create(post *models.Post) error {
	res, err := r.db.Exec(
		`INSERT INTO posts (user_id, title, body, created_at) VALUES (?, ?, ?, ?)`,
		post.UserID, post.Title, post.Body, post.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	post.ID = int(id)
	return nil
}

func (r *SQLitePostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post
	err := r.db.QueryRow(
		`SELECT id, user_id, title, body, created_at FROM posts WHERE id = ?`, id,
	).Scan(&post.ID, &post.UserID, &post.Title, &post.Body, &post.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (r *SQLitePostRepository) List(limit, offset int) ([]*models.Post, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, title, body, created_at FROM posts ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.UserID, &post.Title, &post.Body, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}

func (r *SQLitePostRepository) Update(post *models.Post) error {
	res, err := r.db.Exec(
		`UPDATE posts SET user_id = ?, title = ?, body = ? WHERE id = ?`,
		post.UserID, post.Title, post.Body, post.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return expectAffected(res)
}

func (r *SQLitePostRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
