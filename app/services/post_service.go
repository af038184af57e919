package services

import (
	"fmt"
	"time"

	"commentboard/app/models"
	"commentboard/app/repositories"
)

// PostService handles business logic for posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost creates a new post with validation
func (s *PostService) CreatePost(post *models.Post) error {
	post.CreatedAt = time.Now()
	post.Comments = nil

	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: post: %v", ErrInvalid, err)
	}

	return s.postRepo.Create(post)
}

// GetPost retrieves a post by ID with its comments
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	post.Comments = make([]*models.Comment, 0, len(comments))
	for _, c := range comments {
		if err := post.AddComment(c); err != nil {
			return nil, err
		}
	}

	return post, nil
}

// ListPosts retrieves a page of posts without their comments
func (s *PostService) ListPosts(page, perPage int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	offset := (page - 1) * perPage
	return s.postRepo.List(perPage, offset)
}

// UpdatePost updates an existing post with validation
func (s *PostService) UpdatePost(post *models.Post) error {
	existing, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return err
	}

	// Preserve creation time
	post.CreatedAt = existing.CreatedAt
	post.Comments = nil

	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: post: %v", ErrInvalid, err)
	}

	return s.postRepo.Update(post)
}

// DeletePost deletes a post and all its comments
func (s *PostService) DeletePost(id int) error {
	if _, err := s.postRepo.GetByID(id); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByPost(id); err != nil {
		return fmt.Errorf("failed to delete comments of post %d: %w", id, err)
	}

	return s.postRepo.Delete(id)
}
