package services

import (
	"fmt"
	"time"

	"commentboard/app/models"
	"commentboard/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment validates the request, checks the post exists and stores
// the comment.
func (s *CommentService) CreateComment(req models.NewComment) (*models.Comment, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: comment: %v", ErrInvalid, err)
	}

	post, err := s.postRepo.GetByID(req.PostID)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", req.PostID, err)
	}

	comment := req.Comment()
	comment.CreatedAt = time.Now()
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(id int) (*models.Comment, error) {
	return s.commentRepo.GetByID(id)
}

// ListPostComments retrieves all comments for a post
func (s *CommentService) ListPostComments(postID int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, err)
	}

	return s.commentRepo.ListByPost(postID)
}

// UpdateComment replaces the author fields and body of an existing comment.
// The owning post and creation time are kept.
func (s *CommentService) UpdateComment(id int, data models.CommentData) (*models.Comment, error) {
	data.Normalize()
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%w: comment: %v", ErrInvalid, err)
	}

	existing, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.Name = data.Name
	existing.Email = data.Email
	existing.Body = data.Body

	if err := s.commentRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteComment deletes a comment
func (s *CommentService) DeleteComment(id int) error {
	if _, err := s.commentRepo.GetByID(id); err != nil {
		return err
	}

	return s.commentRepo.Delete(id)
}
