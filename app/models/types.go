package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Post represents a post with comments.
type Post struct {
	ID        int        `json:"id" validate:"gte=0"`
	UserID    int        `json:"userId" validate:"gte=0"`
	Title     string     `json:"title" validate:"required,min=3,max=100"`
	Body      string     `json:"body" validate:"required,min=1"`
	CreatedAt time.Time  `json:"createdAt" validate:"required"`
	Comments  []*Comment `json:"comments,omitempty" validate:"-"`
}

// Comment represents a comment on a post.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"postId" validate:"required,gt=0"`
	Name      string    `json:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" validate:"required,email,max=254"`
	Body      string    `json:"body" validate:"required,min=1,max=1000"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
	Post      *Post     `json:"-" validate:"-"`
}

// CommentData is the author-supplied part of a new comment.
type CommentData struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
	Body  string `json:"body" validate:"required,min=1,max=1000"`
}

// NewComment is the payload of a create-comment request.
type NewComment struct {
	CommentData
	PostID int `json:"postId" validate:"required,gt=0"`
}
