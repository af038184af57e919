package models

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
}

// SetPost sets the parent post and updates the PostID
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.Post = post
	c.PostID = post.ID
	return nil
}

// Normalize trims surrounding whitespace from every field.
func (d *CommentData) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Body = strings.TrimSpace(d.Body)
}

// Validate checks the form payload.
func (d CommentData) Validate() error {
	return validate.Struct(d)
}

// InvalidFields returns the JSON names of the fields that failed validation.
// A nil map means the data is valid.
func (d CommentData) InvalidFields() map[string]bool {
	err := d.Validate()
	if err == nil {
		return nil
	}

	fields := make(map[string]bool)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = true
		}
	}
	return fields
}

// ForPost builds the create request for the given post.
func (d CommentData) ForPost(postID int) NewComment {
	return NewComment{CommentData: d, PostID: postID}
}

// Validate checks the create request.
func (n NewComment) Validate() error {
	return validate.Struct(n)
}

// Comment converts the request into an unsaved comment.
func (n NewComment) Comment() *Comment {
	return &Comment{
		PostID: n.PostID,
		Name:   n.Name,
		Email:  n.Email,
		Body:   n.Body,
	}
}
