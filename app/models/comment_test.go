package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				Name:      "John Doe",
				Email:     "john@example.com",
				Body:      "This is a valid comment",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "name too short",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				Name:      "a",
				Email:     "john@example.com",
				Body:      "This is a valid comment",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "invalid email",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				Name:      "John Doe",
				Email:     "not-an-email",
				Body:      "This is a valid comment",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "empty body",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				Name:      "John Doe",
				Email:     "john@example.com",
				Body:      "",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing post",
			comment: &Comment{
				ID:        1,
				Name:      "John Doe",
				Email:     "john@example.com",
				Body:      "Valid body",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				Name:      "John Doe",
				Email:     "john@example.com",
				Body:      "Valid body",
				CreatedAt: time.Time{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentBeforeCreate(t *testing.T) {
	comment := &Comment{
		ID:     1,
		PostID: 1,
		Name:   "John Doe",
		Body:   "Test Comment",
	}

	assert.True(t, comment.CreatedAt.IsZero())
	comment.BeforeCreate()
	assert.False(t, comment.CreatedAt.IsZero())
}

func TestCommentSetPost(t *testing.T) {
	comment := &Comment{
		ID:   1,
		Name: "John Doe",
		Body: "Test Comment",
	}

	t.Run("set valid post", func(t *testing.T) {
		post := &Post{
			ID:    1,
			Title: "Test Post",
			Body:  "Test Body",
		}

		err := comment.SetPost(post)
		assert.NoError(t, err)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, post, comment.Post)
	})

	t.Run("set nil post", func(t *testing.T) {
		err := comment.SetPost(nil)
		assert.Error(t, err)
	})
}

func TestCommentData(t *testing.T) {
	t.Run("normalize trims fields", func(t *testing.T) {
		data := CommentData{Name: "  Jane ", Email: " jane@example.com\n", Body: "\thello "}
		data.Normalize()
		assert.Equal(t, CommentData{Name: "Jane", Email: "jane@example.com", Body: "hello"}, data)
	})

	t.Run("invalid fields", func(t *testing.T) {
		data := CommentData{Name: "", Email: "nope", Body: "ok"}
		fields := data.InvalidFields()
		assert.True(t, fields["name"])
		assert.True(t, fields["email"])
		assert.False(t, fields["body"])
	})

	t.Run("valid data has no invalid fields", func(t *testing.T) {
		data := CommentData{Name: "Jane", Email: "jane@example.com", Body: "hello"}
		assert.Nil(t, data.InvalidFields())
	})

	t.Run("body too long", func(t *testing.T) {
		data := CommentData{Name: "Jane", Email: "jane@example.com", Body: strings.Repeat("a", 1001)}
		assert.True(t, data.InvalidFields()["body"])
	})

	t.Run("for post", func(t *testing.T) {
		data := CommentData{Name: "Jane", Email: "jane@example.com", Body: "hello"}
		req := data.ForPost(7)
		assert.NoError(t, req.Validate())

		comment := req.Comment()
		assert.Equal(t, 7, comment.PostID)
		assert.Equal(t, "Jane", comment.Name)
		assert.Equal(t, "jane@example.com", comment.Email)
		assert.Equal(t, "hello", comment.Body)
	})

	t.Run("request without post", func(t *testing.T) {
		data := CommentData{Name: "Jane", Email: "jane@example.com", Body: "hello"}
		assert.Error(t, data.ForPost(0).Validate())
	})
}
