package components

import (
	"context"
	"errors"
	"io"
	"maps"
	"sync"

	"commentboard/app/models"
)

var (
	// ErrFormInvalid is returned when a submission fails validation. The
	// offending fields are available through NewCommentForm.Errors.
	ErrFormInvalid = errors.New("comment form has invalid fields")
	// ErrSubmitting is returned when a submission is already in flight.
	ErrSubmitting = errors.New("comment form is already submitting")
)

// NewCommentForm holds the values and field errors of the write-comment
// form.
type NewCommentForm struct {
	mu         sync.Mutex
	values     models.CommentData
	errors     map[string]bool
	submitting bool
}

// FormView is a snapshot of the form for rendering.
type FormView struct {
	Action     string
	Values     models.CommentData
	Errors     map[string]bool
	Submitting bool
}

// Submit validates data and hands it to onSubmit. Name and email survive a
// successful submission so the author can write again; the body is cleared.
func (f *NewCommentForm) Submit(ctx context.Context, data models.CommentData, onSubmit func(context.Context, models.CommentData) error) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitting
	}
	data.Normalize()
	f.values = data
	f.errors = data.InvalidFields()
	if len(f.errors) > 0 {
		f.mu.Unlock()
		return ErrFormInvalid
	}
	f.submitting = true
	f.mu.Unlock()

	err := onSubmit(ctx, data)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err == nil {
		f.values.Body = ""
	}
	return err
}

// Reset clears values and errors.
func (f *NewCommentForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = models.CommentData{}
	f.errors = nil
}

// Values returns the current field values.
func (f *NewCommentForm) Values() models.CommentData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns the fields that failed the last validation.
func (f *NewCommentForm) Errors() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errors)
}

// Submitting reports whether a submission is in flight.
func (f *NewCommentForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func (f *NewCommentForm) view(action string) FormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormView{
		Action:     action,
		Values:     f.values,
		Errors:     maps.Clone(f.errors),
		Submitting: f.submitting,
	}
}

// Render writes the form posting to action.
func (f *NewCommentForm) Render(w io.Writer, action string) error {
	return templates.ExecuteTemplate(w, "NewCommentForm", f.view(action))
}
