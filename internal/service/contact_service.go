package service

import (
	"context"

	"github.com/creativemarketingpro/backend/internal/model"
	"github.com/creativemarketingpro/backend/pkg/contactform"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates in, stamps the creation time, and stores the message.
	// A rejected submission returns *ValidationError and stores nothing.
	Submit(ctx context.Context, in contactform.Input) (*model.ContactMessage, error)
}

// ValidationError reports the fields that failed server-side validation.
type ValidationError struct {
	Fields contactform.FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

func (e *ValidationError) Unwrap() error { return e.Fields }
