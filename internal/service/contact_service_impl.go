package service

import (
	"context"
	"fmt"
	"time"

	"github.com/creativemarketingpro/backend/internal/model"
	"github.com/creativemarketingpro/backend/internal/repository"
	"github.com/creativemarketingpro/backend/pkg/contactform"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo      repository.ContactRepository
	validator *contactform.Validator
	now       func() time.Time
}

// ContactOption configures NewContactService.
type ContactOption func(*contactServiceImpl)

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) ContactOption {
	return func(s *contactServiceImpl) { s.now = now }
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository, opts ...ContactOption) ContactService {
	s := &contactServiceImpl{
		repo:      repo,
		validator: contactform.NewValidator(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit re-validates the input regardless of what the client checked, sets
// CreatedAt from the server clock, and appends the message to the store.
func (s *contactServiceImpl) Submit(ctx context.Context, in contactform.Input) (*model.ContactMessage, error) {
	sub, fieldErrs := s.validator.Validate(in)
	if fieldErrs != nil {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	msg, err := s.repo.CreateMessage(ctx, model.NewContactMessage{
		Name:      sub.Name,
		Email:     sub.Email,
		Subject:   sub.Subject,
		Message:   sub.Message,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}
	return msg, nil
}
