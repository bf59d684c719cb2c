package contactclient

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/creativemarketingpro/backend/pkg/contactform"
)

// Toast copy shown for each outcome.
const (
	SuccessTitle       = "Message sent!"
	SuccessDescription = "I'll get back to you as soon as possible."
	ErrorTitle         = "Error sending message"
	ErrorFallback      = "Please try again later."
)

// Submit button labels.
const (
	LabelIdle    = "Send Message"
	LabelPending = "Sending..."
)

var (
	// ErrInvalid is returned when local validation blocks the submission.
	ErrInvalid = errors.New("contactclient: form is invalid")
	// ErrInProgress is returned when a submission is already in flight.
	ErrInProgress = errors.New("contactclient: submission already in progress")
)

// Status is the state of the last submission.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Submitter sends a validated form to the intake endpoint. *Client implements it.
type Submitter interface {
	Submit(ctx context.Context, in contactform.Input) (*StoredMessage, error)
}

// Form holds the contact form state for one page instance.
type Form struct {
	submitter Submitter
	notifier  Notifier
	validator *contactform.Validator

	mu     sync.Mutex
	values contactform.Input
	errs   contactform.FieldErrors
	status Status
}

// NewForm returns an empty form that submits through s and reports outcomes to n.
func NewForm(s Submitter, n Notifier) *Form {
	return &Form{
		submitter: s,
		notifier:  n,
		validator: contactform.NewValidator(),
	}
}

// Set updates one field by its wire name and clears that field's error.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case contactform.FieldName:
		f.values.Name = value
	case contactform.FieldEmail:
		f.values.Email = value
	case contactform.FieldSubject:
		f.values.Subject = value
	case contactform.FieldMessage:
		f.values.Message = value
	default:
		return fmt.Errorf("contactclient: unknown field %q", field)
	}

	kept := f.errs[:0:0]
	for _, e := range f.errs {
		if e.Field != field {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	f.errs = kept
	return nil
}

// Values returns the current field values.
func (f *Form) Values() contactform.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns the inline field errors from the last submit attempt.
func (f *Form) Errors() contactform.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append(contactform.FieldErrors(nil), f.errs...)
}

// Status returns the state of the last submission.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// SubmitDisabled reports whether the submit button should be disabled.
func (f *Form) SubmitDisabled() bool {
	return f.Status() == StatusPending
}

// SubmitLabel is the submit button text for the current state.
func (f *Form) SubmitLabel() string {
	if f.SubmitDisabled() {
		return LabelPending
	}
	return LabelIdle
}

// Submit validates the form and, if valid, sends it once.
//
// Invalid input records inline errors and returns ErrInvalid without any
// network call. On success the fields are cleared and a success toast is
// shown. On failure the values are kept and an error toast carries the
// server message, or ErrorFallback when there is none.
func (f *Form) Submit(ctx context.Context) (*StoredMessage, error) {
	f.mu.Lock()
	if f.status == StatusPending {
		f.mu.Unlock()
		return nil, ErrInProgress
	}
	if _, errs := f.validator.Validate(f.values); errs != nil {
		f.errs = errs
		f.mu.Unlock()
		return nil, errors.Join(ErrInvalid, errs)
	}
	in := f.values
	f.errs = nil
	f.status = StatusPending
	f.mu.Unlock()

	stored, err := f.submitter.Submit(ctx, in)

	f.mu.Lock()
	var toast Notification
	if err != nil {
		f.status = StatusFailed
		toast = Notification{Kind: KindError, Title: ErrorTitle, Description: ErrorFallback}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if apiErr.Message != "" {
				toast.Description = apiErr.Message
			}
			f.errs = append(contactform.FieldErrors(nil), apiErr.Errors...)
		}
	} else {
		f.status = StatusSucceeded
		f.values = contactform.Input{}
		toast = Notification{Kind: KindSuccess, Title: SuccessTitle, Description: SuccessDescription}
	}
	f.mu.Unlock()

	if f.notifier != nil {
		f.notifier.Notify(toast)
	}
	return stored, err
}
