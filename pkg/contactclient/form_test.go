package contactclient_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativemarketingpro/backend/pkg/contactclient"
	"github.com/creativemarketingpro/backend/pkg/contactform"
)

type fakeSubmitter struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	err     error
}

func (f *fakeSubmitter) Submit(ctx context.Context, in contactform.Input) (*contactclient.StoredMessage, error) {
	f.calls.Add(1)
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &contactclient.StoredMessage{ID: "abc", Name: in.Name, Email: in.Email, Subject: in.Subject, Message: in.Message}, nil
}

func fillForm(t *testing.T, form *contactclient.Form, in contactform.Input) {
	t.Helper()
	require.NoError(t, form.Set(contactform.FieldName, in.Name))
	require.NoError(t, form.Set(contactform.FieldEmail, in.Email))
	require.NoError(t, form.Set(contactform.FieldSubject, in.Subject))
	require.NoError(t, form.Set(contactform.FieldMessage, in.Message))
}

func TestForm_InvalidBlocksSubmission(t *testing.T) {
	sub := &fakeSubmitter{}
	toaster := contactclient.NewToaster(0)
	form := contactclient.NewForm(sub, toaster)

	in := validInput()
	in.Name = "J"
	fillForm(t, form, in)

	_, err := form.Submit(context.Background())

	require.ErrorIs(t, err, contactclient.ErrInvalid)
	assert.Equal(t, int32(0), sub.calls.Load())
	msg, ok := form.Errors().For(contactform.FieldName)
	assert.True(t, ok)
	assert.Equal(t, "Name must be at least 2 characters", msg)
	assert.Equal(t, contactclient.StatusIdle, form.Status())
	assert.Equal(t, in, form.Values())
	assert.Equal(t, 0, toaster.Shown())
}

func TestForm_SetClearsFieldError(t *testing.T) {
	form := contactclient.NewForm(&fakeSubmitter{}, nil)
	_, err := form.Submit(context.Background())
	require.ErrorIs(t, err, contactclient.ErrInvalid)
	require.Len(t, form.Errors(), 3)

	require.NoError(t, form.Set(contactform.FieldName, "Jo"))

	_, ok := form.Errors().For(contactform.FieldName)
	assert.False(t, ok)
	assert.Len(t, form.Errors(), 2)
	assert.Error(t, form.Set("phone", "123"))
}

func TestForm_SuccessResetsAndNotifiesOnce(t *testing.T) {
	sub := &fakeSubmitter{}
	toaster := contactclient.NewToaster(0)
	form := contactclient.NewForm(sub, toaster)
	fillForm(t, form, validInput())

	stored, err := form.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "abc", stored.ID)
	assert.Equal(t, int32(1), sub.calls.Load())
	assert.Equal(t, contactform.Input{}, form.Values())
	assert.Empty(t, form.Errors())
	assert.Equal(t, contactclient.StatusSucceeded, form.Status())
	assert.Equal(t, contactclient.LabelIdle, form.SubmitLabel())

	assert.Equal(t, 1, toaster.Shown())
	n, ok := toaster.Current()
	require.True(t, ok)
	assert.Equal(t, contactclient.KindSuccess, n.Kind)
	assert.Equal(t, "Message sent!", n.Title)
	assert.Equal(t, "I'll get back to you as soon as possible.", n.Description)
}

func TestForm_FailureKeepsValues(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		description string
		fieldErrors int
	}{
		{
			name:        "server message",
			err:         &contactclient.APIError{StatusCode: 500, Message: "Failed to send message. Please try again later."},
			description: "Failed to send message. Please try again later.",
		},
		{
			name:        "no server message",
			err:         &contactclient.APIError{StatusCode: 502},
			description: contactclient.ErrorFallback,
		},
		{
			name:        "network failure",
			err:         errors.New("dial tcp: connection refused"),
			description: contactclient.ErrorFallback,
		},
		{
			name: "server validation",
			err: &contactclient.APIError{
				StatusCode: 400,
				Message:    "Validation error",
				Errors:     contactform.FieldErrors{{Field: "email", Message: "Please enter a valid email address"}},
			},
			description: "Validation error",
			fieldErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &fakeSubmitter{err: tt.err}
			toaster := contactclient.NewToaster(0)
			form := contactclient.NewForm(sub, toaster)
			fillForm(t, form, validInput())

			_, err := form.Submit(context.Background())

			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, validInput(), form.Values())
			assert.Equal(t, contactclient.StatusFailed, form.Status())
			assert.Len(t, form.Errors(), tt.fieldErrors)

			n, ok := toaster.Current()
			require.True(t, ok)
			assert.Equal(t, contactclient.KindError, n.Kind)
			assert.Equal(t, "Error sending message", n.Title)
			assert.Equal(t, tt.description, n.Description)
		})
	}
}

func TestForm_PendingBlocksResubmission(t *testing.T) {
	sub := &fakeSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	form := contactclient.NewForm(sub, contactclient.NewToaster(0))
	fillForm(t, form, validInput())

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()
	<-sub.started

	assert.Equal(t, contactclient.StatusPending, form.Status())
	assert.True(t, form.SubmitDisabled())
	assert.Equal(t, "Sending...", form.SubmitLabel())

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, contactclient.ErrInProgress)

	close(sub.release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), sub.calls.Load())
	assert.False(t, form.SubmitDisabled())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", contactclient.StatusIdle.String())
	assert.Equal(t, "pending", contactclient.StatusPending.String())
	assert.Equal(t, "succeeded", contactclient.StatusSucceeded.String())
	assert.Equal(t, "failed", contactclient.StatusFailed.String())
}
