// Package contactform holds the contact form schema shared by the intake
// endpoint and the submitter. Both sides call the same Validator so the rules
// cannot drift apart.
package contactform

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field names as they appear on the wire.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

var fieldMessages = map[string]string{
	FieldName:    "Name must be at least 2 characters",
	FieldEmail:   "Please enter a valid email address",
	FieldMessage: "Message must be at least 10 characters",
}

// Input is the raw form payload, either typed by a visitor or decoded from a
// request body.
type Input struct {
	Name    string `json:"name" validate:"min=2"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"min=10"`
}

// Submission is an Input that passed validation.
type Submission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// FieldError is a validation failure scoped to one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is an ordered list of field failures. Order follows Fields.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "contactform: " + strings.Join(parts, "; ")
}

// For returns the message recorded for field, if any.
func (fe FieldErrors) For(field string) (string, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

// Validator applies the contact form rules. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate checks in against the schema. On success the returned FieldErrors
// is nil; otherwise the Submission is the zero value.
func (v *Validator) Validate(in Input) (Submission, FieldErrors) {
	err := v.validate.Struct(in)
	if err == nil {
		return Submission{
			Name:    in.Name,
			Email:   in.Email,
			Subject: in.Subject,
			Message: in.Message,
		}, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError only happens for non-struct input.
		panic(err)
	}

	var out FieldErrors
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		msg, ok := fieldMessages[field]
		if !ok {
			msg = "Invalid value"
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return Submission{}, out
}

var defaultValidator = NewValidator()

// Validate checks in with a package-level Validator.
func Validate(in Input) (Submission, FieldErrors) {
	return defaultValidator.Validate(in)
}
