package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/creativemarketingpro/backend/internal/model"
	"github.com/creativemarketingpro/backend/internal/service"
	"github.com/creativemarketingpro/backend/pkg/contactform"
)

const maxBodyBytes = 64 << 10

var errTrailingData = errors.New("unexpected data after JSON body")

// Response messages for POST /api/contact.
const (
	msgSent           = "Message sent successfully"
	msgValidation     = "Validation error"
	msgInvalidBody    = "Invalid request body"
	msgSubmitFailed   = "Failed to send message. Please try again later."
	msgExpectedString = "Expected string"
)

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// contactResponse is the envelope for every POST /api/contact reply.
type contactResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Data    *model.ContactMessage   `json:"data,omitempty"`
	Errors  contactform.FieldErrors `json:"errors,omitempty"`
}

// Submit handles POST /api/contact.
// The body is validated here regardless of any client-side checks.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	in, typeErrs, err := decodeContactInput(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, contactResponse{Message: msgInvalidBody})
		return
	}
	if len(typeErrs) > 0 {
		_, fieldErrs := contactform.Validate(in)
		writeJSON(w, http.StatusBadRequest, contactResponse{
			Message: msgValidation,
			Errors:  mergeFieldErrors(typeErrs, fieldErrs),
		})
		return
	}

	msg, err := h.contactService.Submit(r.Context(), in)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			slog.InfoContext(r.Context(), "contact submission rejected", "fields", len(verr.Fields))
			writeJSON(w, http.StatusBadRequest, contactResponse{
				Message: msgValidation,
				Errors:  verr.Fields,
			})
			return
		}

		slog.ErrorContext(r.Context(), "error submitting contact form", "error", err)
		writeJSON(w, http.StatusInternalServerError, contactResponse{Message: msgSubmitFailed})
		return
	}

	slog.InfoContext(r.Context(), "contact message stored", "id", msg.ID)
	writeJSON(w, http.StatusCreated, contactResponse{
		Success: true,
		Message: msgSent,
		Data:    msg,
	})
}

// decodeContactInput reads exactly one JSON object from body. Keys match the
// form field names exactly; unknown keys are ignored. A form field that is
// present but not a string (or null) is reported in the returned FieldErrors
// and left empty in the Input. The error is non-nil only for a body that is
// not a single JSON object.
func decodeContactInput(body io.Reader) (contactform.Input, contactform.FieldErrors, error) {
	var in contactform.Input
	var raw map[string]json.RawMessage

	dec := json.NewDecoder(body)
	if err := dec.Decode(&raw); err != nil {
		return in, nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return in, nil, errTrailingData
	}

	var typeErrs contactform.FieldErrors
	values := make(map[string]string, len(contactform.Fields))
	for _, field := range contactform.Fields {
		v, ok := raw[field]
		if !ok {
			continue
		}
		var s *string
		if err := json.Unmarshal(v, &s); err != nil {
			typeErrs = append(typeErrs, contactform.FieldError{Field: field, Message: msgExpectedString})
			continue
		}
		if s != nil {
			values[field] = *s
		}
	}

	in.Name = values[contactform.FieldName]
	in.Email = values[contactform.FieldEmail]
	in.Subject = values[contactform.FieldSubject]
	in.Message = values[contactform.FieldMessage]
	return in, typeErrs, nil
}

// mergeFieldErrors combines type errors with rule errors, one entry per field
// in form order. A type error wins over a rule error on the same field.
func mergeFieldErrors(typeErrs, ruleErrs contactform.FieldErrors) contactform.FieldErrors {
	var out contactform.FieldErrors
	for _, field := range contactform.Fields {
		if msg, ok := typeErrs.For(field); ok {
			out = append(out, contactform.FieldError{Field: field, Message: msg})
		} else if msg, ok := ruleErrs.For(field); ok {
			out = append(out, contactform.FieldError{Field: field, Message: msg})
		}
	}
	return out
}
