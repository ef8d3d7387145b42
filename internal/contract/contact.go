// Package contract is the single definition of the contact submission shape
// shared by the HTTP handler and the submission client. Both sides validate
// with the same SubmissionInput.Validate so their acceptance rules cannot drift.
package contract

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/folio/backend/internal/model"
)

// Canonical user-facing messages for each outcome.
const (
	MessageInvalidInput     = "Invalid message data"
	MessageInternal         = "Internal server error"
	MessageMethodNotAllowed = "Method not allowed"
	MessageTooManyRequests  = "Too many requests"
)

// Operation binds an HTTP method to a fixed path.
type Operation struct {
	Method string
	Path   string
}

// SubmitContact is the one API operation: POST /api/contact.
var SubmitContact = Operation{Method: http.MethodPost, Path: "/api/contact"}

// Pattern returns the operation as a net/http ServeMux pattern ("POST /api/contact").
func (o Operation) Pattern() string {
	return o.Method + " " + o.Path
}

// URL joins the operation path onto a base URL such as "http://localhost:8080".
func (o Operation) URL(base string) string {
	return strings.TrimRight(base, "/") + o.Path
}

// SubmissionInput is the writable subset of a contact message.
// Unknown JSON keys (id, created_at, ...) are dropped on decode.
type SubmissionInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ErrorResponse is the body of both the 400 and 500 responses.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SuccessResponse is the body of a 200 response: the persisted record.
type SuccessResponse = model.ContactMessage

// FieldError describes one violated field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether the named field is among the failures.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate checks that name, email and message are all non-blank.
// Email is checked for presence only.
func (in SubmissionInput) Validate() error {
	var fields []FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(in.Email) == "" {
		fields = append(fields, FieldError{Field: "email", Message: "email is required"})
	}
	if strings.TrimSpace(in.Message) == "" {
		fields = append(fields, FieldError{Field: "message", Message: "message is required"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Parse decodes a JSON body and validates it. A body that is not exactly
// one JSON object of strings is reported as a ValidationError on the
// "body" field.
func Parse(r io.Reader) (SubmissionInput, error) {
	var in SubmissionInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return SubmissionInput{}, malformedBody()
	}
	if _, err := dec.Token(); err != io.EOF {
		return SubmissionInput{}, malformedBody()
	}
	if err := in.Validate(); err != nil {
		return SubmissionInput{}, err
	}
	return in, nil
}

func malformedBody() *ValidationError {
	return &ValidationError{Fields: []FieldError{
		{Field: "body", Message: "body must be a single JSON object with string fields"},
	}}
}

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
