package contract

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidate_AllFieldsPresent(t *testing.T) {
	in := SubmissionInput{Name: "Jane Doe", Email: "jane@x.com", Message: "Hello"}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		in     SubmissionInput
		fields []string
	}{
		{"empty name", SubmissionInput{Email: "jane@x.com", Message: "Hello"}, []string{"name"}},
		{"empty email", SubmissionInput{Name: "Jane", Message: "Hello"}, []string{"email"}},
		{"empty message", SubmissionInput{Name: "Jane", Email: "jane@x.com"}, []string{"message"}},
		{"blank name", SubmissionInput{Name: "   ", Email: "jane@x.com", Message: "Hello"}, []string{"name"}},
		{"all empty", SubmissionInput{}, []string{"name", "email", "message"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if len(ve.Fields) != len(tt.fields) {
				t.Fatalf("expected %d field errors, got %d: %v", len(tt.fields), len(ve.Fields), ve)
			}
			for i, f := range tt.fields {
				if ve.Fields[i].Field != f {
					t.Errorf("field %d: expected %q, got %q", i, f, ve.Fields[i].Field)
				}
				if !ve.Has(f) {
					t.Errorf("Has(%q) = false", f)
				}
			}
		})
	}
}

// Email is only checked for presence.
func TestValidate_EmailFormatNotChecked(t *testing.T) {
	in := SubmissionInput{Name: "Jane", Email: "not-an-email", Message: "Hello"}
	if err := in.Validate(); err != nil {
		t.Errorf("expected any non-empty email to pass, got %v", err)
	}
}

func TestParse_Valid(t *testing.T) {
	in, err := Parse(strings.NewReader(`{"name":"Jane Doe","email":"jane@x.com","message":"Hello"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Name != "Jane Doe" || in.Email != "jane@x.com" || in.Message != "Hello" {
		t.Errorf("unexpected input: %+v", in)
	}
}

func TestParse_IgnoresServerFields(t *testing.T) {
	body := `{"id":"x","created_at":"2000-01-01T00:00:00Z","name":"Jane","email":"j@x.com","message":"Hi"}`
	in, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in != (SubmissionInput{Name: "Jane", Email: "j@x.com", Message: "Hi"}) {
		t.Errorf("unexpected input: %+v", in)
	}
}

func TestParse_MalformedBody(t *testing.T) {
	for _, body := range []string{"{bad json", `{"name":1,"email":"a","message":"b"}`, ""} {
		_, err := Parse(strings.NewReader(body))
		if !IsValidationError(err) {
			t.Errorf("body %q: expected validation error, got %v", body, err)
		}
	}
}

func TestParse_TrailingData(t *testing.T) {
	bodies := []string{
		`{"name":"a","email":"b","message":"c"} not json at all`,
		`{"name":"a","email":"b","message":"c"}{"name":"x","email":"y","message":"z"}`,
		`{"name":"a","email":"b","message":"c"} 42`,
	}
	for _, body := range bodies {
		_, err := Parse(strings.NewReader(body))
		var ve *ValidationError
		if !errors.As(err, &ve) || !ve.Has("body") {
			t.Errorf("body %q: expected body validation error, got %v", body, err)
		}
	}
}

func TestParse_TrailingWhitespace(t *testing.T) {
	if _, err := Parse(strings.NewReader("{\"name\":\"a\",\"email\":\"b\",\"message\":\"c\"}\n\t ")); err != nil {
		t.Errorf("trailing whitespace should be accepted, got %v", err)
	}
}

func TestParse_EmptyField(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"name":"","email":"jane@x.com","message":"Hello"}`))
	var ve *ValidationError
	if !errors.As(err, &ve) || !ve.Has("name") {
		t.Fatalf("expected name validation error, got %v", err)
	}
}

func TestIsValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("submit: %w", &ValidationError{Fields: []FieldError{{Field: "name", Message: "x"}}})
	if !IsValidationError(err) {
		t.Error("expected wrapped validation error to be detected")
	}
	if IsValidationError(errors.New("other")) {
		t.Error("unexpected match for plain error")
	}
}

func TestSubmitContact_Descriptor(t *testing.T) {
	if got := SubmitContact.Pattern(); got != "POST /api/contact" {
		t.Errorf("Pattern() = %q", got)
	}
	if got := SubmitContact.URL("http://localhost:8080/"); got != "http://localhost:8080/api/contact" {
		t.Errorf("URL() = %q", got)
	}
}
