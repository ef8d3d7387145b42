package contactclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/folio/backend/internal/contract"
)

var validInput = contract.SubmissionInput{Name: "Jane Doe", Email: "jane@x.com", Message: "Hello"}

// newServer returns a test server that counts requests and answers with fn.
func newServer(t *testing.T, fn http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fn(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func asSubmitError(t *testing.T, err error) *SubmitError {
	t.Helper()
	var se *SubmitError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SubmitError, got %T: %v", err, err)
	}
	return se
}

func TestClient_Submit_Success(t *testing.T) {
	var gotMethod, gotPath, gotCT string
	var gotBody contract.SubmissionInput
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotCT = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		respond(http.StatusOK, `{"id":"abc","name":"Jane Doe","email":"jane@x.com","message":"Hello","created_at":"2026-10-16T09:00:00Z"}`)(w, r)
	})

	msg, err := New(srv.URL).Submit(context.Background(), validInput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/contact" {
		t.Errorf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotCT != "application/json" {
		t.Errorf("expected Content-Type application/json, got %q", gotCT)
	}
	if gotBody != validInput {
		t.Errorf("unexpected body %+v", gotBody)
	}
	if msg.ID != "abc" || msg.Name != "Jane Doe" || msg.CreatedAt.IsZero() {
		t.Errorf("unexpected message %+v", msg)
	}
}

// Scenario D: invalid input never reaches the network.
func TestClient_Submit_ValidationBlocksRequest(t *testing.T) {
	srv, calls := newServer(t, respond(http.StatusOK, `{}`))

	_, err := New(srv.URL).Submit(context.Background(), contract.SubmissionInput{Name: "Jane", Email: "jane@x.com"})

	var ve *contract.ValidationError
	if !errors.As(err, &ve) || !ve.Has("message") {
		t.Fatalf("expected message validation error, got %v", err)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("expected no HTTP request, got %d", n)
	}
}

func TestClient_Validate(t *testing.T) {
	c := New("http://unused")
	if err := c.Validate(validInput); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := c.Validate(contract.SubmissionInput{}); !contract.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestClient_Submit_ClientErrorMessage(t *testing.T) {
	srv, _ := newServer(t, respond(http.StatusBadRequest, `{"message":"Invalid message data"}`))

	_, err := New(srv.URL).Submit(context.Background(), validInput)

	se := asSubmitError(t, err)
	if se.Kind != KindRejected || se.Message != "Invalid message data" || se.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected error %+v", se)
	}
}

func TestClient_Submit_ServerErrorMessage(t *testing.T) {
	srv, _ := newServer(t, respond(http.StatusInternalServerError, `{"message":"Internal server error"}`))

	_, err := New(srv.URL).Submit(context.Background(), validInput)

	se := asSubmitError(t, err)
	if se.Message != "Internal server error" || se.StatusCode != http.StatusInternalServerError {
		t.Errorf("unexpected error %+v", se)
	}
}

func TestClient_Submit_UnrecognisedErrorBody(t *testing.T) {
	for _, body := range []string{`<html>bad gateway</html>`, `{"error":"x"}`, `{"message":""}`, ``} {
		srv, _ := newServer(t, respond(http.StatusBadGateway, body))

		_, err := New(srv.URL).Submit(context.Background(), validInput)

		se := asSubmitError(t, err)
		if se.Kind != KindServer || se.Message != MessageFailed {
			t.Errorf("body %q: unexpected error %+v", body, se)
		}
	}
}

func TestClient_Submit_MalformedSuccessBody(t *testing.T) {
	for _, body := range []string{`not json`, `{"ok":true}`} {
		srv, _ := newServer(t, respond(http.StatusOK, body))

		_, err := New(srv.URL).Submit(context.Background(), validInput)

		se := asSubmitError(t, err)
		if se.Kind != KindMalformed || se.Message != MessageFailed {
			t.Errorf("body %q: unexpected error %+v", body, se)
		}
	}
}

func TestClient_Submit_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Submit(context.Background(), validInput)

	se := asSubmitError(t, err)
	if se.Kind != KindTransport || se.Message != MessageNetwork {
		t.Errorf("unexpected error %+v", se)
	}
	if se.Unwrap() == nil {
		t.Error("expected underlying transport error")
	}
}

func TestClient_WithHTTPClient(t *testing.T) {
	var used atomic.Bool
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		used.Store(true)
		return http.DefaultTransport.RoundTrip(r)
	})}
	srv, _ := newServer(t, respond(http.StatusOK, `{"id":"x","name":"a","email":"b","message":"c","created_at":"2026-01-01T00:00:00Z"}`))

	if _, err := New(srv.URL, WithHTTPClient(hc)).Submit(context.Background(), validInput); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !used.Load() {
		t.Error("custom http client was not used")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
