// Package contactclient submits contact messages to the API and interprets
// the outcome. It validates with the same contract the server uses, so a
// request that would be rejected is never sent.
package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/folio/backend/internal/contract"
	"github.com/folio/backend/internal/model"
)

// User-facing failure messages.
const (
	MessageFailed  = "Failed to send message."
	MessageNetwork = "Network error"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// Kind classifies a failed submission.
type Kind int

const (
	// KindRejected is a non-2xx response carrying a {"message"} body.
	KindRejected Kind = iota + 1
	// KindServer is a non-2xx response without a usable message.
	KindServer
	// KindMalformed is a 2xx response whose body is not a contact message.
	KindMalformed
	// KindTransport is a failure to reach the server at all.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindServer:
		return "server"
	case KindMalformed:
		return "malformed"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// SubmitError is returned by Submit for every failure after validation.
// Message is safe to show to the user.
type SubmitError struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Client talks to one API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{baseURL: baseURL, httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate applies the shared contract. It never touches the network.
func (c *Client) Validate(in contract.SubmissionInput) error {
	return in.Validate()
}

// Submit validates in and posts it. Invalid input returns the contract's
// *ValidationError without a request; every other failure is a *SubmitError.
func (c *Client) Submit(ctx context.Context, in contract.SubmissionInput) (*model.ContactMessage, error) {
	if err := c.Validate(in); err != nil {
		return nil, err
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	op := contract.SubmitContact
	req, err := http.NewRequestWithContext(ctx, op.Method, op.URL(c.baseURL), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SubmitError{Kind: KindTransport, Message: MessageNetwork, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &SubmitError{Kind: KindTransport, Message: MessageNetwork, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp.StatusCode, raw)
	}

	msg, err := decodeContactMessage(raw)
	if err != nil {
		return nil, &SubmitError{Kind: KindMalformed, Message: MessageFailed, StatusCode: resp.StatusCode, Err: err}
	}
	return msg, nil
}

// errorFromResponse reads the {"message"} shape shared by the 400 and 500
// responses. A missing or empty message falls back to MessageFailed.
func errorFromResponse(status int, raw []byte) *SubmitError {
	var body contract.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return &SubmitError{Kind: KindRejected, Message: body.Message, StatusCode: status}
	}
	return &SubmitError{Kind: KindServer, Message: MessageFailed, StatusCode: status}
}

func decodeContactMessage(raw []byte) (*model.ContactMessage, error) {
	var msg model.ContactMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, err
	}
	if msg.ID == "" || msg.CreatedAt.IsZero() {
		return nil, errors.New("response is missing id or created_at")
	}
	return &msg, nil
}
