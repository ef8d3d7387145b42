package contactclient

import (
	"context"
	"errors"
	"sync"

	"github.com/folio/backend/internal/contract"
	"github.com/folio/backend/internal/model"
)

// ErrNoClient is returned by Submit on a form created without a client.
var ErrNoClient = errors.New("contactclient: form has no client")

// ErrInFlight is returned when Submit is called while another submission
// from the same form has not resolved.
var ErrInFlight = errors.New("contactclient: submission already in flight")

// State is the form's submission state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Notification is the transient message shown after a submission.
type Notification struct {
	Title       string
	Description string
	Destructive bool
}

const (
	successTitle       = "Message Sent!"
	successDescription = "Thanks for reaching out. I'll get back to you soon."
	failureTitle       = "Error sending message"
)

// submitter is the part of Client a Form needs.
type submitter interface {
	Submit(ctx context.Context, in contract.SubmissionInput) (*model.ContactMessage, error)
}

// Form is one contact form instance. At most one submission is in flight
// at a time; the form is safe for concurrent use.
type Form struct {
	client submitter

	mu           sync.Mutex
	values       contract.SubmissionInput
	fieldErrors  map[string]string
	state        State
	notification *Notification
}

// NewForm creates an empty form that submits through client. A nil client
// yields a form whose Submit returns ErrNoClient.
func NewForm(client *Client) *Form {
	f := &Form{}
	if client != nil {
		f.client = client
	}
	return f
}

// Set replaces the form's field values and clears field errors.
func (f *Form) Set(values contract.SubmissionInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = values
	f.fieldErrors = nil
}

// Values returns the current field values.
func (f *Form) Values() contract.SubmissionInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// FieldErrors returns the inline error per field from the last validation.
func (f *Form) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		out[k] = v
	}
	return out
}

// State returns the current submission state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Busy reports whether the submit control should be disabled.
func (f *Form) Busy() bool {
	return f.State() == StateSubmitting
}

// Notification returns the last notification, or nil.
func (f *Form) Notification() *Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.notification == nil {
		return nil
	}
	n := *f.notification
	return &n
}

// Submit validates the current values and, if they pass, sends them.
//
// Validation failures populate FieldErrors and return the contract's
// *ValidationError without any request. On success the fields are reset
// and a confirmation notification is set. On failure the fields are kept
// and a destructive notification carries the error message.
func (f *Form) Submit(ctx context.Context) (*model.ContactMessage, error) {
	f.mu.Lock()
	if f.client == nil {
		f.mu.Unlock()
		return nil, ErrNoClient
	}
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return nil, ErrInFlight
	}
	in := f.values
	if err := in.Validate(); err != nil {
		f.fieldErrors = fieldErrorMap(err)
		f.mu.Unlock()
		return nil, err
	}
	f.fieldErrors = nil
	f.state = StateSubmitting
	f.mu.Unlock()

	msg, err := f.client.Submit(ctx, in)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateFailed
		f.notification = &Notification{
			Title:       failureTitle,
			Description: userMessage(err),
			Destructive: true,
		}
		return nil, err
	}
	f.state = StateSucceeded
	f.values = contract.SubmissionInput{}
	f.notification = &Notification{Title: successTitle, Description: successDescription}
	return msg, nil
}

func fieldErrorMap(err error) map[string]string {
	var ve *contract.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve.Fields))
	for _, fe := range ve.Fields {
		out[fe.Field] = fe.Message
	}
	return out
}

// userMessage maps any submit error to the text shown in the notification.
func userMessage(err error) string {
	var se *SubmitError
	if errors.As(err, &se) {
		return se.Message
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return MessageNetwork
	}
	return MessageFailed
}
