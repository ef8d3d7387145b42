package service

import (
	"context"

	"github.com/folio/backend/internal/contract"
	"github.com/folio/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates the input and stores it as a new contact message.
	// The returned message carries the id and created_at assigned by the store.
	// A *contract.ValidationError is returned for invalid input.
	Submit(ctx context.Context, in contract.SubmissionInput) (*model.ContactMessage, error)
}
