package service

import (
	"context"
	"fmt"

	"github.com/folio/backend/internal/contract"
	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

// Submit re-validates the input and persists it. Timestamps are left to the
// database; nothing supplied by the caller reaches id or created_at.
func (s *contactServiceImpl) Submit(ctx context.Context, in contract.SubmissionInput) (*model.ContactMessage, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	msg := &model.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}
	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, fmt.Errorf("save contact message: %w", err)
	}
	return msg, nil
}
