// Package services – InboxService
//
// This file implements the InboxService, which handles contact-form
// submissions from the public storefront and the admin-side inbox:
// listing newest-first, toggling read status, and deletion.
package services

import (
	"context"
	"errors"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/storage"
)

// InboxService provides contact-message operations on top of a storage
// backend.
type InboxService struct {
	// Store is the pluggable persistence backend.
	Store storage.Storage
}

// NewInboxService constructs an InboxService over the given backend.
func NewInboxService(store storage.Storage) *InboxService {
	return &InboxService{Store: store}
}

// Submit validates and stores a contact-form submission. The server
// assigns the id, timestamp, and the initial unread status.
func (s *InboxService) Submit(ctx context.Context, in schema.InsertMessage) (*domain.Message, error) {
	in, err := in.Validate()
	if err != nil {
		return nil, err
	}
	return s.Store.CreateMessage(ctx, in)
}

// List returns every message, newest first.
func (s *InboxService) List(ctx context.Context) ([]domain.Message, error) {
	return s.Store.GetMessages(ctx)
}

// SetReadStatus marks a message read or unread. isRead must be the literal
// string "true" or "false".
func (s *InboxService) SetReadStatus(ctx context.Context, id, isRead string) (*domain.Message, error) {
	if isRead != domain.FlagTrue && isRead != domain.FlagFalse {
		return nil, ErrInvalidFlag
	}
	m, err := s.Store.UpdateMessageReadStatus(ctx, id, isRead)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a message by id.
func (s *InboxService) Delete(ctx context.Context, id string) error {
	ok, err := s.Store.DeleteMessage(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMessageNotFound
	}
	return nil
}
