// Package services – ContentService
//
// This file implements the ContentService, which manages the three
// site-wide singleton records: contact details, the about page, and the
// homepage hero. Reads return nil when a record has never been written;
// updates are merge-upserts, so a PUT against a missing record creates it
// from the supplied fields.
package services

import (
	"context"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/storage"
)

// ContentService provides read and merge-update access to the singleton
// site content records.
type ContentService struct {
	// Store is the pluggable persistence backend.
	Store storage.Storage
}

// NewContentService constructs a ContentService over the given backend.
func NewContentService(store storage.Storage) *ContentService {
	return &ContentService{Store: store}
}

// Contact returns the contact singleton, or nil before the first write.
func (s *ContentService) Contact(ctx context.Context) (*domain.ContactInfo, error) {
	return s.Store.GetContactInfo(ctx)
}

// UpdateContact merges the supplied fields onto the contact singleton.
func (s *ContentService) UpdateContact(ctx context.Context, in schema.UpdateContactInfo) (*domain.ContactInfo, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Store.UpdateContactInfo(ctx, in)
}

// About returns the about singleton, or nil before the first write.
func (s *ContentService) About(ctx context.Context) (*domain.AboutInfo, error) {
	return s.Store.GetAboutInfo(ctx)
}

// UpdateAbout merges the supplied fields onto the about singleton.
func (s *ContentService) UpdateAbout(ctx context.Context, in schema.UpdateAboutInfo) (*domain.AboutInfo, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Store.UpdateAboutInfo(ctx, in)
}

// Homepage returns the homepage singleton, or nil before the first write.
func (s *ContentService) Homepage(ctx context.Context) (*domain.HomepageInfo, error) {
	return s.Store.GetHomepageInfo(ctx)
}

// UpdateHomepage merges the supplied fields onto the homepage singleton.
func (s *ContentService) UpdateHomepage(ctx context.Context, in schema.UpdateHomepageInfo) (*domain.HomepageInfo, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Store.UpdateHomepageInfo(ctx, in)
}
