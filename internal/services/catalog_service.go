// Package services – CatalogService
//
// This file implements the CatalogService, which manages the product
// catalog: public listings (active products only), the admin-facing full
// listing, category filtering, and the create/update/delete lifecycle.
// Payload validation happens here so that every storage backend receives
// the same normalized input.
package services

import (
	"context"
	"errors"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/storage"
)

// CatalogService provides product catalog operations on top of a storage
// backend. Predictable failures are returned as service-level errors
// (ErrProductNotFound, ErrInvalidCategory) so handlers can map them to
// HTTP results consistently.
type CatalogService struct {
	// Store is the pluggable persistence backend.
	Store storage.Storage
}

// NewCatalogService constructs a CatalogService over the given backend.
func NewCatalogService(store storage.Storage) *CatalogService {
	return &CatalogService{Store: store}
}

// ListActive returns the products visible to the public storefront.
func (s *CatalogService) ListActive(ctx context.Context) ([]domain.Product, error) {
	return s.Store.GetProducts(ctx)
}

// ListAll returns every product including inactive ones. Admin use only.
func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.Store.GetAllProducts(ctx)
}

// Get returns a single product by id.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.Store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// ListByCategory returns the active products in one category. Unknown
// categories are rejected before touching storage.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if !domain.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	return s.Store.GetProductsByCategory(ctx, category)
}

// Create validates the payload, applies defaults, and inserts a product.
func (s *CatalogService) Create(ctx context.Context, in schema.InsertProduct) (*domain.Product, error) {
	in, err := in.Validate()
	if err != nil {
		return nil, err
	}
	return s.Store.CreateProduct(ctx, in)
}

// Update merges the supplied fields onto an existing product.
func (s *CatalogService) Update(ctx context.Context, id string, in schema.UpdateProduct) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := s.Store.UpdateProduct(ctx, id, in)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product by id.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	ok, err := s.Store.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}
