// Package services – RatesService
//
// This file implements the RatesService, which exposes the exchange rates
// shown on the storefront (currency conversion and the gram gold price)
// and lets the admin panel upsert a rate per currency code.
package services

import (
	"context"
	"strings"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/storage"
)

// RatesService provides exchange-rate operations on top of a storage
// backend. Currency codes are normalized to upper case so "usd" and "USD"
// address the same rate.
type RatesService struct {
	// Store is the pluggable persistence backend.
	Store storage.Storage
}

// NewRatesService constructs a RatesService over the given backend.
func NewRatesService(store storage.Storage) *RatesService {
	return &RatesService{Store: store}
}

// List returns every stored rate ordered by currency code.
func (s *RatesService) List(ctx context.Context) ([]domain.ExchangeRate, error) {
	return s.Store.GetExchangeRates(ctx)
}

// Get returns the rate for one currency.
func (s *RatesService) Get(ctx context.Context, currency string) (*domain.ExchangeRate, error) {
	r, err := s.Store.GetExchangeRateByCurrency(ctx, normalizeCurrency(currency))
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRateNotFound
	}
	return r, nil
}

// Update upserts the rate for a currency. A new currency code creates a
// fresh rate record.
func (s *RatesService) Update(ctx context.Context, currency string, in schema.UpdateExchangeRate) (*domain.ExchangeRate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Store.UpdateExchangeRate(ctx, normalizeCurrency(currency), in.Rate)
}

func normalizeCurrency(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}
