// Package storage defines the persistence contract shared by every backend.
// Three interchangeable implementations exist: memory (process-local maps),
// sqlstore (GORM over SQLite or Postgres), and mongostore (MongoDB
// collections). Handlers and services depend only on the Storage interface;
// the active backend is selected once at startup from configuration.
//
// Absence conventions (uniform across backends):
//   - single-entity reads return (nil, nil) when the record does not exist;
//   - updates of a missing id return ErrNotFound;
//   - deletes of a missing id return (false, nil), never an error;
//   - singleton updates with no existing record create it (upsert).
package storage

import (
	"context"
	"errors"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
)

// Sentinel errors returned by Storage implementations.
var (
	// ErrNotFound reports an update against an id that does not exist.
	// Reads signal absence with a nil record instead.
	ErrNotFound = errors.New("record not found")

	// ErrUsernameTaken reports a CreateUser call whose username already
	// exists. Every backend checks before inserting; the relational
	// backend additionally carries a unique index.
	ErrUsernameTaken = errors.New("username already taken")
)

// Storage is the single seam the rest of the system depends on. All
// operations are expressed in entity-level terms; no query language leaks
// through. Implementations must make every completed mutation visible to
// subsequent reads and must be safe for concurrent use.
type Storage interface {
	// Products. GetProducts and GetProductsByCategory return only records
	// with IsActive == "true"; GetAllProducts is the unfiltered admin view.
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in schema.InsertProduct) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in schema.UpdateProduct) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)

	// Users. CreateUser expects the password to be hashed already.
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, in schema.InsertUser) (*domain.User, error)

	// Singletons: at most one logical record each. Get before the first
	// update returns (nil, nil); update creates on first write and merges
	// afterwards.
	GetContactInfo(ctx context.Context) (*domain.ContactInfo, error)
	UpdateContactInfo(ctx context.Context, in schema.UpdateContactInfo) (*domain.ContactInfo, error)
	GetAboutInfo(ctx context.Context) (*domain.AboutInfo, error)
	UpdateAboutInfo(ctx context.Context, in schema.UpdateAboutInfo) (*domain.AboutInfo, error)
	GetHomepageInfo(ctx context.Context) (*domain.HomepageInfo, error)
	UpdateHomepageInfo(ctx context.Context, in schema.UpdateHomepageInfo) (*domain.HomepageInfo, error)

	// Messages. GetMessages returns newest-first by CreatedAt.
	CreateMessage(ctx context.Context, in schema.InsertMessage) (*domain.Message, error)
	GetMessages(ctx context.Context) ([]domain.Message, error)
	UpdateMessageReadStatus(ctx context.Context, id, isRead string) (*domain.Message, error)
	DeleteMessage(ctx context.Context, id string) (bool, error)

	// Exchange rates, keyed by currency code. UpdateExchangeRate upserts.
	GetExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
	GetExchangeRateByCurrency(ctx context.Context, currency string) (*domain.ExchangeRate, error)
	UpdateExchangeRate(ctx context.Context, currency, rate string) (*domain.ExchangeRate, error)

	// Ping verifies the backing store is reachable; Close releases it.
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
