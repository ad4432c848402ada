// Package memory implements the storage contract over process-local maps.
// It is volatile by design: state lives for the lifetime of the process and
// is used for development, demos, and the shared contract tests. All
// operations copy records on the way in and out so callers can never alias
// internal state, and a single RWMutex guards every collection.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/storage"
)

// Store is the in-memory backend. The zero value is not usable; construct
// with New (seeded) or NewEmpty (blank, used by tests).
type Store struct {
	mu sync.RWMutex

	products map[string]domain.Product
	users    map[string]domain.User
	messages map[string]domain.Message
	rates    map[string]domain.ExchangeRate // keyed by currency

	contact  *domain.ContactInfo
	about    *domain.AboutInfo
	homepage *domain.HomepageInfo
}

var _ storage.Storage = (*Store)(nil)

// NewEmpty returns a blank in-memory store.
func NewEmpty() *Store {
	return &Store{
		products: make(map[string]domain.Product),
		users:    make(map[string]domain.User),
		messages: make(map[string]domain.Message),
		rates:    make(map[string]domain.ExchangeRate),
	}
}

// New returns an in-memory store pre-seeded with the sample catalog, the
// default singletons, and the default exchange rates. No admin user is
// seeded here; that is handled at startup so the password hash policy stays
// in one place.
func New() *Store {
	s := NewEmpty()
	ctx := context.Background()
	// Seeding a map-backed store cannot fail.
	_, _ = s.UpdateContactInfo(ctx, storage.DefaultContactInfo())
	_, _ = s.UpdateAboutInfo(ctx, storage.DefaultAboutInfo())
	_, _ = s.UpdateHomepageInfo(ctx, storage.DefaultHomepageInfo())
	for _, in := range storage.SampleProducts() {
		if normalized, err := in.Validate(); err == nil {
			_, _ = s.CreateProduct(ctx, normalized)
		}
	}
	for currency, rate := range storage.DefaultExchangeRates() {
		_, _ = s.UpdateExchangeRate(ctx, currency, rate)
	}
	return s
}

//
// Products
//

// GetProducts returns all active products.
func (s *Store) GetProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.IsActive == domain.FlagTrue {
			out = append(out, p)
		}
	}
	sortProducts(out)
	return out, nil
}

// GetAllProducts returns every product regardless of active state.
func (s *Store) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sortProducts(out)
	return out, nil
}

// GetProduct returns the product with the given id, or nil when absent.
func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetProductsByCategory returns active products in the given category.
func (s *Store) GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category && p.IsActive == domain.FlagTrue {
			out = append(out, p)
		}
	}
	sortProducts(out)
	return out, nil
}

// CreateProduct assigns a fresh id and stores the product.
func (s *Store) CreateProduct(ctx context.Context, in schema.InsertProduct) (*domain.Product, error) {
	p := domain.Product{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Category:       in.Category,
		Weight:         in.Weight,
		GoldKarat:      in.GoldKarat,
		ImageURL:       in.ImageURL,
		IsActive:       in.IsActive,
		HasWorkmanship: in.HasWorkmanship,
	}
	s.mu.Lock()
	s.products[p.ID] = p
	s.mu.Unlock()
	return &p, nil
}

// UpdateProduct merges the supplied fields onto an existing product.
func (s *Store) UpdateProduct(ctx context.Context, id string, in schema.UpdateProduct) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	in.Apply(&p)
	s.products[id] = p
	return &p, nil
}

// DeleteProduct removes a product, reporting whether one existed.
func (s *Store) DeleteProduct(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

//
// Users
//

// GetUser returns a user by id, or nil when absent.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetUserByUsername returns a user by its unique username, or nil when absent.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// CreateUser stores a new user, rejecting duplicate usernames.
func (s *Store) CreateUser(ctx context.Context, in schema.InsertUser) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == in.Username {
			return nil, storage.ErrUsernameTaken
		}
	}
	u := domain.User{
		ID:       uuid.NewString(),
		Username: in.Username,
		Password: in.Password,
		Role:     in.Role,
	}
	s.users[u.ID] = u
	return &u, nil
}

//
// Singletons
//

// GetContactInfo returns the contact singleton, or nil before first write.
func (s *Store) GetContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.contact == nil {
		return nil, nil
	}
	c := *s.contact
	return &c, nil
}

// UpdateContactInfo merges onto the contact singleton, creating it if absent.
func (s *Store) UpdateContactInfo(ctx context.Context, in schema.UpdateContactInfo) (*domain.ContactInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contact == nil {
		s.contact = &domain.ContactInfo{ID: domain.SingletonID}
	}
	in.Apply(s.contact)
	c := *s.contact
	return &c, nil
}

// GetAboutInfo returns the about singleton, or nil before first write.
func (s *Store) GetAboutInfo(ctx context.Context) (*domain.AboutInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.about == nil {
		return nil, nil
	}
	a := *s.about
	return &a, nil
}

// UpdateAboutInfo merges onto the about singleton, creating it if absent.
func (s *Store) UpdateAboutInfo(ctx context.Context, in schema.UpdateAboutInfo) (*domain.AboutInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.about == nil {
		s.about = &domain.AboutInfo{ID: domain.SingletonID}
	}
	in.Apply(s.about)
	a := *s.about
	return &a, nil
}

// GetHomepageInfo returns the homepage singleton, or nil before first write.
func (s *Store) GetHomepageInfo(ctx context.Context) (*domain.HomepageInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.homepage == nil {
		return nil, nil
	}
	h := *s.homepage
	return &h, nil
}

// UpdateHomepageInfo merges onto the homepage singleton, creating it if absent.
func (s *Store) UpdateHomepageInfo(ctx context.Context, in schema.UpdateHomepageInfo) (*domain.HomepageInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.homepage == nil {
		s.homepage = &domain.HomepageInfo{ID: domain.SingletonID}
	}
	in.Apply(s.homepage)
	h := *s.homepage
	return &h, nil
}

//
// Messages
//

// CreateMessage stores a contact-form submission with a fresh id, the
// current UTC time, and IsRead "false".
func (s *Store) CreateMessage(ctx context.Context, in schema.InsertMessage) (*domain.Message, error) {
	m := domain.Message{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Phone:     in.Phone,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
		IsRead:    domain.FlagFalse,
	}
	s.mu.Lock()
	s.messages[m.ID] = m
	s.mu.Unlock()
	return &m, nil
}

// GetMessages returns all messages, newest first.
func (s *Store) GetMessages(ctx context.Context) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Message, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// UpdateMessageReadStatus sets the IsRead flag of a message.
func (s *Store) UpdateMessageReadStatus(ctx context.Context, id, isRead string) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	m.IsRead = isRead
	s.messages[id] = m
	return &m, nil
}

// DeleteMessage removes a message, reporting whether one existed.
func (s *Store) DeleteMessage(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[id]; !ok {
		return false, nil
	}
	delete(s.messages, id)
	return true, nil
}

//
// Exchange rates
//

// GetExchangeRates returns all rates ordered by currency.
func (s *Store) GetExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ExchangeRate, 0, len(s.rates))
	for _, r := range s.rates {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

// GetExchangeRateByCurrency returns the rate for a currency, or nil.
func (s *Store) GetExchangeRateByCurrency(ctx context.Context, currency string) (*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rates[currency]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// UpdateExchangeRate upserts the rate for a currency.
func (s *Store) UpdateExchangeRate(ctx context.Context, currency, rate string) (*domain.ExchangeRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rates[currency]
	if !ok {
		r = domain.ExchangeRate{ID: uuid.NewString(), Currency: currency}
	}
	r.Rate = rate
	s.rates[currency] = r
	return &r, nil
}

// Ping always succeeds: there is no backing store to reach.
func (s *Store) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close(ctx context.Context) error { return nil }

// sortProducts orders products by name then id for stable listings.
func sortProducts(ps []domain.Product) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Name != ps[j].Name {
			return ps[i].Name < ps[j].Name
		}
		return ps[i].ID < ps[j].ID
	})
}
