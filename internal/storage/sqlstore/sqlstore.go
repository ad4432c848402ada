// Relational implementation of the storage contract. Singleton and
// natural-key writes use single-statement ON CONFLICT upserts so concurrent
// updates cannot lose the race between a read and a write; everything else
// is plain row CRUD.
package sqlstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/storage"
)

// Store is the GORM-backed storage implementation.
type Store struct {
	db *gorm.DB
}

var _ storage.Storage = (*Store)(nil)

// New wraps an opened GORM handle (see OpenSQLite / OpenPostgres).
func New(db *gorm.DB) *Store { return &Store{db: db} }

//
// Products
//

// GetProducts returns all active products.
func (s *Store) GetProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := s.db.WithContext(ctx).
		Where("is_active = ?", domain.FlagTrue).
		Order("name ASC, id ASC").
		Find(&out).Error
	return out, err
}

// GetAllProducts returns every product regardless of active state.
func (s *Store) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&out).Error
	return out, err
}

// GetProduct returns the product with the given id, or nil when absent.
func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProductsByCategory returns active products in the given category.
func (s *Store) GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	err := s.db.WithContext(ctx).
		Where("category = ? AND is_active = ?", category, domain.FlagTrue).
		Order("name ASC, id ASC").
		Find(&out).Error
	return out, err
}

// CreateProduct inserts a new product row with a fresh id.
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
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct merges the supplied fields onto an existing row.
func (s *Store) UpdateProduct(ctx context.Context, id string, in schema.UpdateProduct) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	in.Apply(&p)
	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes a row, reporting whether one existed.
func (s *Store) DeleteProduct(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

//
// Users
//

// GetUser returns a user by id, or nil when absent.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername returns a user by its unique username, or nil when absent.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user. Duplicate usernames are rejected both by a
// pre-check and by the unique index, so the error is stable regardless of
// interleaving.
func (s *Store) CreateUser(ctx context.Context, in schema.InsertUser) (*domain.User, error) {
	existing, err := s.GetUserByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, storage.ErrUsernameTaken
	}
	u := domain.User{
		ID:       uuid.NewString(),
		Username: in.Username,
		Password: in.Password,
		Role:     in.Role,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return nil, storage.ErrUsernameTaken
		}
		return nil, err
	}
	return &u, nil
}

//
// Singletons
//

// GetContactInfo returns the contact singleton, or nil before first write.
func (s *Store) GetContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	var c domain.ContactInfo
	err := s.db.WithContext(ctx).First(&c, "id = ?", domain.SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateContactInfo upserts the contact singleton in one statement.
func (s *Store) UpdateContactInfo(ctx context.Context, in schema.UpdateContactInfo) (*domain.ContactInfo, error) {
	row := domain.ContactInfo{ID: domain.SingletonID}
	in.Apply(&row)
	assign := map[string]any{}
	if in.Address != nil {
		assign["address"] = *in.Address
	}
	if in.Phone != nil {
		assign["phone"] = *in.Phone
	}
	if in.WorkingHours != nil {
		assign["working_hours"] = *in.WorkingHours
	}
	if err := s.upsertSingleton(ctx, &row, assign); err != nil {
		return nil, err
	}
	return s.GetContactInfo(ctx)
}

// GetAboutInfo returns the about singleton, or nil before first write.
func (s *Store) GetAboutInfo(ctx context.Context) (*domain.AboutInfo, error) {
	var a domain.AboutInfo
	err := s.db.WithContext(ctx).First(&a, "id = ?", domain.SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAboutInfo upserts the about singleton in one statement.
func (s *Store) UpdateAboutInfo(ctx context.Context, in schema.UpdateAboutInfo) (*domain.AboutInfo, error) {
	row := domain.AboutInfo{ID: domain.SingletonID}
	in.Apply(&row)
	assign := map[string]any{}
	if in.Title != nil {
		assign["title"] = *in.Title
	}
	if in.Description != nil {
		assign["description"] = *in.Description
	}
	if in.ExperienceYears != nil {
		assign["experience_years"] = *in.ExperienceYears
	}
	if in.CustomerCount != nil {
		assign["customer_count"] = *in.CustomerCount
	}
	if in.ImageURL != nil {
		assign["image_url"] = *in.ImageURL
	}
	if err := s.upsertSingleton(ctx, &row, assign); err != nil {
		return nil, err
	}
	return s.GetAboutInfo(ctx)
}

// GetHomepageInfo returns the homepage singleton, or nil before first write.
func (s *Store) GetHomepageInfo(ctx context.Context) (*domain.HomepageInfo, error) {
	var h domain.HomepageInfo
	err := s.db.WithContext(ctx).First(&h, "id = ?", domain.SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// UpdateHomepageInfo upserts the homepage singleton in one statement.
func (s *Store) UpdateHomepageInfo(ctx context.Context, in schema.UpdateHomepageInfo) (*domain.HomepageInfo, error) {
	row := domain.HomepageInfo{ID: domain.SingletonID}
	in.Apply(&row)
	assign := map[string]any{}
	if in.Title != nil {
		assign["title"] = *in.Title
	}
	if in.Description != nil {
		assign["description"] = *in.Description
	}
	if in.ImageURL != nil {
		assign["image_url"] = *in.ImageURL
	}
	if err := s.upsertSingleton(ctx, &row, assign); err != nil {
		return nil, err
	}
	return s.GetHomepageInfo(ctx)
}

// upsertSingleton inserts row under the fixed singleton id; when the row
// already exists only the supplied columns are merged. With no supplied
// fields the insert still ensures the row exists.
func (s *Store) upsertSingleton(ctx context.Context, row any, assign map[string]any) error {
	tx := s.db.WithContext(ctx)
	conflict := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}}
	if len(assign) == 0 {
		conflict.DoNothing = true
	} else {
		conflict.DoUpdates = clause.Assignments(assign)
	}
	return tx.Clauses(conflict).Create(row).Error
}

//
// Messages
//

// CreateMessage inserts a contact-form submission.
func (s *Store) CreateMessage(ctx context.Context, in schema.InsertMessage) (*domain.Message, error) {
	m := domain.Message{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Phone:     in.Phone,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
		IsRead:    domain.FlagFalse,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMessages returns all messages newest-first (CreatedAt DESC, ID DESC).
func (s *Store) GetMessages(ctx context.Context) ([]domain.Message, error) {
	var out []domain.Message
	err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// UpdateMessageReadStatus sets the IsRead flag of a message.
func (s *Store) UpdateMessageReadStatus(ctx context.Context, id, isRead string) (*domain.Message, error) {
	res := s.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("id = ?", id).
		Update("is_read", isRead)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, storage.ErrNotFound
	}
	var m domain.Message
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMessage removes a message, reporting whether one existed.
func (s *Store) DeleteMessage(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&domain.Message{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

//
// Exchange rates
//

// GetExchangeRates returns all rates ordered by currency.
func (s *Store) GetExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	var out []domain.ExchangeRate
	err := s.db.WithContext(ctx).Order("currency ASC").Find(&out).Error
	return out, err
}

// GetExchangeRateByCurrency returns the rate for a currency, or nil.
func (s *Store) GetExchangeRateByCurrency(ctx context.Context, currency string) (*domain.ExchangeRate, error) {
	var r domain.ExchangeRate
	err := s.db.WithContext(ctx).First(&r, "currency = ?", currency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateExchangeRate upserts the rate for a currency in one statement,
// keyed on the currency unique index.
func (s *Store) UpdateExchangeRate(ctx context.Context, currency, rate string) (*domain.ExchangeRate, error) {
	row := domain.ExchangeRate{ID: uuid.NewString(), Currency: currency, Rate: rate}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "currency"}},
		DoUpdates: clause.Assignments(map[string]any{"rate": rate}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return s.GetExchangeRateByCurrency(ctx, currency)
}

// Ping verifies the underlying connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isDuplicate detects unique-constraint violations across drivers that do
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite: "UNIQUE constraint failed"
	// Postgres: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
