// Seeding of default site content. EnsureDefaults is idempotent: singleton
// updates target fixed ids, the product seed only runs against an empty
// catalog, and the admin user is only created when missing. The in-memory
// backend seeds itself on construction; database backends call this once at
// startup when SEED_DEFAULTS is enabled.
package storage

import (
	"context"
	"fmt"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
)

// SeedOptions configures EnsureDefaults. HashPassword is applied to
// AdminPassword before the admin user is stored; when either admin field is
// empty no user is created.
type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	HashPassword  func(plain string) (string, error)
}

// SampleProducts returns the starter catalog used when the store is empty.
func SampleProducts() []schema.InsertProduct {
	return []schema.InsertProduct{
		{Name: "Diamond Ring", Category: domain.CategoryRing, Weight: "8.50", GoldKarat: 18, ImageURL: "/images/products/diamond-ring.jpg"},
		{Name: "Pearl Necklace", Category: domain.CategoryNecklace, Weight: "12.30", GoldKarat: 14, ImageURL: "/images/products/pearl-necklace.jpg"},
		{Name: "Chain Bracelet", Category: domain.CategoryBraceletThick, Weight: "6.70", GoldKarat: 22, ImageURL: "/images/products/chain-bracelet.jpg"},
		{Name: "Hoop Earrings", Category: domain.CategoryEarring, Weight: "3.80", GoldKarat: 22, ImageURL: "/images/products/hoop-earrings.jpg"},
		{Name: "Crystal Bracelet", Category: domain.CategoryBraceletThin, Weight: "9.40", GoldKarat: 18, ImageURL: "/images/products/crystal-bracelet.jpg"},
		{Name: "Elegance Choker", Category: domain.CategoryChoker, Weight: "15.20", GoldKarat: 14, ImageURL: "/images/products/elegance-choker.jpg"},
	}
}

// DefaultExchangeRates returns the starter currency table.
func DefaultExchangeRates() map[string]string {
	return map[string]string{
		"USD":  "28.50",
		"EUR":  "31.00",
		"GOLD": "1700.00",
	}
}

// DefaultContactInfo returns the merge payload for the contact singleton.
func DefaultContactInfo() schema.UpdateContactInfo {
	return schema.UpdateContactInfo{
		Address:      Ptr("Grand Bazaar, Istanbul"),
		Phone:        Ptr("+90 555 123 45 67"),
		WorkingHours: Ptr("Monday - Saturday: 09:00 - 18:00"),
	}
}

// DefaultAboutInfo returns the merge payload for the about singleton.
func DefaultAboutInfo() schema.UpdateAboutInfo {
	return schema.UpdateAboutInfo{
		Title:           Ptr("About Us"),
		Description:     Ptr("A family goldsmith serving since 1998, focused on quality craftsmanship and customer satisfaction."),
		ExperienceYears: Ptr(25),
		CustomerCount:   Ptr(1000),
		ImageURL:        Ptr("/images/about.jpg"),
	}
}

// DefaultHomepageInfo returns the merge payload for the homepage singleton.
func DefaultHomepageInfo() schema.UpdateHomepageInfo {
	return schema.UpdateHomepageInfo{
		Title:       Ptr("Discover the Magic of Gold"),
		Description: Ptr("Quality gold and jewelry, handcrafted designs for every occasion."),
		ImageURL:    Ptr("/images/hero.jpg"),
	}
}

// Ptr returns a pointer to v; convenience for building merge payloads.
func Ptr[T any](v T) *T { return &v }

// EnsureDefaults populates missing default content: the three singletons,
// the starter catalog (only when the catalog is empty), the default
// exchange rates (only when absent), and optionally an admin user.
func EnsureDefaults(ctx context.Context, s Storage, opts SeedOptions) error {
	if h, err := s.GetHomepageInfo(ctx); err != nil {
		return fmt.Errorf("seed homepage: %w", err)
	} else if h == nil {
		if _, err := s.UpdateHomepageInfo(ctx, DefaultHomepageInfo()); err != nil {
			return fmt.Errorf("seed homepage: %w", err)
		}
	}

	if a, err := s.GetAboutInfo(ctx); err != nil {
		return fmt.Errorf("seed about: %w", err)
	} else if a == nil {
		if _, err := s.UpdateAboutInfo(ctx, DefaultAboutInfo()); err != nil {
			return fmt.Errorf("seed about: %w", err)
		}
	}

	if c, err := s.GetContactInfo(ctx); err != nil {
		return fmt.Errorf("seed contact: %w", err)
	} else if c == nil {
		if _, err := s.UpdateContactInfo(ctx, DefaultContactInfo()); err != nil {
			return fmt.Errorf("seed contact: %w", err)
		}
	}

	existing, err := s.GetAllProducts(ctx)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if len(existing) == 0 {
		for _, in := range SampleProducts() {
			normalized, err := in.Validate()
			if err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
			if _, err := s.CreateProduct(ctx, normalized); err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
		}
	}

	for currency, rate := range DefaultExchangeRates() {
		cur, err := s.GetExchangeRateByCurrency(ctx, currency)
		if err != nil {
			return fmt.Errorf("seed rates: %w", err)
		}
		if cur == nil {
			if _, err := s.UpdateExchangeRate(ctx, currency, rate); err != nil {
				return fmt.Errorf("seed rates: %w", err)
			}
		}
	}

	if opts.AdminUsername != "" && opts.AdminPassword != "" {
		existing, err := s.GetUserByUsername(ctx, opts.AdminUsername)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if existing == nil {
			hashed := opts.AdminPassword
			if opts.HashPassword != nil {
				if hashed, err = opts.HashPassword(opts.AdminPassword); err != nil {
					return fmt.Errorf("seed admin: %w", err)
				}
			}
			_, err := s.CreateUser(ctx, schema.InsertUser{
				Username: opts.AdminUsername,
				Password: hashed,
				Role:     "admin",
			})
			if err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
		}
	}
	return nil
}
