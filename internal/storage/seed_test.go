package storage

import (
	"testing"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
)

func TestSampleProductsValidate(t *testing.T) {
	products := SampleProducts()
	if len(products) == 0 {
		t.Fatal("sample catalog is empty")
	}
	for _, in := range products {
		normalized, err := in.Validate()
		if err != nil {
			t.Errorf("sample product %q does not validate: %v", in.Name, err)
			continue
		}
		if !domain.ValidCategory(normalized.Category) {
			t.Errorf("sample product %q has unknown category %q", in.Name, normalized.Category)
		}
		if normalized.IsActive != domain.FlagTrue {
			t.Errorf("sample product %q seeded inactive", in.Name)
		}
	}
}

func TestDefaultExchangeRatesWellFormed(t *testing.T) {
	rates := DefaultExchangeRates()
	for _, currency := range []string{"USD", "EUR", "GOLD"} {
		if _, ok := rates[currency]; !ok {
			t.Errorf("default rates missing %s", currency)
		}
	}
	for currency, rate := range rates {
		if rate == "" {
			t.Errorf("default rate for %s is empty", currency)
		}
	}
}

func TestDefaultSingletonPayloadsPopulated(t *testing.T) {
	if c := DefaultContactInfo(); c.Phone == nil || *c.Phone == "" {
		t.Error("default contact info has no phone")
	}
	if a := DefaultAboutInfo(); a.Title == nil || *a.Title == "" {
		t.Error("default about info has no title")
	}
	if h := DefaultHomepageInfo(); h.Title == nil || *h.Title == "" {
		t.Error("default homepage info has no title")
	}
}
