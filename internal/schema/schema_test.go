package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// fieldErrors extracts the validation error from err, failing the test when
// err is not a *ValidationError.
func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v (%T); want *ValidationError", err, err)
	}
	return ve.Fields
}

func hasField(fields []FieldError, name string) bool {
	for _, f := range fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

func TestInsertProductDefaults(t *testing.T) {
	p, err := InsertProduct{
		Name:     "Band Ring",
		Category: domain.CategoryRing,
		Weight:   "3.25",
		GoldKarat: 14,
		ImageURL: "/img/band.jpg",
	}.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if p.IsActive != domain.FlagTrue || p.HasWorkmanship != domain.FlagTrue {
		t.Fatalf("defaults = %q/%q; want true/true", p.IsActive, p.HasWorkmanship)
	}

	// Explicit values are preserved.
	p, err = InsertProduct{
		Name: "Band Ring", Category: domain.CategoryRing,
		Weight: "3.25", GoldKarat: 14, ImageURL: "/img/band.jpg",
		IsActive: domain.FlagFalse, HasWorkmanship: domain.FlagFalse,
	}.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if p.IsActive != domain.FlagFalse || p.HasWorkmanship != domain.FlagFalse {
		t.Fatalf("explicit flags overwritten: %q/%q", p.IsActive, p.HasWorkmanship)
	}
}

func TestInsertProductReportsEveryField(t *testing.T) {
	_, err := InsertProduct{
		Category:  "tiara",
		Weight:    "heavy",
		GoldKarat: 21,
		IsActive:  "yes",
	}.Validate()
	fields := fieldErrors(t, err)

	for _, want := range []string{"name", "category", "weight", "goldKarat", "imageUrl", "isActive"} {
		if !hasField(fields, want) {
			t.Errorf("missing field error for %q in %v", want, fields)
		}
	}
	if hasField(fields, "hasWorkmanship") {
		t.Errorf("omitted optional flag reported as invalid: %v", fields)
	}
}

func TestCustomValidators(t *testing.T) {
	base := InsertProduct{
		Name: "X", Category: domain.CategoryEarring,
		Weight: "1.00", GoldKarat: 22, ImageURL: "/x.jpg",
	}

	tests := []struct {
		name   string
		mutate func(*InsertProduct)
		field  string
		reason string
	}{
		{"unknown category", func(p *InsertProduct) { p.Category = "crown" }, "category", "must be one of"},
		{"negative weight", func(p *InsertProduct) { p.Weight = "-1.00" }, "weight", "decimal"},
		{"too many fraction digits", func(p *InsertProduct) { p.Weight = "1.234" }, "weight", "decimal"},
		{"unsupported karat", func(p *InsertProduct) { p.GoldKarat = 24 }, "goldKarat", "14 18 22"},
		{"non-boolean flag", func(p *InsertProduct) { p.HasWorkmanship = "maybe" }, "hasWorkmanship", `"true" or "false"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.mutate(&p)
			_, err := p.Validate()
			fields := fieldErrors(t, err)
			if len(fields) != 1 || fields[0].Field != tc.field {
				t.Fatalf("fields = %v; want exactly one error on %q", fields, tc.field)
			}
			if !strings.Contains(fields[0].Reason, tc.reason) {
				t.Errorf("reason = %q; want substring %q", fields[0].Reason, tc.reason)
			}
		})
	}
}

func TestRateAcceptsCommonForms(t *testing.T) {
	for _, ok := range []string{"0", "5", "5.0", "28.50", "28.5000", "1700.0000"} {
		if err := (UpdateExchangeRate{Rate: ok}).Validate(); err != nil {
			t.Errorf("rate %q rejected: %v", ok, err)
		}
	}
	for _, bad := range []string{"", ".5", "5.", "5,00", "1e3", "5.00000"} {
		if err := (UpdateExchangeRate{Rate: bad}).Validate(); err == nil {
			t.Errorf("rate %q accepted; want error", bad)
		}
	}
}

func TestWeightFractionBoundary(t *testing.T) {
	base := InsertProduct{
		Name: "X", Category: domain.CategoryEarring,
		GoldKarat: 22, ImageURL: "/x.jpg",
	}
	for _, ok := range []string{"1", "1.2", "1.23"} {
		p := base
		p.Weight = ok
		if _, err := p.Validate(); err != nil {
			t.Errorf("weight %q rejected: %v", ok, err)
		}
	}
	for _, bad := range []string{"1.234", "1.2345"} {
		p := base
		p.Weight = bad
		if _, err := p.Validate(); err == nil {
			t.Errorf("weight %q accepted; want error", bad)
		}
	}
}

func TestUpdateProductValidatesOnlyPresentFields(t *testing.T) {
	if err := (UpdateProduct{}).Validate(); err != nil {
		t.Fatalf("empty update rejected: %v", err)
	}
	if err := (UpdateProduct{Weight: ptr("5.00")}).Validate(); err != nil {
		t.Fatalf("valid partial update rejected: %v", err)
	}

	err := (UpdateProduct{Name: ptr(""), Category: ptr("crown")}).Validate()
	fields := fieldErrors(t, err)
	if !hasField(fields, "name") || !hasField(fields, "category") {
		t.Fatalf("fields = %v; want errors on name and category", fields)
	}
}

func TestUpdateProductApply(t *testing.T) {
	dst := domain.Product{
		ID: "p1", Name: "Old", Category: domain.CategoryRing,
		Weight: "2.00", GoldKarat: 14, ImageURL: "/old.jpg",
		IsActive: domain.FlagTrue, HasWorkmanship: domain.FlagTrue,
	}
	UpdateProduct{
		Name:     ptr("New"),
		IsActive: ptr(domain.FlagFalse),
	}.Apply(&dst)

	if dst.Name != "New" || dst.IsActive != domain.FlagFalse {
		t.Fatalf("supplied fields not applied: %+v", dst)
	}
	if dst.Weight != "2.00" || dst.GoldKarat != 14 || dst.ImageURL != "/old.jpg" {
		t.Fatalf("omitted fields changed: %+v", dst)
	}
}

func TestInsertUserRoleDefault(t *testing.T) {
	u, err := InsertUser{Username: "owner", Password: "longenough"}.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if u.Role != "admin" {
		t.Fatalf("role = %q; want admin", u.Role)
	}

	_, err = InsertUser{Username: "ab", Password: "short", Role: "root"}.Validate()
	fields := fieldErrors(t, err)
	for _, want := range []string{"username", "password", "role"} {
		if !hasField(fields, want) {
			t.Errorf("missing field error for %q in %v", want, fields)
		}
	}
}

func TestSingletonApplyMergesOntoExisting(t *testing.T) {
	contact := domain.ContactInfo{ID: domain.SingletonID, Address: "A", Phone: "P", WorkingHours: "W"}
	UpdateContactInfo{Phone: ptr("P2")}.Apply(&contact)
	if contact.Phone != "P2" || contact.Address != "A" || contact.WorkingHours != "W" {
		t.Fatalf("contact merge = %+v", contact)
	}

	about := domain.AboutInfo{ID: domain.SingletonID, Title: "T", ExperienceYears: 10}
	UpdateAboutInfo{CustomerCount: ptr(500)}.Apply(&about)
	if about.CustomerCount != 500 || about.Title != "T" || about.ExperienceYears != 10 {
		t.Fatalf("about merge = %+v", about)
	}

	home := domain.HomepageInfo{ID: domain.SingletonID, Title: "T", ImageURL: "/i.jpg"}
	UpdateHomepageInfo{Description: ptr("D")}.Apply(&home)
	if home.Description != "D" || home.Title != "T" || home.ImageURL != "/i.jpg" {
		t.Fatalf("homepage merge = %+v", home)
	}
}

func TestUpdateAboutInfoRejectsNegativeCounters(t *testing.T) {
	err := (UpdateAboutInfo{ExperienceYears: ptr(-1), CustomerCount: ptr(-5)}).Validate()
	fields := fieldErrors(t, err)
	if !hasField(fields, "experienceYears") || !hasField(fields, "customerCount") {
		t.Fatalf("fields = %v", fields)
	}
}

func TestInsertMessage(t *testing.T) {
	if _, err := (InsertMessage{Name: "A", Phone: "+90", Message: "Hi"}).Validate(); err != nil {
		t.Fatalf("valid message rejected: %v", err)
	}

	_, err := InsertMessage{Message: strings.Repeat("x", 4001)}.Validate()
	fields := fieldErrors(t, err)
	for _, want := range []string{"name", "phone", "message"} {
		if !hasField(fields, want) {
			t.Errorf("missing field error for %q in %v", want, fields)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "name", Reason: "is required"},
		{Field: "weight", Reason: "must be a decimal string like \"5.00\""},
	}}
	msg := err.Error()
	if !strings.Contains(msg, "name is required") || !strings.Contains(msg, "weight must be") {
		t.Fatalf("message = %q", msg)
	}
}
