// Package storagetest runs a conformance suite against any Storage
// implementation, so every backend honors the same contract: nil results
// for absent reads, ErrNotFound for updates of missing records, boolean
// results for deletes, and merge semantics for singleton updates.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/storage"
)

// Factory creates an empty Storage for one test. Implementations register
// cleanup on t.
type Factory func(t *testing.T) storage.Storage

// Run exercises the full storage contract against the backend produced by
// the factory.
func Run(t *testing.T, newStore Factory) {
	t.Run("Products", func(t *testing.T) { testProducts(t, newStore) })
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore) })
	t.Run("Singletons", func(t *testing.T) { testSingletons(t, newStore) })
	t.Run("Messages", func(t *testing.T) { testMessages(t, newStore) })
	t.Run("ExchangeRates", func(t *testing.T) { testExchangeRates(t, newStore) })
	t.Run("Seeding", func(t *testing.T) { testSeeding(t, newStore) })
}

func mustCreateProduct(t *testing.T, s storage.Storage, in schema.InsertProduct) *domain.Product {
	t.Helper()
	normalized, err := in.Validate()
	if err != nil {
		t.Fatalf("validate product: %v", err)
	}
	p, err := s.CreateProduct(context.Background(), normalized)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func testProducts(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	// Absent reads are (nil, nil).
	if p, err := s.GetProduct(ctx, "missing"); err != nil || p != nil {
		t.Fatalf("GetProduct(missing) = (%v, %v); want (nil, nil)", p, err)
	}

	ring := mustCreateProduct(t, s, schema.InsertProduct{
		Name: "Solitaire Ring", Category: domain.CategoryRing,
		Weight: "4.20", GoldKarat: 18, ImageURL: "/img/solitaire.jpg",
	})
	if ring.ID == "" {
		t.Fatalf("created product has empty id")
	}
	if ring.IsActive != domain.FlagTrue || ring.HasWorkmanship != domain.FlagTrue {
		t.Fatalf("defaults not applied: %+v", ring)
	}

	hidden := mustCreateProduct(t, s, schema.InsertProduct{
		Name: "Retired Choker", Category: domain.CategoryChoker,
		Weight: "11.00", GoldKarat: 14, ImageURL: "/img/retired.jpg",
		IsActive: domain.FlagFalse,
	})

	// Public listing excludes inactive products.
	active, err := s.GetProducts(ctx)
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	for _, p := range active {
		if p.ID == hidden.ID {
			t.Fatalf("inactive product leaked into public listing")
		}
	}

	// Admin listing includes everything.
	all, err := s.GetAllProducts(ctx)
	if err != nil {
		t.Fatalf("GetAllProducts: %v", err)
	}
	if len(all) != len(active)+1 {
		t.Fatalf("GetAllProducts len = %d; want %d", len(all), len(active)+1)
	}

	// Category filter only returns active members of the category.
	rings, err := s.GetProductsByCategory(ctx, domain.CategoryRing)
	if err != nil {
		t.Fatalf("GetProductsByCategory: %v", err)
	}
	if len(rings) != 1 || rings[0].ID != ring.ID {
		t.Fatalf("category filter = %+v; want just the ring", rings)
	}
	chokers, err := s.GetProductsByCategory(ctx, domain.CategoryChoker)
	if err != nil {
		t.Fatalf("GetProductsByCategory: %v", err)
	}
	if len(chokers) != 0 {
		t.Fatalf("inactive choker appeared in category listing")
	}

	// Partial update touches only the supplied fields.
	upd, err := s.UpdateProduct(ctx, ring.ID, schema.UpdateProduct{
		Weight: storage.Ptr("5.00"),
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if upd.Weight != "5.00" || upd.Name != "Solitaire Ring" || upd.GoldKarat != 18 {
		t.Fatalf("merge update clobbered fields: %+v", upd)
	}

	// Updating a missing product is ErrNotFound.
	if _, err := s.UpdateProduct(ctx, "missing", schema.UpdateProduct{Weight: storage.Ptr("1.00")}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("UpdateProduct(missing) err = %v; want ErrNotFound", err)
	}

	// Delete reports existence, and is absent afterwards.
	okDel, err := s.DeleteProduct(ctx, hidden.ID)
	if err != nil || !okDel {
		t.Fatalf("DeleteProduct = (%v, %v); want (true, nil)", okDel, err)
	}
	okDel, err = s.DeleteProduct(ctx, hidden.ID)
	if err != nil || okDel {
		t.Fatalf("second DeleteProduct = (%v, %v); want (false, nil)", okDel, err)
	}
	if p, err := s.GetProduct(ctx, hidden.ID); err != nil || p != nil {
		t.Fatalf("deleted product still readable: (%v, %v)", p, err)
	}
}

func testUsers(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	if u, err := s.GetUserByUsername(ctx, "ghost"); err != nil || u != nil {
		t.Fatalf("GetUserByUsername(ghost) = (%v, %v); want (nil, nil)", u, err)
	}

	in, err := schema.InsertUser{Username: "admin", Password: "hash-value"}.Validate()
	if err != nil {
		t.Fatalf("validate user: %v", err)
	}
	u, err := s.CreateUser(ctx, in)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Role != "admin" {
		t.Fatalf("role default = %q; want admin", u.Role)
	}

	byID, err := s.GetUser(ctx, u.ID)
	if err != nil || byID == nil || byID.Username != "admin" {
		t.Fatalf("GetUser = (%v, %v)", byID, err)
	}
	byName, err := s.GetUserByUsername(ctx, "admin")
	if err != nil || byName == nil || byName.ID != u.ID {
		t.Fatalf("GetUserByUsername = (%v, %v)", byName, err)
	}

	// Usernames are unique.
	if _, err := s.CreateUser(ctx, in); !errors.Is(err, storage.ErrUsernameTaken) {
		t.Fatalf("duplicate CreateUser err = %v; want ErrUsernameTaken", err)
	}
}

func testSingletons(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	// All three singletons read nil before first write.
	if v, err := s.GetContactInfo(ctx); err != nil || v != nil {
		t.Fatalf("GetContactInfo before write = (%v, %v)", v, err)
	}
	if v, err := s.GetAboutInfo(ctx); err != nil || v != nil {
		t.Fatalf("GetAboutInfo before write = (%v, %v)", v, err)
	}
	if v, err := s.GetHomepageInfo(ctx); err != nil || v != nil {
		t.Fatalf("GetHomepageInfo before write = (%v, %v)", v, err)
	}

	// First update creates the record.
	contact, err := s.UpdateContactInfo(ctx, schema.UpdateContactInfo{
		Address: storage.Ptr("Grand Bazaar 12"),
		Phone:   storage.Ptr("+90 555 000 00 00"),
	})
	if err != nil {
		t.Fatalf("UpdateContactInfo: %v", err)
	}
	if contact.ID != domain.SingletonID || contact.Address != "Grand Bazaar 12" {
		t.Fatalf("created singleton = %+v", contact)
	}

	// A later partial update preserves the other fields.
	contact, err = s.UpdateContactInfo(ctx, schema.UpdateContactInfo{
		WorkingHours: storage.Ptr("09:00 - 19:00"),
	})
	if err != nil {
		t.Fatalf("UpdateContactInfo merge: %v", err)
	}
	if contact.Address != "Grand Bazaar 12" || contact.Phone != "+90 555 000 00 00" || contact.WorkingHours != "09:00 - 19:00" {
		t.Fatalf("merge lost fields: %+v", contact)
	}

	about, err := s.UpdateAboutInfo(ctx, schema.UpdateAboutInfo{
		Title:           storage.Ptr("About"),
		ExperienceYears: storage.Ptr(30),
	})
	if err != nil {
		t.Fatalf("UpdateAboutInfo: %v", err)
	}
	if about.ID != domain.SingletonID || about.ExperienceYears != 30 {
		t.Fatalf("about = %+v", about)
	}

	home, err := s.UpdateHomepageInfo(ctx, schema.UpdateHomepageInfo{
		Title: storage.Ptr("Welcome"),
	})
	if err != nil {
		t.Fatalf("UpdateHomepageInfo: %v", err)
	}
	if home.ID != domain.SingletonID || home.Title != "Welcome" {
		t.Fatalf("homepage = %+v", home)
	}
}

func testMessages(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	first, err := s.CreateMessage(ctx, schema.InsertMessage{
		Name: "Ayşe", Phone: "+90 555 111 11 11", Message: "Do you resize rings?",
	})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if first.IsRead != domain.FlagFalse {
		t.Fatalf("new message IsRead = %q; want false", first.IsRead)
	}
	if first.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not assigned")
	}

	// Separate the timestamps so the ordering check is deterministic.
	time.Sleep(5 * time.Millisecond)
	second, err := s.CreateMessage(ctx, schema.InsertMessage{
		Name: "Mehmet", Phone: "+90 555 222 22 22", Message: "Opening hours?",
	})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	// Newest first.
	list, err := s.GetMessages(ctx)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("GetMessages len = %d; want 2", len(list))
	}
	if list[0].ID != second.ID {
		t.Fatalf("messages not newest-first: got %q on top, want %q", list[0].ID, second.ID)
	}

	// Toggle read status both ways.
	m, err := s.UpdateMessageReadStatus(ctx, first.ID, domain.FlagTrue)
	if err != nil || m.IsRead != domain.FlagTrue {
		t.Fatalf("mark read = (%+v, %v)", m, err)
	}
	m, err = s.UpdateMessageReadStatus(ctx, first.ID, domain.FlagFalse)
	if err != nil || m.IsRead != domain.FlagFalse {
		t.Fatalf("mark unread = (%+v, %v)", m, err)
	}

	if _, err := s.UpdateMessageReadStatus(ctx, "missing", domain.FlagTrue); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("read status of missing message err = %v; want ErrNotFound", err)
	}

	okDel, err := s.DeleteMessage(ctx, first.ID)
	if err != nil || !okDel {
		t.Fatalf("DeleteMessage = (%v, %v); want (true, nil)", okDel, err)
	}
	okDel, err = s.DeleteMessage(ctx, first.ID)
	if err != nil || okDel {
		t.Fatalf("second DeleteMessage = (%v, %v); want (false, nil)", okDel, err)
	}
}

func testExchangeRates(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	if r, err := s.GetExchangeRateByCurrency(ctx, "USD"); err != nil || r != nil {
		t.Fatalf("rate before write = (%v, %v); want (nil, nil)", r, err)
	}

	// Upsert creates.
	r, err := s.UpdateExchangeRate(ctx, "USD", "28.50")
	if err != nil {
		t.Fatalf("UpdateExchangeRate: %v", err)
	}
	if r.Currency != "USD" || r.Rate != "28.50" {
		t.Fatalf("created rate = %+v", r)
	}

	// Upsert overwrites the same currency instead of adding a row.
	r, err = s.UpdateExchangeRate(ctx, "USD", "29.10")
	if err != nil || r.Rate != "29.10" {
		t.Fatalf("updated rate = (%+v, %v)", r, err)
	}

	if _, err := s.UpdateExchangeRate(ctx, "GOLD", "1750.00"); err != nil {
		t.Fatalf("UpdateExchangeRate(GOLD): %v", err)
	}

	list, err := s.GetExchangeRates(ctx)
	if err != nil {
		t.Fatalf("GetExchangeRates: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("rates len = %d; want 2", len(list))
	}
	// Ordered by currency code.
	if list[0].Currency != "GOLD" || list[1].Currency != "USD" {
		t.Fatalf("rates order = %q, %q; want GOLD, USD", list[0].Currency, list[1].Currency)
	}
}

func testSeeding(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	opts := storage.SeedOptions{
		AdminUsername: "admin",
		AdminPassword: "changeme",
		HashPassword:  func(p string) (string, error) { return "hashed:" + p, nil },
	}
	if err := storage.EnsureDefaults(ctx, s, opts); err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}

	products, err := s.GetAllProducts(ctx)
	if err != nil || len(products) != len(storage.SampleProducts()) {
		t.Fatalf("seeded products = %d (%v); want %d", len(products), err, len(storage.SampleProducts()))
	}
	if c, err := s.GetContactInfo(ctx); err != nil || c == nil {
		t.Fatalf("contact singleton not seeded: (%v, %v)", c, err)
	}
	u, err := s.GetUserByUsername(ctx, "admin")
	if err != nil || u == nil {
		t.Fatalf("admin not seeded: (%v, %v)", u, err)
	}
	if u.Password != "hashed:changeme" {
		t.Fatalf("admin password stored as %q; want the hashed form", u.Password)
	}

	// Running the seed twice must not duplicate anything.
	if err := storage.EnsureDefaults(ctx, s, opts); err != nil {
		t.Fatalf("EnsureDefaults rerun: %v", err)
	}
	again, err := s.GetAllProducts(ctx)
	if err != nil || len(again) != len(products) {
		t.Fatalf("rerun duplicated products: %d -> %d (%v)", len(products), len(again), err)
	}
	rates, err := s.GetExchangeRates(ctx)
	if err != nil || len(rates) != len(storage.DefaultExchangeRates()) {
		t.Fatalf("seeded rates = %d (%v)", len(rates), err)
	}
}
