package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/services"
)

func init() { gin.SetMode(gin.TestMode) }

//
// Service stubs with overridable behavior per test.
//

type stubCatalog struct {
	listActive     func(context.Context) ([]domain.Product, error)
	listAll        func(context.Context) ([]domain.Product, error)
	get            func(context.Context, string) (*domain.Product, error)
	listByCategory func(context.Context, string) ([]domain.Product, error)
	create         func(context.Context, schema.InsertProduct) (*domain.Product, error)
	update         func(context.Context, string, schema.UpdateProduct) (*domain.Product, error)
	delete         func(context.Context, string) error
}

func (s *stubCatalog) ListActive(ctx context.Context) ([]domain.Product, error) {
	return s.listActive(ctx)
}
func (s *stubCatalog) ListAll(ctx context.Context) ([]domain.Product, error) { return s.listAll(ctx) }
func (s *stubCatalog) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.get(ctx, id)
}
func (s *stubCatalog) ListByCategory(ctx context.Context, cat string) ([]domain.Product, error) {
	return s.listByCategory(ctx, cat)
}
func (s *stubCatalog) Create(ctx context.Context, in schema.InsertProduct) (*domain.Product, error) {
	return s.create(ctx, in)
}
func (s *stubCatalog) Update(ctx context.Context, id string, in schema.UpdateProduct) (*domain.Product, error) {
	return s.update(ctx, id, in)
}
func (s *stubCatalog) Delete(ctx context.Context, id string) error { return s.delete(ctx, id) }

type stubContent struct {
	contact        func(context.Context) (*domain.ContactInfo, error)
	updateContact  func(context.Context, schema.UpdateContactInfo) (*domain.ContactInfo, error)
	about          func(context.Context) (*domain.AboutInfo, error)
	updateAbout    func(context.Context, schema.UpdateAboutInfo) (*domain.AboutInfo, error)
	homepage       func(context.Context) (*domain.HomepageInfo, error)
	updateHomepage func(context.Context, schema.UpdateHomepageInfo) (*domain.HomepageInfo, error)
}

func (s *stubContent) Contact(ctx context.Context) (*domain.ContactInfo, error) {
	return s.contact(ctx)
}
func (s *stubContent) UpdateContact(ctx context.Context, in schema.UpdateContactInfo) (*domain.ContactInfo, error) {
	return s.updateContact(ctx, in)
}
func (s *stubContent) About(ctx context.Context) (*domain.AboutInfo, error) { return s.about(ctx) }
func (s *stubContent) UpdateAbout(ctx context.Context, in schema.UpdateAboutInfo) (*domain.AboutInfo, error) {
	return s.updateAbout(ctx, in)
}
func (s *stubContent) Homepage(ctx context.Context) (*domain.HomepageInfo, error) {
	return s.homepage(ctx)
}
func (s *stubContent) UpdateHomepage(ctx context.Context, in schema.UpdateHomepageInfo) (*domain.HomepageInfo, error) {
	return s.updateHomepage(ctx, in)
}

type stubInbox struct {
	submit        func(context.Context, schema.InsertMessage) (*domain.Message, error)
	list          func(context.Context) ([]domain.Message, error)
	setReadStatus func(context.Context, string, string) (*domain.Message, error)
	delete        func(context.Context, string) error
}

func (s *stubInbox) Submit(ctx context.Context, in schema.InsertMessage) (*domain.Message, error) {
	return s.submit(ctx, in)
}
func (s *stubInbox) List(ctx context.Context) ([]domain.Message, error) { return s.list(ctx) }
func (s *stubInbox) SetReadStatus(ctx context.Context, id, isRead string) (*domain.Message, error) {
	return s.setReadStatus(ctx, id, isRead)
}
func (s *stubInbox) Delete(ctx context.Context, id string) error { return s.delete(ctx, id) }

type stubRates struct {
	list   func(context.Context) ([]domain.ExchangeRate, error)
	get    func(context.Context, string) (*domain.ExchangeRate, error)
	update func(context.Context, string, schema.UpdateExchangeRate) (*domain.ExchangeRate, error)
}

func (s *stubRates) List(ctx context.Context) ([]domain.ExchangeRate, error) { return s.list(ctx) }
func (s *stubRates) Get(ctx context.Context, currency string) (*domain.ExchangeRate, error) {
	return s.get(ctx, currency)
}
func (s *stubRates) Update(ctx context.Context, currency string, in schema.UpdateExchangeRate) (*domain.ExchangeRate, error) {
	return s.update(ctx, currency, in)
}

type stubAuth struct {
	login func(context.Context, string, string) (string, *domain.User, error)
}

func (s *stubAuth) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.login(ctx, username, password)
}

//
// Plumbing
//

func serve(t *testing.T, method, path string, body any, register func(*gin.Engine, *Handlers), h *Handlers) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	register(r, h)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, w.Body.String())
	}
	return resp
}

var sampleProduct = domain.Product{
	ID: "p1", Name: "Solitaire Ring", Category: domain.CategoryRing,
	Weight: "4.20", GoldKarat: 18, ImageURL: "/img/solitaire.jpg",
	IsActive: domain.FlagTrue, HasWorkmanship: domain.FlagTrue,
}

//
// Products
//

func TestListProducts(t *testing.T) {
	h := New(&stubCatalog{
		listActive: func(context.Context) ([]domain.Product, error) {
			return []domain.Product{sampleProduct}, nil
		},
	}, nil, nil, nil, nil)

	w := serve(t, http.MethodGet, "/products", nil, func(r *gin.Engine, h *Handlers) {
		r.GET("/products", h.ListProducts)
	}, h)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	var items []domain.Product
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil || len(items) != 1 {
		t.Fatalf("body = %s (%v)", w.Body.String(), err)
	}
	if items[0].ID != "p1" {
		t.Fatalf("items = %+v", items)
	}
}

func TestListProductsStorageFailure(t *testing.T) {
	h := New(&stubCatalog{
		listActive: func(context.Context) ([]domain.Product, error) {
			return nil, errors.New("backend down")
		},
	}, nil, nil, nil, nil)

	w := serve(t, http.MethodGet, "/products", nil, func(r *gin.Engine, h *Handlers) {
		r.GET("/products", h.ListProducts)
	}, h)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != ErrCodeListFailed {
		t.Fatalf("code = %q; want %q", resp.Code, ErrCodeListFailed)
	}
}

func TestGetProductNotFound(t *testing.T) {
	h := New(&stubCatalog{
		get: func(context.Context, string) (*domain.Product, error) {
			return nil, services.ErrProductNotFound
		},
	}, nil, nil, nil, nil)

	w := serve(t, http.MethodGet, "/products/missing", nil, func(r *gin.Engine, h *Handlers) {
		r.GET("/products/:id", h.GetProduct)
	}, h)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != ErrCodeNotFound {
		t.Fatalf("code = %q; want %q", resp.Code, ErrCodeNotFound)
	}
}

func TestListProductsByCategoryUnknown(t *testing.T) {
	h := New(&stubCatalog{
		listByCategory: func(context.Context, string) ([]domain.Product, error) {
			return nil, services.ErrInvalidCategory
		},
	}, nil, nil, nil, nil)

	w := serve(t, http.MethodGet, "/products/category/crown", nil, func(r *gin.Engine, h *Handlers) {
		r.GET("/products/category/:category", h.ListProductsByCategory)
	}, h)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != ErrCodeInvalidCategory {
		t.Fatalf("code = %q; want %q", resp.Code, ErrCodeInvalidCategory)
	}
}

func TestCreateProduct(t *testing.T) {
	h := New(&stubCatalog{
		create: func(_ context.Context, in schema.InsertProduct) (*domain.Product, error) {
			p := sampleProduct
			p.Name = in.Name
			return &p, nil
		},
	}, nil, nil, nil, nil)

	w := serve(t, http.MethodPost, "/products", schema.InsertProduct{
		Name: "New Ring", Category: domain.CategoryRing,
		Weight: "2.00", GoldKarat: 14, ImageURL: "/n.jpg",
	}, func(r *gin.Engine, h *Handlers) {
		r.POST("/products", h.CreateProduct)
	}, h)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201 (%s)", w.Code, w.Body.String())
	}
}

func TestCreateProductValidationCarriesFields(t *testing.T) {
	h := New(&stubCatalog{
		create: func(_ context.Context, in schema.InsertProduct) (*domain.Product, error) {
			_, err := in.Validate()
			return nil, err
		},
	}, nil, nil, nil, nil)

	w := serve(t, http.MethodPost, "/products", map[string]any{"category": "crown"},
		func(r *gin.Engine, h *Handlers) { r.POST("/products", h.CreateProduct) }, h)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Code != ErrCodeValidation {
		t.Fatalf("code = %q; want %q", resp.Code, ErrCodeValidation)
	}
	if len(resp.Fields) == 0 {
		t.Fatalf("fields array empty: %s", w.Body.String())
	}
	found := false
	for _, f := range resp.Fields {
		if f.Field == "category" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no field error for category in %+v", resp.Fields)
	}
}

func TestCreateProductRejectsMalformedJSON(t *testing.T) {
	h := New(&stubCatalog{}, nil, nil, nil, nil)

	r := gin.New()
	r.POST("/products", h.CreateProduct)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != ErrCodeBadRequest {
		t.Fatalf("code = %q; want %q", resp.Code, ErrCodeBadRequest)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	h := New(&stubCatalog{
		update: func(context.Context, string, schema.UpdateProduct) (*domain.Product, error) {
			return nil, services.ErrProductNotFound
		},
	}, nil, nil, nil, nil)

	w := serve(t, http.MethodPut, "/products/missing", map[string]any{"weight": "5.00"},
		func(r *gin.Engine, h *Handlers) { r.PUT("/products/:id", h.UpdateProduct) }, h)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}

func TestDeleteProduct(t *testing.T) {
	h := New(&stubCatalog{
		delete: func(context.Context, string) error { return nil },
	}, nil, nil, nil, nil)

	w := serve(t, http.MethodDelete, "/products/p1", nil,
		func(r *gin.Engine, h *Handlers) { r.DELETE("/products/:id", h.DeleteProduct) }, h)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d; want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("204 carried a body: %s", w.Body.String())
	}
}

//
// Content singletons
//

func TestGetContactInfoNotConfigured(t *testing.T) {
	h := New(nil, &stubContent{
		contact: func(context.Context) (*domain.ContactInfo, error) { return nil, nil },
	}, nil, nil, nil)

	w := serve(t, http.MethodGet, "/contact-info", nil,
		func(r *gin.Engine, h *Handlers) { r.GET("/contact-info", h.GetContactInfo) }, h)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}

func TestUpdateContactInfo(t *testing.T) {
	h := New(nil, &stubContent{
		updateContact: func(_ context.Context, in schema.UpdateContactInfo) (*domain.ContactInfo, error) {
			if err := in.Validate(); err != nil {
				return nil, err
			}
			out := domain.ContactInfo{ID: domain.SingletonID}
			in.Apply(&out)
			return &out, nil
		},
	}, nil, nil, nil)

	w := serve(t, http.MethodPut, "/contact-info", map[string]any{"phone": "+90 555 000 00 00"},
		func(r *gin.Engine, h *Handlers) { r.PUT("/contact-info", h.UpdateContactInfo) }, h)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200 (%s)", w.Code, w.Body.String())
	}

	// An invalid field comes back as a validation envelope.
	w = serve(t, http.MethodPut, "/contact-info", map[string]any{"phone": ""},
		func(r *gin.Engine, h *Handlers) { r.PUT("/contact-info", h.UpdateContactInfo) }, h)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != ErrCodeValidation {
		t.Fatalf("code = %q; want %q", resp.Code, ErrCodeValidation)
	}
}

//
// Messages
//

func TestSubmitMessage(t *testing.T) {
	h := New(nil, nil, &stubInbox{
		submit: func(_ context.Context, in schema.InsertMessage) (*domain.Message, error) {
			return &domain.Message{ID: "m1", Name: in.Name, IsRead: domain.FlagFalse}, nil
		},
	}, nil, nil)

	w := serve(t, http.MethodPost, "/messages", schema.InsertMessage{
		Name: "Ayşe", Phone: "+90 555 111 11 11", Message: "Hi",
	}, func(r *gin.Engine, h *Handlers) { r.POST("/messages", h.SubmitMessage) }, h)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201", w.Code)
	}
}

func TestUpdateMessageReadStatus(t *testing.T) {
	h := New(nil, nil, &stubInbox{
		setReadStatus: func(_ context.Context, id, isRead string) (*domain.Message, error) {
			switch {
			case isRead != domain.FlagTrue && isRead != domain.FlagFalse:
				return nil, services.ErrInvalidFlag
			case id != "m1":
				return nil, services.ErrMessageNotFound
			}
			return &domain.Message{ID: id, IsRead: isRead}, nil
		},
	}, nil, nil)

	register := func(r *gin.Engine, h *Handlers) { r.PUT("/messages/:id/read", h.UpdateMessageReadStatus) }

	w := serve(t, http.MethodPut, "/messages/m1/read", UpdateReadStatusRequest{IsRead: "true"}, register, h)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}

	w = serve(t, http.MethodPut, "/messages/m1/read", UpdateReadStatusRequest{IsRead: "yes"}, register, h)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid flag status = %d; want 400", w.Code)
	}

	w = serve(t, http.MethodPut, "/messages/missing/read", UpdateReadStatusRequest{IsRead: "true"}, register, h)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing id status = %d; want 404", w.Code)
	}
}

//
// Exchange rates
//

func TestGetExchangeRateNotFound(t *testing.T) {
	h := New(nil, nil, nil, &stubRates{
		get: func(context.Context, string) (*domain.ExchangeRate, error) {
			return nil, services.ErrRateNotFound
		},
	}, nil)

	w := serve(t, http.MethodGet, "/exchange-rates/JPY", nil,
		func(r *gin.Engine, h *Handlers) { r.GET("/exchange-rates/:currency", h.GetExchangeRate) }, h)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}

func TestUpdateExchangeRate(t *testing.T) {
	h := New(nil, nil, nil, &stubRates{
		update: func(_ context.Context, currency string, in schema.UpdateExchangeRate) (*domain.ExchangeRate, error) {
			if err := in.Validate(); err != nil {
				return nil, err
			}
			return &domain.ExchangeRate{Currency: currency, Rate: in.Rate}, nil
		},
	}, nil)

	register := func(r *gin.Engine, h *Handlers) { r.PUT("/exchange-rates/:currency", h.UpdateExchangeRate) }

	w := serve(t, http.MethodPut, "/exchange-rates/USD", schema.UpdateExchangeRate{Rate: "28.50"}, register, h)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200 (%s)", w.Code, w.Body.String())
	}

	w = serve(t, http.MethodPut, "/exchange-rates/USD", schema.UpdateExchangeRate{Rate: "abc"}, register, h)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid rate status = %d; want 400", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != ErrCodeValidation {
		t.Fatalf("code = %q; want %q", resp.Code, ErrCodeValidation)
	}
}

//
// Auth
//

func TestLogin(t *testing.T) {
	h := New(nil, nil, nil, nil, &stubAuth{
		login: func(_ context.Context, username, password string) (string, *domain.User, error) {
			if username != "admin" || password != "s3cret-pass" {
				return "", nil, services.ErrInvalidCredentials
			}
			return "tok123", &domain.User{ID: "u1", Username: "admin", Role: "admin"}, nil
		},
	})

	register := func(r *gin.Engine, h *Handlers) { r.POST("/auth/login", h.Login) }

	w := serve(t, http.MethodPost, "/auth/login", LoginRequest{Username: "admin", Password: "s3cret-pass"}, register, h)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200 (%s)", w.Code, w.Body.String())
	}
	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "tok123" || resp.Username != "admin" || resp.Role != "admin" {
		t.Fatalf("response = %+v", resp)
	}

	w = serve(t, http.MethodPost, "/auth/login", LoginRequest{Username: "admin", Password: "wrong"}, register, h)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d; want 401", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != ErrCodeLoginFailed {
		t.Fatalf("code = %q; want %q", resp.Code, ErrCodeLoginFailed)
	}

	// Missing fields never reach the service.
	w = serve(t, http.MethodPost, "/auth/login", map[string]any{"username": "admin"}, register, h)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing password status = %d; want 400", w.Code)
	}
}
