// Product HTTP handlers.
//
// This file exposes REST endpoints for the catalog:
//   - GET    /products                      (public, active products)
//   - GET    /products/all                  (admin, includes inactive)
//   - GET    /products/:id                  (public)
//   - GET    /products/category/:category   (public, active in category)
//   - POST   /products                      (admin, create)
//   - PUT    /products/:id                  (admin, partial update)
//   - DELETE /products/:id                  (admin)
//
// Handlers are transport-thin: they decode input, call application
// services, and translate results into HTTP responses. It also declares
// the service contracts and the Handlers aggregate shared by the other
// handler files in this package.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// CatalogService defines product catalog operations consumed by the HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type CatalogService interface {
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Create(ctx context.Context, in schema.InsertProduct) (*domain.Product, error)
	Update(ctx context.Context, id string, in schema.UpdateProduct) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// ContentService defines singleton site-content operations.
type ContentService interface {
	Contact(ctx context.Context) (*domain.ContactInfo, error)
	UpdateContact(ctx context.Context, in schema.UpdateContactInfo) (*domain.ContactInfo, error)
	About(ctx context.Context) (*domain.AboutInfo, error)
	UpdateAbout(ctx context.Context, in schema.UpdateAboutInfo) (*domain.AboutInfo, error)
	Homepage(ctx context.Context) (*domain.HomepageInfo, error)
	UpdateHomepage(ctx context.Context, in schema.UpdateHomepageInfo) (*domain.HomepageInfo, error)
}

// InboxService defines contact-message operations.
type InboxService interface {
	Submit(ctx context.Context, in schema.InsertMessage) (*domain.Message, error)
	List(ctx context.Context) ([]domain.Message, error)
	SetReadStatus(ctx context.Context, id, isRead string) (*domain.Message, error)
	Delete(ctx context.Context, id string) error
}

// RatesService defines exchange-rate operations.
type RatesService interface {
	List(ctx context.Context) ([]domain.ExchangeRate, error)
	Get(ctx context.Context, currency string) (*domain.ExchangeRate, error)
	Update(ctx context.Context, currency string, in schema.UpdateExchangeRate) (*domain.ExchangeRate, error)
}

// AuthService defines authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the catalog, site content, the
// message inbox, exchange rates, and authentication. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	catalog CatalogService
	content ContentService
	inbox   InboxService
	rates   RatesService
	auth    AuthService
}

// New constructs a Handlers instance bound to the given services.
func New(catalog CatalogService, content ContentService, inbox InboxService, rates RatesService, auth AuthService) *Handlers {
	return &Handlers{catalog: catalog, content: content, inbox: inbox, rates: rates, auth: auth}
}

//
// Handlers
//

// ListProducts godoc
// @ID          listProducts
// @Summary     List active products
// @Description Returns the products visible on the public storefront.
// @Tags        Products
// @Produce     json
// @Success     200  {array}   domain.Product
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /products [get]
func (h *Handlers) ListProducts(c *gin.Context) {
	items, err := h.catalog.ListActive(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// ListAllProducts godoc
// @ID          listAllProducts
// @Summary     List all products (admin)
// @Description Returns every product including inactive ones.
// @Tags        Products
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}   domain.Product
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /products/all [get]
func (h *Handlers) ListAllProducts(c *gin.Context) {
	items, err := h.catalog.ListAll(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetProduct godoc
// @ID          getProduct
// @Summary     Get a product
// @Tags        Products
// @Produce     json
// @Param       id  path  string  true  "Product ID"
// @Success     200  {object}  domain.Product
// @Failure     404  {object}  handlers.ErrorResponse "Product not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /products/{id} [get]
func (h *Handlers) GetProduct(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrProductNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, p)
}

// ListProductsByCategory godoc
// @ID          listProductsByCategory
// @Summary     List active products in a category
// @Tags        Products
// @Produce     json
// @Param       category  path  string  true  "Category"  Enums(ring, earring, necklace, bracelet-thin, bracelet-thick, choker)
// @Success     200  {array}   domain.Product
// @Failure     400  {object}  handlers.ErrorResponse "Unknown category"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /products/category/{category} [get]
func (h *Handlers) ListProductsByCategory(c *gin.Context) {
	items, err := h.catalog.ListByCategory(c.Request.Context(), c.Param("category"))
	if errors.Is(err, services.ErrInvalidCategory) {
		fail(c, http.StatusBadRequest, ErrCodeInvalidCategory, err.Error())
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateProduct godoc
// @ID          createProduct
// @Summary     Create a product (admin)
// @Tags        Products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  schema.InsertProduct  true  "Product payload"
// @Success     201  {object}  domain.Product
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /products [post]
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req schema.InsertProduct
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			failValidation(c, err)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, p)
}

// UpdateProduct godoc
// @ID          updateProduct
// @Summary     Update a product (admin)
// @Description Merges the supplied fields onto an existing product; omitted fields keep their values.
// @Tags        Products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string                true  "Product ID"
// @Param       body  body  schema.UpdateProduct  true  "Fields to update"
// @Success     200  {object}  domain.Product
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse "Product not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /products/{id} [put]
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var req schema.UpdateProduct
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.catalog.Update(c.Request.Context(), c.Param("id"), req)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
	case err != nil:
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			failValidation(c, err)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
	default:
		ok(c, http.StatusOK, p)
	}
}

// DeleteProduct godoc
// @ID          deleteProduct
// @Summary     Delete a product (admin)
// @Tags        Products
// @Security    BearerAuth
// @Param       id  path  string  true  "Product ID"
// @Success     204  {string}  string "No Content"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse "Product not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /products/{id} [delete]
func (h *Handlers) DeleteProduct(c *gin.Context) {
	err := h.catalog.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
	default:
		noContent(c)
	}
}
