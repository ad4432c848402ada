// Exchange-rate HTTP handlers.
//
// This file exposes the currency endpoints used by the storefront price
// display and the admin panel:
//   - GET /exchange-rates             (public)
//   - GET /exchange-rates/:currency   (public)
//   - PUT /exchange-rates/:currency   (admin, upsert)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/services"
)

// ListExchangeRates godoc
// @ID          listExchangeRates
// @Summary     List exchange rates
// @Tags        ExchangeRates
// @Produce     json
// @Success     200  {array}   domain.ExchangeRate
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /exchange-rates [get]
func (h *Handlers) ListExchangeRates(c *gin.Context) {
	items, err := h.rates.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetExchangeRate godoc
// @ID          getExchangeRate
// @Summary     Get the rate for a currency
// @Tags        ExchangeRates
// @Produce     json
// @Param       currency  path  string  true  "Currency code"  example(USD)
// @Success     200  {object}  domain.ExchangeRate
// @Failure     404  {object}  handlers.ErrorResponse "Rate not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /exchange-rates/{currency} [get]
func (h *Handlers) GetExchangeRate(c *gin.Context) {
	r, err := h.rates.Get(c.Request.Context(), c.Param("currency"))
	if errors.Is(err, services.ErrRateNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "exchange rate not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, r)
}

// UpdateExchangeRate godoc
// @ID          updateExchangeRate
// @Summary     Upsert the rate for a currency (admin)
// @Description Sets the rate for the currency, creating the record when it does not exist yet.
// @Tags        ExchangeRates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       currency  path  string                     true  "Currency code"  example(USD)
// @Param       body      body  schema.UpdateExchangeRate  true  "New rate"
// @Success     200  {object}  domain.ExchangeRate
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /exchange-rates/{currency} [put]
func (h *Handlers) UpdateExchangeRate(c *gin.Context) {
	var req schema.UpdateExchangeRate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	r, err := h.rates.Update(c.Request.Context(), c.Param("currency"), req)
	if err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			failValidation(c, err)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, r)
}
