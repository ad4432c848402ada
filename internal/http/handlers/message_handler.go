// Contact-message HTTP handlers.
//
// This file exposes the contact-form endpoints:
//   - POST   /messages           (public, rate limited at the router)
//   - GET    /messages           (admin, newest first)
//   - PUT    /messages/:id/read  (admin, toggle read status)
//   - DELETE /messages/:id       (admin)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/services"
)

// UpdateReadStatusRequest is the JSON payload for toggling a message's
// read flag. IsRead is the literal string "true" or "false".
type UpdateReadStatusRequest struct {
	IsRead string `json:"isRead" example:"true"`
}

// SubmitMessage godoc
// @ID          submitMessage
// @Summary     Submit a contact-form message
// @Description Stores a visitor message for the admin inbox. Rate limited per client IP.
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Param       body  body  schema.InsertMessage  true  "Message payload"
// @Success     201  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     429  {object}  handlers.ErrorResponse "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /messages [post]
func (h *Handlers) SubmitMessage(c *gin.Context) {
	var req schema.InsertMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	m, err := h.inbox.Submit(c.Request.Context(), req)
	if err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			failValidation(c, err)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, m)
}

// ListMessages godoc
// @ID          listMessages
// @Summary     List contact messages (admin)
// @Description Returns every message, newest first.
// @Tags        Messages
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}   domain.Message
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	items, err := h.inbox.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// UpdateMessageReadStatus godoc
// @ID          updateMessageReadStatus
// @Summary     Mark a message read or unread (admin)
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string                           true  "Message ID"
// @Param       body  body  handlers.UpdateReadStatusRequest true  "New read status"
// @Success     200  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse "Invalid flag value"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse "Message not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /messages/{id}/read [put]
func (h *Handlers) UpdateMessageReadStatus(c *gin.Context) {
	var req UpdateReadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	m, err := h.inbox.SetReadStatus(c.Request.Context(), c.Param("id"), req.IsRead)
	switch {
	case errors.Is(err, services.ErrInvalidFlag):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrMessageNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "message not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
	default:
		ok(c, http.StatusOK, m)
	}
}

// DeleteMessage godoc
// @ID          deleteMessage
// @Summary     Delete a message (admin)
// @Tags        Messages
// @Security    BearerAuth
// @Param       id  path  string  true  "Message ID"
// @Success     204  {string}  string "No Content"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse "Message not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /messages/{id} [delete]
func (h *Handlers) DeleteMessage(c *gin.Context) {
	err := h.inbox.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrMessageNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "message not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
	default:
		noContent(c)
	}
}
