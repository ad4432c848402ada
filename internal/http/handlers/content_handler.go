// Site content HTTP handlers.
//
// This file exposes the three singleton content records backing the
// storefront pages:
//   - GET /contact-info   PUT /contact-info   (PUT is admin)
//   - GET /about-info     PUT /about-info     (PUT is admin)
//   - GET /homepage-info  PUT /homepage-info  (PUT is admin)
//
// Reads return 404 until the record is first written (seeding normally
// creates them at startup). Updates merge the supplied fields and create
// the record when missing.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzcelik/jewelry-backend/internal/schema"
)

// GetContactInfo godoc
// @ID          getContactInfo
// @Summary     Get contact details
// @Tags        Content
// @Produce     json
// @Success     200  {object}  domain.ContactInfo
// @Failure     404  {object}  handlers.ErrorResponse "Not yet configured"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /contact-info [get]
func (h *Handlers) GetContactInfo(c *gin.Context) {
	info, err := h.content.Contact(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if info == nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "contact info not configured")
		return
	}
	ok(c, http.StatusOK, info)
}

// UpdateContactInfo godoc
// @ID          updateContactInfo
// @Summary     Update contact details (admin)
// @Tags        Content
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  schema.UpdateContactInfo  true  "Fields to update"
// @Success     200  {object}  domain.ContactInfo
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /contact-info [put]
func (h *Handlers) UpdateContactInfo(c *gin.Context) {
	var req schema.UpdateContactInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	info, err := h.content.UpdateContact(c.Request.Context(), req)
	if err != nil {
		failUpdate(c, err)
		return
	}
	ok(c, http.StatusOK, info)
}

// GetAboutInfo godoc
// @ID          getAboutInfo
// @Summary     Get the about page content
// @Tags        Content
// @Produce     json
// @Success     200  {object}  domain.AboutInfo
// @Failure     404  {object}  handlers.ErrorResponse "Not yet configured"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /about-info [get]
func (h *Handlers) GetAboutInfo(c *gin.Context) {
	info, err := h.content.About(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if info == nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "about info not configured")
		return
	}
	ok(c, http.StatusOK, info)
}

// UpdateAboutInfo godoc
// @ID          updateAboutInfo
// @Summary     Update the about page content (admin)
// @Tags        Content
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  schema.UpdateAboutInfo  true  "Fields to update"
// @Success     200  {object}  domain.AboutInfo
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /about-info [put]
func (h *Handlers) UpdateAboutInfo(c *gin.Context) {
	var req schema.UpdateAboutInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	info, err := h.content.UpdateAbout(c.Request.Context(), req)
	if err != nil {
		failUpdate(c, err)
		return
	}
	ok(c, http.StatusOK, info)
}

// GetHomepageInfo godoc
// @ID          getHomepageInfo
// @Summary     Get the homepage hero content
// @Tags        Content
// @Produce     json
// @Success     200  {object}  domain.HomepageInfo
// @Failure     404  {object}  handlers.ErrorResponse "Not yet configured"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /homepage-info [get]
func (h *Handlers) GetHomepageInfo(c *gin.Context) {
	info, err := h.content.Homepage(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if info == nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "homepage info not configured")
		return
	}
	ok(c, http.StatusOK, info)
}

// UpdateHomepageInfo godoc
// @ID          updateHomepageInfo
// @Summary     Update the homepage hero content (admin)
// @Tags        Content
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  schema.UpdateHomepageInfo  true  "Fields to update"
// @Success     200  {object}  domain.HomepageInfo
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /homepage-info [put]
func (h *Handlers) UpdateHomepageInfo(c *gin.Context) {
	var req schema.UpdateHomepageInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	info, err := h.content.UpdateHomepage(c.Request.Context(), req)
	if err != nil {
		failUpdate(c, err)
		return
	}
	ok(c, http.StatusOK, info)
}

// failUpdate maps a singleton update failure to 400 for validation errors
// and 500 otherwise.
func failUpdate(c *gin.Context, err error) {
	var ve *schema.ValidationError
	if errors.As(err, &ve) {
		failValidation(c, err)
		return
	}
	fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
}
