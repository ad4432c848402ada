// Authentication HTTP handlers.
//
// This file exposes:
//   - POST /auth/login  (public, returns a bearer token)
//   - GET  /auth/me     (admin, echoes the authenticated identity)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oguzcelik/jewelry-backend/internal/http/middleware"
	"github.com/oguzcelik/jewelry-backend/internal/services"
)

// LoginRequest is the JSON payload for authenticating an admin user.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token and the authenticated
// user's public fields.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login godoc
// @ID          login
// @Summary     Authenticate an admin user
// @Description Verifies the credentials and returns a bearer token for the admin endpoints.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
// @Success     200  {object}  handlers.LoginResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Invalid credentials"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username and password are required")
		return
	}

	token, u, err := h.auth.Login(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		fail(c, http.StatusUnauthorized, ErrCodeLoginFailed, err.Error())
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, LoginResponse{Token: token, Username: u.Username, Role: u.Role})
}

// Me godoc
// @ID          me
// @Summary     Return the authenticated identity
// @Tags        Auth
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  map[string]string
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Router      /auth/me [get]
func (h *Handlers) Me(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{
		"id":       middleware.UserID(c),
		"username": middleware.Username(c),
		"role":     middleware.Role(c),
	})
}
