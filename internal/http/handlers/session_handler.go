// Session HTTP handlers (demo login).
//
// There is no real authentication here, by design: the login accepts any
// non-empty credential pair and records the session facts other surfaces
// read from the store.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/replate/replate-backend/internal/services"
)

// SessionService defines the demo session operations consumed by HTTP
// handlers.
type SessionService interface {
	// LoginShelter records the shelter demo session.
	LoginShelter(ctx context.Context, username, password string) (*services.Session, error)
	// Logout clears the recorded session facts.
	Logout(ctx context.Context) error
	// Current returns the recorded session facts.
	Current(ctx context.Context) (*services.Session, error)
}

// LoginRequest is the JSON payload for the demo login.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"mjohnson"`
	Password string `json:"password" binding:"required"`
}

// LoginShelter godoc
// @ID          loginShelter
// @Summary     Demo shelter login
// @Description Accepts any non-empty credential pair and records the shelter session in the store.
// @Tags        Session
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
// @Success     200  {object}  services.Session
// @Failure     400  {object}  handlers.ErrorResponse "Missing credentials"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /session/login [post]
func (h *Handlers) LoginShelter(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username and password are required")
		return
	}

	sess, err := h.sessSvc.LoginShelter(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrMissingCredentials) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sess)
}

// Logout godoc
// @ID          logout
// @Summary     Clear the current session
// @Tags        Session
// @Produce     json
// @Success     204  "Cleared"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /session/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	if err := h.sessSvc.Logout(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSession godoc
// @ID          getSession
// @Summary     Get the current session
// @Tags        Session
// @Produce     json
// @Success     200  {object}  services.Session
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /session [get]
func (h *Handlers) GetSession(c *gin.Context) {
	sess, err := h.sessSvc.Current(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sess)
}
