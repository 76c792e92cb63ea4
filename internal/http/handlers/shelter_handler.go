// Shelter request HTTP handlers.
//
// This file exposes the shelter-authored stock request workflow:
//   - POST /shelter/requests             (create)
//   - GET  /shelter/requests?status=     (list, filtered)
//   - POST /shelter/requests/{id}/cancel (Active → Cancelled)
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/replate/replate-backend/internal/domain"
	"github.com/replate/replate-backend/internal/services"
)

// ShelterService defines the shelter request operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type ShelterService interface {
	// Create validates and persists a new Active request.
	Create(ctx context.Context, in services.NewRequestInput) (*domain.ShelterRequest, error)
	// List returns the persisted requests, optionally filtered by status.
	List(ctx context.Context, status string) ([]domain.ShelterRequest, error)
	// Cancel moves an Active request to Cancelled.
	Cancel(ctx context.Context, id int64) (*domain.ShelterRequest, error)
}

// CreateShelterRequestRequest is the JSON payload for authoring a request.
type CreateShelterRequestRequest struct {
	Title   string               `json:"title" binding:"required" example:"Emergency Food Supplies"`
	Urgency string               `json:"urgency" example:"High"`
	Items   []domain.RequestItem `json:"items"`
	Notes   string               `json:"notes" example:"Soup kitchen serving 100 people daily"`
}

// CreateShelterRequest godoc
// @ID          createShelterRequest
// @Summary     Create a shelter stock request
// @Description Validates the payload and appends a new Active request to the shelter's list.
// @Tags        Shelter
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateShelterRequestRequest  true  "New request payload"
// @Success     201  {object}  domain.ShelterRequest
// @Failure     400  {object}  handlers.ErrorResponse "Validation failure"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /shelter/requests [post]
func (h *Handlers) CreateShelterRequest(c *gin.Context) {
	var req CreateShelterRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	created, err := h.shelterSvc.Create(c.Request.Context(), services.NewRequestInput{
		Title:   req.Title,
		Urgency: req.Urgency,
		Items:   req.Items,
		Notes:   req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyTitle),
			errors.Is(err, services.ErrInvalidUrgency),
			errors.Is(err, services.ErrNoItems):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListShelterRequests godoc
// @ID          listShelterRequests
// @Summary     List shelter stock requests
// @Description Returns the shelter's requests, newest first, optionally filtered by status (Active/Accepted/Completed/Cancelled; empty or "All" returns everything).
// @Tags        Shelter
// @Produce     json
// @Param       status  query  string  false  "Status filter"  Enums(All, Active, Accepted, Completed, Cancelled)
// @Success     200  {array}   domain.ShelterRequest
// @Failure     400  {object}  handlers.ErrorResponse "Unknown status"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /shelter/requests [get]
func (h *Handlers) ListShelterRequests(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	if status != "" && !strings.EqualFold(status, "all") && !domain.ValidStatus(titleStatus(status)) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown status filter")
		return
	}

	items, err := h.shelterSvc.List(c.Request.Context(), status)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CancelShelterRequest godoc
// @ID          cancelShelterRequest
// @Summary     Cancel an active shelter request
// @Description Moves an Active request to Cancelled. Requests already in a terminal state are rejected.
// @Tags        Shelter
// @Produce     json
// @Param       id  path  int  true  "Shelter request ID"
// @Success     200  {object}  domain.ShelterRequest
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Unknown request"
// @Failure     409  {object}  handlers.ErrorResponse "Not active"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /shelter/requests/{id}/cancel [post]
func (h *Handlers) CancelShelterRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be an integer")
		return
	}

	cancelled, err := h.shelterSvc.Cancel(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShelterRequestNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
		case errors.Is(err, services.ErrNotActive):
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, cancelled)
}

// titleStatus normalizes a filter value to the stored capitalization
// ("active" → "Active") so validation can reuse domain.ValidStatus.
func titleStatus(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
