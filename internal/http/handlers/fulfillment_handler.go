// Donor fulfillment HTTP handlers.
//
// This file exposes the request-fulfillment workflow:
//   - GET  /requests                                  (active view)
//   - GET  /requests/{id}                             (editable state)
//   - POST /requests/{id}/requirements/{line}/toggle  (flip one line)
//   - POST /requests/{id}/accept                      (commit)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses. Unknown and completed
// ids fail open with a redirect target back to the listing.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/replate/replate-backend/internal/domain"
	"github.com/replate/replate-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// FulfillmentService defines the donor lifecycle operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type FulfillmentService interface {
	// List returns the active view of the catalog.
	List(ctx context.Context) ([]domain.Request, error)
	// Get returns the editable state for one request.
	Get(ctx context.Context, id int) (*services.RequestState, error)
	// Toggle flips one requirement line and re-derives fulfillment.
	Toggle(ctx context.Context, id, lineID int) (*services.RequestState, error)
	// Accept commits a fully fulfilled request.
	Accept(ctx context.Context, id int) (*services.AcceptResult, error)
}

//
// DTOs
//

// RequestStateResponse is the editable state of one fulfillment request.
type RequestStateResponse struct {
	Request        domain.Request `json:"request"`
	FullyFulfilled bool           `json:"fully_fulfilled"`
}

// AcceptResponse reports the effects of a commit, including the
// delayed-navigation contract the celebratory animation relies on.
type AcceptResponse struct {
	RequestID          int    `json:"request_id"`
	AlreadyCompleted   bool   `json:"already_completed"`
	UpcomingDeliveries int    `json:"upcoming_deliveries"`
	RedirectTo         string `json:"redirect_to"`
	RedirectAfterMS    int64  `json:"redirect_after_ms"`
	Message            string `json:"message"`
}

func stateResponse(st *services.RequestState) RequestStateResponse {
	return RequestStateResponse{Request: st.Request, FullyFulfilled: st.FullyFulfilled}
}

// pathInt parses an integer path parameter; ok=false means the caller already
// received a 400.
func pathInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be an integer")
		return 0, false
	}
	return v, true
}

// redirectOnMissing maps the fail-open service errors to a 404 carrying the
// listing redirect, and everything else to a 500. Returns true when handled.
func redirectOnMissing(c *gin.Context, err error) bool {
	if errors.Is(err, services.ErrRequestNotFound) || errors.Is(err, services.ErrRequestCompleted) {
		failRedirect(c, http.StatusNotFound, ErrCodeNotFound, err.Error(), "/requests")
		return true
	}
	return false
}

//
// Handlers
//

// ListRequests godoc
// @ID          listRequests
// @Summary     List active fulfillment requests
// @Description Returns every catalog request not yet accepted, in catalog order.
// @Tags        Requests
// @Produce     json
// @Success     200  {array}   domain.Request
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /requests [get]
func (h *Handlers) ListRequests(c *gin.Context) {
	items, err := h.fulfillSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetRequest godoc
// @ID          getRequest
// @Summary     Get one request's editable state
// @Description Returns the request with its requirement lines and the derived fulfillment flag. Unknown or already-completed ids return 404 with a redirect back to the listing.
// @Tags        Requests
// @Produce     json
// @Param       id  path  int  true  "Request ID"
// @Success     200  {object}  handlers.RequestStateResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Unknown or completed"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /requests/{id} [get]
func (h *Handlers) GetRequest(c *gin.Context) {
	id, okID := pathInt(c, "id")
	if !okID {
		return
	}
	st, err := h.fulfillSvc.Get(c.Request.Context(), id)
	if err != nil {
		if redirectOnMissing(c, err) {
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, stateResponse(st))
}

// ToggleRequirement godoc
// @ID          toggleRequirement
// @Summary     Toggle one requirement line
// @Description Flips the fulfilled flag on a single line and re-derives the request's fulfillment flag.
// @Tags        Requests
// @Produce     json
// @Param       id    path  int  true  "Request ID"
// @Param       line  path  int  true  "Requirement line ID"
// @Success     200  {object}  handlers.RequestStateResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Unknown request or line"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /requests/{id}/requirements/{line}/toggle [post]
func (h *Handlers) ToggleRequirement(c *gin.Context) {
	id, okID := pathInt(c, "id")
	if !okID {
		return
	}
	line, okLine := pathInt(c, "line")
	if !okLine {
		return
	}

	st, err := h.fulfillSvc.Toggle(c.Request.Context(), id, line)
	if err != nil {
		switch {
		case redirectOnMissing(c, err):
		case errors.Is(err, services.ErrLineNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, stateResponse(st))
}

// AcceptRequest godoc
// @ID          acceptRequest
// @Summary     Accept a fully fulfilled request
// @Description Commits the acceptance: records the id as completed, bumps the accepted counter, and returns the delayed-navigation contract. Replays on a completed id are reported, not re-counted.
// @Tags        Requests
// @Produce     json
// @Param       id  path  int  true  "Request ID"
// @Success     200  {object}  handlers.AcceptResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Unknown request"
// @Failure     409  {object}  handlers.ErrorResponse "Not all requirements fulfilled"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /requests/{id}/accept [post]
func (h *Handlers) AcceptRequest(c *gin.Context) {
	id, okID := pathInt(c, "id")
	if !okID {
		return
	}

	res, err := h.fulfillSvc.Accept(c.Request.Context(), id)
	if err != nil {
		switch {
		case redirectOnMissing(c, err):
		case errors.Is(err, services.ErrNotFulfilled):
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, AcceptResponse{
		RequestID:          res.RequestID,
		AlreadyCompleted:   res.AlreadyCompleted,
		UpcomingDeliveries: res.UpcomingDeliveries,
		RedirectTo:         res.RedirectTo,
		RedirectAfterMS:    res.RedirectAfter.Milliseconds(),
		Message:            res.Message,
	})
}
