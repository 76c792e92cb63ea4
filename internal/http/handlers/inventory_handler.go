// Inventory HTTP handlers.
//
// This file exposes donor-side stock recording:
//   - GET  /inventory        (list, newest first)
//   - POST /inventory        (manual add)
//   - POST /inventory/scan   (classify an image and record the item)
//
// The classification endpoint is an external collaborator; its failures map
// to 502 so callers can distinguish them from local errors.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/replate/replate-backend/internal/classify"
	"github.com/replate/replate-backend/internal/domain"
	"github.com/replate/replate-backend/internal/services"
	"github.com/replate/replate-backend/internal/utils"
)

// InventoryService defines the stock recording operations consumed by HTTP
// handlers.
type InventoryService interface {
	// List returns the recorded inventory, newest first.
	List(ctx context.Context) ([]domain.InventoryItem, error)
	// Add records a manually entered item.
	Add(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)
	// Scan classifies an image and records the resulting item.
	Scan(ctx context.Context, imageBase64 string) (*domain.InventoryItem, *classify.Result, error)
}

// AddInventoryRequest is the JSON payload for a manual inventory entry.
type AddInventoryRequest struct {
	Name            string   `json:"name" binding:"required" example:"Apples"`
	FoodType        string   `json:"food_type" example:"Produce"`
	Condition       string   `json:"condition" example:"Good"`
	RestrictionTags []string `json:"restriction_tags" example:"No Nuts,Gluten Free"`
}

// ScanRequest is the JSON payload for an image scan.
type ScanRequest struct {
	Image string `json:"image" binding:"required"`
}

// ScanResponse pairs the stored item with the classifier's raw verdict.
type ScanResponse struct {
	Item           domain.InventoryItem `json:"item"`
	Classification classify.Result      `json:"classification"`
}

// ListInventory godoc
// @ID          listInventory
// @Summary     List recorded inventory
// @Tags        Inventory
// @Produce     json
// @Param       limit  query  int  false  "Maximum items to return (0 = all)"
// @Success     200  {array}   domain.InventoryItem
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /inventory [get]
func (h *Handlers) ListInventory(c *gin.Context) {
	items, err := h.invSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if limit := utils.AtoiDefault(c.Query("limit"), 0); limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	ok(c, http.StatusOK, items)
}

// AddInventory godoc
// @ID          addInventory
// @Summary     Record an inventory item manually
// @Tags        Inventory
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.AddInventoryRequest  true  "Item payload"
// @Success     201  {object}  domain.InventoryItem
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /inventory [post]
func (h *Handlers) AddInventory(c *gin.Context) {
	var req AddInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	item, err := h.invSvc.Add(c.Request.Context(), domain.InventoryItem{
		Name:            req.Name,
		FoodType:        req.FoodType,
		Condition:       req.Condition,
		RestrictionTags: req.RestrictionTags,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoItems) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "item name is required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, item)
}

// ScanInventory godoc
// @ID          scanInventory
// @Summary     Classify an image and record the item
// @Description Submits a base64-encoded image to the classification endpoint, derives a display-ready item from the verdict and appends it to the inventory.
// @Tags        Inventory
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.ScanRequest  true  "Base64 image payload"
// @Success     201  {object}  handlers.ScanResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse "Classifier unavailable"
// @Router      /inventory/scan [post]
func (h *Handlers) ScanInventory(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	item, res, err := h.invSvc.Scan(c.Request.Context(), req.Image)
	if err != nil {
		if errors.Is(err, services.ErrEmptyImage) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusBadGateway, ErrCodeUpstreamFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, ScanResponse{Item: *item, Classification: *res})
}
