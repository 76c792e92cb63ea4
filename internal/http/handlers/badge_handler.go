// Badge HTTP handler.
//
// One endpoint: GET /badges, returning the aggregator's current snapshot.
// The snapshot is re-derived on read, so a same-process mutation is visible
// immediately instead of lagging one poll interval.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/replate/replate-backend/internal/services"
)

// BadgeService defines the aggregator operation consumed by HTTP handlers.
type BadgeService interface {
	// Snapshot re-derives and returns the current badges.
	Snapshot(ctx context.Context) services.Badges
}

// GetBadges godoc
// @ID          getBadges
// @Summary     Get dashboard badges
// @Description Returns the derived badge counters and the transient highlight pulse. The pulse is raised only when a value changed from the previous derivation, never on the baseline.
// @Tags        Badges
// @Produce     json
// @Success     200  {object}  services.Badges
// @Router      /badges [get]
func (h *Handlers) GetBadges(c *gin.Context) {
	ok(c, http.StatusOK, h.badgeSvc.Snapshot(c.Request.Context()))
}
