package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/service"
)

// EventHandler serves the public, unauthenticated event reads.
type EventHandler struct {
	reservations service.ReservationService
}

func NewEventHandler(reservations service.ReservationService) *EventHandler {
	return &EventHandler{reservations: reservations}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events/:id/availability", h.GetAvailability)
	}
}

type AvailabilityResponse struct {
	EventID string                   `json:"event_id"`
	Tiers   []model.TierAvailability `json:"tiers"`
}

// GetAvailability is advisory; checkout re-checks stock authoritatively.
func (h *EventHandler) GetAvailability(c *gin.Context) {
	eventID := c.Param("id")

	tiers, err := h.reservations.GetAvailability(c, eventID)
	if err != nil {
		handleError(c, err, "GetAvailability")
		return
	}

	respond(c, http.StatusOK, AvailabilityResponse{EventID: eventID, Tiers: tiers})
}
