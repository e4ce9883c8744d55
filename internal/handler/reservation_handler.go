package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/service"
)

type ReservationHandler struct {
	service service.ReservationService
}

func NewReservationHandler(service service.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("reservations", h.Create)
		router.GET("reservations/:id", h.Get)
		router.DELETE("reservations/:id", h.Release)
	}
}

func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req model.CreateReservationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	req.Buyer.UserID = userID

	reservation, err := h.service.Create(c, req)
	if err != nil {
		handleError(c, err, "CreateReservation")
		return
	}

	respond(c, http.StatusCreated, reservation)
}

func (h *ReservationHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	reservation, err := h.service.Get(c, c.Param("id"), userID)
	if err != nil {
		handleError(c, err, "GetReservation")
		return
	}

	respond(c, http.StatusOK, reservation)
}

func (h *ReservationHandler) Release(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	reservation, err := h.service.Release(c, c.Param("id"), userID)
	if err != nil {
		handleError(c, err, "ReleaseReservation")
		return
	}

	respond(c, http.StatusOK, reservation)
}
