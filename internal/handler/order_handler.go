package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/service"
)

type OrderHandler struct {
	pricing  service.PricingService
	checkout service.CheckoutService
}

func NewOrderHandler(pricing service.PricingService, checkout service.CheckoutService) *OrderHandler {
	return &OrderHandler{pricing: pricing, checkout: checkout}
}

func (h *OrderHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("pricing/quote", h.Quote)
		router.POST("checkout", h.Checkout)
		router.POST("orders/:id/confirm-payment", h.ConfirmPayment)
		router.GET("orders/:id/entitlements", h.GetEntitlements)
		router.POST("orders/:id/cancel", h.CancelOrder)
	}
}

// Quote is open to anonymous callers; the per-user promo cap is checked only when the caller is known.
func (h *OrderHandler) Quote(c *gin.Context) {
	var req model.QuoteRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	req.BuyerID = c.GetHeader(HeaderUserID)

	quote, err := h.pricing.Quote(c, req)
	if err != nil {
		handleError(c, err, "Quote")
		return
	}

	respond(c, http.StatusOK, quote)
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req model.CheckoutRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	req.Buyer.UserID = userID

	result, err := h.checkout.InitiateCheckout(c, req)
	if err != nil {
		handleError(c, err, "InitiateCheckout")
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	respond(c, status, result)
}

// ConfirmPayment is called with the gateway's callback fields; the signature authenticates it.
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	var req model.ConfirmPaymentRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	req.OrderID = c.Param("id")

	result, err := h.checkout.ConfirmPayment(c, req)
	if err != nil {
		handleError(c, err, "ConfirmPayment")
		return
	}

	respond(c, http.StatusOK, result)
}

func (h *OrderHandler) GetEntitlements(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	entitlements, err := h.checkout.GetEntitlements(c, c.Param("id"), userID)
	if err != nil {
		handleError(c, err, "GetEntitlements")
		return
	}

	respond(c, http.StatusOK, entitlements)
}

type CancelOrderRequest struct {
	Status model.OrderStatus `json:"status" binding:"omitempty,oneof=cancelled refunded"`
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	var req CancelOrderRequest
	if err := BindOptionalJson(c, &req); err != nil {
		return
	}
	if req.Status == "" {
		req.Status = model.OrderStatusCancelled
	}

	order, err := h.checkout.CancelOrder(c, c.Param("id"), req.Status)
	if err != nil {
		handleError(c, err, "CancelOrder")
		return
	}

	respond(c, http.StatusOK, order)
}
