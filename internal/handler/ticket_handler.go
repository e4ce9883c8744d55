package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/service"
)

// TicketHandler serves what happens to tickets after purchase: sharing, claiming and transfers.
type TicketHandler struct {
	shares    service.ShareService
	transfers service.TransferService
}

func NewTicketHandler(shares service.ShareService, transfers service.TransferService) *TicketHandler {
	return &TicketHandler{shares: shares, transfers: transfers}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("orders/:id/lines/:tierId/share", h.CreateShareBundle)
		router.GET("share/:token", h.GetShareBundle)
		router.POST("share/:token/claim", h.ClaimSlot)

		router.POST("transfers", h.InitiateTransfer)
		router.POST("transfers/:id/cancel", h.CancelTransfer)
		router.POST("transfer-invitations/:token/accept", h.AcceptTransfer)
	}
}

func (h *TicketHandler) CreateShareBundle(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req model.CreateShareBundleRequest
	if err := BindOptionalJson(c, &req); err != nil {
		return
	}
	req.OrderID = c.Param("id")
	req.TierID = c.Param("tierId")
	req.RequesterID = userID

	bundle, err := h.shares.GetOrCreateBundle(c, req)
	if err != nil {
		handleError(c, err, "CreateShareBundle")
		return
	}

	respond(c, http.StatusOK, bundle)
}

func (h *TicketHandler) GetShareBundle(c *gin.Context) {
	bundle, err := h.shares.GetByToken(c, c.Param("token"))
	if err != nil {
		handleError(c, err, "GetShareBundle")
		return
	}

	respond(c, http.StatusOK, bundle)
}

func (h *TicketHandler) ClaimSlot(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.shares.ClaimSlot(c, c.Param("token"), userID)
	if err != nil {
		handleError(c, err, "ClaimSlot")
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	respond(c, status, result)
}

func (h *TicketHandler) InitiateTransfer(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req model.InitiateTransferRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	req.SenderID = userID

	transfer, err := h.transfers.Initiate(c, req)
	if err != nil {
		handleError(c, err, "InitiateTransfer")
		return
	}

	respond(c, http.StatusCreated, transfer)
}

func (h *TicketHandler) AcceptTransfer(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.transfers.Accept(c, model.AcceptTransferRequest{
		Token:       c.Param("token"),
		RecipientID: userID,
	})
	if err != nil {
		handleError(c, err, "AcceptTransfer")
		return
	}

	respond(c, http.StatusOK, result)
}

func (h *TicketHandler) CancelTransfer(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	transfer, err := h.transfers.Cancel(c, c.Param("id"), userID)
	if err != nil {
		handleError(c, err, "CancelTransfer")
		return
	}

	respond(c, http.StatusOK, transfer)
}
