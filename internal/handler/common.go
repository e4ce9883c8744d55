package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/logger"
)

const (
	// HeaderUserID is set by the upstream auth layer.
	HeaderUserID    = "X-User-ID"
	HeaderScannerID = "X-Scanner-ID"
)

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

func fail(c *gin.Context, status int, code, message string, details interface{}) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message, Details: details},
	})
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", "Invalid request format", err.Error())
		return err
	}
	return nil
}

// BindOptionalJson accepts an empty body and leaves obj untouched.
func BindOptionalJson(c *gin.Context, obj interface{}) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return BindJson(c, obj)
}

// requireUser reads the caller identity; it writes a 401 and returns false when absent.
func requireUser(c *gin.Context) (string, bool) {
	userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
	if userID == "" {
		fail(c, http.StatusUnauthorized, "unauthenticated", "Missing caller identity", nil)
		return "", false
	}
	return userID, true
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{apperrors.ErrEventNotFound, http.StatusNotFound, "event_not_found"},
	{apperrors.ErrTierNotFound, http.StatusNotFound, "tier_not_found"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{apperrors.ErrReservationNotFound, http.StatusNotFound, "reservation_not_found"},
	{apperrors.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
	{apperrors.ErrBundleNotFound, http.StatusNotFound, "bundle_not_found"},
	{apperrors.ErrSlotNotFound, http.StatusNotFound, "slot_not_found"},
	{apperrors.ErrAssignmentNotFound, http.StatusNotFound, "assignment_not_found"},
	{apperrors.ErrTransferNotFound, http.StatusNotFound, "transfer_not_found"},

	{apperrors.ErrReservationExpired, http.StatusGone, "reservation_expired"},
	{apperrors.ErrShareLinkExpired, http.StatusGone, "share_link_expired"},
	{apperrors.ErrTransferExpired, http.StatusGone, "transfer_expired"},

	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
	{apperrors.ErrCannotClaimOwnBundle, http.StatusForbidden, "cannot_claim_own_bundle"},
	{apperrors.ErrNotSlotOwner, http.StatusForbidden, "not_slot_owner"},
	{apperrors.ErrUnauthorizedTransfer, http.StatusForbidden, "unauthorized_transfer"},

	{apperrors.ErrInsufficientStock, http.StatusConflict, "insufficient_stock"},
	{apperrors.ErrSoldOutDuringPurchase, http.StatusConflict, "sold_out_during_purchase"},
	{apperrors.ErrReservationNotActive, http.StatusConflict, "reservation_not_active"},
	{apperrors.ErrInvalidOrderStatus, http.StatusConflict, "invalid_order_status"},
	{apperrors.ErrOrderNotValid, http.StatusConflict, "order_not_valid"},
	{apperrors.ErrRSVPAlreadyExists, http.StatusConflict, "rsvp_already_exists"},
	{apperrors.ErrBundleExhausted, http.StatusConflict, "bundle_exhausted"},
	{apperrors.ErrNoSlotAvailable, http.StatusConflict, "no_slot_available"},
	{apperrors.ErrTransferWindowClosed, http.StatusConflict, "transfer_window_closed"},
	{apperrors.ErrTransferNotPending, http.StatusConflict, "transfer_not_pending"},
	{apperrors.ErrTransferAlreadyExists, http.StatusConflict, "transfer_already_exists"},
	{apperrors.ErrAlreadyUsed, http.StatusConflict, "already_used"},
	{apperrors.ErrTicketCancelled, http.StatusConflict, "ticket_cancelled"},
	{apperrors.ErrTicketSuperseded, http.StatusConflict, "ticket_superseded"},
	{apperrors.ErrScanCreditsExhausted, http.StatusConflict, "scan_credits_exhausted"},

	{apperrors.ErrPaymentNotVerified, http.StatusPaymentRequired, "payment_not_verified"},
	{apperrors.ErrPaymentAmountMismatch, http.StatusPaymentRequired, "payment_amount_mismatch"},

	{apperrors.ErrInvalidSignature, http.StatusUnprocessableEntity, "invalid_signature"},
	{apperrors.ErrEventMismatch, http.StatusUnprocessableEntity, "event_mismatch"},
	{apperrors.ErrGenderMismatch, http.StatusUnprocessableEntity, "gender_mismatch"},
	{apperrors.ErrPromoCodeNotFound, http.StatusUnprocessableEntity, "promo_code_not_found"},
	{apperrors.ErrPromoCodeInactive, http.StatusUnprocessableEntity, "promo_code_inactive"},
	{apperrors.ErrPromoCodeExhausted, http.StatusUnprocessableEntity, "promo_code_exhausted"},
	{apperrors.ErrPromoCodeNotValid, http.StatusUnprocessableEntity, "promo_code_not_valid"},

	{apperrors.ErrRSVPQuantity, http.StatusBadRequest, "rsvp_quantity"},
	{apperrors.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
}

type soldOutDetails struct {
	TierID    string `json:"tier_id"`
	Requested int    `json:"requested"`
	Remaining int    `json:"remaining"`
}

func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var verrs apperrors.ValidationErrors
	if errors.As(err, &verrs) {
		log.Warn("Validation failed")
		fail(c, http.StatusBadRequest, "validation_failed", "Request validation failed", []apperrors.FieldError(verrs))
		return
	}

	var soldOut *apperrors.SoldOutError
	if errors.As(err, &soldOut) {
		log.Warn("Sold out")
		code := "insufficient_stock"
		if errors.Is(soldOut.Cause, apperrors.ErrSoldOutDuringPurchase) {
			code = "sold_out_during_purchase"
		}
		fail(c, http.StatusConflict, code, err.Error(), soldOutDetails{
			TierID:    soldOut.TierID,
			Requested: soldOut.Requested,
			Remaining: soldOut.Remaining,
		})
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			log.Warn("Request rejected", zap.String("code", m.code))
			fail(c, m.status, m.code, err.Error(), nil)
			return
		}
	}

	log.Error("Unexpected error")
	fail(c, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
}
