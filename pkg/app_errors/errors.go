package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
	ErrForbidden           = errors.New("forbidden")

	ErrEventNotFound = errors.New("event not found")
	ErrTierNotFound  = errors.New("ticket tier not found")
	ErrUserNotFound  = errors.New("user not found")

	// inventory
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrSoldOutDuringPurchase = errors.New("sold out during purchase")

	// reservations
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationExpired   = errors.New("reservation expired, select tickets again")
	ErrReservationNotActive = errors.New("reservation is no longer active, select tickets again")

	// orders
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidOrderStatus    = errors.New("invalid order status")
	ErrOrderNotValid         = errors.New("order is cancelled or refunded")
	ErrRSVPAlreadyExists     = errors.New("an RSVP already exists for this person")
	ErrRSVPQuantity          = errors.New("RSVP events allow exactly one ticket")
	ErrPaymentNotVerified    = errors.New("payment could not be verified")
	ErrPaymentAmountMismatch = errors.New("payment amount does not match order total")

	// promo
	ErrPromoCodeNotFound  = errors.New("promo code not found")
	ErrPromoCodeInactive  = errors.New("promo code is not active")
	ErrPromoCodeExhausted = errors.New("promo code redemption limit reached")
	ErrPromoCodeNotValid  = errors.New("promo code does not apply to selected tickets")

	// sharing
	ErrBundleNotFound       = errors.New("share bundle not found")
	ErrShareLinkExpired     = errors.New("share link expired")
	ErrBundleExhausted      = errors.New("all slots in this bundle are claimed")
	ErrCannotClaimOwnBundle = errors.New("cannot claim a slot from your own bundle")
	ErrNoSlotAvailable      = errors.New("no slots available")
	ErrSlotNotFound         = errors.New("slot not found")
	ErrAssignmentNotFound   = errors.New("ticket assignment not found")

	// transfers
	ErrTransferNotFound      = errors.New("transfer not found")
	ErrTransferWindowClosed  = errors.New("transfers are closed for this event")
	ErrTransferNotPending    = errors.New("transfer is no longer pending")
	ErrTransferExpired       = errors.New("transfer expired")
	ErrTransferAlreadyExists = errors.New("a transfer is already pending for this slot")
	ErrNotSlotOwner          = errors.New("you do not own this slot")
	ErrUnauthorizedTransfer  = errors.New("transfer is addressed to another recipient")

	// scanning
	ErrInvalidSignature     = errors.New("invalid ticket signature")
	ErrEventMismatch        = errors.New("ticket belongs to another event")
	ErrAlreadyUsed          = errors.New("ticket already used")
	ErrTicketCancelled      = errors.New("ticket cancelled")
	ErrTicketSuperseded     = errors.New("ticket has been shared, scan the slot ticket instead")
	ErrGenderMismatch       = errors.New("ticket holder does not meet the gender requirement")
	ErrScanCreditsExhausted = errors.New("group ticket has no scans remaining")
)

// FieldError describes one rejected reservation line.
type FieldError struct {
	TierID  string `json:"tier_id,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when any line of a request is rejected.
// Nothing is committed when it is returned.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		if e.TierID != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s: %s", e.TierID, e.Field, e.Message))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return ErrInvalidInput
}

// SoldOutError carries the remaining count so callers can render a precise message.
type SoldOutError struct {
	TierID    string
	TierName  string
	Requested int
	Remaining int
	// Cause is ErrInsufficientStock or ErrSoldOutDuringPurchase.
	Cause error
}

func (e *SoldOutError) Error() string {
	return fmt.Sprintf("%s: %s requested %d, %d remaining", e.Cause, e.TierName, e.Requested, e.Remaining)
}

func (e *SoldOutError) Unwrap() error {
	return e.Cause
}

func NoSlotForGender(gender string) error {
	if gender == "" {
		return fmt.Errorf("%w for your profile", ErrNoSlotAvailable)
	}
	return fmt.Errorf("%w for %s guests", ErrNoSlotAvailable, gender)
}
