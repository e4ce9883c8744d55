package model

import "time"

type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusAccepted  TransferStatus = "accepted"
	TransferStatusCancelled TransferStatus = "cancelled"
	TransferStatusExpired   TransferStatus = "expired"
)

// Transfer moves one bundle slot from its current owner to a recipient addressed by email.
type Transfer struct {
	ID             string         `json:"id" db:"id"`
	BundleID       string         `json:"bundle_id" db:"bundle_id"`
	SlotIndex      int            `json:"slot_index" db:"slot_index"`
	EventID        string         `json:"event_id" db:"event_id"`
	SenderID       string         `json:"sender_id" db:"sender_id"`
	RecipientEmail string         `json:"recipient_email" db:"recipient_email"`
	Token          string         `json:"token" db:"token"`
	Status         TransferStatus `json:"status" db:"status"`
	AcceptedBy     string         `json:"accepted_by,omitempty" db:"accepted_by"`
	AssignmentID   string         `json:"assignment_id,omitempty" db:"assignment_id"`
	ExpiresAt      time.Time      `json:"expires_at" db:"expires_at"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

type InitiateTransferRequest struct {
	BundleID       string `json:"bundle_id" binding:"required"`
	SlotIndex      int    `json:"slot_index" binding:"required,min=1"`
	SenderID       string `json:"-"`
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
}

type AcceptTransferRequest struct {
	Token       string `json:"-"`
	RecipientID string `json:"-"`
}

type AcceptTransferResult struct {
	Transfer   *Transfer         `json:"transfer"`
	Assignment *TicketAssignment `json:"assignment"`
}
