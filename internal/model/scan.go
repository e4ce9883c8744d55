package model

import "time"

// ScanRecord is the one-time marker for a redeemable identifier; its existence means "used".
type ScanRecord struct {
	Identifier string    `json:"identifier" db:"identifier"`
	EventID    string    `json:"event_id" db:"event_id"`
	OrderID    string    `json:"order_id" db:"order_id"`
	ScannerID  string    `json:"scanner_id" db:"scanner_id"`
	ScannedAt  time.Time `json:"scanned_at" db:"scanned_at"`
}

type ScanPath string

const (
	ScanPathAssignment ScanPath = "assignment"
	ScanPathGroup      ScanPath = "group"
	ScanPathOrderUnit  ScanPath = "order_unit"
)

type ScanOutcome string

const (
	ScanAdmitted          ScanOutcome = "admitted"
	ScanWaitingForPartner ScanOutcome = "waiting_for_partner"
)

type ScanRequest struct {
	Payload   string `json:"payload" binding:"required"`
	EventID   string `json:"event_id" binding:"required"`
	ScannerID string `json:"-"`
}

type ScanResult struct {
	Path             ScanPath      `json:"path"`
	Outcome          ScanOutcome   `json:"outcome"`
	OrderID          string        `json:"order_id"`
	TierID           string        `json:"tier_id"`
	HolderID         string        `json:"holder_id,omitempty"`
	CreditsRemaining *int          `json:"credits_remaining,omitempty"`
	Roster           []RosterEntry `json:"roster,omitempty"`
	ScannedAt        time.Time     `json:"scanned_at"`
}
