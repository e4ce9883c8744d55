package model

import "time"

type ShareMode string

const (
	ShareModeIndividual ShareMode = "individual"
	ShareModeSharedQR   ShareMode = "shared_qr"
)

type SlotType string

const (
	SlotTypeOwnerLocked SlotType = "owner_locked"
	SlotTypeShareable   SlotType = "shareable"
)

type ClaimStatus string

const (
	ClaimStatusUnclaimed ClaimStatus = "unclaimed"
	ClaimStatusClaimed   ClaimStatus = "claimed"
)

type PartnerStatus string

const (
	PartnerUnassigned PartnerStatus = "unassigned"
	PartnerAssigned   PartnerStatus = "assigned"
)

type Slot struct {
	Index          int               `json:"slot_index"`
	Type           SlotType          `json:"slot_type"`
	RequiredGender GenderRequirement `json:"required_gender"`
	// CouplePairID links slot 2k-1 with 2k on couple tiers.
	CouplePairID  string        `json:"couple_pair_id,omitempty"`
	ClaimStatus   ClaimStatus   `json:"claim_status"`
	OwnerUserID   string        `json:"current_owner_user_id,omitempty"`
	AssignmentID  string        `json:"assignment_id,omitempty"`
	PartnerStatus PartnerStatus `json:"partner_status,omitempty"`
	ClaimedAt     *time.Time    `json:"claimed_at,omitempty"`
}

func (s *Slot) IsClaimable() bool {
	return s.Type == SlotTypeShareable && s.ClaimStatus == ClaimStatusUnclaimed
}

// PartnerIndex returns the other slot of a couple pair, or 0.
func (s *Slot) PartnerIndex() int {
	if s.CouplePairID == "" {
		return 0
	}
	if s.Index%2 == 1 {
		return s.Index + 1
	}
	return s.Index - 1
}

// ShareBundle decomposes one order line into claimable slots. The slot count
// never changes after creation.
type ShareBundle struct {
	ID                   string    `json:"id" db:"id"`
	OrderID              string    `json:"order_id" db:"order_id"`
	EventID              string    `json:"event_id" db:"event_id"`
	TierID               string    `json:"tier_id" db:"tier_id"`
	OwnerID              string    `json:"owner_id" db:"owner_id"`
	TotalSlots           int       `json:"total_slots" db:"total_slots"`
	RemainingSlots       int       `json:"remaining_slots" db:"remaining_slots"`
	Mode                 ShareMode `json:"mode" db:"mode"`
	Token                string    `json:"token" db:"token"`
	Slots                []Slot    `json:"slots" db:"slots"`
	GroupPayload         string    `json:"group_payload,omitempty" db:"group_payload"`
	ScanCreditsRemaining int       `json:"scan_credits_remaining" db:"scan_credits_remaining"`
	DeferredInventory    bool      `json:"deferred_inventory" db:"deferred_inventory"`
	IsCouple             bool      `json:"is_couple" db:"is_couple"`
	ExpiresAt            time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

func (b *ShareBundle) Slot(index int) (*Slot, bool) {
	if index < 1 || index > len(b.Slots) {
		return nil, false
	}
	return &b.Slots[index-1], true
}

// SlotOwner returns who currently controls a slot: the claimant, or the purchaser while unclaimed.
func (b *ShareBundle) SlotOwner(slot *Slot) string {
	if slot.ClaimStatus == ClaimStatusClaimed {
		return slot.OwnerUserID
	}
	return b.OwnerID
}

func (b *ShareBundle) IsExpired(at time.Time) bool {
	return !b.ExpiresAt.IsZero() && at.After(b.ExpiresAt)
}

// Roster lists claimed slot holders for door staff.
func (b *ShareBundle) Roster() []RosterEntry {
	roster := make([]RosterEntry, 0, len(b.Slots))
	for _, s := range b.Slots {
		if s.ClaimStatus != ClaimStatusClaimed {
			continue
		}
		roster = append(roster, RosterEntry{SlotIndex: s.Index, UserID: s.OwnerUserID, RequiredGender: s.RequiredGender})
	}
	return roster
}

type RosterEntry struct {
	SlotIndex      int               `json:"slot_index"`
	UserID         string            `json:"user_id"`
	RequiredGender GenderRequirement `json:"required_gender"`
}

type AssignmentStatus string

const (
	AssignmentStatusActive    AssignmentStatus = "active"
	AssignmentStatusUsed      AssignmentStatus = "used"
	AssignmentStatusCancelled AssignmentStatus = "cancelled"
)

// TicketAssignment binds one slot to one redeemer with its signed proof.
type TicketAssignment struct {
	ID                  string            `json:"id" db:"id"`
	BundleID            string            `json:"bundle_id" db:"bundle_id"`
	OrderID             string            `json:"order_id" db:"order_id"`
	EventID             string            `json:"event_id" db:"event_id"`
	TierID              string            `json:"tier_id" db:"tier_id"`
	SlotIndex           int               `json:"slot_index" db:"slot_index"`
	RedeemerID          string            `json:"redeemer_id" db:"redeemer_id"`
	OriginalPurchaserID string            `json:"original_purchaser_id" db:"original_purchaser_id"`
	RequiredGender      GenderRequirement `json:"required_gender" db:"required_gender"`
	QRPayload           string            `json:"qr_payload" db:"qr_payload"`
	Status              AssignmentStatus  `json:"status" db:"status"`
	UsedAt              *time.Time        `json:"used_at,omitempty" db:"used_at"`
	CreatedAt           time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at" db:"updated_at"`
}

type CreateShareBundleRequest struct {
	OrderID     string    `json:"-"`
	TierID      string    `json:"-"`
	RequesterID string    `json:"-"`
	Mode        ShareMode `json:"mode"`
}

type ClaimResult struct {
	Bundle     *ShareBundle      `json:"bundle"`
	Assignment *TicketAssignment `json:"assignment"`
	// Replayed is true when the redeemer already held a claim on this bundle.
	Replayed bool `json:"replayed"`
}
