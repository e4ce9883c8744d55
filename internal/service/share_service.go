package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/external"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/monitoring"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/qr"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/logger"
)

type ShareService interface {
	// GetOrCreateBundle splits a confirmed order line into slots on first call.
	GetOrCreateBundle(ctx context.Context, req model.CreateShareBundleRequest) (*model.ShareBundle, error)
	GetByToken(ctx context.Context, token string) (*model.ShareBundle, error)
	// ClaimSlot is idempotent per redeemer.
	ClaimSlot(ctx context.Context, token, redeemerID string) (*model.ClaimResult, error)
}

type ShareServiceImpl struct {
	tx          database.TxManager
	events      repository.EventRepository
	tiers       repository.TierRepository
	orders      repository.OrderRepository
	shares      repository.ShareRepository
	assignments repository.AssignmentRepository
	directory   external.ProfileDirectory
	signer      *qr.Signer
	clock       Clock
	logger      *zap.Logger
}

func NewShareService(
	tx database.TxManager,
	repos repository.Repositories,
	directory external.ProfileDirectory,
	signer *qr.Signer,
	opts ...Option,
) ShareService {
	s := newSettings(opts)
	return &ShareServiceImpl{
		tx:          tx,
		events:      repos.Events,
		tiers:       repos.Tiers,
		orders:      repos.Orders,
		shares:      repos.Shares,
		assignments: repos.Assignments,
		directory:   directory,
		signer:      signer,
		clock:       s.clock,
		logger:      logger.WithComponent("share"),
	}
}

func (s *ShareServiceImpl) GetOrCreateBundle(ctx context.Context, req model.CreateShareBundleRequest) (*model.ShareBundle, error) {
	order, err := s.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Buyer.UserID == "" || order.Buyer.UserID != req.RequesterID {
		return nil, apperrors.ErrForbidden
	}
	if err := orderUsable(order); err != nil {
		return nil, err
	}
	line, ok := order.Line(req.TierID)
	if !ok {
		return nil, apperrors.ErrTierNotFound
	}

	existing, err := s.shares.FindByOrderTier(ctx, order.ID, line.TierID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrBundleNotFound) {
		return nil, err
	}

	event, err := s.events.FindByID(ctx, order.EventID)
	if err != nil {
		return nil, err
	}
	tier, ok := event.Tier(line.TierID)
	if !ok {
		return nil, apperrors.ErrTierNotFound
	}
	ownerGender, err := genderOf(ctx, s.directory, order.Buyer.UserID)
	if err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode != model.ShareModeSharedQR {
		mode = model.ShareModeIndividual
	}
	token, err := generateToken(16)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	bundle := &model.ShareBundle{
		ID:                uuid.NewString(),
		OrderID:           order.ID,
		EventID:           order.EventID,
		TierID:            tier.ID,
		OwnerID:           order.Buyer.UserID,
		Mode:              mode,
		Token:             token,
		DeferredInventory: tier.UsesDeferredInventory(),
		IsCouple:          tier.IsCouple,
		ExpiresAt:         event.StartsAt,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	bundle.Slots = buildSlots(tier, line.Quantity, ownerGender)
	bundle.TotalSlots = len(bundle.Slots)
	bundle.RemainingSlots = bundle.TotalSlots - 1
	bundle.ScanCreditsRemaining = bundle.TotalSlots
	if mode == model.ShareModeSharedQR {
		bundle.GroupPayload = s.signer.Sign(qr.BundleSubject(bundle.ID))
	}

	owner := newAssignment(s.signer, bundle, &bundle.Slots[0], order.Buyer.UserID, now)
	claimSlot(bundle, &bundle.Slots[0], owner, now)

	var created bool
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		inserted, err := s.shares.Create(ctx, bundle)
		if err != nil || !inserted {
			return err
		}
		created = true
		return s.assignments.Create(ctx, owner)
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return s.shares.FindByOrderTier(ctx, order.ID, line.TierID)
	}

	s.logger.Info("share bundle created",
		zap.String("bundle_id", bundle.ID),
		zap.String("order_id", order.ID),
		zap.String("tier_id", tier.ID),
		zap.Int("slots", bundle.TotalSlots),
	)
	return bundle, nil
}

// buildSlots lays out quantity tickets as slots. Couple tiers get two slots per
// ticket with alternating gender, slot 1 following the purchaser's gender. When
// the purchaser's gender is unknown their own pair stays unconstrained.
func buildSlots(tier *model.TicketTier, quantity int, ownerGender model.Gender) []model.Slot {
	total := quantity * tier.SlotsPerTicket()
	slots := make([]model.Slot, 0, total)

	first, second := model.GenderMale, model.GenderFemale
	if ownerGender == model.GenderIsFemale {
		first, second = second, first
	}

	for i := 1; i <= total; i++ {
		slot := model.Slot{
			Index:          i,
			Type:           model.SlotTypeShareable,
			RequiredGender: tier.GenderRequirement,
			ClaimStatus:    model.ClaimStatusUnclaimed,
		}
		if slot.RequiredGender == "" {
			slot.RequiredGender = model.GenderAny
		}
		if tier.IsCouple {
			slot.CouplePairID = fmt.Sprintf("pair-%d", (i+1)/2)
			slot.PartnerStatus = model.PartnerUnassigned
			slot.RequiredGender = first
			if i%2 == 0 {
				slot.RequiredGender = second
			}
			if i <= 2 && ownerGender == model.GenderUnknown {
				slot.RequiredGender = model.GenderAny
			}
		}
		if i == 1 {
			slot.Type = model.SlotTypeOwnerLocked
		}
		slots = append(slots, slot)
	}
	return slots
}

func newAssignment(signer *qr.Signer, bundle *model.ShareBundle, slot *model.Slot, redeemerID string, now time.Time) *model.TicketAssignment {
	a := &model.TicketAssignment{
		ID:                  uuid.NewString(),
		BundleID:            bundle.ID,
		OrderID:             bundle.OrderID,
		EventID:             bundle.EventID,
		TierID:              bundle.TierID,
		SlotIndex:           slot.Index,
		RedeemerID:          redeemerID,
		OriginalPurchaserID: bundle.OwnerID,
		RequiredGender:      slot.RequiredGender,
		Status:              model.AssignmentStatusActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if bundle.Mode == model.ShareModeSharedQR {
		a.QRPayload = bundle.GroupPayload
	} else {
		a.QRPayload = signer.Sign(qr.AssignmentSubject(a.ID))
	}
	return a
}

// claimSlot binds a slot to an assignment and settles couple partner state.
func claimSlot(bundle *model.ShareBundle, slot *model.Slot, a *model.TicketAssignment, now time.Time) {
	slot.ClaimStatus = model.ClaimStatusClaimed
	slot.OwnerUserID = a.RedeemerID
	slot.AssignmentID = a.ID
	slot.ClaimedAt = &now
	bundle.UpdatedAt = now

	if partner, ok := bundle.Slot(slot.PartnerIndex()); ok {
		if partner.ClaimStatus == model.ClaimStatusClaimed {
			slot.PartnerStatus = model.PartnerAssigned
			partner.PartnerStatus = model.PartnerAssigned
		}
	}
}

func (s *ShareServiceImpl) GetByToken(ctx context.Context, token string) (*model.ShareBundle, error) {
	return s.shares.FindByToken(ctx, token)
}

func (s *ShareServiceImpl) ClaimSlot(ctx context.Context, token, redeemerID string) (*model.ClaimResult, error) {
	if redeemerID == "" {
		return nil, apperrors.ErrInvalidInput
	}
	gender, err := genderOf(ctx, s.directory, redeemerID)
	if err != nil {
		return nil, err
	}

	var result *model.ClaimResult
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		bundle, err := s.shares.FindByTokenWithLock(ctx, token)
		if err != nil {
			return err
		}
		if bundle.OwnerID == redeemerID {
			return apperrors.ErrCannotClaimOwnBundle
		}

		existing, err := s.assignments.FindActiveByRedeemer(ctx, bundle.ID, redeemerID)
		if err == nil {
			result = &model.ClaimResult{Bundle: bundle, Assignment: existing, Replayed: true}
			return nil
		}
		if !errors.Is(err, apperrors.ErrAssignmentNotFound) {
			return err
		}

		now := s.clock()
		if bundle.IsExpired(now) {
			return apperrors.ErrShareLinkExpired
		}
		order, err := s.orders.FindByID(ctx, bundle.OrderID)
		if err != nil {
			return err
		}
		if err := orderUsable(order); err != nil {
			return err
		}
		if bundle.RemainingSlots <= 0 {
			return apperrors.ErrBundleExhausted
		}

		var slot *model.Slot
		for i := range bundle.Slots {
			candidate := &bundle.Slots[i]
			if candidate.IsClaimable() && candidate.RequiredGender.Allows(gender) {
				slot = candidate
				break
			}
		}
		if slot == nil {
			return apperrors.NoSlotForGender(string(gender))
		}

		if bundle.DeferredInventory {
			if err := chargeTier(ctx, s.tiers, bundle.TierID, 1, apperrors.ErrInsufficientStock); err != nil {
				return err
			}
		}

		assignment := newAssignment(s.signer, bundle, slot, redeemerID, now)
		if err := s.assignments.Create(ctx, assignment); err != nil {
			return err
		}
		claimSlot(bundle, slot, assignment, now)
		bundle.RemainingSlots--
		if err := s.shares.Update(ctx, bundle); err != nil {
			return err
		}

		result = &model.ClaimResult{Bundle: bundle, Assignment: assignment}
		return nil
	})
	if err != nil {
		monitoring.RecordClaim(claimOutcome(err))
		s.logger.Warn("slot claim rejected", zap.String("redeemer_id", redeemerID), zap.Error(err))
		return nil, err
	}

	if result.Replayed {
		monitoring.RecordClaim("replayed")
	} else {
		monitoring.RecordClaim("claimed")
		s.logger.Info("slot claimed",
			zap.String("bundle_id", result.Bundle.ID),
			zap.Int("slot_index", result.Assignment.SlotIndex),
			zap.String("redeemer_id", redeemerID),
		)
	}
	return result, nil
}

func claimOutcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNoSlotAvailable):
		return "no_slot"
	case errors.Is(err, apperrors.ErrBundleExhausted):
		return "exhausted"
	case errors.Is(err, apperrors.ErrShareLinkExpired):
		return "expired"
	case errors.Is(err, apperrors.ErrInsufficientStock):
		return "sold_out"
	default:
		return "rejected"
	}
}
