package service

import (
	"context"
	"errors"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/qr"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

// entitlementMinter derives signed proofs for a confirmed order. Nothing is
// stored: unit payloads are recomputed from the order, slot payloads are read
// from their assignments.
type entitlementMinter struct {
	signer      *qr.Signer
	tiers       repository.TierRepository
	shares      repository.ShareRepository
	assignments repository.AssignmentRepository
}

func (m *entitlementMinter) forOrder(ctx context.Context, order *model.Order) ([]model.Entitlement, error) {
	var out []model.Entitlement
	for _, line := range order.Lines {
		bundle, err := m.shares.FindByOrderTier(ctx, order.ID, line.TierID)
		switch {
		case err == nil:
			slotted, err := m.forBundle(ctx, bundle)
			if err != nil {
				return nil, err
			}
			out = append(out, slotted...)
			continue
		case !errors.Is(err, apperrors.ErrBundleNotFound):
			return nil, err
		}

		tier, err := m.tiers.FindByID(ctx, line.TierID)
		if err != nil {
			return nil, err
		}
		for unit := 1; unit <= directUnits(tier, line.Quantity); unit++ {
			out = append(out, model.Entitlement{
				TierID:  line.TierID,
				Unit:    unit,
				Payload: m.signer.Sign(qr.UnitSubject(order.ID, line.TierID, unit)),
			})
		}
	}
	return out, nil
}

func (m *entitlementMinter) forBundle(ctx context.Context, bundle *model.ShareBundle) ([]model.Entitlement, error) {
	if bundle.Mode == model.ShareModeSharedQR {
		return []model.Entitlement{{TierID: bundle.TierID, Payload: bundle.GroupPayload}}, nil
	}

	assignments, err := m.assignments.ListByBundle(ctx, bundle.ID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Entitlement, 0, len(assignments))
	for _, a := range assignments {
		if a.Status == model.AssignmentStatusCancelled {
			continue
		}
		out = append(out, model.Entitlement{
			TierID:       a.TierID,
			SlotIndex:    a.SlotIndex,
			AssignmentID: a.ID,
			Payload:      a.QRPayload,
		})
	}
	return out, nil
}

// directUnits is how many unit payloads an unshared line carries. Deferred
// lines only carry the purchaser's unit; the rest must be claimed.
func directUnits(tier *model.TicketTier, quantity int) int {
	if tier.UsesDeferredInventory() {
		return min(quantity, 1)
	}
	return quantity * tier.SlotsPerTicket()
}
