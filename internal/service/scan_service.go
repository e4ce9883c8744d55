package service

import (
	"context"
	"errors"
	"fmt"

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

type ScanService interface {
	// Scan validates a signed payload and consumes it. Every path writes its
	// used marker in the transaction that did the validation reads.
	Scan(ctx context.Context, req model.ScanRequest) (*model.ScanResult, error)
}

type ScanServiceImpl struct {
	tx          database.TxManager
	events      repository.EventRepository
	orders      repository.OrderRepository
	shares      repository.ShareRepository
	assignments repository.AssignmentRepository
	scans       repository.ScanRepository
	directory   external.ProfileDirectory
	signer      *qr.Signer
	clock       Clock
	logger      *zap.Logger
}

func NewScanService(
	tx database.TxManager,
	repos repository.Repositories,
	directory external.ProfileDirectory,
	signer *qr.Signer,
	opts ...Option,
) ScanService {
	s := newSettings(opts)
	return &ScanServiceImpl{
		tx:          tx,
		events:      repos.Events,
		orders:      repos.Orders,
		shares:      repos.Shares,
		assignments: repos.Assignments,
		scans:       repos.Scans,
		directory:   directory,
		signer:      signer,
		clock:       s.clock,
		logger:      logger.WithComponent("scan"),
	}
}

func (s *ScanServiceImpl) Scan(ctx context.Context, req model.ScanRequest) (*model.ScanResult, error) {
	subject, err := s.signer.Verify(req.Payload)
	if err != nil {
		monitoring.RecordScan("unknown", "invalid_signature")
		s.logger.Warn("scan rejected", zap.String("event_id", req.EventID), zap.Error(err))
		return nil, err
	}

	var result *model.ScanResult
	var path model.ScanPath
	switch subject.Kind {
	case qr.KindAssignment:
		path = model.ScanPathAssignment
		result, err = s.scanAssignment(ctx, subject, req)
	case qr.KindBundle:
		path = model.ScanPathGroup
		result, err = s.scanGroup(ctx, subject, req)
	default:
		path = model.ScanPathOrderUnit
		result, err = s.scanUnit(ctx, subject, req)
	}
	if err != nil {
		monitoring.RecordScan(string(path), scanOutcome(err))
		s.logger.Warn("scan rejected",
			zap.String("event_id", req.EventID),
			zap.String("path", string(path)),
			zap.String("identifier", subject.Identifier()),
			zap.Error(err),
		)
		return nil, err
	}

	monitoring.RecordScan(string(path), string(result.Outcome))
	return result, nil
}

// scanAssignment admits a slot holder. A couple slot whose partner has not
// been scanned is consumed but reported as waiting for the partner.
func (s *ScanServiceImpl) scanAssignment(ctx context.Context, subject qr.Subject, req model.ScanRequest) (*model.ScanResult, error) {
	peek, err := s.assignments.FindByID(ctx, subject.AssignmentID)
	if err != nil {
		return nil, err
	}
	gender, err := genderOf(ctx, s.directory, peek.RedeemerID)
	if err != nil {
		return nil, err
	}

	// Lock order is bundle then assignment, as in transfer acceptance. The bundle
	// lock serializes the two halves of a couple pair, so exactly one of them
	// sees its partner used.
	var result *model.ScanResult
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		bundle, err := s.shares.FindByIDWithLock(ctx, peek.BundleID)
		if err != nil {
			return err
		}
		a, err := s.assignments.FindByIDWithLock(ctx, subject.AssignmentID)
		if err != nil {
			return err
		}
		if a.EventID != req.EventID {
			return apperrors.ErrEventMismatch
		}
		switch a.Status {
		case model.AssignmentStatusUsed:
			return apperrors.ErrAlreadyUsed
		case model.AssignmentStatusCancelled:
			return apperrors.ErrTicketCancelled
		}
		if a.RedeemerID != peek.RedeemerID {
			return apperrors.ErrTicketCancelled
		}

		order, err := s.orders.FindByID(ctx, a.OrderID)
		if err != nil {
			return err
		}
		if !order.IsRedeemable() {
			return apperrors.ErrOrderNotValid
		}
		if !a.RequiredGender.Allows(gender) {
			return apperrors.ErrGenderMismatch
		}

		outcome := model.ScanAdmitted
		if slot, ok := bundle.Slot(a.SlotIndex); ok {
			if partner, ok := bundle.Slot(slot.PartnerIndex()); ok {
				used, err := s.partnerUsed(ctx, partner)
				if err != nil {
					return err
				}
				if !used {
					outcome = model.ScanWaitingForPartner
				}
			}
		}

		now := s.clock()
		inserted, err := s.scans.Insert(ctx, &model.ScanRecord{
			Identifier: subject.Identifier(),
			EventID:    a.EventID,
			OrderID:    a.OrderID,
			ScannerID:  req.ScannerID,
			ScannedAt:  now,
		})
		if err != nil {
			return err
		}
		if !inserted {
			return apperrors.ErrAlreadyUsed
		}

		a.Status = model.AssignmentStatusUsed
		a.UsedAt = &now
		a.UpdatedAt = now
		if err := s.assignments.UpdateStatus(ctx, a); err != nil {
			return err
		}

		result = &model.ScanResult{
			Path:      model.ScanPathAssignment,
			Outcome:   outcome,
			OrderID:   a.OrderID,
			TierID:    a.TierID,
			HolderID:  a.RedeemerID,
			ScannedAt: now,
		}
		return nil
	})
	return result, err
}

func (s *ScanServiceImpl) partnerUsed(ctx context.Context, partner *model.Slot) (bool, error) {
	if partner.AssignmentID == "" {
		return false, nil
	}
	a, err := s.assignments.FindByID(ctx, partner.AssignmentID)
	if errors.Is(err, apperrors.ErrAssignmentNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return a.Status == model.AssignmentStatusUsed, nil
}

// scanGroup spends one credit of a shared QR, whoever presents it.
func (s *ScanServiceImpl) scanGroup(ctx context.Context, subject qr.Subject, req model.ScanRequest) (*model.ScanResult, error) {
	var result *model.ScanResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		bundle, err := s.shares.FindByIDWithLock(ctx, subject.BundleID)
		if err != nil {
			return err
		}
		if bundle.EventID != req.EventID {
			return apperrors.ErrEventMismatch
		}
		if bundle.Mode != model.ShareModeSharedQR {
			return apperrors.ErrTicketSuperseded
		}
		order, err := s.orders.FindByID(ctx, bundle.OrderID)
		if err != nil {
			return err
		}
		if !order.IsRedeemable() {
			return apperrors.ErrOrderNotValid
		}
		if bundle.ScanCreditsRemaining <= 0 {
			return apperrors.ErrScanCreditsExhausted
		}

		now := s.clock()
		used := bundle.TotalSlots - bundle.ScanCreditsRemaining + 1
		inserted, err := s.scans.Insert(ctx, &model.ScanRecord{
			Identifier: fmt.Sprintf("%s#%d", subject.Identifier(), used),
			EventID:    bundle.EventID,
			OrderID:    bundle.OrderID,
			ScannerID:  req.ScannerID,
			ScannedAt:  now,
		})
		if err != nil {
			return err
		}
		if !inserted {
			return apperrors.ErrScanCreditsExhausted
		}

		bundle.ScanCreditsRemaining--
		bundle.UpdatedAt = now
		if err := s.shares.Update(ctx, bundle); err != nil {
			return err
		}

		credits := bundle.ScanCreditsRemaining
		result = &model.ScanResult{
			Path:             model.ScanPathGroup,
			Outcome:          model.ScanAdmitted,
			OrderID:          bundle.OrderID,
			TierID:           bundle.TierID,
			HolderID:         bundle.OwnerID,
			CreditsRemaining: &credits,
			Roster:           bundle.Roster(),
			ScannedAt:        now,
		}
		return nil
	})
	return result, err
}

// scanUnit admits a direct order-line ticket. The scan record keyed by the
// unit identifier is the only record of use.
func (s *ScanServiceImpl) scanUnit(ctx context.Context, subject qr.Subject, req model.ScanRequest) (*model.ScanResult, error) {
	var result *model.ScanResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.orders.FindByID(ctx, subject.OrderID)
		if err != nil {
			return err
		}
		if order.EventID != req.EventID {
			return apperrors.ErrEventMismatch
		}
		if !order.IsRedeemable() {
			return apperrors.ErrOrderNotValid
		}
		line, ok := order.Line(subject.TierID)
		if !ok {
			return apperrors.ErrInvalidSignature
		}

		event, err := s.events.FindByID(ctx, order.EventID)
		if err != nil {
			return err
		}
		tier, ok := event.Tier(line.TierID)
		if !ok {
			return apperrors.ErrTierNotFound
		}
		if subject.Unit > directUnits(tier, line.Quantity) {
			return apperrors.ErrInvalidSignature
		}

		if _, err := s.shares.FindByOrderTier(ctx, order.ID, line.TierID); err == nil {
			return apperrors.ErrTicketSuperseded
		} else if !errors.Is(err, apperrors.ErrBundleNotFound) {
			return err
		}

		gender, err := genderOf(ctx, s.directory, order.Buyer.UserID)
		if err != nil {
			return err
		}
		if !tier.GenderRequirement.Allows(gender) {
			return apperrors.ErrGenderMismatch
		}

		now := s.clock()
		inserted, err := s.scans.Insert(ctx, &model.ScanRecord{
			Identifier: subject.Identifier(),
			EventID:    order.EventID,
			OrderID:    order.ID,
			ScannerID:  req.ScannerID,
			ScannedAt:  now,
		})
		if err != nil {
			return err
		}
		if !inserted {
			return apperrors.ErrAlreadyUsed
		}

		result = &model.ScanResult{
			Path:      model.ScanPathOrderUnit,
			Outcome:   model.ScanAdmitted,
			OrderID:   order.ID,
			TierID:    line.TierID,
			HolderID:  order.Buyer.UserID,
			ScannedAt: now,
		}
		return nil
	})
	return result, err
}

func scanOutcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrAlreadyUsed):
		return "already_used"
	case errors.Is(err, apperrors.ErrEventMismatch):
		return "event_mismatch"
	case errors.Is(err, apperrors.ErrGenderMismatch):
		return "gender_mismatch"
	case errors.Is(err, apperrors.ErrScanCreditsExhausted):
		return "exhausted"
	default:
		return "rejected"
	}
}
