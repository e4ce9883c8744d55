package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/config"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/external"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/monitoring"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/qr"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/logger"
)

type TransferService interface {
	Initiate(ctx context.Context, req model.InitiateTransferRequest) (*model.Transfer, error)
	// Accept succeeds at most once per transfer.
	Accept(ctx context.Context, req model.AcceptTransferRequest) (*model.AcceptTransferResult, error)
	Cancel(ctx context.Context, transferID, requesterID string) (*model.Transfer, error)
	ExpireSweep(ctx context.Context, batchSize int) (int, error)
}

type TransferServiceImpl struct {
	tx          database.TxManager
	events      repository.EventRepository
	tiers       repository.TierRepository
	orders      repository.OrderRepository
	shares      repository.ShareRepository
	assignments repository.AssignmentRepository
	transfers   repository.TransferRepository
	directory   external.ProfileDirectory
	signer      *qr.Signer
	cutoff      time.Duration
	clock       Clock
	logger      *zap.Logger
}

func NewTransferService(
	tx database.TxManager,
	repos repository.Repositories,
	directory external.ProfileDirectory,
	signer *qr.Signer,
	cfg config.CheckoutConfig,
	opts ...Option,
) TransferService {
	s := newSettings(opts)
	return &TransferServiceImpl{
		tx:          tx,
		events:      repos.Events,
		tiers:       repos.Tiers,
		orders:      repos.Orders,
		shares:      repos.Shares,
		assignments: repos.Assignments,
		transfers:   repos.Transfers,
		directory:   directory,
		signer:      signer,
		cutoff:      cfg.TransferCutoff,
		clock:       s.clock,
		logger:      logger.WithComponent("transfer"),
	}
}

func (s *TransferServiceImpl) Initiate(ctx context.Context, req model.InitiateTransferRequest) (*model.Transfer, error) {
	if req.SenderID == "" || req.RecipientEmail == "" {
		return nil, apperrors.ErrInvalidInput
	}

	bundle, err := s.shares.FindByID(ctx, req.BundleID)
	if err != nil {
		return nil, err
	}
	event, err := s.events.FindByID(ctx, bundle.EventID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	closesAt := event.StartsAt.Add(-s.cutoff)
	if !now.Before(closesAt) {
		return nil, apperrors.ErrTransferWindowClosed
	}

	token, err := generateToken(16)
	if err != nil {
		return nil, err
	}
	transfer := &model.Transfer{
		ID:             uuid.NewString(),
		BundleID:       bundle.ID,
		SlotIndex:      req.SlotIndex,
		EventID:        bundle.EventID,
		SenderID:       req.SenderID,
		RecipientEmail: strings.ToLower(strings.TrimSpace(req.RecipientEmail)),
		Token:          token,
		Status:         model.TransferStatusPending,
		ExpiresAt:      closesAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.shares.FindByIDWithLock(ctx, bundle.ID)
		if err != nil {
			return err
		}
		slot, ok := locked.Slot(req.SlotIndex)
		if !ok {
			return apperrors.ErrSlotNotFound
		}
		if slot.Type == model.SlotTypeOwnerLocked {
			return fmt.Errorf("%w: slot is locked to the purchaser", apperrors.ErrForbidden)
		}
		if locked.SlotOwner(slot) != req.SenderID {
			return apperrors.ErrNotSlotOwner
		}

		order, err := s.orders.FindByID(ctx, locked.OrderID)
		if err != nil {
			return err
		}
		if err := orderUsable(order); err != nil {
			return err
		}

		if slot.AssignmentID != "" {
			current, err := s.assignments.FindByID(ctx, slot.AssignmentID)
			if err != nil {
				return err
			}
			if current.Status == model.AssignmentStatusUsed {
				return apperrors.ErrAlreadyUsed
			}
		}
		return s.transfers.Create(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transfer initiated",
		zap.String("transfer_id", transfer.ID),
		zap.String("bundle_id", transfer.BundleID),
		zap.Int("slot_index", transfer.SlotIndex),
	)
	return transfer, nil
}

func (s *TransferServiceImpl) Accept(ctx context.Context, req model.AcceptTransferRequest) (*model.AcceptTransferResult, error) {
	if req.RecipientID == "" || req.Token == "" {
		return nil, apperrors.ErrInvalidInput
	}
	profile, err := s.directory.Lookup(ctx, req.RecipientID)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrUnauthorizedTransfer
	}
	if err != nil {
		return nil, err
	}

	var result *model.AcceptTransferResult
	var expired bool
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		transfer, err := s.transfers.FindByTokenWithLock(ctx, req.Token)
		if err != nil {
			return err
		}
		if transfer.Status != model.TransferStatusPending {
			return apperrors.ErrTransferNotPending
		}

		now := s.clock()
		if !now.Before(transfer.ExpiresAt) {
			transfer.Status = model.TransferStatusExpired
			transfer.UpdatedAt = now
			expired = true
			return s.transfers.UpdateStatus(ctx, transfer)
		}
		if !strings.EqualFold(profile.Email, transfer.RecipientEmail) {
			return apperrors.ErrUnauthorizedTransfer
		}

		bundle, err := s.shares.FindByIDWithLock(ctx, transfer.BundleID)
		if err != nil {
			return err
		}
		slot, ok := bundle.Slot(transfer.SlotIndex)
		if !ok {
			return apperrors.ErrSlotNotFound
		}
		owner := bundle.SlotOwner(slot)
		if owner != transfer.SenderID {
			return apperrors.ErrNotSlotOwner
		}
		if req.RecipientID == owner || req.RecipientID == bundle.OwnerID {
			return fmt.Errorf("%w: recipient already holds this ticket", apperrors.ErrInvalidInput)
		}
		if _, err := s.assignments.FindActiveByRedeemer(ctx, bundle.ID, req.RecipientID); err == nil {
			return fmt.Errorf("%w: recipient already holds a slot in this bundle", apperrors.ErrInvalidInput)
		} else if !errors.Is(err, apperrors.ErrAssignmentNotFound) {
			return err
		}
		if !slot.RequiredGender.Allows(profile.Gender) {
			return apperrors.ErrGenderMismatch
		}

		var previous *model.TicketAssignment
		if slot.AssignmentID != "" {
			previous, err = s.assignments.FindByIDWithLock(ctx, slot.AssignmentID)
			if err != nil {
				return err
			}
			if previous.Status == model.AssignmentStatusUsed {
				return apperrors.ErrAlreadyUsed
			}
		}

		wasUnclaimed := slot.ClaimStatus == model.ClaimStatusUnclaimed
		if wasUnclaimed && bundle.DeferredInventory {
			if err := chargeTier(ctx, s.tiers, bundle.TierID, 1, apperrors.ErrInsufficientStock); err != nil {
				return err
			}
		}

		if previous != nil {
			previous.Status = model.AssignmentStatusCancelled
			previous.UpdatedAt = now
			if err := s.assignments.UpdateStatus(ctx, previous); err != nil {
				return err
			}
		}

		assignment := newAssignment(s.signer, bundle, slot, req.RecipientID, now)
		if err := s.assignments.Create(ctx, assignment); err != nil {
			return err
		}
		claimSlot(bundle, slot, assignment, now)
		resetPartner(bundle, slot)
		if wasUnclaimed {
			bundle.RemainingSlots--
		}
		if err := s.shares.Update(ctx, bundle); err != nil {
			return err
		}

		transfer.Status = model.TransferStatusAccepted
		transfer.AcceptedBy = req.RecipientID
		transfer.AssignmentID = assignment.ID
		transfer.UpdatedAt = now
		if err := s.transfers.UpdateStatus(ctx, transfer); err != nil {
			return err
		}

		result = &model.AcceptTransferResult{Transfer: transfer, Assignment: assignment}
		return nil
	})
	if err != nil {
		s.logger.Warn("transfer acceptance rejected", zap.String("recipient_id", req.RecipientID), zap.Error(err))
		return nil, err
	}
	if expired {
		return nil, apperrors.ErrTransferExpired
	}

	s.logger.Info("transfer accepted",
		zap.String("transfer_id", result.Transfer.ID),
		zap.String("assignment_id", result.Assignment.ID),
	)
	return result, nil
}

// resetPartner clears couple pairing after a change of hands; the new holder
// starts unpaired.
func resetPartner(bundle *model.ShareBundle, slot *model.Slot) {
	if slot.CouplePairID == "" {
		return
	}
	slot.PartnerStatus = model.PartnerUnassigned
	if partner, ok := bundle.Slot(slot.PartnerIndex()); ok {
		partner.PartnerStatus = model.PartnerUnassigned
	}
}

func (s *TransferServiceImpl) Cancel(ctx context.Context, transferID, requesterID string) (*model.Transfer, error) {
	var transfer *model.Transfer
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.transfers.FindByIDWithLock(ctx, transferID)
		if err != nil {
			return err
		}
		if locked.SenderID != requesterID {
			return apperrors.ErrForbidden
		}
		if locked.Status != model.TransferStatusPending {
			return apperrors.ErrTransferNotPending
		}

		locked.Status = model.TransferStatusCancelled
		locked.UpdatedAt = s.clock()
		if err := s.transfers.UpdateStatus(ctx, locked); err != nil {
			return err
		}
		transfer = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transfer cancelled", zap.String("transfer_id", transfer.ID))
	return transfer, nil
}

func (s *TransferServiceImpl) ExpireSweep(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	now := s.clock()
	total := 0
	for {
		n, err := s.transfers.ExpireOverdue(ctx, now, batchSize)
		total += n
		if err != nil {
			return total, err
		}
		if n < batchSize {
			break
		}
	}

	if total > 0 {
		s.logger.Info("expired overdue transfers", zap.Int("count", total))
	}
	monitoring.RecordSwept("transfer", total)
	return total, nil
}
