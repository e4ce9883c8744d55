package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/config"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/cache"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/monitoring"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/pricing"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/logger"
)

type ReservationService interface {
	// Create takes a soft hold. A retry with the same idempotency key returns the live hold.
	Create(ctx context.Context, req model.CreateReservationRequest) (*model.Reservation, error)
	Get(ctx context.Context, id, requesterID string) (*model.Reservation, error)
	// Release is idempotent; terminal reservations are returned unchanged.
	Release(ctx context.Context, id, requesterID string) (*model.Reservation, error)
	ExpireSweep(ctx context.Context, batchSize int) (int, error)
	GetAvailability(ctx context.Context, eventID string) ([]model.TierAvailability, error)
}

type ReservationServiceImpl struct {
	tx           database.TxManager
	events       repository.EventRepository
	tiers        repository.TierRepository
	reservations repository.ReservationRepository
	availability cache.AvailabilityCache
	ttl          time.Duration
	clock        Clock
	logger       *zap.Logger
}

// NewReservationService accepts a nil availability cache.
func NewReservationService(
	tx database.TxManager,
	repos repository.Repositories,
	availability cache.AvailabilityCache,
	cfg config.CheckoutConfig,
	opts ...Option,
) ReservationService {
	s := newSettings(opts)
	return &ReservationServiceImpl{
		tx:           tx,
		events:       repos.Events,
		tiers:        repos.Tiers,
		reservations: repos.Reservations,
		availability: availability,
		ttl:          cfg.ReservationTTL,
		clock:        s.clock,
		logger:       logger.WithComponent("reservation"),
	}
}

func (s *ReservationServiceImpl) Create(ctx context.Context, req model.CreateReservationRequest) (*model.Reservation, error) {
	now := s.clock()

	if req.IdempotencyKey != "" {
		existing, err := s.reservations.FindLiveByQueueID(ctx, req.IdempotencyKey, now)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrReservationNotFound) {
			return nil, err
		}
	}

	event, err := s.events.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	items, err := s.validateItems(event, req.Items, now)
	if err != nil {
		monitoring.RecordReservation("invalid")
		return nil, err
	}

	reservation := &model.Reservation{
		ID:              uuid.NewString(),
		EventID:         event.ID,
		CustomerID:      req.Buyer.UserID,
		DeviceID:        req.Buyer.DeviceID,
		ExternalQueueID: req.IdempotencyKey,
		Items:           items,
		Status:          model.ReservationStatusActive,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.ttl),
		UpdatedAt:       now,
	}

	err = s.holdInventory(ctx, reservation, now)
	if database.IsSerializationFailure(err) {
		s.logger.Warn("reservation pre-check aborted, retrying once", zap.String("event_id", event.ID))
		err = s.holdInventory(ctx, reservation, now)
	}
	if err != nil {
		var soldOut *apperrors.SoldOutError
		if errors.As(err, &soldOut) {
			monitoring.RecordReservation("sold_out")
			s.logger.Warn("reservation rejected",
				zap.String("event_id", event.ID),
				zap.String("tier_id", soldOut.TierID),
				zap.Int("requested", soldOut.Requested),
				zap.Int("available", soldOut.Remaining),
			)
		}
		return nil, err
	}

	monitoring.RecordReservation("created")
	s.adjustHeld(ctx, reservation, 1)
	return reservation, nil
}

// validateItems checks every line and reports all problems at once.
func (s *ReservationServiceImpl) validateItems(event *model.Event, requested []model.ItemRequest, now time.Time) ([]model.ReservationItem, error) {
	var verrs apperrors.ValidationErrors
	if len(requested) == 0 {
		verrs = append(verrs, apperrors.FieldError{Field: "items", Message: "at least one item is required"})
	}

	seen := make(map[string]bool, len(requested))
	items := make([]model.ReservationItem, 0, len(requested))
	total := 0
	for _, item := range requested {
		tier, ok := event.Tier(item.TierID)
		if !ok {
			verrs = append(verrs, apperrors.FieldError{TierID: item.TierID, Field: "tier_id", Message: "tier not found"})
			continue
		}
		if seen[tier.ID] {
			verrs = append(verrs, apperrors.FieldError{TierID: tier.ID, Field: "tier_id", Message: "tier listed more than once"})
			continue
		}
		seen[tier.ID] = true

		resolved := pricing.Resolve(tier, now)
		free := event.IsRSVP() || resolved.UnitPrice.IsZero()
		if !free && !tier.SalesOpen(now) {
			verrs = append(verrs, apperrors.FieldError{TierID: tier.ID, Field: "tier_id", Message: "sales are closed for this tier"})
		}

		switch {
		case item.Quantity <= 0:
			verrs = append(verrs, apperrors.FieldError{TierID: tier.ID, Field: "quantity", Message: "must be positive"})
			continue
		case item.Quantity < tier.MinAllowed():
			verrs = append(verrs, apperrors.FieldError{TierID: tier.ID, Field: "quantity", Message: "below the minimum per order"})
		case item.Quantity > tier.MaxAllowed():
			verrs = append(verrs, apperrors.FieldError{TierID: tier.ID, Field: "quantity", Message: "above the maximum per order"})
		}
		total += item.Quantity

		unit := pricing.Round(resolved.UnitPrice)
		items = append(items, model.ReservationItem{
			TierID:        tier.ID,
			TierName:      tier.Name,
			Quantity:      item.Quantity,
			UnitPrice:     unit,
			Subtotal:      pricing.Round(unit.Mul(decimalQty(item.Quantity))),
			ScheduleLabel: resolved.ScheduleLabel,
		})
	}

	if event.IsRSVP() && total > 1 {
		verrs = append(verrs, apperrors.FieldError{Field: "items", Message: apperrors.ErrRSVPQuantity.Error()})
	}

	if len(verrs) > 0 {
		return nil, verrs
	}
	return items, nil
}

// holdInventory is the optimistic pre-check: tiers are locked in id order and
// each line must fit in remaining minus other live holds.
func (s *ReservationServiceImpl) holdInventory(ctx context.Context, reservation *model.Reservation, now time.Time) error {
	lines := make([]model.ReservationItem, len(reservation.Items))
	copy(lines, reservation.Items)
	sort.Slice(lines, func(i, j int) bool { return lines[i].TierID < lines[j].TierID })

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, line := range lines {
			tier, err := s.tiers.FindByIDWithLock(ctx, line.TierID)
			if err != nil {
				return err
			}
			held, err := s.reservations.SumLiveHolds(ctx, tier.ID, now)
			if err != nil {
				return err
			}
			available := tier.Remaining - held
			if line.Quantity > available {
				return &apperrors.SoldOutError{
					TierID:    tier.ID,
					TierName:  tier.Name,
					Requested: line.Quantity,
					Remaining: max(available, 0),
					Cause:     apperrors.ErrInsufficientStock,
				}
			}
		}
		return s.reservations.Create(ctx, reservation)
	})
}

func (s *ReservationServiceImpl) Get(ctx context.Context, id, requesterID string) (*model.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requesterID != "" && reservation.CustomerID != "" && reservation.CustomerID != requesterID {
		return nil, apperrors.ErrForbidden
	}

	if reservation.Status == model.ReservationStatusActive && !reservation.IsLive(s.clock()) {
		return s.expire(ctx, reservation)
	}
	return reservation, nil
}

// expire moves an overdue active reservation to expired and returns the stored row.
func (s *ReservationServiceImpl) expire(ctx context.Context, reservation *model.Reservation) (*model.Reservation, error) {
	if _, err := s.reservations.UpdateStatus(ctx, reservation.ID, model.ReservationStatusActive, model.ReservationStatusExpired, ""); err != nil {
		return nil, err
	}
	return s.reservations.FindByID(ctx, reservation.ID)
}

func (s *ReservationServiceImpl) Release(ctx context.Context, id, requesterID string) (*model.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requesterID != "" && reservation.CustomerID != "" && reservation.CustomerID != requesterID {
		return nil, apperrors.ErrForbidden
	}
	if reservation.Status.IsTerminal() {
		return reservation, nil
	}

	live := reservation.IsLive(s.clock())
	released, err := s.reservations.UpdateStatus(ctx, id, model.ReservationStatusActive, model.ReservationStatusReleased, "")
	if err != nil {
		return nil, err
	}
	if released {
		s.logger.Info("reservation released", zap.String("reservation_id", id))
		monitoring.RecordReservation("released")
		if live {
			s.adjustHeld(ctx, reservation, -1)
		}
	}
	return s.reservations.FindByID(ctx, id)
}

func (s *ReservationServiceImpl) ExpireSweep(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	now := s.clock()
	total := 0
	for {
		n, err := s.reservations.ExpireOverdue(ctx, now, batchSize)
		total += n
		if err != nil {
			return total, err
		}
		if n < batchSize {
			break
		}
	}

	if total > 0 {
		s.logger.Info("expired overdue reservations", zap.Int("count", total))
	}
	monitoring.RecordSwept("reservation", total)
	return total, nil
}

func (s *ReservationServiceImpl) GetAvailability(ctx context.Context, eventID string) ([]model.TierAvailability, error) {
	if s.availability != nil {
		snapshot, ok, err := s.availability.Get(ctx, eventID)
		if err != nil {
			s.logger.Warn("availability cache read failed", zap.String("event_id", eventID), zap.Error(err))
		} else if ok {
			return snapshot, nil
		}
	}

	tiers, err := s.tiers.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(tiers) == 0 {
		if _, err := s.events.FindByID(ctx, eventID); err != nil {
			return nil, err
		}
	}
	holds, err := s.reservations.SumLiveHoldsByEvent(ctx, eventID, s.clock())
	if err != nil {
		return nil, err
	}

	snapshot := make([]model.TierAvailability, 0, len(tiers))
	for _, tier := range tiers {
		held := holds[tier.ID]
		snapshot = append(snapshot, model.TierAvailability{
			TierID:    tier.ID,
			Name:      tier.Name,
			Remaining: tier.Remaining,
			Held:      held,
			Available: max(tier.Remaining-held, 0),
		})
	}

	if s.availability != nil {
		if err := s.availability.Set(ctx, eventID, snapshot); err != nil {
			s.logger.Warn("availability cache write failed", zap.String("event_id", eventID), zap.Error(err))
		}
	}
	return snapshot, nil
}

func (s *ReservationServiceImpl) adjustHeld(ctx context.Context, reservation *model.Reservation, sign int) {
	if s.availability == nil {
		return
	}
	for _, item := range reservation.Items {
		if err := s.availability.AdjustHeld(ctx, reservation.EventID, item.TierID, sign*item.Quantity); err != nil {
			s.logger.Warn("availability cache adjust failed", zap.String("event_id", reservation.EventID), zap.Error(err))
		}
	}
}
