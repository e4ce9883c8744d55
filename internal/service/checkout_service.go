package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/external"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/monitoring"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/qr"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/queue"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/logger"
)

const defaultCurrency = "INR"

// errOrderExists rolls back a confirmation whose order id is already taken.
var errOrderExists = errors.New("order already exists")

type CheckoutService interface {
	// InitiateCheckout turns a live reservation into an order. Retrying with the
	// same reservation returns the order created the first time.
	InitiateCheckout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutResult, error)
	// ConfirmPayment settles a pending order; it is the authoritative inventory gate for paid orders.
	ConfirmPayment(ctx context.Context, req model.ConfirmPaymentRequest) (*model.CheckoutResult, error)
	GetEntitlements(ctx context.Context, orderID, requesterID string) ([]model.Entitlement, error)
	// CancelOrder moves an order to cancelled or refunded, restoring charged inventory.
	CancelOrder(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error)
}

type CheckoutServiceImpl struct {
	tx           database.TxManager
	events       repository.EventRepository
	tiers        repository.TierRepository
	reservations repository.ReservationRepository
	orders       repository.OrderRepository
	shares       repository.ShareRepository
	promos       repository.PromoRepository
	pricing      PricingService
	gateway      external.PaymentGateway
	directory    external.ProfileDirectory
	confirmed    queue.ConfirmationQueue
	minter       *entitlementMinter
	clock        Clock
	logger       *zap.Logger
}

func NewCheckoutService(
	tx database.TxManager,
	repos repository.Repositories,
	pricing PricingService,
	gateway external.PaymentGateway,
	directory external.ProfileDirectory,
	confirmed queue.ConfirmationQueue,
	signer *qr.Signer,
	opts ...Option,
) CheckoutService {
	s := newSettings(opts)
	return &CheckoutServiceImpl{
		tx:           tx,
		events:       repos.Events,
		tiers:        repos.Tiers,
		reservations: repos.Reservations,
		orders:       repos.Orders,
		shares:       repos.Shares,
		promos:       repos.Promos,
		pricing:      pricing,
		gateway:      gateway,
		directory:    directory,
		confirmed:    confirmed,
		minter: &entitlementMinter{
			signer:      signer,
			tiers:       repos.Tiers,
			shares:      repos.Shares,
			assignments: repos.Assignments,
		},
		clock:  s.clock,
		logger: logger.WithComponent("checkout"),
	}
}

func (s *CheckoutServiceImpl) InitiateCheckout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutResult, error) {
	reservation, err := s.reservations.FindByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if req.Buyer.UserID != "" && reservation.CustomerID != "" && reservation.CustomerID != req.Buyer.UserID {
		return nil, apperrors.ErrForbidden
	}
	if reservation.Status == model.ReservationStatusConverted && reservation.OrderID != "" {
		return s.replay(ctx, reservation.OrderID)
	}

	now := s.clock()
	if !reservation.IsLive(now) {
		return nil, s.rejectDead(ctx, reservation)
	}

	event, err := s.events.FindByID(ctx, reservation.EventID)
	if err != nil {
		return nil, err
	}
	buyer, err := s.resolveBuyer(ctx, req.Buyer, reservation)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricing.QuoteReservation(ctx, event, reservation, model.PricingOptions{
		PromoCode:    req.PromoCode,
		PromoterCode: req.PromoterCode,
		BuyerID:      buyer.UserID,
	})
	if err != nil {
		return nil, err
	}
	if quote.PromoCodeError != "" {
		s.logger.Warn("promo code ignored",
			zap.String("reservation_id", reservation.ID),
			zap.String("reason", quote.PromoCodeError),
		)
	}

	kind := model.OrderKindPaidSettled
	switch {
	case event.IsRSVP():
		kind = model.OrderKindRSVP
	case quote.IsFree:
		kind = model.OrderKindPaidZero
	}
	order := buildOrder(kind, reservation, buyer, quote, now)

	switch kind {
	case model.OrderKindRSVP:
		if reservation.TotalQuantity() != 1 {
			return nil, apperrors.ErrRSVPQuantity
		}
		if buyer.UserID == "" && buyer.Email == "" {
			return nil, apperrors.ValidationErrors{{Field: "buyer", Message: "user id or email is required"}}
		}
		return s.confirmImmediately(ctx, order, reservation.ID, now)
	case model.OrderKindPaidZero:
		return s.confirmImmediately(ctx, order, reservation.ID, now)
	default:
		return s.openPayment(ctx, order, reservation.ID, now)
	}
}

func buildOrder(kind model.OrderKind, reservation *model.Reservation, buyer model.Buyer, quote *model.Quote, now time.Time) *model.Order {
	lines := make([]model.OrderLine, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, model.OrderLine{
			TierID:    l.TierID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}

	order := &model.Order{
		ID:               model.OrderIDForReservation(kind, reservation.ID),
		EventID:          reservation.EventID,
		Kind:             kind,
		Buyer:            buyer,
		Lines:            lines,
		Subtotal:         quote.Subtotal,
		PromoterDiscount: quote.PromoterDiscount,
		PromoDiscount:    quote.PromoDiscount,
		PlatformFee:      quote.PlatformFee,
		PaymentFee:       quote.PaymentFee,
		Tax:              quote.Tax,
		TotalAmount:      quote.Total,
		ReservationID:    reservation.ID,
		PromoterCode:     quote.PromoterCode,
		PromoCodeID:      quote.PromoCodeID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	switch kind {
	case model.OrderKindRSVP:
		order.Status = model.OrderStatusConfirmed
		order.PaymentMethod = model.PaymentMethodNone
		order.ConfirmedAt = &now
	case model.OrderKindPaidZero:
		order.Status = model.OrderStatusConfirmed
		order.PaymentMethod = model.PaymentMethodFree
		order.ConfirmedAt = &now
	default:
		order.Status = model.OrderStatusPendingPayment
		order.PaymentMethod = model.PaymentMethodGateway
	}
	return order
}

// resolveBuyer fills identity from the reservation and contact details from the directory.
func (s *CheckoutServiceImpl) resolveBuyer(ctx context.Context, buyer model.Buyer, reservation *model.Reservation) (model.Buyer, error) {
	if buyer.UserID == "" {
		buyer.UserID = reservation.CustomerID
	}
	if buyer.DeviceID == "" {
		buyer.DeviceID = reservation.DeviceID
	}
	if buyer.UserID != "" && (buyer.Email == "" || buyer.Name == "") {
		profile, err := s.directory.Lookup(ctx, buyer.UserID)
		switch {
		case err == nil:
			if buyer.Email == "" {
				buyer.Email = profile.Email
			}
			if buyer.Name == "" {
				buyer.Name = profile.Name
			}
		case !errors.Is(err, apperrors.ErrUserNotFound):
			return buyer, err
		}
	}
	buyer.Email = strings.ToLower(strings.TrimSpace(buyer.Email))
	return buyer, nil
}

// rejectDead reports why a reservation can no longer be checked out, moving an
// overdue active one to expired first.
func (s *CheckoutServiceImpl) rejectDead(ctx context.Context, reservation *model.Reservation) error {
	switch reservation.Status {
	case model.ReservationStatusActive:
		if _, err := s.reservations.UpdateStatus(ctx, reservation.ID, model.ReservationStatusActive, model.ReservationStatusExpired, ""); err != nil {
			return err
		}
		return apperrors.ErrReservationExpired
	case model.ReservationStatusExpired:
		return apperrors.ErrReservationExpired
	default:
		return apperrors.ErrReservationNotActive
	}
}

// lockReservation re-reads the reservation under lock. It returns the order id
// to replay when the reservation was already converted, or a terminal error.
// An overdue reservation is marked expired and reported through dead so the
// caller can commit that transition before failing.
func (s *CheckoutServiceImpl) lockReservation(ctx context.Context, id string, now time.Time) (replayID string, dead error, err error) {
	reservation, err := s.reservations.FindByIDWithLock(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if reservation.Status == model.ReservationStatusConverted && reservation.OrderID != "" {
		return reservation.OrderID, nil, nil
	}
	if !reservation.IsLive(now) {
		return "", s.rejectDead(ctx, reservation), nil
	}
	return "", nil, nil
}

// confirmImmediately settles RSVP and zero-total orders in one transaction:
// the order, the inventory charge and the reservation conversion.
func (s *CheckoutServiceImpl) confirmImmediately(ctx context.Context, order *model.Order, reservationID string, now time.Time) (*model.CheckoutResult, error) {
	var replayID string
	var dead error

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		replayID, dead, err = s.lockReservation(ctx, reservationID, now)
		if err != nil || replayID != "" || dead != nil {
			return err
		}

		if order.IsRSVP() {
			exists, err := s.orders.HasActiveRSVP(ctx, order.EventID, order.Buyer.UserID, order.Buyer.Email)
			if err != nil {
				return err
			}
			if exists {
				return apperrors.ErrRSVPAlreadyExists
			}
		}

		tiers, err := s.lockCharges(ctx, order, apperrors.ErrInsufficientStock)
		if err != nil {
			return err
		}
		if err := s.applyCharges(ctx, order, tiers); err != nil {
			return err
		}

		inserted, err := s.orders.Create(ctx, order)
		if err != nil {
			return err
		}
		if !inserted {
			return errOrderExists
		}
		return s.convert(ctx, order, reservationID)
	})
	if errors.Is(err, errOrderExists) {
		return s.replay(ctx, order.ID)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrRSVPAlreadyExists) {
			s.logger.Warn("duplicate RSVP rejected", zap.String("event_id", order.EventID), zap.String("reservation_id", reservationID))
		}
		return nil, err
	}
	if dead != nil {
		return nil, dead
	}
	if replayID != "" {
		return s.replay(ctx, replayID)
	}

	s.logger.Info("order confirmed",
		zap.String("order_id", order.ID),
		zap.String("kind", string(order.Kind)),
		zap.String("total", order.TotalAmount.StringFixed(2)),
	)
	monitoring.RecordOrder(string(order.Kind), string(order.Status))
	s.publishConfirmed(ctx, order)

	entitlements, err := s.minter.forOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	return &model.CheckoutResult{Order: order, Entitlements: entitlements}, nil
}

// openPayment creates the gateway order first, so a gateway failure leaves the
// reservation active and retryable.
func (s *CheckoutServiceImpl) openPayment(ctx context.Context, order *model.Order, reservationID string, now time.Time) (*model.CheckoutResult, error) {
	gw, err := s.gateway.CreateOrder(ctx, order.ID, order.TotalAmount)
	if err != nil {
		s.logger.Error("gateway order creation failed", zap.String("order_id", order.ID), zap.Error(err))
		return nil, fmt.Errorf("create gateway order: %w", err)
	}
	order.GatewayOrderID = gw.ID

	var replayID string
	var dead error
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		replayID, dead, err = s.lockReservation(ctx, reservationID, now)
		if err != nil || replayID != "" || dead != nil {
			return err
		}

		inserted, err := s.orders.Create(ctx, order)
		if err != nil {
			return err
		}
		if !inserted {
			replayID = order.ID
			return nil
		}
		return s.convert(ctx, order, reservationID)
	})
	if err != nil {
		return nil, err
	}
	if dead != nil {
		return nil, dead
	}
	if replayID != "" {
		return s.replay(ctx, replayID)
	}

	s.logger.Info("order awaiting payment", zap.String("order_id", order.ID), zap.String("gateway_order_id", gw.ID))
	monitoring.RecordOrder(string(order.Kind), string(order.Status))

	currency := gw.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	return &model.CheckoutResult{
		Order:   order,
		Gateway: &model.GatewayInitiation{GatewayOrderID: gw.ID, Amount: gw.Amount, Currency: currency},
	}, nil
}

func (s *CheckoutServiceImpl) convert(ctx context.Context, order *model.Order, reservationID string) error {
	ok, err := s.reservations.UpdateStatus(ctx, reservationID, model.ReservationStatusActive, model.ReservationStatusConverted, order.ID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrReservationNotActive
	}
	return nil
}

// lockCharges locks every tier of the order in id order and checks each line's
// charge fits. Nothing is written, so a failure leaves no partial decrement.
func (s *CheckoutServiceImpl) lockCharges(ctx context.Context, order *model.Order, cause error) (map[string]*model.TicketTier, error) {
	ids := make([]string, 0, len(order.Lines))
	for _, line := range order.Lines {
		ids = append(ids, line.TierID)
	}
	sort.Strings(ids)

	tiers := make(map[string]*model.TicketTier, len(ids))
	for _, id := range ids {
		tier, err := s.tiers.FindByIDWithLock(ctx, id)
		if err != nil {
			return nil, err
		}
		tiers[id] = tier
	}

	for i := range order.Lines {
		line := &order.Lines[i]
		tier := tiers[line.TierID]
		charge := tier.ConfirmationCharge(line.Quantity)
		if tier.Remaining < charge {
			return nil, &apperrors.SoldOutError{
				TierID:    tier.ID,
				TierName:  tier.Name,
				Requested: charge,
				Remaining: tier.Remaining,
				Cause:     cause,
			}
		}
		line.Charged = charge
	}
	return tiers, nil
}

// applyCharges redeems the promo code before touching inventory, so a refused
// redemption leaves nothing to undo.
func (s *CheckoutServiceImpl) applyCharges(ctx context.Context, order *model.Order, tiers map[string]*model.TicketTier) error {
	if order.PromoCodeID != "" {
		if err := s.redeemPromo(ctx, order); err != nil {
			return err
		}
	}
	for _, line := range order.Lines {
		if err := s.tiers.DecrementRemaining(ctx, line.TierID, line.Charged); err != nil {
			if errors.Is(err, apperrors.ErrInsufficientStock) {
				tier := tiers[line.TierID]
				return &apperrors.SoldOutError{TierID: tier.ID, TierName: tier.Name, Requested: line.Charged, Cause: apperrors.ErrSoldOutDuringPurchase}
			}
			return err
		}
	}
	return nil
}

// redeemPromo re-checks both promo caps at confirmation under the promo row
// lock; a quote taken earlier may no longer hold.
func (s *CheckoutServiceImpl) redeemPromo(ctx context.Context, order *model.Order) error {
	promo, err := s.promos.FindPromoCodeByIDWithLock(ctx, order.PromoCodeID)
	if err != nil {
		return err
	}
	if promo.MaxRedemptions > 0 && promo.Redemptions >= promo.MaxRedemptions {
		return apperrors.ErrPromoCodeExhausted
	}
	if promo.MaxPerUser > 0 && order.Buyer.UserID != "" {
		used, err := s.orders.CountPromoRedemptions(ctx, promo.ID, order.Buyer.UserID, order.ID)
		if err != nil {
			return err
		}
		if used >= promo.MaxPerUser {
			return apperrors.ErrPromoCodeExhausted
		}
	}
	return s.promos.IncrementRedemptions(ctx, promo.ID)
}

func (s *CheckoutServiceImpl) replay(ctx context.Context, orderID string) (*model.CheckoutResult, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := &model.CheckoutResult{Order: order, Replayed: true}
	switch order.Status {
	case model.OrderStatusPendingPayment:
		result.Gateway = &model.GatewayInitiation{
			GatewayOrderID: order.GatewayOrderID,
			Amount:         order.TotalAmount,
			Currency:       defaultCurrency,
		}
	case model.OrderStatusConfirmed:
		entitlements, err := s.minter.forOrder(ctx, order)
		if err != nil {
			return nil, err
		}
		result.Entitlements = entitlements
	}
	return result, nil
}

func (s *CheckoutServiceImpl) ConfirmPayment(ctx context.Context, req model.ConfirmPaymentRequest) (*model.CheckoutResult, error) {
	order, err := s.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == model.OrderStatusConfirmed {
		return s.replay(ctx, order.ID)
	}
	if order.Status != model.OrderStatusPendingPayment {
		return nil, apperrors.ErrInvalidOrderStatus
	}
	if req.GatewayOrderID != order.GatewayOrderID {
		return nil, apperrors.ErrPaymentNotVerified
	}

	verification, err := s.gateway.VerifyPayment(ctx, req.GatewayOrderID, req.PaymentID, req.Signature)
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	if !verification.Verified {
		s.logger.Warn("payment signature rejected", zap.String("order_id", order.ID), zap.String("payment_id", req.PaymentID))
		return nil, apperrors.ErrPaymentNotVerified
	}
	if !verification.Amount.Equal(order.TotalAmount) {
		s.logger.Warn("payment amount mismatch",
			zap.String("order_id", order.ID),
			zap.String("expected", order.TotalAmount.StringFixed(2)),
			zap.String("paid", verification.Amount.StringFixed(2)),
		)
		return nil, apperrors.ErrPaymentAmountMismatch
	}

	started := time.Now()
	var alreadyConfirmed bool
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.orders.FindByIDWithLock(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if locked.Status == model.OrderStatusConfirmed {
			alreadyConfirmed = true
			return nil
		}
		if locked.Status != model.OrderStatusPendingPayment {
			return apperrors.ErrInvalidOrderStatus
		}

		tiers, err := s.lockCharges(ctx, locked, apperrors.ErrSoldOutDuringPurchase)
		if err != nil {
			return err
		}
		if err := s.applyCharges(ctx, locked, tiers); err != nil {
			return err
		}

		now := s.clock()
		locked.Status = model.OrderStatusConfirmed
		locked.PaymentID = req.PaymentID
		locked.ConfirmedAt = &now
		locked.UpdatedAt = now
		if err := s.orders.UpdateStatusWithLock(ctx, locked, model.OrderStatusPendingPayment); err != nil {
			return err
		}
		order = locked
		return nil
	})
	monitoring.ObserveConfirm(time.Since(started).Seconds())
	if err != nil {
		var soldOut *apperrors.SoldOutError
		if errors.As(err, &soldOut) {
			s.logger.Error("sold out during purchase",
				zap.String("order_id", req.OrderID),
				zap.String("tier_id", soldOut.TierID),
				zap.String("payment_id", req.PaymentID),
			)
			monitoring.RecordOrder(string(order.Kind), "sold_out")
		}
		if errors.Is(err, apperrors.ErrPromoCodeExhausted) {
			s.logger.Error("promo code exhausted during purchase",
				zap.String("order_id", req.OrderID),
				zap.String("promo_code_id", order.PromoCodeID),
				zap.String("payment_id", req.PaymentID),
			)
		}
		return nil, err
	}
	if alreadyConfirmed {
		return s.replay(ctx, req.OrderID)
	}

	s.logger.Info("payment confirmed", zap.String("order_id", order.ID), zap.String("payment_id", req.PaymentID))
	monitoring.RecordOrder(string(order.Kind), string(order.Status))
	s.publishConfirmed(ctx, order)

	entitlements, err := s.minter.forOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	return &model.CheckoutResult{Order: order, Entitlements: entitlements}, nil
}

// publishConfirmed never fails the confirmed order.
func (s *CheckoutServiceImpl) publishConfirmed(ctx context.Context, order *model.Order) {
	if s.confirmed == nil {
		return
	}

	tickets := 0
	for _, line := range order.Lines {
		tickets += line.Quantity
	}
	confirmedAt := order.UpdatedAt
	if order.ConfirmedAt != nil {
		confirmedAt = *order.ConfirmedAt
	}

	event := &model.OrderConfirmedEvent{
		OrderID:     order.ID,
		EventID:     order.EventID,
		Kind:        order.Kind,
		BuyerID:     order.Buyer.UserID,
		BuyerEmail:  order.Buyer.Email,
		Total:       order.TotalAmount,
		Tickets:     tickets,
		ConfirmedAt: confirmedAt,
	}
	if err := s.confirmed.PublishConfirmed(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Error("publish order confirmed failed", zap.String("order_id", order.ID), zap.Error(err))
	}
}

func (s *CheckoutServiceImpl) GetEntitlements(ctx context.Context, orderID, requesterID string) ([]model.Entitlement, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if requesterID != "" && order.Buyer.UserID != requesterID {
		return nil, apperrors.ErrForbidden
	}
	if err := orderUsable(order); err != nil {
		return nil, err
	}
	return s.minter.forOrder(ctx, order)
}

func (s *CheckoutServiceImpl) CancelOrder(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error) {
	if target != model.OrderStatusCancelled && target != model.OrderStatusRefunded {
		return nil, apperrors.ErrInvalidOrderStatus
	}

	var order *model.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.orders.FindByIDWithLock(ctx, orderID)
		if err != nil {
			return err
		}
		from := locked.Status
		if !from.CanTransitionTo(target) {
			return apperrors.ErrInvalidOrderStatus
		}

		if from == model.OrderStatusConfirmed {
			if err := s.restoreInventory(ctx, locked); err != nil {
				return err
			}
		}

		locked.Status = target
		locked.UpdatedAt = s.clock()
		if err := s.orders.UpdateStatusWithLock(ctx, locked, from); err != nil {
			return err
		}
		order = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled", zap.String("order_id", order.ID), zap.String("status", string(order.Status)))
	monitoring.RecordOrder(string(order.Kind), string(order.Status))
	return order, nil
}

// restoreInventory returns what confirmation charged plus units charged later
// by claims on deferred bundles.
func (s *CheckoutServiceImpl) restoreInventory(ctx context.Context, order *model.Order) error {
	restore := make(map[string]int, len(order.Lines))
	for _, line := range order.Lines {
		restore[line.TierID] += line.Charged
	}

	bundles, err := s.shares.ListByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	for _, bundle := range bundles {
		if !bundle.DeferredInventory {
			continue
		}
		for _, slot := range bundle.Slots {
			if slot.Type == model.SlotTypeShareable && slot.ClaimStatus == model.ClaimStatusClaimed {
				restore[bundle.TierID]++
			}
		}
	}

	ids := make([]string, 0, len(restore))
	for id := range restore {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := s.tiers.IncrementRemaining(ctx, id, restore[id]); err != nil {
			return err
		}
	}
	return nil
}
