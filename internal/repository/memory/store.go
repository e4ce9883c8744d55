// Package memory is a single-process store behind the repository interfaces.
//
// WithinTx serializes transactions on one mutex but never rolls back: a write
// made before a failing step stays written. Callers check before they write.
// Not for production use.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	events       map[string]*model.Event
	tiers        map[string]*model.TicketTier
	tierOrder    map[string][]string
	reservations map[string]*model.Reservation
	orders       map[model.Bucket]map[string]*model.Order
	bundles      map[string]*model.ShareBundle
	assignments  map[string]*model.TicketAssignment
	transfers    map[string]*model.Transfer
	scans        map[string]*model.ScanRecord
	promos       map[string]*model.PromoCode
	promoters    map[string]*model.PromoterLink
	profiles     map[string]*model.Profile
}

func NewStore() *Store {
	return &Store{
		events:       make(map[string]*model.Event),
		tiers:        make(map[string]*model.TicketTier),
		tierOrder:    make(map[string][]string),
		reservations: make(map[string]*model.Reservation),
		orders: map[model.Bucket]map[string]*model.Order{
			model.BucketPaid: make(map[string]*model.Order),
			model.BucketRSVP: make(map[string]*model.Order),
		},
		bundles:     make(map[string]*model.ShareBundle),
		assignments: make(map[string]*model.TicketAssignment),
		transfers:   make(map[string]*model.Transfer),
		scans:       make(map[string]*model.ScanRecord),
		promos:      make(map[string]*model.PromoCode),
		promoters:   make(map[string]*model.PromoterLink),
		profiles:    make(map[string]*model.Profile),
	}
}

type txKey struct{}

var _ database.TxManager = (*Store)(nil)

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

func (s *Store) Events() repository.EventRepository             { return &eventRepo{s} }
func (s *Store) Tiers() repository.TierRepository               { return &tierRepo{s} }
func (s *Store) Reservations() repository.ReservationRepository { return &reservationRepo{s} }
func (s *Store) Orders() repository.OrderRepository             { return &orderRepo{s} }
func (s *Store) Shares() repository.ShareRepository             { return &shareRepo{s} }
func (s *Store) Assignments() repository.AssignmentRepository   { return &assignmentRepo{s} }
func (s *Store) Transfers() repository.TransferRepository       { return &transferRepo{s} }
func (s *Store) Scans() repository.ScanRepository               { return &scanRepo{s} }
func (s *Store) Promos() repository.PromoRepository             { return &promoRepo{s} }
func (s *Store) Users() repository.UserRepository               { return &userRepo{s} }

// Repositories returns every repository backed by this store.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Events:       s.Events(),
		Tiers:        s.Tiers(),
		Reservations: s.Reservations(),
		Orders:       s.Orders(),
		Shares:       s.Shares(),
		Assignments:  s.Assignments(),
		Transfers:    s.Transfers(),
		Scans:        s.Scans(),
		Promos:       s.Promos(),
		Users:        s.Users(),
	}
}

func key(parts ...string) string {
	return strings.Join(parts, "|")
}

// events and tiers

type eventRepo struct{ s *Store }

func (r *eventRepo) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	r.s.mu.Lock()
	now := time.Now().UTC()
	stored := *event
	stored.Tiers = nil
	if existing, ok := r.s.events[event.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.s.events[event.ID] = &stored

	order := make([]string, 0, len(event.Tiers))
	for _, t := range event.Tiers {
		tier := cloneTier(&t)
		tier.EventID = event.ID
		if tier.GenderRequirement == "" {
			tier.GenderRequirement = model.GenderAny
		}
		if existing, ok := r.s.tiers[tier.ID]; ok {
			tier.Remaining = existing.Remaining
			tier.CreatedAt = existing.CreatedAt
		} else {
			if tier.Remaining == 0 {
				tier.Remaining = tier.Quantity
			}
			tier.CreatedAt = now
		}
		tier.UpdatedAt = now
		r.s.tiers[tier.ID] = tier
		order = append(order, tier.ID)
	}
	r.s.tierOrder[event.ID] = order
	r.s.mu.Unlock()

	return r.FindByID(ctx, event.ID)
}

func (r *eventRepo) FindByID(ctx context.Context, id string) (*model.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	event, ok := r.s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	out := *event
	out.Tiers = make([]model.TicketTier, 0, len(r.s.tierOrder[id]))
	for _, tierID := range r.s.tierOrder[id] {
		out.Tiers = append(out.Tiers, *cloneTier(r.s.tiers[tierID]))
	}
	return &out, nil
}

type tierRepo struct{ s *Store }

func (r *tierRepo) FindByID(ctx context.Context, id string) (*model.TicketTier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tier, ok := r.s.tiers[id]
	if !ok {
		return nil, apperrors.ErrTierNotFound
	}
	return cloneTier(tier), nil
}

func (r *tierRepo) FindByIDWithLock(ctx context.Context, id string) (*model.TicketTier, error) {
	return r.FindByID(ctx, id)
}

func (r *tierRepo) ListByEvent(ctx context.Context, eventID string) ([]model.TicketTier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tiers := make([]model.TicketTier, 0, len(r.s.tierOrder[eventID]))
	for _, id := range r.s.tierOrder[eventID] {
		tiers = append(tiers, *cloneTier(r.s.tiers[id]))
	}
	return tiers, nil
}

func (r *tierRepo) DecrementRemaining(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tier, ok := r.s.tiers[id]
	if !ok {
		return apperrors.ErrTierNotFound
	}
	if tier.Remaining < quantity {
		return apperrors.ErrInsufficientStock
	}
	tier.Remaining -= quantity
	tier.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *tierRepo) IncrementRemaining(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tier, ok := r.s.tiers[id]
	if !ok {
		return apperrors.ErrTierNotFound
	}
	tier.Remaining = min(tier.Quantity, tier.Remaining+quantity)
	tier.UpdatedAt = time.Now().UTC()
	return nil
}

// reservations

type reservationRepo struct{ s *Store }

func (r *reservationRepo) Create(ctx context.Context, reservation *model.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.reservations[reservation.ID] = cloneReservation(reservation)
	return nil
}

func (r *reservationRepo) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reservation, ok := r.s.reservations[id]
	if !ok {
		return nil, apperrors.ErrReservationNotFound
	}
	return cloneReservation(reservation), nil
}

func (r *reservationRepo) FindByIDWithLock(ctx context.Context, id string) (*model.Reservation, error) {
	return r.FindByID(ctx, id)
}

func (r *reservationRepo) FindLiveByQueueID(ctx context.Context, queueID string, now time.Time) (*model.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *model.Reservation
	for _, reservation := range r.s.reservations {
		if reservation.ExternalQueueID != queueID || !reservation.IsLive(now) {
			continue
		}
		if found == nil || reservation.CreatedAt.After(found.CreatedAt) {
			found = reservation
		}
	}
	if found == nil {
		return nil, apperrors.ErrReservationNotFound
	}
	return cloneReservation(found), nil
}

func (r *reservationRepo) SumLiveHolds(ctx context.Context, tierID string, now time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	held := 0
	for _, reservation := range r.s.reservations {
		if reservation.IsLive(now) {
			held += reservation.HeldQuantity(tierID)
		}
	}
	return held, nil
}

func (r *reservationRepo) SumLiveHoldsByEvent(ctx context.Context, eventID string, now time.Time) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	held := make(map[string]int)
	for _, reservation := range r.s.reservations {
		if reservation.EventID != eventID || !reservation.IsLive(now) {
			continue
		}
		for _, item := range reservation.Items {
			held[item.TierID] += item.Quantity
		}
	}
	return held, nil
}

func (r *reservationRepo) UpdateStatus(ctx context.Context, id string, from, to model.ReservationStatus, orderID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reservation, ok := r.s.reservations[id]
	if !ok {
		return false, apperrors.ErrReservationNotFound
	}
	if reservation.Status != from {
		return false, nil
	}
	reservation.Status = to
	if orderID != "" {
		reservation.OrderID = orderID
	}
	reservation.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *reservationRepo) ExpireOverdue(ctx context.Context, now time.Time, limit int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	overdue := make([]*model.Reservation, 0)
	for _, reservation := range r.s.reservations {
		if reservation.Status == model.ReservationStatusActive && !now.Before(reservation.ExpiresAt) {
			overdue = append(overdue, reservation)
		}
	}
	sort.Slice(overdue, func(i, j int) bool { return overdue[i].ExpiresAt.Before(overdue[j].ExpiresAt) })
	if limit > 0 && len(overdue) > limit {
		overdue = overdue[:limit]
	}
	for _, reservation := range overdue {
		reservation.Status = model.ReservationStatusExpired
		reservation.UpdatedAt = now
	}
	return len(overdue), nil
}

// orders

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(ctx context.Context, order *model.Order) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bucket := r.s.orders[order.Kind.Bucket()]
	if _, ok := bucket[order.ID]; ok {
		return false, nil
	}
	if order.Kind == model.OrderKindRSVP && r.hasActiveRSVPLocked(order.EventID, order.Buyer.UserID, order.Buyer.Email) {
		return false, apperrors.ErrRSVPAlreadyExists
	}
	bucket[order.ID] = cloneOrder(order)
	return true, nil
}

func (r *orderRepo) find(match func(*model.Order) bool) (*model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range []model.Bucket{model.BucketPaid, model.BucketRSVP} {
		for _, order := range r.s.orders[b] {
			if match(order) {
				return cloneOrder(order), nil
			}
		}
	}
	return nil, apperrors.ErrOrderNotFound
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	return r.find(func(o *model.Order) bool { return o.ID == id })
}

func (r *orderRepo) FindByIDWithLock(ctx context.Context, id string) (*model.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *orderRepo) FindByReservationID(ctx context.Context, reservationID string) (*model.Order, error) {
	return r.find(func(o *model.Order) bool { return o.ReservationID == reservationID })
}

func (r *orderRepo) HasActiveRSVP(ctx context.Context, eventID, userID, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.hasActiveRSVPLocked(eventID, userID, email), nil
}

func (r *orderRepo) hasActiveRSVPLocked(eventID, userID, email string) bool {
	for _, order := range r.s.orders[model.BucketRSVP] {
		if order.EventID != eventID || order.Status == model.OrderStatusCancelled {
			continue
		}
		if userID != "" && order.Buyer.UserID == userID {
			return true
		}
		if email != "" && strings.EqualFold(order.Buyer.Email, email) {
			return true
		}
	}
	return false
}

func (r *orderRepo) CountPromoRedemptions(ctx context.Context, promoCodeID, userID, excludeOrderID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, order := range r.s.orders[model.BucketPaid] {
		if order.ID == excludeOrderID {
			continue
		}
		if order.PromoCodeID == promoCodeID && order.Buyer.UserID == userID && order.Status == model.OrderStatusConfirmed {
			count++
		}
	}
	return count, nil
}

func (r *orderRepo) UpdateStatusWithLock(ctx context.Context, order *model.Order, from model.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.orders[order.Kind.Bucket()][order.ID]
	if !ok {
		return apperrors.ErrOrderNotFound
	}
	if stored.Status != from {
		return apperrors.ErrInvalidOrderStatus
	}
	order.UpdatedAt = time.Now().UTC()
	stored.Status = order.Status
	stored.PaymentID = order.PaymentID
	stored.GatewayOrderID = order.GatewayOrderID
	stored.Lines = append([]model.OrderLine(nil), order.Lines...)
	stored.ConfirmedAt = order.ConfirmedAt
	stored.UpdatedAt = order.UpdatedAt
	return nil
}

// bundles and assignments

type shareRepo struct{ s *Store }

func (r *shareRepo) Create(ctx context.Context, bundle *model.ShareBundle) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.bundles {
		if existing.OrderID == bundle.OrderID && existing.TierID == bundle.TierID {
			return false, nil
		}
	}
	r.s.bundles[bundle.ID] = cloneBundle(bundle)
	return true, nil
}

func (r *shareRepo) find(match func(*model.ShareBundle) bool) (*model.ShareBundle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, bundle := range r.s.bundles {
		if match(bundle) {
			return cloneBundle(bundle), nil
		}
	}
	return nil, apperrors.ErrBundleNotFound
}

func (r *shareRepo) FindByID(ctx context.Context, id string) (*model.ShareBundle, error) {
	return r.find(func(b *model.ShareBundle) bool { return b.ID == id })
}

func (r *shareRepo) FindByIDWithLock(ctx context.Context, id string) (*model.ShareBundle, error) {
	return r.FindByID(ctx, id)
}

func (r *shareRepo) FindByToken(ctx context.Context, token string) (*model.ShareBundle, error) {
	return r.find(func(b *model.ShareBundle) bool { return b.Token == token })
}

func (r *shareRepo) FindByTokenWithLock(ctx context.Context, token string) (*model.ShareBundle, error) {
	return r.FindByToken(ctx, token)
}

func (r *shareRepo) FindByOrderTier(ctx context.Context, orderID, tierID string) (*model.ShareBundle, error) {
	return r.find(func(b *model.ShareBundle) bool { return b.OrderID == orderID && b.TierID == tierID })
}

func (r *shareRepo) ListByOrder(ctx context.Context, orderID string) ([]*model.ShareBundle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var bundles []*model.ShareBundle
	for _, bundle := range r.s.bundles {
		if bundle.OrderID == orderID {
			bundles = append(bundles, cloneBundle(bundle))
		}
	}
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].CreatedAt.Before(bundles[j].CreatedAt) })
	return bundles, nil
}

func (r *shareRepo) Update(ctx context.Context, bundle *model.ShareBundle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.bundles[bundle.ID]
	if !ok {
		return apperrors.ErrBundleNotFound
	}
	bundle.UpdatedAt = time.Now().UTC()
	stored.RemainingSlots = bundle.RemainingSlots
	stored.Slots = append([]model.Slot(nil), bundle.Slots...)
	stored.ScanCreditsRemaining = bundle.ScanCreditsRemaining
	stored.UpdatedAt = bundle.UpdatedAt
	return nil
}

type assignmentRepo struct{ s *Store }

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.TicketAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *assignment
	r.s.assignments[assignment.ID] = &copied
	return nil
}

func (r *assignmentRepo) FindByID(ctx context.Context, id string) (*model.TicketAssignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	assignment, ok := r.s.assignments[id]
	if !ok {
		return nil, apperrors.ErrAssignmentNotFound
	}
	copied := *assignment
	return &copied, nil
}

func (r *assignmentRepo) FindByIDWithLock(ctx context.Context, id string) (*model.TicketAssignment, error) {
	return r.FindByID(ctx, id)
}

func (r *assignmentRepo) FindActiveByRedeemer(ctx context.Context, bundleID, redeemerID string) (*model.TicketAssignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, assignment := range r.s.assignments {
		if assignment.BundleID == bundleID && assignment.RedeemerID == redeemerID &&
			assignment.Status != model.AssignmentStatusCancelled {
			copied := *assignment
			return &copied, nil
		}
	}
	return nil, apperrors.ErrAssignmentNotFound
}

func (r *assignmentRepo) ListByBundle(ctx context.Context, bundleID string) ([]*model.TicketAssignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var assignments []*model.TicketAssignment
	for _, assignment := range r.s.assignments {
		if assignment.BundleID == bundleID {
			copied := *assignment
			assignments = append(assignments, &copied)
		}
	}
	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].SlotIndex != assignments[j].SlotIndex {
			return assignments[i].SlotIndex < assignments[j].SlotIndex
		}
		return assignments[i].CreatedAt.Before(assignments[j].CreatedAt)
	})
	return assignments, nil
}

func (r *assignmentRepo) UpdateStatus(ctx context.Context, assignment *model.TicketAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.assignments[assignment.ID]
	if !ok {
		return apperrors.ErrAssignmentNotFound
	}
	assignment.UpdatedAt = time.Now().UTC()
	stored.Status = assignment.Status
	stored.UsedAt = assignment.UsedAt
	stored.UpdatedAt = assignment.UpdatedAt
	return nil
}

// transfers

type transferRepo struct{ s *Store }

func (r *transferRepo) Create(ctx context.Context, transfer *model.Transfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.transfers {
		if existing.BundleID == transfer.BundleID && existing.SlotIndex == transfer.SlotIndex &&
			existing.Status == model.TransferStatusPending {
			return apperrors.ErrTransferAlreadyExists
		}
	}
	copied := *transfer
	r.s.transfers[transfer.ID] = &copied
	return nil
}

func (r *transferRepo) find(match func(*model.Transfer) bool) (*model.Transfer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, transfer := range r.s.transfers {
		if match(transfer) {
			copied := *transfer
			return &copied, nil
		}
	}
	return nil, apperrors.ErrTransferNotFound
}

func (r *transferRepo) FindByID(ctx context.Context, id string) (*model.Transfer, error) {
	return r.find(func(t *model.Transfer) bool { return t.ID == id })
}

func (r *transferRepo) FindByIDWithLock(ctx context.Context, id string) (*model.Transfer, error) {
	return r.FindByID(ctx, id)
}

func (r *transferRepo) FindByTokenWithLock(ctx context.Context, token string) (*model.Transfer, error) {
	return r.find(func(t *model.Transfer) bool { return t.Token == token })
}

func (r *transferRepo) FindPendingBySlot(ctx context.Context, bundleID string, slotIndex int) (*model.Transfer, error) {
	return r.find(func(t *model.Transfer) bool {
		return t.BundleID == bundleID && t.SlotIndex == slotIndex && t.Status == model.TransferStatusPending
	})
}

func (r *transferRepo) UpdateStatus(ctx context.Context, transfer *model.Transfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.transfers[transfer.ID]
	if !ok {
		return apperrors.ErrTransferNotFound
	}
	if stored.Status != model.TransferStatusPending {
		return apperrors.ErrTransferNotPending
	}
	transfer.UpdatedAt = time.Now().UTC()
	stored.Status = transfer.Status
	stored.AcceptedBy = transfer.AcceptedBy
	stored.AssignmentID = transfer.AssignmentID
	stored.UpdatedAt = transfer.UpdatedAt
	return nil
}

func (r *transferRepo) ExpireOverdue(ctx context.Context, now time.Time, limit int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	expired := 0
	for _, transfer := range r.s.transfers {
		if limit > 0 && expired >= limit {
			break
		}
		if transfer.Status == model.TransferStatusPending && !now.Before(transfer.ExpiresAt) {
			transfer.Status = model.TransferStatusExpired
			transfer.UpdatedAt = now
			expired++
		}
	}
	return expired, nil
}

// scans

type scanRepo struct{ s *Store }

func (r *scanRepo) Insert(ctx context.Context, record *model.ScanRecord) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.scans[record.Identifier]; ok {
		return false, nil
	}
	copied := *record
	r.s.scans[record.Identifier] = &copied
	return true, nil
}

func (r *scanRepo) Exists(ctx context.Context, identifier string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.scans[identifier]
	return ok, nil
}

// promos

type promoRepo struct{ s *Store }

func (r *promoRepo) FindPromoCode(ctx context.Context, eventID, code string) (*model.PromoCode, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	promo, ok := r.s.promos[key(eventID, strings.ToUpper(code))]
	if !ok {
		return nil, apperrors.ErrPromoCodeNotFound
	}
	copied := *promo
	copied.EligibleTierIDs = append([]string(nil), promo.EligibleTierIDs...)
	return &copied, nil
}

func (r *promoRepo) FindPromoterLink(ctx context.Context, eventID, code string) (*model.PromoterLink, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	link, ok := r.s.promoters[key(eventID, strings.ToUpper(code))]
	if !ok {
		return nil, apperrors.ErrPromoCodeNotFound
	}
	copied := *link
	return &copied, nil
}

func (r *promoRepo) SavePromoCode(ctx context.Context, promo *model.PromoCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *promo
	r.s.promos[key(promo.EventID, strings.ToUpper(promo.Code))] = &copied
	return nil
}

func (r *promoRepo) SavePromoterLink(ctx context.Context, link *model.PromoterLink) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *link
	r.s.promoters[key(link.EventID, strings.ToUpper(link.Code))] = &copied
	return nil
}

func (r *promoRepo) FindPromoCodeByIDWithLock(ctx context.Context, id string) (*model.PromoCode, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, promo := range r.s.promos {
		if promo.ID == id {
			copied := *promo
			copied.EligibleTierIDs = append([]string(nil), promo.EligibleTierIDs...)
			return &copied, nil
		}
	}
	return nil, apperrors.ErrPromoCodeNotFound
}

func (r *promoRepo) IncrementRedemptions(ctx context.Context, promoCodeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, promo := range r.s.promos {
		if promo.ID == promoCodeID {
			if promo.MaxRedemptions > 0 && promo.Redemptions >= promo.MaxRedemptions {
				return apperrors.ErrPromoCodeExhausted
			}
			promo.Redemptions++
			return nil
		}
	}
	return apperrors.ErrPromoCodeNotFound
}

// profiles

type userRepo struct{ s *Store }

func (r *userRepo) Upsert(ctx context.Context, profile *model.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *profile
	r.s.profiles[profile.UserID] = &copied
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, userID string) (*model.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	profile, ok := r.s.profiles[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, profile := range r.s.profiles {
		if strings.EqualFold(profile.Email, email) {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func cloneTier(t *model.TicketTier) *model.TicketTier {
	copied := *t
	copied.PriceWindows = append([]model.PriceWindow(nil), t.PriceWindows...)
	return &copied
}

func cloneReservation(r *model.Reservation) *model.Reservation {
	copied := *r
	copied.Items = append([]model.ReservationItem(nil), r.Items...)
	return &copied
}

func cloneOrder(o *model.Order) *model.Order {
	copied := *o
	copied.Lines = append([]model.OrderLine(nil), o.Lines...)
	return &copied
}

func cloneBundle(b *model.ShareBundle) *model.ShareBundle {
	copied := *b
	copied.Slots = append([]model.Slot(nil), b.Slots...)
	return &copied
}
