package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/config"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/external"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/pricing"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/qr"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/queue"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository/memory"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/service"
)

var baseTime = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// engine wires every service over one memory store, the way cmd/server does
// with STORE_DRIVER=memory.
type engine struct {
	store   *memory.Store
	repos   repository.Repositories
	clock   *testClock
	cfg     config.CheckoutConfig
	signer  *qr.Signer
	gateway *external.SandboxGateway
	queue   queue.ConfirmationQueue

	reservations service.ReservationService
	pricing      service.PricingService
	checkout     service.CheckoutService
	shares       service.ShareService
	transfers    service.TransferService
	scans        service.ScanService
}

func newEngine(t *testing.T) *engine {
	t.Helper()

	cfg := config.LoadTestConfig().Checkout
	signer, err := qr.NewSigner(cfg.QRSecret)
	require.NoError(t, err)

	store := memory.NewStore()
	repos := store.Repositories()
	clock := &testClock{now: baseTime}
	opts := []service.Option{service.WithClock(clock.Now)}
	directory := external.NewRepositoryDirectory(repos.Users)
	gateway := external.NewSandboxGateway("test")
	confirmed := queue.NewMemoryConfirmationQueue(256)

	pricingSvc := service.NewPricingService(repos.Events, repos.Promos, repos.Orders, pricing.NewCalculator(cfg.Fees), opts...)
	return &engine{
		store:        store,
		repos:        repos,
		clock:        clock,
		cfg:          cfg,
		signer:       signer,
		gateway:      gateway,
		queue:        confirmed,
		reservations: service.NewReservationService(store, repos, nil, cfg, opts...),
		pricing:      pricingSvc,
		checkout:     service.NewCheckoutService(store, repos, pricingSvc, gateway, directory, confirmed, signer, opts...),
		shares:       service.NewShareService(store, repos, directory, signer, opts...),
		transfers:    service.NewTransferService(store, repos, directory, signer, cfg, opts...),
		scans:        service.NewScanService(store, repos, directory, signer, opts...),
	}
}

type tierSpec struct {
	id       string
	price    int64
	quantity int
	maxPer   int
	gender   model.GenderRequirement
	couple   bool
	deferred bool
}

func (e *engine) createEvent(t *testing.T, id string, kind model.EventKind, tiers ...tierSpec) *model.Event {
	t.Helper()

	event := &model.Event{
		ID:       id,
		Name:     "Event " + id,
		Kind:     kind,
		StartsAt: baseTime.Add(48 * time.Hour),
	}
	for _, spec := range tiers {
		event.Tiers = append(event.Tiers, model.TicketTier{
			ID:                spec.id,
			Name:              "Tier " + spec.id,
			BasePrice:         decimal.NewFromInt(spec.price),
			Quantity:          spec.quantity,
			MaxPerOrder:       spec.maxPer,
			GenderRequirement: spec.gender,
			IsCouple:          spec.couple,
			DeferredInventory: spec.deferred,
		})
	}
	created, err := e.repos.Events.Create(context.Background(), event)
	require.NoError(t, err)
	return created
}

func (e *engine) addUser(t *testing.T, id string, gender model.Gender) *model.Profile {
	t.Helper()

	profile := &model.Profile{
		UserID: id,
		Email:  id + "@example.com",
		Name:   "User " + id,
		Gender: gender,
	}
	require.NoError(t, e.repos.Users.Upsert(context.Background(), profile))
	return profile
}

func (e *engine) reserve(t *testing.T, eventID, userID, tierID string, quantity int) *model.Reservation {
	t.Helper()

	reservation, err := e.reservations.Create(context.Background(), model.CreateReservationRequest{
		EventID: eventID,
		Buyer:   model.Buyer{UserID: userID},
		Items:   []model.ItemRequest{{TierID: tierID, Quantity: quantity}},
	})
	require.NoError(t, err)
	return reservation
}

// pay takes a paid reservation through checkout and a verified payment.
func (e *engine) pay(t *testing.T, reservation *model.Reservation, userID string) *model.CheckoutResult {
	t.Helper()
	ctx := context.Background()

	initiated, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{
		ReservationID: reservation.ID,
		Buyer:         model.Buyer{UserID: userID},
	})
	require.NoError(t, err)
	require.NotNil(t, initiated.Gateway)

	confirmed, err := e.checkout.ConfirmPayment(ctx, e.paymentFor(initiated, "pay_"+reservation.ID))
	require.NoError(t, err)
	return confirmed
}

func (e *engine) paymentFor(initiated *model.CheckoutResult, paymentID string) model.ConfirmPaymentRequest {
	gw := initiated.Gateway.GatewayOrderID
	return model.ConfirmPaymentRequest{
		OrderID:        initiated.Order.ID,
		GatewayOrderID: gw,
		PaymentID:      paymentID,
		Signature:      e.gateway.SignatureFor(gw, paymentID),
	}
}

func (e *engine) remaining(t *testing.T, tierID string) int {
	t.Helper()

	tier, err := e.repos.Tiers.FindByID(context.Background(), tierID)
	require.NoError(t, err)
	return tier.Remaining
}

func userIDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return ids
}
