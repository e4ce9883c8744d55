package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/external"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/service"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

func (e *engine) scan(payload, eventID string) (*model.ScanResult, error) {
	return e.scans.Scan(context.Background(), model.ScanRequest{Payload: payload, EventID: eventID, ScannerID: "door-1"})
}

func TestScanOrderUnit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - each unit admits once", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		confirmed := e.pay(t, e.reserve(t, "evt-1", "u1", "ga", 2), "u1")
		require.Len(t, confirmed.Entitlements, 2)

		for _, ent := range confirmed.Entitlements {
			result, err := e.scan(ent.Payload, "evt-1")
			require.NoError(t, err)
			assert.Equal(t, model.ScanPathOrderUnit, result.Path)
			assert.Equal(t, model.ScanAdmitted, result.Outcome)
			assert.Equal(t, "u1", result.HolderID)
		}

		_, err := e.scan(confirmed.Entitlements[0].Payload, "evt-1")
		assert.ErrorIs(t, err, apperrors.ErrAlreadyUsed)
	})

	t.Run("Failed - other event", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		confirmed := e.pay(t, e.reserve(t, "evt-1", "u1", "ga", 1), "u1")

		_, err := e.scan(confirmed.Entitlements[0].Payload, "evt-2")

		assert.ErrorIs(t, err, apperrors.ErrEventMismatch)
	})

	t.Run("Failed - forged signature", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		confirmed := e.pay(t, e.reserve(t, "evt-1", "u1", "ga", 1), "u1")

		payload := confirmed.Entitlements[0].Payload
		forged := payload[:strings.LastIndex(payload, ":")+1] + strings.Repeat("0", 64)
		_, err := e.scan(forged, "evt-1")

		assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	})

	t.Run("Failed - refunded order", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		confirmed := e.pay(t, e.reserve(t, "evt-1", "u1", "ga", 1), "u1")
		_, err := e.checkout.CancelOrder(ctx, confirmed.Order.ID, model.OrderStatusRefunded)
		require.NoError(t, err)

		_, err = e.scan(confirmed.Entitlements[0].Payload, "evt-1")

		assert.ErrorIs(t, err, apperrors.ErrOrderNotValid)
	})

	t.Run("Failed - unit payload superseded by a bundle", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		confirmed := e.pay(t, e.reserve(t, "evt-1", "u1", "ga", 2), "u1")
		_, err := e.shares.GetOrCreateBundle(ctx, model.CreateShareBundleRequest{OrderID: confirmed.Order.ID, TierID: "ga", RequesterID: "u1"})
		require.NoError(t, err)

		_, err = e.scan(confirmed.Entitlements[0].Payload, "evt-1")

		assert.ErrorIs(t, err, apperrors.ErrTicketSuperseded)
	})

	t.Run("Failed - buyer fails the tier gender", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ladies", price: 500, quantity: 10, gender: model.GenderFemale})
		e.addUser(t, "u1", model.GenderIsMale)
		confirmed := e.pay(t, e.reserve(t, "evt-1", "u1", "ladies", 1), "u1")

		_, err := e.scan(confirmed.Entitlements[0].Payload, "evt-1")

		assert.ErrorIs(t, err, apperrors.ErrGenderMismatch)
	})
}

func TestScanAssignment(t *testing.T) {
	ctx := context.Background()

	t.Run("Couple waits for the partner", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "couple", price: 2500, quantity: 10, couple: true})
		e.addUser(t, "owner", model.GenderIsMale)
		e.addUser(t, "her", model.GenderIsFemale)
		confirmed, bundle := e.bundleFor(t, "evt-1", "owner", "couple", 1, model.ShareModeIndividual)
		partner, err := e.shares.ClaimSlot(ctx, bundle.Token, "her")
		require.NoError(t, err)

		entitlements, err := e.checkout.GetEntitlements(ctx, confirmed.Order.ID, "owner")
		require.NoError(t, err)
		require.Len(t, entitlements, 2)

		first, err := e.scan(entitlements[0].Payload, "evt-1")
		require.NoError(t, err)
		assert.Equal(t, model.ScanPathAssignment, first.Path)
		assert.Equal(t, model.ScanWaitingForPartner, first.Outcome)

		second, err := e.scan(partner.Assignment.QRPayload, "evt-1")
		require.NoError(t, err)
		assert.Equal(t, model.ScanAdmitted, second.Outcome)
		assert.Equal(t, "her", second.HolderID)

		_, err = e.scan(partner.Assignment.QRPayload, "evt-1")
		assert.ErrorIs(t, err, apperrors.ErrAlreadyUsed)
	})

	t.Run("Couple owner without a profile gender passes the door", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "couple", price: 2500, quantity: 10, couple: true})
		confirmed, _ := e.bundleFor(t, "evt-1", "owner", "couple", 1, model.ShareModeIndividual)

		entitlements, err := e.checkout.GetEntitlements(ctx, confirmed.Order.ID, "owner")
		require.NoError(t, err)
		require.Len(t, entitlements, 1)

		result, err := e.scan(entitlements[0].Payload, "evt-1")
		require.NoError(t, err)
		assert.Equal(t, model.ScanPathAssignment, result.Path)
		assert.Equal(t, model.ScanWaitingForPartner, result.Outcome)
	})

	t.Run("Failed - holder fails the slot gender", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ladies", price: 500, quantity: 10, gender: model.GenderFemale})
		e.addUser(t, "owner", model.GenderIsFemale)
		e.addUser(t, "her", model.GenderIsFemale)
		_, bundle := e.bundleFor(t, "evt-1", "owner", "ladies", 2, model.ShareModeIndividual)
		claimed, err := e.shares.ClaimSlot(ctx, bundle.Token, "her")
		require.NoError(t, err)

		// profile changed after the claim
		e.addUser(t, "her", model.GenderIsMale)
		_, err = e.scan(claimed.Assignment.QRPayload, "evt-1")

		assert.ErrorIs(t, err, apperrors.ErrGenderMismatch)
	})
}

func TestScanGroup(t *testing.T) {
	e := newEngine(t)
	e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
	_, bundle := e.bundleFor(t, "evt-1", "owner", "ga", 3, model.ShareModeSharedQR)

	for want := 2; want >= 0; want-- {
		result, err := e.scan(bundle.GroupPayload, "evt-1")
		require.NoError(t, err)
		assert.Equal(t, model.ScanPathGroup, result.Path)
		require.NotNil(t, result.CreditsRemaining)
		assert.Equal(t, want, *result.CreditsRemaining)
		require.Len(t, result.Roster, 1)
		assert.Equal(t, "owner", result.Roster[0].UserID)
	}

	_, err := e.scan(bundle.GroupPayload, "evt-1")
	assert.ErrorIs(t, err, apperrors.ErrScanCreditsExhausted)
}

// Twenty scanners racing on one payload: exactly one admits.
func TestConcurrentScan_ExactlyOnce(t *testing.T) {
	e := newEngine(t)
	e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
	confirmed := e.pay(t, e.reserve(t, "evt-1", "u1", "ga", 1), "u1")
	payload := confirmed.Entitlements[0].Payload

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted, used := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.scan(payload, "evt-1")

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				admitted++
			} else if assert.ErrorIs(t, err, apperrors.ErrAlreadyUsed) {
				used++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, admitted)
	assert.Equal(t, 19, used)
}

// lockLog records the order in which scan takes row locks.
type lockLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *lockLog) add(call string) {
	l.mu.Lock()
	l.calls = append(l.calls, call)
	l.mu.Unlock()
}

type lockingShares struct {
	repository.ShareRepository
	log *lockLog
}

func (r lockingShares) FindByIDWithLock(ctx context.Context, id string) (*model.ShareBundle, error) {
	r.log.add("bundle")
	return r.ShareRepository.FindByIDWithLock(ctx, id)
}

type lockingAssignments struct {
	repository.AssignmentRepository
	log *lockLog
}

func (r lockingAssignments) FindByIDWithLock(ctx context.Context, id string) (*model.TicketAssignment, error) {
	r.log.add("assignment")
	return r.AssignmentRepository.FindByIDWithLock(ctx, id)
}

// Both halves of a couple scanned at once: one waits, the other admits the pair.
func TestConcurrentScan_CouplePair(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "couple", price: 2500, quantity: 10, couple: true})
	e.addUser(t, "owner", model.GenderIsMale)
	e.addUser(t, "her", model.GenderIsFemale)
	confirmed, bundle := e.bundleFor(t, "evt-1", "owner", "couple", 1, model.ShareModeIndividual)
	partner, err := e.shares.ClaimSlot(ctx, bundle.Token, "her")
	require.NoError(t, err)
	entitlements, err := e.checkout.GetEntitlements(ctx, confirmed.Order.ID, "owner")
	require.NoError(t, err)
	require.Len(t, entitlements, 2)

	log := &lockLog{}
	repos := e.repos
	repos.Shares = lockingShares{ShareRepository: e.repos.Shares, log: log}
	repos.Assignments = lockingAssignments{AssignmentRepository: e.repos.Assignments, log: log}
	scans := service.NewScanService(e.store, repos, external.NewRepositoryDirectory(e.repos.Users), e.signer, service.WithClock(e.clock.Now))

	payloads := []string{entitlements[0].Payload, partner.Assignment.QRPayload}
	outcomes := make([]model.ScanOutcome, len(payloads))
	var wg sync.WaitGroup
	for i, payload := range payloads {
		wg.Add(1)
		go func(i int, payload string) {
			defer wg.Done()
			result, err := scans.Scan(ctx, model.ScanRequest{Payload: payload, EventID: "evt-1", ScannerID: "door-1"})
			if assert.NoError(t, err) {
				outcomes[i] = result.Outcome
			}
		}(i, payload)
	}
	wg.Wait()

	assert.ElementsMatch(t, []model.ScanOutcome{model.ScanWaitingForPartner, model.ScanAdmitted}, outcomes)
	assert.Equal(t, []string{"bundle", "assignment", "bundle", "assignment"}, log.calls)
}
