package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

func TestPaidCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - pending then confirmed", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		e.addUser(t, "u1", model.GenderIsMale)
		reservation := e.reserve(t, "evt-1", "u1", "ga", 2)

		initiated, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: reservation.ID, Buyer: model.Buyer{UserID: "u1"}})
		require.NoError(t, err)

		order := initiated.Order
		assert.Equal(t, model.OrderKindPaidSettled, order.Kind)
		assert.Equal(t, model.OrderStatusPendingPayment, order.Status)
		assert.Equal(t, "ord_"+reservation.ID, order.ID)
		assert.Equal(t, "u1@example.com", order.Buyer.Email)
		// 2000 + 5% platform + 2% payment + 18% tax on fees
		assert.Equal(t, "2165.20", order.TotalAmount.StringFixed(2))
		assert.Equal(t, "INR", initiated.Gateway.Currency)
		assert.True(t, initiated.Gateway.Amount.Equal(order.TotalAmount))
		assert.Equal(t, 10, e.remaining(t, "ga"), "pending orders do not charge inventory")

		stored, err := e.reservations.Get(ctx, reservation.ID, "u1")
		require.NoError(t, err)
		assert.Equal(t, model.ReservationStatusConverted, stored.Status)
		assert.Equal(t, order.ID, stored.OrderID)

		confirmed, err := e.checkout.ConfirmPayment(ctx, e.paymentFor(initiated, "pay_1"))
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusConfirmed, confirmed.Order.Status)
		assert.Equal(t, "pay_1", confirmed.Order.PaymentID)
		assert.Len(t, confirmed.Entitlements, 2)
		assert.Equal(t, 8, e.remaining(t, "ga"))

		for _, ent := range confirmed.Entitlements {
			_, err := e.signer.Verify(ent.Payload)
			assert.NoError(t, err)
		}
	})

	t.Run("Checkout retry replays the order", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		reservation := e.reserve(t, "evt-1", "u1", "ga", 1)
		req := model.CheckoutRequest{ReservationID: reservation.ID, Buyer: model.Buyer{UserID: "u1"}}

		first, err := e.checkout.InitiateCheckout(ctx, req)
		require.NoError(t, err)
		second, err := e.checkout.InitiateCheckout(ctx, req)
		require.NoError(t, err)

		assert.True(t, second.Replayed)
		assert.Equal(t, first.Order.ID, second.Order.ID)
		assert.Equal(t, first.Gateway.GatewayOrderID, second.Gateway.GatewayOrderID)
	})

	t.Run("Confirm retry replays and charges once", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		reservation := e.reserve(t, "evt-1", "u1", "ga", 3)
		initiated, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: reservation.ID})
		require.NoError(t, err)

		payment := e.paymentFor(initiated, "pay_1")
		_, err = e.checkout.ConfirmPayment(ctx, payment)
		require.NoError(t, err)
		again, err := e.checkout.ConfirmPayment(ctx, payment)
		require.NoError(t, err)

		assert.True(t, again.Replayed)
		assert.Len(t, again.Entitlements, 3)
		assert.Equal(t, 7, e.remaining(t, "ga"))
	})

	t.Run("Failed - bad signature", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		reservation := e.reserve(t, "evt-1", "u1", "ga", 1)
		initiated, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: reservation.ID})
		require.NoError(t, err)

		payment := e.paymentFor(initiated, "pay_1")
		payment.Signature = "forged"
		_, err = e.checkout.ConfirmPayment(ctx, payment)

		assert.ErrorIs(t, err, apperrors.ErrPaymentNotVerified)
		assert.Equal(t, 10, e.remaining(t, "ga"))
	})

	t.Run("Failed - gateway order of another order", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		a, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: e.reserve(t, "evt-1", "u1", "ga", 1).ID})
		require.NoError(t, err)
		b, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: e.reserve(t, "evt-1", "u2", "ga", 1).ID})
		require.NoError(t, err)

		payment := e.paymentFor(b, "pay_b")
		payment.OrderID = a.Order.ID
		_, err = e.checkout.ConfirmPayment(ctx, payment)

		assert.ErrorIs(t, err, apperrors.ErrPaymentNotVerified)
	})

	t.Run("Failed - sold out during purchase keeps order pending", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 2})

		slow, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: e.reserve(t, "evt-1", "u1", "ga", 2).ID})
		require.NoError(t, err)
		// the converted reservation no longer holds, so a second buyer gets through
		e.pay(t, e.reserve(t, "evt-1", "u2", "ga", 2), "u2")

		_, err = e.checkout.ConfirmPayment(ctx, e.paymentFor(slow, "pay_slow"))

		assert.ErrorIs(t, err, apperrors.ErrSoldOutDuringPurchase)
		order, err := e.repos.Orders.FindByID(ctx, slow.Order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusPendingPayment, order.Status)
		assert.Equal(t, 0, e.remaining(t, "ga"))
	})

	t.Run("Failed - expired reservation", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		reservation := e.reserve(t, "evt-1", "u1", "ga", 1)

		e.clock.Advance(e.cfg.ReservationTTL + time.Second)
		_, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: reservation.ID})
		assert.ErrorIs(t, err, apperrors.ErrReservationExpired)

		stored, err := e.repos.Reservations.FindByID(ctx, reservation.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ReservationStatusExpired, stored.Status)

		_, err = e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: reservation.ID})
		assert.ErrorIs(t, err, apperrors.ErrReservationExpired)
	})

	t.Run("Failed - released reservation", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		reservation := e.reserve(t, "evt-1", "u1", "ga", 1)
		_, err := e.reservations.Release(ctx, reservation.ID, "u1")
		require.NoError(t, err)

		_, err = e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: reservation.ID})

		assert.ErrorIs(t, err, apperrors.ErrReservationNotActive)
	})

	t.Run("Failed - another user's reservation", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		reservation := e.reserve(t, "evt-1", "u1", "ga", 1)

		_, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: reservation.ID, Buyer: model.Buyer{UserID: "u2"}})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestImmediateCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("RSVP confirms one ticket", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "rsvp-1", model.EventKindRSVP, tierSpec{id: "entry", quantity: 50})
		e.addUser(t, "u1", model.GenderIsFemale)

		result, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: e.reserve(t, "rsvp-1", "u1", "entry", 1).ID})
		require.NoError(t, err)

		assert.Equal(t, model.OrderKindRSVP, result.Order.Kind)
		assert.Equal(t, model.OrderStatusConfirmed, result.Order.Status)
		assert.Equal(t, model.PaymentMethodNone, result.Order.PaymentMethod)
		assert.Nil(t, result.Gateway)
		assert.Len(t, result.Entitlements, 1)
		assert.Equal(t, 49, e.remaining(t, "entry"))
	})

	t.Run("Failed - second RSVP for the same person", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "rsvp-1", model.EventKindRSVP, tierSpec{id: "entry", quantity: 50})
		e.addUser(t, "u1", model.GenderIsFemale)
		_, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: e.reserve(t, "rsvp-1", "u1", "entry", 1).ID})
		require.NoError(t, err)

		_, err = e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: e.reserve(t, "rsvp-1", "u1", "entry", 1).ID})

		assert.ErrorIs(t, err, apperrors.ErrRSVPAlreadyExists)
		assert.Equal(t, 49, e.remaining(t, "entry"))
	})

	t.Run("Failed - second RSVP by the same email from another device", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "rsvp-1", model.EventKindRSVP, tierSpec{id: "entry", quantity: 50})
		e.addUser(t, "u1", model.GenderIsFemale)
		_, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: e.reserve(t, "rsvp-1", "u1", "entry", 1).ID})
		require.NoError(t, err)

		anonymous, err := e.reservations.Create(ctx, model.CreateReservationRequest{
			EventID: "rsvp-1",
			Buyer:   model.Buyer{DeviceID: "dev-2"},
			Items:   []model.ItemRequest{{TierID: "entry", Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{
			ReservationID: anonymous.ID,
			Buyer:         model.Buyer{Email: " U1@Example.com ", Name: "Guest"},
		})

		assert.ErrorIs(t, err, apperrors.ErrRSVPAlreadyExists)
		assert.Equal(t, 49, e.remaining(t, "entry"))
	})

	t.Run("Zero total paid order confirms without gateway", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-free", model.EventKindPaid, tierSpec{id: "comp", price: 0, quantity: 5})

		result, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: e.reserve(t, "evt-free", "u1", "comp", 2).ID})
		require.NoError(t, err)

		assert.Equal(t, model.OrderKindPaidZero, result.Order.Kind)
		assert.Equal(t, model.PaymentMethodFree, result.Order.PaymentMethod)
		assert.True(t, result.Order.TotalAmount.IsZero())
		assert.Len(t, result.Entitlements, 2)
		assert.Equal(t, 3, e.remaining(t, "comp"))
	})

	t.Run("Confirmed order is published", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-free", model.EventKindPaid, tierSpec{id: "comp", price: 0, quantity: 5})
		result, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: e.reserve(t, "evt-free", "u1", "comp", 2).ID})
		require.NoError(t, err)

		subCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		deliveries, err := e.queue.Subscribe(subCtx)
		require.NoError(t, err)

		select {
		case d := <-deliveries:
			require.NotNil(t, d.Data)
			assert.Equal(t, result.Order.ID, d.Data.OrderID)
			assert.Equal(t, 2, d.Data.Tickets)
			d.Ack()
		case <-subCtx.Done():
			t.Fatal("no confirmation published")
		}
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancel confirmed order restores inventory", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		confirmed := e.pay(t, e.reserve(t, "evt-1", "u1", "ga", 4), "u1")
		require.Equal(t, 6, e.remaining(t, "ga"))

		order, err := e.checkout.CancelOrder(ctx, confirmed.Order.ID, model.OrderStatusRefunded)
		require.NoError(t, err)

		assert.Equal(t, model.OrderStatusRefunded, order.Status)
		assert.Equal(t, 10, e.remaining(t, "ga"))

		_, err = e.checkout.GetEntitlements(ctx, order.ID, "u1")
		assert.ErrorIs(t, err, apperrors.ErrOrderNotValid)
	})

	t.Run("Cancel pending order leaves inventory alone", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		initiated, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: e.reserve(t, "evt-1", "u1", "ga", 2).ID})
		require.NoError(t, err)

		_, err = e.checkout.CancelOrder(ctx, initiated.Order.ID, model.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, 10, e.remaining(t, "ga"))
	})

	t.Run("Failed - terminal order", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		confirmed := e.pay(t, e.reserve(t, "evt-1", "u1", "ga", 1), "u1")
		_, err := e.checkout.CancelOrder(ctx, confirmed.Order.ID, model.OrderStatusCancelled)
		require.NoError(t, err)

		_, err = e.checkout.CancelOrder(ctx, confirmed.Order.ID, model.OrderStatusRefunded)

		assert.ErrorIs(t, err, apperrors.ErrInvalidOrderStatus)
		assert.Equal(t, 10, e.remaining(t, "ga"))
	})

	t.Run("Failed - entitlements of another buyer", func(t *testing.T) {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		confirmed := e.pay(t, e.reserve(t, "evt-1", "u1", "ga", 1), "u1")

		_, err := e.checkout.GetEntitlements(ctx, confirmed.Order.ID, "u2")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

// Every confirmed payment charges inventory exactly once, even when racing.
func TestConcurrentConfirm_NoOversell(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 800, quantity: 5})

	// five holds convert, then five more buyers reserve against the same stock
	var payments []model.ConfirmPaymentRequest
	for _, id := range userIDs("buyer", 10) {
		reservation := e.reserve(t, "evt-1", id, "ga", 1)
		initiated, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{ReservationID: reservation.ID})
		require.NoError(t, err)
		payments = append(payments, e.paymentFor(initiated, "pay_"+id))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	success, soldOut := 0, 0
	for _, payment := range payments {
		wg.Add(1)
		go func(p model.ConfirmPaymentRequest) {
			defer wg.Done()
			_, err := e.checkout.ConfirmPayment(ctx, p)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				success++
			} else if assert.ErrorIs(t, err, apperrors.ErrSoldOutDuringPurchase) {
				soldOut++
			}
		}(payment)
	}
	wg.Wait()

	assert.Equal(t, 5, success)
	assert.Equal(t, 5, soldOut)
	assert.Equal(t, 0, e.remaining(t, "ga"))
}

func TestPromoCapsAtConfirmation(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, maxRedemptions, maxPerUser int) *engine {
		e := newEngine(t)
		e.createEvent(t, "evt-1", model.EventKindPaid, tierSpec{id: "ga", price: 1000, quantity: 10})
		require.NoError(t, e.repos.Promos.SavePromoCode(ctx, &model.PromoCode{
			ID:             "promo-1",
			Code:           "HALF",
			EventID:        "evt-1",
			Discount:       model.Discount{Type: model.DiscountPercent, Value: decimal.NewFromInt(50)},
			MaxRedemptions: maxRedemptions,
			MaxPerUser:     maxPerUser,
			Active:         true,
		}))
		return e
	}

	initiate := func(t *testing.T, e *engine, userID string) *model.CheckoutResult {
		t.Helper()
		initiated, err := e.checkout.InitiateCheckout(ctx, model.CheckoutRequest{
			ReservationID: e.reserve(t, "evt-1", userID, "ga", 1).ID,
			PromoCode:     "HALF",
		})
		require.NoError(t, err)
		require.Equal(t, "promo-1", initiated.Order.PromoCodeID)
		return initiated
	}

	t.Run("Global cap holds for orders quoted before it was reached", func(t *testing.T) {
		e := setup(t, 1, 0)
		var pending []*model.CheckoutResult
		for _, id := range []string{"u1", "u2", "u3"} {
			pending = append(pending, initiate(t, e, id))
		}

		_, err := e.checkout.ConfirmPayment(ctx, e.paymentFor(pending[0], "pay_1"))
		require.NoError(t, err)
		for i, initiated := range pending[1:] {
			_, err := e.checkout.ConfirmPayment(ctx, e.paymentFor(initiated, fmt.Sprintf("pay_%d", i+2)))
			assert.ErrorIs(t, err, apperrors.ErrPromoCodeExhausted)

			order, err := e.repos.Orders.FindByID(ctx, initiated.Order.ID)
			require.NoError(t, err)
			assert.Equal(t, model.OrderStatusPendingPayment, order.Status)
		}

		promo, err := e.repos.Promos.FindPromoCode(ctx, "evt-1", "HALF")
		require.NoError(t, err)
		assert.Equal(t, 1, promo.Redemptions)
		assert.Equal(t, 9, e.remaining(t, "ga"))
	})

	t.Run("Per user cap holds across pending orders", func(t *testing.T) {
		e := setup(t, 0, 1)
		first := initiate(t, e, "u1")
		second := initiate(t, e, "u1")

		_, err := e.checkout.ConfirmPayment(ctx, e.paymentFor(first, "pay_1"))
		require.NoError(t, err)
		_, err = e.checkout.ConfirmPayment(ctx, e.paymentFor(second, "pay_2"))

		assert.ErrorIs(t, err, apperrors.ErrPromoCodeExhausted)
		assert.Equal(t, 9, e.remaining(t, "ga"))
	})

	t.Run("Concurrent confirmations redeem up to the cap", func(t *testing.T) {
		e := setup(t, 2, 0)
		var payments []model.ConfirmPaymentRequest
		for _, id := range userIDs("buyer", 5) {
			payments = append(payments, e.paymentFor(initiate(t, e, id), "pay_"+id))
		}

		var wg sync.WaitGroup
		var mu sync.Mutex
		success, exhausted := 0, 0
		for _, payment := range payments {
			wg.Add(1)
			go func(p model.ConfirmPaymentRequest) {
				defer wg.Done()
				_, err := e.checkout.ConfirmPayment(ctx, p)

				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					success++
				} else if assert.ErrorIs(t, err, apperrors.ErrPromoCodeExhausted) {
					exhausted++
				}
			}(payment)
		}
		wg.Wait()

		assert.Equal(t, 2, success)
		assert.Equal(t, 3, exhausted)
		assert.Equal(t, 8, e.remaining(t, "ga"))
	})
}
