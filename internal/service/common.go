package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/external"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

// Clock returns the current time. Services default to UTC wall time.
type Clock func() time.Time

type settings struct {
	clock Clock
}

type Option func(*settings)

// WithClock pins the time source, mostly for tests.
func WithClock(clock Clock) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{clock: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func decimalQty(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func generateToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// genderOf treats an unknown profile as unknown gender, which only passes GenderAny.
func genderOf(ctx context.Context, directory external.ProfileDirectory, userID string) (model.Gender, error) {
	if userID == "" {
		return model.GenderUnknown, nil
	}
	profile, err := directory.Lookup(ctx, userID)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return model.GenderUnknown, nil
	}
	if err != nil {
		return model.GenderUnknown, err
	}
	return profile.Gender, nil
}

// chargeTier takes quantity units from a locked tier or fails with a SoldOutError.
func chargeTier(ctx context.Context, tiers repository.TierRepository, tierID string, quantity int, cause error) error {
	if quantity <= 0 {
		return nil
	}
	tier, err := tiers.FindByIDWithLock(ctx, tierID)
	if err != nil {
		return err
	}
	if tier.Remaining < quantity {
		return &apperrors.SoldOutError{
			TierID:    tier.ID,
			TierName:  tier.Name,
			Requested: quantity,
			Remaining: tier.Remaining,
			Cause:     cause,
		}
	}
	return tiers.DecrementRemaining(ctx, tierID, quantity)
}

func orderUsable(order *model.Order) error {
	switch order.Status {
	case model.OrderStatusConfirmed:
		return nil
	case model.OrderStatusPendingPayment:
		return apperrors.ErrInvalidOrderStatus
	default:
		return apperrors.ErrOrderNotValid
	}
}
