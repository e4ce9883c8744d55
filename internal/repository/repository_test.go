package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/config"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository/memory"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

// testDB stays nil when the test database is unreachable; the postgres
// variants are skipped in that case.
var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	cfg := config.LoadTestConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Printf("Test database unavailable, postgres repository tests skipped: %v", err)
	} else if err := database.Migrate(context.Background(), pool); err != nil {
		log.Printf("Failed to migrate test database: %v", err)
		pool.Close()
	} else {
		testDB = pool
	}

	code := m.Run()
	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

func truncate(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(context.Background(), `
		TRUNCATE events, ticket_tiers, user_profiles, reservations, orders, rsvp_orders,
			share_bundles, ticket_assignments, transfers, scan_records, promo_codes, promoter_links
		CASCADE`)
	require.NoError(t, err)
}

// forEachStore runs the same contract against the memory store and, when
// available, Postgres.
func forEachStore(t *testing.T, fn func(t *testing.T, repos repository.Repositories)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, memory.NewStore().Repositories())
	})
	t.Run("postgres", func(t *testing.T) {
		if testDB == nil {
			t.Skip("test database not configured")
		}
		truncate(t)
		fn(t, repository.NewPostgresRepositories(testDB))
	})
}

func seedEvent(t *testing.T, repos repository.Repositories) *model.Event {
	t.Helper()
	event, err := repos.Events.Create(context.Background(), &model.Event{
		ID:       "evt-1",
		Name:     "Launch Night",
		Kind:     model.EventKindPaid,
		StartsAt: time.Date(2030, 1, 1, 20, 0, 0, 0, time.UTC),
		Tiers: []model.TicketTier{
			{ID: "ga", Name: "General", BasePrice: decimal.NewFromInt(1000), Quantity: 10, MaxPerOrder: 6},
			{ID: "vip", Name: "VIP", BasePrice: decimal.NewFromInt(2500), Quantity: 2, GenderRequirement: model.GenderFemale},
		},
	})
	require.NoError(t, err)
	return event
}

func TestEventRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos repository.Repositories) {
		ctx := context.Background()
		event := seedEvent(t, repos)

		require.Len(t, event.Tiers, 2)
		assert.Equal(t, "ga", event.Tiers[0].ID)
		assert.Equal(t, 10, event.Tiers[0].Remaining)
		assert.Equal(t, model.GenderAny, event.Tiers[0].GenderRequirement)
		assert.Equal(t, model.GenderFemale, event.Tiers[1].GenderRequirement)

		t.Run("Reseeding keeps remaining", func(t *testing.T) {
			require.NoError(t, repos.Tiers.DecrementRemaining(ctx, "ga", 3))
			again := seedEvent(t, repos)
			assert.Equal(t, 7, again.Tiers[0].Remaining)
		})

		t.Run("Not found", func(t *testing.T) {
			_, err := repos.Events.FindByID(ctx, "missing")
			assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		})
	})
}

func TestTierRepository_Inventory(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos repository.Repositories) {
		ctx := context.Background()
		seedEvent(t, repos)

		require.NoError(t, repos.Tiers.DecrementRemaining(ctx, "vip", 2))
		assert.ErrorIs(t, repos.Tiers.DecrementRemaining(ctx, "vip", 1), apperrors.ErrInsufficientStock)

		require.NoError(t, repos.Tiers.IncrementRemaining(ctx, "vip", 5))
		tier, err := repos.Tiers.FindByID(ctx, "vip")
		require.NoError(t, err)
		assert.Equal(t, 2, tier.Remaining, "remaining is capped at quantity")

		_, err = repos.Tiers.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, apperrors.ErrTierNotFound)
	})
}

func TestReservationRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos repository.Repositories) {
		ctx := context.Background()
		seedEvent(t, repos)
		now := time.Now().UTC().Truncate(time.Millisecond)

		reservation := func(id, queueID string, qty int, expiresAt time.Time) *model.Reservation {
			return &model.Reservation{
				ID:              id,
				EventID:         "evt-1",
				CustomerID:      "u1",
				ExternalQueueID: queueID,
				Items:           []model.ReservationItem{{TierID: "ga", TierName: "General", Quantity: qty, UnitPrice: decimal.NewFromInt(1000), Subtotal: decimal.NewFromInt(int64(qty) * 1000)}},
				Status:          model.ReservationStatusActive,
				CreatedAt:       now,
				ExpiresAt:       expiresAt,
				UpdatedAt:       now,
			}
		}

		require.NoError(t, repos.Reservations.Create(ctx, reservation("res-live", "q-1", 2, now.Add(10*time.Minute))))
		require.NoError(t, repos.Reservations.Create(ctx, reservation("res-old", "q-2", 3, now.Add(-time.Minute))))

		t.Run("Holds count only live reservations", func(t *testing.T) {
			held, err := repos.Reservations.SumLiveHolds(ctx, "ga", now)
			require.NoError(t, err)
			assert.Equal(t, 2, held)

			byTier, err := repos.Reservations.SumLiveHoldsByEvent(ctx, "evt-1", now)
			require.NoError(t, err)
			assert.Equal(t, map[string]int{"ga": 2}, byTier)
		})

		t.Run("Queue id lookup ignores expired holds", func(t *testing.T) {
			found, err := repos.Reservations.FindLiveByQueueID(ctx, "q-1", now)
			require.NoError(t, err)
			assert.Equal(t, "res-live", found.ID)
			require.Len(t, found.Items, 1)
			assert.True(t, decimal.NewFromInt(2000).Equal(found.Items[0].Subtotal))

			_, err = repos.Reservations.FindLiveByQueueID(ctx, "q-2", now)
			assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)
		})

		t.Run("Expire sweep", func(t *testing.T) {
			n, err := repos.Reservations.ExpireOverdue(ctx, now, 10)
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			old, err := repos.Reservations.FindByID(ctx, "res-old")
			require.NoError(t, err)
			assert.Equal(t, model.ReservationStatusExpired, old.Status)

			n, err = repos.Reservations.ExpireOverdue(ctx, now, 10)
			require.NoError(t, err)
			assert.Zero(t, n)
		})

		t.Run("Status compare-and-set", func(t *testing.T) {
			ok, err := repos.Reservations.UpdateStatus(ctx, "res-live", model.ReservationStatusActive, model.ReservationStatusConverted, "ord-1")
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = repos.Reservations.UpdateStatus(ctx, "res-live", model.ReservationStatusActive, model.ReservationStatusReleased, "")
			require.NoError(t, err)
			assert.False(t, ok)

			stored, err := repos.Reservations.FindByID(ctx, "res-live")
			require.NoError(t, err)
			assert.Equal(t, model.ReservationStatusConverted, stored.Status)
			assert.Equal(t, "ord-1", stored.OrderID)
		})
	})
}

func TestUserRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos repository.Repositories) {
		ctx := context.Background()

		require.NoError(t, repos.Users.Upsert(ctx, &model.Profile{UserID: "u1", Email: "Asha@Example.com", Name: "Asha", Gender: model.GenderIsFemale}))
		require.NoError(t, repos.Users.Upsert(ctx, &model.Profile{UserID: "u1", Email: "asha@example.com", Name: "Asha K", Gender: model.GenderIsFemale}))

		profile, err := repos.Users.FindByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Asha K", profile.Name)

		byEmail, err := repos.Users.FindByEmail(ctx, "ASHA@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", byEmail.UserID)

		_, err = repos.Users.FindByID(ctx, "nobody")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
