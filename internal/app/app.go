package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/config"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/cache"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/external"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/handler"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/pricing"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/qr"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/queue"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository/memory"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/scheduler"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/service"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/worker"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	localSweepInterval = time.Minute
	memoryQueueBuffer  = 1024
)

// App holds the wired engine. Both the HTTP server and the admin CLI build one.
type App struct {
	Config *config.Config
	Tx     database.TxManager
	Repos  repository.Repositories
	Signer *qr.Signer

	Reservations service.ReservationService
	Pricing      service.PricingService
	Checkout     service.CheckoutService
	Shares       service.ShareService
	Transfers    service.TransferService
	Scans        service.ScanService

	pool     *pgxpool.Pool
	redis    *redis.Client
	queue    queue.ConfirmationQueue
	notifier external.Notifier
	logger   *zap.Logger
}

func New(cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, logger: logger.WithComponent("app")}

	signer, err := qr.NewSigner(cfg.Checkout.QRSecret)
	if err != nil {
		return nil, fmt.Errorf("qr signer: %w", err)
	}
	a.Signer = signer

	var availability cache.AvailabilityCache
	switch cfg.StoreDriver {
	case DriverPostgres:
		pool, err := database.InitDatabase(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		a.pool = pool
		a.Tx = database.NewTxManager(pool)
		a.Repos = repository.NewPostgresRepositories(pool)

		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("init redis: %w", err)
		}
		a.redis = rdb
		availability = cache.NewRedisAvailabilityCache(rdb, cfg.Checkout.AvailabilityTTL)

		a.queue, err = queue.NewRedisStreamQueue(rdb, uuid.NewString(), nil)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("init confirmation queue: %w", err)
		}
	case DriverMemory:
		store := memory.NewStore()
		a.Tx = store
		a.Repos = store.Repositories()
		a.queue = queue.NewMemoryConfirmationQueue(memoryQueueBuffer)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	gateway, err := newGateway(cfg.Checkout)
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.PubNub.Enabled() {
		a.notifier, err = external.NewPubNubNotifier(cfg.PubNub)
		if err != nil {
			a.Close()
			return nil, err
		}
	} else {
		a.notifier = external.NewLogNotifier()
	}

	directory := external.NewRepositoryDirectory(a.Repos.Users)
	a.Pricing = service.NewPricingService(a.Repos.Events, a.Repos.Promos, a.Repos.Orders, pricing.NewCalculator(cfg.Checkout.Fees))
	a.Reservations = service.NewReservationService(a.Tx, a.Repos, availability, cfg.Checkout)
	a.Checkout = service.NewCheckoutService(a.Tx, a.Repos, a.Pricing, gateway, directory, a.queue, signer)
	a.Shares = service.NewShareService(a.Tx, a.Repos, directory, signer)
	a.Transfers = service.NewTransferService(a.Tx, a.Repos, directory, signer, cfg.Checkout)
	a.Scans = service.NewScanService(a.Tx, a.Repos, directory, signer)

	a.logger.Info("engine wired",
		zap.String("store", cfg.StoreDriver),
		zap.String("gateway", cfg.Checkout.PaymentGateway),
		zap.Bool("pubnub", cfg.PubNub.Enabled()),
	)
	return a, nil
}

func newGateway(cfg config.CheckoutConfig) (external.PaymentGateway, error) {
	switch cfg.PaymentGateway {
	case "sandbox":
		if cfg.GatewaySecret == "" {
			return nil, fmt.Errorf("PAYMENT_GATEWAY_SECRET is required")
		}
		return external.NewSandboxGateway(cfg.GatewaySecret), nil
	default:
		return nil, fmt.Errorf("unknown payment gateway %q", cfg.PaymentGateway)
	}
}

// Handlers returns every HTTP handler of the engine.
func (a *App) Handlers() []handler.RouteRegistrar {
	return []handler.RouteRegistrar{
		handler.NewReservationHandler(a.Reservations),
		handler.NewEventHandler(a.Reservations),
		handler.NewOrderHandler(a.Pricing, a.Checkout),
		handler.NewTicketHandler(a.Shares, a.Transfers),
		handler.NewScanHandler(a.Scans),
	}
}

func (a *App) SweepHandlers() *scheduler.Handlers {
	return scheduler.NewHandlers(a.Reservations, a.Transfers)
}

// StartBackground starts the notification worker and the expiry sweeps.
// The returned func stops the sweeps; the worker stops with ctx.
func (a *App) StartBackground(ctx context.Context) (func(), error) {
	if err := worker.NewNotificationWorker(a.notifier, a.queue).Start(ctx); err != nil {
		return nil, fmt.Errorf("start notification worker: %w", err)
	}

	if a.redis == nil {
		go scheduler.RunLocal(ctx, localSweepInterval, a.Config.Checkout.SweepBatchSize, a.SweepHandlers())
		return func() {}, nil
	}

	runner, err := scheduler.NewRunner(a.Config.Redis, a.Config.Checkout, a.SweepHandlers())
	if err != nil {
		return nil, fmt.Errorf("build sweep scheduler: %w", err)
	}
	if err := runner.Start(); err != nil {
		return nil, fmt.Errorf("start sweep scheduler: %w", err)
	}
	return runner.Shutdown, nil
}

// Migrate applies the embedded schema; it is a no-op for the memory driver.
func (a *App) Migrate(ctx context.Context) error {
	if a.pool == nil {
		return nil
	}
	return database.Migrate(ctx, a.pool)
}

func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
