package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories groups every store the services read and write.
type Repositories struct {
	Events       EventRepository
	Tiers        TierRepository
	Reservations ReservationRepository
	Orders       OrderRepository
	Shares       ShareRepository
	Assignments  AssignmentRepository
	Transfers    TransferRepository
	Scans        ScanRepository
	Promos       PromoRepository
	Users        UserRepository
}

func NewPostgresRepositories(pool *pgxpool.Pool) Repositories {
	tiers := NewTierRepository(pool)
	return Repositories{
		Events:       NewEventRepository(pool, tiers),
		Tiers:        tiers,
		Reservations: NewReservationRepository(pool),
		Orders:       NewOrderRepository(pool),
		Shares:       NewShareRepository(pool),
		Assignments:  NewAssignmentRepository(pool),
		Transfers:    NewTransferRepository(pool),
		Scans:        NewScanRepository(pool),
		Promos:       NewPromoRepository(pool),
		Users:        NewUserRepository(pool),
	}
}
