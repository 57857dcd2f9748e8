package store

import (
	"context"

	"pizzapos-backend/internal/domain"
)

// Remote backend contracts, satisfied by the pgx repositories. The
// sync layer only ever talks to these; tests plug in fakes.

type OrderBackend interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	SetStatus(ctx context.Context, number int64, status domain.OrderStatus, driver string) error
	Cancel(ctx context.Context, number int64, info domain.CancelInfo) error
	List(ctx context.Context) ([]domain.Order, error)
}

type CustomerBackend interface {
	Upsert(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	RecordOrder(ctx context.Context, phone string, total int64) error
	List(ctx context.Context, limit int) ([]domain.Customer, error)
	Delete(ctx context.Context, phone string) error
}

type EmployeeBackend interface {
	Upsert(ctx context.Context, e domain.Employee) (*domain.Employee, error)
	List(ctx context.Context, limit int) ([]domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type BlockedBackend interface {
	Put(ctx context.Context, b domain.BlockedItem) error
	List(ctx context.Context) ([]domain.BlockedItem, error)
	Delete(ctx context.Context, name string) error
}

type SettingsBackend interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) (*domain.Settings, error)
}

// Remote groups every backend; any field may be nil when the service
// starts without a database.
type Remote struct {
	Orders    OrderBackend
	Customers CustomerBackend
	Employees EmployeeBackend
	Blocked   BlockedBackend
	Settings  SettingsBackend
}
