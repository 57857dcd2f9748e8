package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/localstore"
)

// Store is the remote-first, local-fallback data layer. Every write
// tries the remote backend and silently lands in the local mirror when
// the remote fails; the caller never sees a remote error. Reads follow
// the session mode: once a remote read fails, or while the force-
// offline flag is up, the collection is served from the local mirror
// for the rest of the session.
type Store struct {
	Logger *slog.Logger

	mu         sync.RWMutex
	offline    bool
	remoteDown bool
	generation int64
	resub      chan struct{}

	remote   Remote
	local    *localstore.Store
	defaults domain.Settings

	pollInterval time.Duration
}

func New(remote Remote, local *localstore.Store, logger *slog.Logger, forceOffline bool) *Store {
	return &Store{
		Logger:  logger,
		remote:  remote,
		local:   local,
		offline: forceOffline,
		defaults: domain.Settings{
			StoreOpen:      true,
			DeliverySLAMin: 50,
			PickupSLAMin:   30,
			CurrencyCode:   "BRL",
		},
		resub:        make(chan struct{}),
		pollInterval: 5 * time.Second,
	}
}

// SetDefaultSettings overrides the settings served before any are
// saved. The operator's env-provided SLAs and currency land here.
func (s *Store) SetDefaultSettings(set domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = set
}

// Local exposes the mirror for local-only collections (active shifts).
func (s *Store) Local() *localstore.Store {
	return s.local
}

// Offline reports whether the force-offline flag is up.
func (s *Store) Offline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offline
}

// SetOffline flips the force-offline flag. Every live subscription is
// torn down and re-established against the newly selected backend.
func (s *Store) SetOffline(offline bool) {
	s.mu.Lock()
	if s.offline == offline {
		s.mu.Unlock()
		return
	}
	s.offline = offline
	if !offline {
		// Leaving forced-offline clears the latched failure so reads
		// probe the remote again.
		s.remoteDown = false
	}
	old := s.resub
	s.resub = make(chan struct{})
	s.generation++
	s.mu.Unlock()
	close(old)
}

// remoteUsable tells writes whether to try the remote at all.
func (s *Store) remoteUsable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.offline
}

// remoteReadable additionally honors the latched read failure.
func (s *Store) remoteReadable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.offline && !s.remoteDown
}

// markRemoteDown latches read traffic onto the local mirror for the
// rest of the session.
func (s *Store) markRemoteDown(err error) {
	s.mu.Lock()
	already := s.remoteDown
	s.remoteDown = true
	s.mu.Unlock()
	if !already {
		s.Logger.Warn("remote backend unavailable, serving local mirror", "err", err)
	}
}

func (s *Store) resubCh() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resub
}

// ---- orders ----

// CreateOrder persists the order remote-first. On remote success the
// local counter is bumped past the issued number so a later offline
// stretch continues the sequence; on remote failure the local counter
// issues the number.
func (s *Store) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	if o.Status == "" {
		o.Status = domain.StatusConfirmed
	}
	if s.remoteUsable() && s.remote.Orders != nil {
		created, err := s.remote.Orders.Create(ctx, o)
		if err == nil {
			s.local.BumpOrderCounter(created.Number)
			// A fallback-numbered order may already hold this slot in
			// the mirror. Keep it; losing a record is worse than a gap
			// in the mirror.
			if _, taken := s.local.GetOrder(created.Number); taken {
				s.Logger.Error("order number collision between remote and local mirror",
					"number", created.Number)
			} else {
				s.local.SaveOrder(*created)
			}
			return *created, nil
		}
		s.Logger.Warn("remote order create failed, using local store", "err", err)
	}
	o.Number = s.local.NextOrderNumber()
	s.local.SaveOrder(o)
	return o, nil
}

func (s *Store) SetOrderStatus(ctx context.Context, number int64, status domain.OrderStatus, driver string) error {
	if s.remoteUsable() && s.remote.Orders != nil {
		if err := s.remote.Orders.SetStatus(ctx, number, status, driver); err != nil {
			s.Logger.Warn("remote status update failed, using local store", "number", number, "err", err)
		}
	}
	o, ok := s.local.GetOrder(number)
	if !ok {
		return ErrOrderNotFound
	}
	wasTerminal := o.Status.Terminal()
	o.Status = status
	if driver != "" {
		o.Driver = driver
	}
	s.local.SaveOrder(o)

	// Customer running totals count a sale once, when it completes.
	if status == domain.StatusCompleted && !wasTerminal && o.Customer.Phone != "" {
		s.RecordCustomerOrder(ctx, o.Customer.Phone, o.Total)
	}
	return nil
}

func (s *Store) CancelOrder(ctx context.Context, number int64, info domain.CancelInfo) error {
	if s.remoteUsable() && s.remote.Orders != nil {
		if err := s.remote.Orders.Cancel(ctx, number, info); err != nil {
			s.Logger.Warn("remote cancel failed, using local store", "number", number, "err", err)
		}
	}
	o, ok := s.local.GetOrder(number)
	if !ok {
		return ErrOrderNotFound
	}
	o.Status = domain.StatusCanceled
	o.Cancel = &info
	s.local.SaveOrder(o)
	return nil
}

func (s *Store) GetOrder(ctx context.Context, number int64) (domain.Order, bool) {
	o, ok := s.local.GetOrder(number)
	return o, ok
}

func (s *Store) ListOrders(ctx context.Context) []domain.Order {
	if s.remoteReadable() && s.remote.Orders != nil {
		orders, err := s.remote.Orders.List(ctx)
		if err == nil {
			// Refresh the mirror so an offline switch sees the same
			// snapshot the remote just served.
			for _, o := range orders {
				s.local.SaveOrder(o)
			}
			return orders
		}
		s.markRemoteDown(err)
	}
	return s.local.ListOrders()
}

// ---- customers ----

func (s *Store) UpsertCustomer(ctx context.Context, c domain.Customer) domain.Customer {
	if s.remoteUsable() && s.remote.Customers != nil {
		out, err := s.remote.Customers.Upsert(ctx, c)
		if err == nil {
			return s.local.SaveCustomer(*out)
		}
		s.Logger.Warn("remote customer upsert failed, using local store", "phone", c.Phone, "err", err)
	}
	return s.local.SaveCustomer(c)
}

// RecordCustomerOrder maintains the running orderCount/totalSpent on
// completion. Failures are swallowed here too: the totals are
// best-effort CRM data, never worth blocking an order flow.
func (s *Store) RecordCustomerOrder(ctx context.Context, phone string, total int64) {
	if s.remoteUsable() && s.remote.Customers != nil {
		if err := s.remote.Customers.RecordOrder(ctx, phone, total); err != nil {
			s.Logger.Warn("remote customer totals update failed", "phone", phone, "err", err)
		}
	}
	s.local.RecordCustomerOrder(phone, total)
}

func (s *Store) ListCustomers(ctx context.Context) []domain.Customer {
	if s.remoteReadable() && s.remote.Customers != nil {
		customers, err := s.remote.Customers.List(ctx, 1000)
		if err == nil {
			return customers
		}
		s.markRemoteDown(err)
	}
	return s.local.ListCustomers()
}

func (s *Store) DeleteCustomer(ctx context.Context, phone string) {
	if s.remoteUsable() && s.remote.Customers != nil {
		if err := s.remote.Customers.Delete(ctx, phone); err != nil {
			s.Logger.Warn("remote customer delete failed, using local store", "phone", phone, "err", err)
		}
	}
	s.local.DeleteCustomer(phone)
}

// ---- employees ----

func (s *Store) SaveEmployee(ctx context.Context, e domain.Employee) domain.Employee {
	if s.remoteUsable() && s.remote.Employees != nil {
		out, err := s.remote.Employees.Upsert(ctx, e)
		if err == nil {
			return s.local.SaveEmployee(*out)
		}
		s.Logger.Warn("remote employee upsert failed, using local store", "name", e.Name, "err", err)
	}
	return s.local.SaveEmployee(e)
}

func (s *Store) ListEmployees(ctx context.Context) []domain.Employee {
	if s.remoteReadable() && s.remote.Employees != nil {
		employees, err := s.remote.Employees.List(ctx, 500)
		if err == nil {
			return employees
		}
		s.markRemoteDown(err)
	}
	return s.local.ListEmployees()
}

func (s *Store) DeleteEmployee(ctx context.Context, id int64) {
	if s.remoteUsable() && s.remote.Employees != nil {
		if err := s.remote.Employees.Delete(ctx, id); err != nil {
			s.Logger.Warn("remote employee delete failed, using local store", "id", id, "err", err)
		}
	}
	s.local.DeleteEmployee(id)
}

// ---- blocked items ----

func (s *Store) BlockItem(ctx context.Context, b domain.BlockedItem) {
	if s.remoteUsable() && s.remote.Blocked != nil {
		if err := s.remote.Blocked.Put(ctx, b); err != nil {
			s.Logger.Warn("remote block failed, using local store", "name", b.Name, "err", err)
		}
	}
	s.local.SaveBlocked(b)
}

func (s *Store) UnblockItem(ctx context.Context, name string) {
	if s.remoteUsable() && s.remote.Blocked != nil {
		if err := s.remote.Blocked.Delete(ctx, name); err != nil {
			s.Logger.Warn("remote unblock failed, using local store", "name", name, "err", err)
		}
	}
	s.local.DeleteBlocked(name)
}

func (s *Store) ListBlocked(ctx context.Context) []domain.BlockedItem {
	if s.remoteReadable() && s.remote.Blocked != nil {
		blocked, err := s.remote.Blocked.List(ctx)
		if err == nil {
			return blocked
		}
		s.markRemoteDown(err)
	}
	return s.local.ListBlocked()
}

// ---- settings ----

func (s *Store) GetSettings(ctx context.Context) domain.Settings {
	if s.remoteReadable() && s.remote.Settings != nil {
		set, err := s.remote.Settings.Get(ctx)
		if err == nil {
			s.local.SaveSettings(*set)
			return *set
		}
		if !isNotFound(err) {
			s.markRemoteDown(err)
		}
	}
	if set, ok := s.local.GetSettings(); ok {
		return set
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

func (s *Store) SaveSettings(ctx context.Context, set domain.Settings) domain.Settings {
	if s.remoteUsable() && s.remote.Settings != nil {
		out, err := s.remote.Settings.Save(ctx, set)
		if err == nil {
			s.local.SaveSettings(*out)
			return *out
		}
		s.Logger.Warn("remote settings save failed, using local store", "err", err)
	}
	s.local.SaveSettings(set)
	set2, _ := s.local.GetSettings()
	return set2
}
