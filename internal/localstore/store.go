package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"pizzapos-backend/internal/domain"
)

// Store is the offline mirror: a mutex-guarded in-memory copy of every
// collection, flushed to a JSON snapshot after each mutation so it
// survives restarts. It stands in for the remote backend whenever the
// remote is unreachable or the service is forced offline.
type Store struct {
	mu   sync.RWMutex
	path string

	orders    map[int64]domain.Order
	customers map[string]domain.Customer // keyed by phone
	employees map[int64]domain.Employee
	blocked   map[string]domain.BlockedItem
	shifts    map[int64]domain.ActiveShift
	users     map[int64]domain.User
	settings  *domain.Settings

	orderCounter int64
	employeeSeq  int64
	customerSeq  int64
	userSeq      int64

	watchers []chan struct{}
}

type snapshot struct {
	Orders       []domain.Order       `json:"orders"`
	Customers    []domain.Customer    `json:"customers"`
	Employees    []domain.Employee    `json:"employees"`
	Blocked      []domain.BlockedItem `json:"blocked"`
	Shifts       []domain.ActiveShift `json:"shifts"`
	Users        []domain.User        `json:"users,omitempty"`
	Settings     *domain.Settings     `json:"settings,omitempty"`
	OrderCounter int64                `json:"order_counter"`
	EmployeeSeq  int64                `json:"employee_seq"`
	CustomerSeq  int64                `json:"customer_seq"`
	UserSeq      int64                `json:"user_seq"`
}

// Open loads the snapshot at dir/pizzapos.json, creating an empty store
// when none exists. counterSeed applies only when no snapshot carries a
// higher counter.
func Open(dir string, counterSeed int64) (*Store, error) {
	s := &Store{
		path:         filepath.Join(dir, "pizzapos.json"),
		orders:       make(map[int64]domain.Order),
		customers:    make(map[string]domain.Customer),
		employees:    make(map[int64]domain.Employee),
		blocked:      make(map[string]domain.BlockedItem),
		shifts:       make(map[int64]domain.ActiveShift),
		users:        make(map[int64]domain.User),
		orderCounter: counterSeed,
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	for _, o := range snap.Orders {
		s.orders[o.Number] = o
		// Seed the counter from existing records so restarts keep the
		// sequence monotonic.
		if o.Number > s.orderCounter {
			s.orderCounter = o.Number
		}
	}
	if snap.OrderCounter > s.orderCounter {
		s.orderCounter = snap.OrderCounter
	}
	for _, c := range snap.Customers {
		s.customers[c.Phone] = c
	}
	for _, e := range snap.Employees {
		s.employees[e.ID] = e
	}
	for _, b := range snap.Blocked {
		s.blocked[b.Name] = b
	}
	for _, sh := range snap.Shifts {
		s.shifts[sh.EmployeeID] = sh
	}
	for _, u := range snap.Users {
		s.users[u.ID] = u
	}
	s.settings = snap.Settings
	s.employeeSeq = snap.EmployeeSeq
	s.customerSeq = snap.CustomerSeq
	s.userSeq = snap.UserSeq
	return s, nil
}

// Watch returns a channel signalled after every mutation. Consumers
// re-read the full snapshot on each signal.
func (s *Store) Watch() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	s.watchers = append(s.watchers, ch)
	return ch
}

func (s *Store) notifyLocked() {
	s.persistLocked()
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) persistLocked() {
	snap := snapshot{
		OrderCounter: s.orderCounter,
		EmployeeSeq:  s.employeeSeq,
		CustomerSeq:  s.customerSeq,
		UserSeq:      s.userSeq,
		Settings:     s.settings,
	}
	for _, o := range s.orders {
		snap.Orders = append(snap.Orders, o)
	}
	for _, c := range s.customers {
		snap.Customers = append(snap.Customers, c)
	}
	for _, e := range s.employees {
		snap.Employees = append(snap.Employees, e)
	}
	for _, b := range s.blocked {
		snap.Blocked = append(snap.Blocked, b)
	}
	for _, sh := range s.shifts {
		snap.Shifts = append(snap.Shifts, sh)
	}
	for _, u := range s.users {
		snap.Users = append(snap.Users, u)
	}
	sort.Slice(snap.Orders, func(i, j int) bool { return snap.Orders[i].Number < snap.Orders[j].Number })

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	temp := s.path + ".tmp"
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return
	}
	_ = os.Rename(temp, s.path)
}

// NextOrderNumber increments the local counter. The remote counter is
// authoritative when reachable; this one only serves offline sessions.
func (s *Store) NextOrderNumber() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderCounter++
	n := s.orderCounter
	s.persistLocked()
	return n
}

// BumpOrderCounter raises the local counter to at least n, keeping the
// offline sequence ahead of numbers already issued remotely.
func (s *Store) BumpOrderCounter(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > s.orderCounter {
		s.orderCounter = n
		s.persistLocked()
	}
}

func (s *Store) SaveOrder(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.Number] = o
	s.notifyLocked()
}

func (s *Store) GetOrder(number int64) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[number]
	return o, ok
}

func (s *Store) ListOrders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (s *Store) SaveCustomer(c domain.Customer) domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.customers[c.Phone]; ok {
		c.ID = existing.ID
		c.OrderCount = existing.OrderCount
		c.TotalSpent = existing.TotalSpent
		c.CreatedAt = existing.CreatedAt
	} else {
		s.customerSeq++
		c.ID = s.customerSeq
		c.CreatedAt = time.Now()
	}
	c.UpdatedAt = time.Now()
	s.customers[c.Phone] = c
	s.notifyLocked()
	return c
}

// RecordCustomerOrder bumps the running totals kept on the customer
// record after an order completes.
func (s *Store) RecordCustomerOrder(phone string, total int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[phone]
	if !ok {
		return
	}
	c.OrderCount++
	c.TotalSpent += total
	c.UpdatedAt = time.Now()
	s.customers[phone] = c
	s.notifyLocked()
}

func (s *Store) GetCustomer(phone string) (domain.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[phone]
	return c, ok
}

func (s *Store) ListCustomers() []domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func (s *Store) DeleteCustomer(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.customers, phone)
	s.notifyLocked()
}

func (s *Store) SaveEmployee(e domain.Employee) domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		s.employeeSeq++
		e.ID = s.employeeSeq
		e.CreatedAt = time.Now()
	}
	e.UpdatedAt = time.Now()
	s.employees[e.ID] = e
	s.notifyLocked()
	return e
}

func (s *Store) ListEmployees() []domain.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) DeleteEmployee(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.employees, id)
	delete(s.shifts, id)
	s.notifyLocked()
}

func (s *Store) SaveBlocked(b domain.BlockedItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked[b.Name] = b
	s.notifyLocked()
}

func (s *Store) DeleteBlocked(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blocked, name)
	s.notifyLocked()
}

func (s *Store) ListBlocked() []domain.BlockedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BlockedItem, 0, len(s.blocked))
	for _, b := range s.blocked {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Shifts live only here; the remote backend never sees them.

func (s *Store) SetShift(sh domain.ActiveShift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sh.Period < 1 {
		sh.Period = 1
	}
	if sh.Period > 2 {
		sh.Period = 2
	}
	s.shifts[sh.EmployeeID] = sh
	s.notifyLocked()
}

func (s *Store) ClearShift(employeeID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.shifts, employeeID)
	s.notifyLocked()
}

func (s *Store) ListShifts() []domain.ActiveShift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ActiveShift, 0, len(s.shifts))
	for _, sh := range s.shifts {
		out = append(out, sh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out
}

func (s *Store) GetSettings() (domain.Settings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return domain.Settings{}, false
	}
	return *s.settings, true
}

func (s *Store) SaveSettings(set domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set.UpdatedAt = time.Now()
	s.settings = &set
	s.notifyLocked()
}
