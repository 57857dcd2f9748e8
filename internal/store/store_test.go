package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/localstore"
)

// fakeOrderBackend stands in for the pgx repository. Fail flips every
// call into an error, simulating a dead remote.
type fakeOrderBackend struct {
	Fail    bool
	counter int64
	orders  map[int64]domain.Order
	calls   int
}

func newFakeOrderBackend() *fakeOrderBackend {
	return &fakeOrderBackend{counter: 1000, orders: make(map[int64]domain.Order)}
}

var errRemote = errors.New("remote unreachable")

func (f *fakeOrderBackend) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	f.calls++
	if f.Fail {
		return nil, errRemote
	}
	f.counter++
	o.Number = f.counter
	f.orders[o.Number] = o
	return &o, nil
}

func (f *fakeOrderBackend) SetStatus(ctx context.Context, number int64, status domain.OrderStatus, driver string) error {
	f.calls++
	if f.Fail {
		return errRemote
	}
	o, ok := f.orders[number]
	if !ok {
		return errors.New("not found")
	}
	o.Status = status
	if driver != "" {
		o.Driver = driver
	}
	f.orders[number] = o
	return nil
}

func (f *fakeOrderBackend) Cancel(ctx context.Context, number int64, info domain.CancelInfo) error {
	f.calls++
	if f.Fail {
		return errRemote
	}
	o, ok := f.orders[number]
	if !ok {
		return errors.New("not found")
	}
	o.Status = domain.StatusCanceled
	o.Cancel = &info
	f.orders[number] = o
	return nil
}

func (f *fakeOrderBackend) List(ctx context.Context) ([]domain.Order, error) {
	f.calls++
	if f.Fail {
		return nil, errRemote
	}
	out := make([]domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func newTestStore(t *testing.T, remote Remote) *Store {
	t.Helper()
	local, err := localstore.Open(t.TempDir(), 1000)
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(remote, local, logger, false)
	s.pollInterval = 10 * time.Millisecond
	return s
}

func TestCreateOrderRemoteFirst(t *testing.T) {
	ctx := context.Background()
	fake := newFakeOrderBackend()
	s := newTestStore(t, Remote{Orders: fake})

	first, err := s.CreateOrder(ctx, domain.Order{Type: domain.OrderPickup})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if first.Number != 1001 {
		t.Errorf("first number = %d, want 1001", first.Number)
	}
	if first.Status != domain.StatusConfirmed {
		t.Errorf("status = %q, want confirmed", first.Status)
	}

	// The remote failure is invisible to the caller: the local store
	// continues the sequence.
	fake.Fail = true
	second, err := s.CreateOrder(ctx, domain.Order{Type: domain.OrderPickup})
	if err != nil {
		t.Fatalf("CreateOrder with dead remote: %v", err)
	}
	if second.Number != 1002 {
		t.Errorf("second number = %d, want 1002", second.Number)
	}
}

func TestCreateOrderKeepsLocalRecordOnNumberCollision(t *testing.T) {
	ctx := context.Background()
	fake := newFakeOrderBackend()
	s := newTestStore(t, Remote{Orders: fake})

	// The remote is down, so 1001 is issued by the local counter.
	fake.Fail = true
	fallback, err := s.CreateOrder(ctx, domain.Order{Type: domain.OrderPickup, Operator: "ana"})
	if err != nil {
		t.Fatalf("CreateOrder with dead remote: %v", err)
	}
	if fallback.Number != 1001 {
		t.Fatalf("fallback number = %d, want 1001", fallback.Number)
	}

	// The remote recovers with its own counter still at 1000 and hands
	// out 1001 again. The mirror must not lose the fallback order.
	fake.Fail = false
	created, err := s.CreateOrder(ctx, domain.Order{Type: domain.OrderPickup, Operator: "rui"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if created.Number != 1001 {
		t.Fatalf("remote number = %d, want 1001", created.Number)
	}

	kept, ok := s.local.GetOrder(1001)
	if !ok {
		t.Fatal("order 1001 missing from mirror")
	}
	if kept.Operator != "ana" {
		t.Errorf("mirror holds operator %q, want the fallback order", kept.Operator)
	}
}

func TestCreateOrderForcedOfflineSkipsRemote(t *testing.T) {
	ctx := context.Background()
	fake := newFakeOrderBackend()
	s := newTestStore(t, Remote{Orders: fake})
	s.SetOffline(true)

	o, err := s.CreateOrder(ctx, domain.Order{Type: domain.OrderPickup})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if o.Number != 1001 {
		t.Errorf("number = %d, want 1001", o.Number)
	}
	if fake.calls != 0 {
		t.Errorf("remote called %d times in forced-offline mode", fake.calls)
	}
}

func TestListOrdersLatchesOnRemoteError(t *testing.T) {
	ctx := context.Background()
	fake := newFakeOrderBackend()
	s := newTestStore(t, Remote{Orders: fake})

	if _, err := s.CreateOrder(ctx, domain.Order{Type: domain.OrderPickup}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	fake.Fail = true
	orders := s.ListOrders(ctx)
	if len(orders) != 1 {
		t.Fatalf("orders after fallback = %d, want 1", len(orders))
	}

	// A latched session never probes the remote for reads again.
	callsAfterLatch := fake.calls
	_ = s.ListOrders(ctx)
	_ = s.ListOrders(ctx)
	if fake.calls != callsAfterLatch {
		t.Errorf("remote reads after latch = %d, want 0", fake.calls-callsAfterLatch)
	}
}

func TestStatusAndCancelMirrorLocally(t *testing.T) {
	ctx := context.Background()
	fake := newFakeOrderBackend()
	s := newTestStore(t, Remote{Orders: fake})

	o, _ := s.CreateOrder(ctx, domain.Order{Type: domain.OrderDelivery})

	if err := s.SetOrderStatus(ctx, o.Number, domain.StatusKitchen, ""); err != nil {
		t.Fatalf("SetOrderStatus: %v", err)
	}
	got, ok := s.GetOrder(ctx, o.Number)
	if !ok || got.Status != domain.StatusKitchen {
		t.Errorf("mirrored status = %q, want kitchen", got.Status)
	}

	info := domain.CancelInfo{Reason: "wrong order", Actor: "ana", CanceledAt: time.Now()}
	if err := s.CancelOrder(ctx, o.Number, info); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	got, _ = s.GetOrder(ctx, o.Number)
	if got.Status != domain.StatusCanceled || got.Cancel == nil || got.Cancel.Reason != "wrong order" {
		t.Errorf("canceled order = %+v", got)
	}

	if err := s.SetOrderStatus(ctx, 9999, domain.StatusKitchen, ""); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("unknown order err = %v, want ErrOrderNotFound", err)
	}
}

func TestOfflineToggleResubscribes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fake := newFakeOrderBackend()
	s := newTestStore(t, Remote{Orders: fake})

	if _, err := s.CreateOrder(ctx, domain.Order{Type: domain.OrderPickup}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	sub := s.SubscribeOrders(ctx)
	snap := waitSnapshot(t, sub)
	if len(snap) != 1 {
		t.Fatalf("initial snapshot = %d orders, want 1", len(snap))
	}

	// Toggling offline re-subscribes; the local mirror must serve the
	// same snapshot with no duplicate or missing entries.
	s.SetOffline(true)
	snap = waitSnapshot(t, sub)
	if len(snap) != 1 || snap[0].Number != 1001 {
		t.Fatalf("offline snapshot = %+v, want single order 1001", snap)
	}

	// Mutations while offline keep flowing to subscribers.
	if _, err := s.CreateOrder(ctx, domain.Order{Type: domain.OrderPickup}); err != nil {
		t.Fatalf("offline CreateOrder: %v", err)
	}
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap = <-sub:
			if len(snap) == 2 {
				return
			}
		case <-deadline:
			t.Fatalf("never saw 2-order snapshot, last = %d", len(snap))
		}
	}
}

func waitSnapshot(t *testing.T, sub <-chan []domain.Order) []domain.Order {
	t.Helper()
	select {
	case snap := <-sub:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestSettingsFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, Remote{})

	set := s.GetSettings(ctx)
	if !set.StoreOpen || set.DeliverySLAMin != 50 || set.PickupSLAMin != 30 {
		t.Errorf("default settings = %+v", set)
	}

	set.StoreOpen = false
	s.SaveSettings(ctx, set)
	if got := s.GetSettings(ctx); got.StoreOpen {
		t.Error("saved settings not returned")
	}
}

func TestSetDefaultSettingsServedUntilFirstSave(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, Remote{})
	s.SetDefaultSettings(domain.Settings{
		StoreOpen:      true,
		DeliverySLAMin: 40,
		PickupSLAMin:   20,
		CurrencyCode:   "BRL",
	})

	set := s.GetSettings(ctx)
	if set.DeliverySLAMin != 40 || set.PickupSLAMin != 20 {
		t.Errorf("defaults = %+v", set)
	}

	set.DeliverySLAMin = 55
	s.SaveSettings(ctx, set)
	if got := s.GetSettings(ctx); got.DeliverySLAMin != 55 {
		t.Errorf("saved SLA = %d, want 55", got.DeliverySLAMin)
	}
}
