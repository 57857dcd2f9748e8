package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"pizzapos-backend/internal/cart"
	"pizzapos-backend/internal/catalog"
	"pizzapos-backend/internal/config"
	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/localstore"
	"pizzapos-backend/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	local, err := localstore.Open(t.TempDir(), 1000)
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return store.New(store.Remote{}, local, logger, true)
}

func testCart(t *testing.T) *cart.Cart {
	t.Helper()
	cat := catalog.Default()
	c := &cart.Cart{}
	if err := c.AddPizza(cat, []string{"Margherita"}, 8, ""); err != nil {
		t.Fatalf("add pizza: %v", err)
	}
	return c
}

func TestPlaceOrder(t *testing.T) {
	st := newTestStore(t)
	svc := OrderService{Store: st, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	input := PlaceOrderInput{
		Cart: testCart(t),
		Type: domain.OrderDelivery,
		Customer: domain.CustomerSnapshot{
			Name:         "Ana Souza",
			Phone:        "11 98888-0001",
			Address:      "Rua das Flores 120",
			Neighborhood: "Centro",
		},
		PaymentMethod: domain.PayPix,
		DeliveryFee:   500,
		Operator:      "ana",
	}

	before := time.Now()
	order, err := svc.PlaceOrder(context.Background(), input)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.Number != 1001 {
		t.Errorf("number = %d, want 1001", order.Number)
	}
	if order.Status != domain.StatusConfirmed {
		t.Errorf("status = %q", order.Status)
	}
	if order.Total != order.Subtotal+500 {
		t.Errorf("total = %d subtotal = %d", order.Total, order.Subtotal)
	}

	// Default delivery SLA is 50 minutes.
	wantDeadline := before.Add(50 * time.Minute)
	if order.Deadline.Before(wantDeadline.Add(-time.Minute)) || order.Deadline.After(wantDeadline.Add(time.Minute)) {
		t.Errorf("deadline = %v, want about %v", order.Deadline, wantDeadline)
	}

	// Customer upsert runs in the background.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := st.Local().GetCustomer("11 98888-0001"); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("customer record never appeared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPlaceOrderAggregatesViolations(t *testing.T) {
	st := newTestStore(t)
	st.SaveSettings(context.Background(), domain.Settings{StoreOpen: false, DeliverySLAMin: 50, PickupSLAMin: 30})
	svc := OrderService{Store: st, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		Cart: &cart.Cart{},
		Type: domain.OrderDelivery,
	})
	var verr *cart.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	for _, fragment := range []string{"store is closed", "cart is empty", "name", "phone", "address"} {
		found := false
		for _, v := range verr.Violations {
			if strings.Contains(v, fragment) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("violations missing %q: %v", fragment, verr.Violations)
		}
	}
}

func TestCustomerTotalsBumpOnCompletion(t *testing.T) {
	st := newTestStore(t)
	svc := OrderService{Store: st, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		Cart:          testCart(t),
		Type:          domain.OrderPickup,
		Customer:      domain.CustomerSnapshot{Name: "Beto", Phone: "11 98888-0002"},
		PaymentMethod: domain.PayCard,
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := st.Local().GetCustomer("11 98888-0002"); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("customer record never appeared")
		}
		time.Sleep(5 * time.Millisecond)
	}

	c, _ := st.Local().GetCustomer("11 98888-0002")
	if c.OrderCount != 0 || c.TotalSpent != 0 {
		t.Fatalf("totals bumped before completion: %+v", c)
	}

	ctx := context.Background()
	for _, status := range []domain.OrderStatus{domain.StatusKitchen, domain.StatusDelivery, domain.StatusCompleted} {
		if err := st.SetOrderStatus(ctx, order.Number, status, ""); err != nil {
			t.Fatalf("SetOrderStatus(%s): %v", status, err)
		}
	}

	c, _ = st.Local().GetCustomer("11 98888-0002")
	if c.OrderCount != 1 || c.TotalSpent != order.Total {
		t.Errorf("totals after completion = %+v, want count 1 total %d", c, order.Total)
	}

	// A second completion of the same order must not double count.
	if err := st.SetOrderStatus(ctx, order.Number, domain.StatusCompleted, ""); err != nil {
		t.Fatalf("SetOrderStatus: %v", err)
	}
	c, _ = st.Local().GetCustomer("11 98888-0002")
	if c.OrderCount != 1 {
		t.Errorf("orderCount = %d after repeat completion", c.OrderCount)
	}
}

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	local, err := localstore.Open(t.TempDir(), 1000)
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	return AuthService{
		Config: config.Config{
			JWTSecret:       "test-secret",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Users:  LocalUsers{Store: local},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRegisterLoginRefresh(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@pizzaria.dev", Password: "segredo", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.AccessToken == "" || reg.RefreshToken == "" {
		t.Fatal("missing tokens")
	}

	if _, err := svc.Register(ctx, RegisterInput{Name: "Ana2", Email: "ANA@pizzaria.dev", Password: "x"}); err == nil {
		t.Error("duplicate email should fail")
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "ana@pizzaria.dev", Password: "errada"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	login, err := svc.Login(ctx, LoginInput{Email: "ana@pizzaria.dev", Password: "segredo"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.Role != domain.RoleAdmin {
		t.Errorf("role = %q", login.User.Role)
	}

	refreshed, err := svc.Refresh(ctx, RefreshInput{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.User.ID != login.User.ID {
		t.Errorf("refreshed user id = %d, want %d", refreshed.User.ID, login.User.ID)
	}

	// Access tokens are not refresh tokens.
	if _, err := svc.Refresh(ctx, RefreshInput{RefreshToken: login.AccessToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access-as-refresh err = %v", err)
	}
}

func TestUserDeleteGuards(t *testing.T) {
	svc := newAuthService(t)
	users := UserService{Users: svc.Users}
	ctx := context.Background()

	admin, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@pizzaria.dev", Password: "x", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	staff, err := svc.Register(ctx, RegisterInput{Name: "Beto", Email: "beto@pizzaria.dev", Password: "x"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := users.Delete(ctx, admin.User.ID, admin.User.ID); !errors.Is(err, ErrSelfDelete) {
		t.Errorf("self delete err = %v", err)
	}
	if err := users.Delete(ctx, staff.User.ID, admin.User.ID); !errors.Is(err, ErrLastAdmin) {
		t.Errorf("last admin err = %v", err)
	}
	if err := users.Delete(ctx, admin.User.ID, staff.User.ID); err != nil {
		t.Errorf("staff delete err = %v", err)
	}

	list, err := users.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("users left = %d, want 1", len(list))
	}
}
