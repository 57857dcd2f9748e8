package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"pizzapos-backend/internal/domain"
)

func TestDecimal(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{3500, "35,00"},
		{4005, "40,05"},
		{90, "0,90"},
		{0, "0,00"},
		{-1250, "-12,50"},
	}
	for _, tt := range tests {
		if got := Decimal(tt.cents); got != tt.want {
			t.Errorf("Decimal(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	for _, s := range []string{"35,00", "40,05", "0,90", "-12,50"} {
		cents, err := ParseDecimal(s)
		if err != nil {
			t.Fatalf("ParseDecimal(%q): %v", s, err)
		}
		if got := Decimal(cents); got != s {
			t.Errorf("round trip %q -> %d -> %q", s, cents, got)
		}
	}
	if _, err := ParseDecimal("abc"); err == nil {
		t.Error("ParseDecimal(abc) should fail")
	}
}

func sampleOrders() []domain.Order {
	created := time.Date(2026, 2, 14, 19, 30, 0, 0, time.UTC)
	return []domain.Order{
		{
			Number: 1001,
			Type:   domain.OrderDelivery,
			Status: domain.StatusCompleted,
			Customer: domain.CustomerSnapshot{
				Name:         `Ana "Aninha" Souza`,
				Phone:        "11 98888-0001",
				Address:      "Rua das Flores; 120",
				Neighborhood: "Centro",
			},
			Items: []domain.CartItem{
				{Name: "Margherita / Calabresa", Flavors: []string{"Margherita", "Calabresa"}, Pieces: 8, Qty: 1},
				{Name: "Guarana 2L", Flavors: []string{"Guarana 2L"}, Qty: 2},
			},
			Subtotal:      3500,
			DeliveryFee:   500,
			Total:         4000,
			PaymentMethod: domain.PayPix,
			Driver:        "Carla",
			Operator:      "ana",
			CreatedAt:     created,
		},
		{
			Number:        1002,
			Type:          domain.OrderPickup,
			Status:        domain.StatusCompleted,
			Customer:      domain.CustomerSnapshot{Name: "Beto", Phone: "11 98888-0002"},
			Subtotal:      2500,
			Total:         2500,
			PaymentMethod: domain.PayCash,
			CreatedAt:     created,
		},
	}
}

func TestOrdersCSVDialect(t *testing.T) {
	data, err := OrdersCSV(sampleOrders())
	if err != nil {
		t.Fatalf("OrdersCSV: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("missing UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimSpace(string(data[3:])), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "numero;data;") {
		t.Errorf("header = %q", lines[0])
	}
	// Semicolon inside the address and quotes inside the name force
	// quoting; amounts use the decimal comma.
	if !strings.Contains(lines[1], `"Ana ""Aninha"" Souza"`) {
		t.Errorf("quote escaping missing in %q", lines[1])
	}
	if !strings.Contains(lines[1], `"Rua das Flores; 120"`) {
		t.Errorf("semicolon field not quoted in %q", lines[1])
	}
	if !strings.Contains(lines[1], ";35,00;") || !strings.Contains(lines[1], ";40,00;") {
		t.Errorf("decimal commas missing in %q", lines[1])
	}
}

func TestOrdersCSVRoundTrip(t *testing.T) {
	orders := sampleOrders()
	data, err := OrdersCSV(orders)
	if err != nil {
		t.Fatalf("OrdersCSV: %v", err)
	}
	rows, err := ReadOrdersCSV(data)
	if err != nil {
		t.Fatalf("ReadOrdersCSV: %v", err)
	}
	if len(rows) != len(orders) {
		t.Fatalf("rows = %d, want %d", len(rows), len(orders))
	}
	var wantTotal, gotTotal int64
	for i := range orders {
		wantTotal += orders[i].Total
		gotTotal += rows[i].Total
		if rows[i].Number != orders[i].Number {
			t.Errorf("row %d number = %d, want %d", i, rows[i].Number, orders[i].Number)
		}
	}
	if gotTotal != wantTotal {
		t.Errorf("total sum = %d, want %d", gotTotal, wantTotal)
	}
}

func TestCustomersCSV(t *testing.T) {
	data, err := CustomersCSV([]domain.Customer{
		{Name: "Maria", Phone: "11 97777-0001", Neighborhood: "Centro", OrderCount: 4, TotalSpent: 18000},
	})
	if err != nil {
		t.Fatalf("CustomersCSV: %v", err)
	}
	s := string(data[3:])
	if !strings.Contains(s, "Maria;11 97777-0001;") || !strings.Contains(s, ";4;180,00") {
		t.Errorf("customers csv = %q", s)
	}
}

func TestOrdersXLSXProducesWorkbook(t *testing.T) {
	data, err := OrdersXLSX(sampleOrders())
	if err != nil {
		t.Fatalf("OrdersXLSX: %v", err)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(data, []byte{'P', 'K'}) {
		t.Errorf("not a zip archive: % x", data[:4])
	}
}
