package receipt

import (
	"strings"
	"testing"
	"time"

	"pizzapos-backend/internal/domain"
)

func testOrder() domain.Order {
	created := time.Date(2026, 2, 14, 19, 30, 0, 0, time.UTC)
	return domain.Order{
		Number: 1001,
		Type:   domain.OrderDelivery,
		Customer: domain.CustomerSnapshot{
			Name:         "Ana Souza",
			Phone:        "11 98888-0001",
			Address:      "Rua das Flores 120",
			Neighborhood: "Centro",
		},
		Items: []domain.CartItem{
			{Name: "Margherita / Calabresa", Flavors: []string{"Margherita", "Calabresa"}, Pieces: 8, UnitPrice: 3500, Qty: 1, Observation: "sem cebola"},
			{Name: "Guarana 2L", Flavors: []string{"Guarana 2L"}, UnitPrice: 1200, Qty: 2},
		},
		Subtotal:      5900,
		DeliveryFee:   500,
		Total:         6400,
		PaymentMethod: domain.PayCash,
		ChangeFor:     10000,
		CreatedAt:     created,
		Deadline:      created.Add(50 * time.Minute),
	}
}

func TestCustomerReceipt(t *testing.T) {
	s := domain.Settings{
		BusinessName:  "Pizzaria Divina",
		BusinessPhone: "11 4002-8922",
		ReceiptFooter: "Obrigado pela preferencia!",
	}
	out := Customer(testOrder(), s)

	for _, want := range []string{
		"Pizzaria Divina",
		"PEDIDO #1001  ENTREGA",
		"Cliente: Ana Souza",
		"Bairro:  Centro",
		"1x Margherita / Calabresa 8pc",
		"obs: sem cebola",
		"R$ 59,00",
		"Taxa de entrega",
		"R$ 64,00",
		"Troco para",
		"R$ 36,00",
		"Previsao: 20:20",
		"Obrigado pela preferencia!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("receipt missing %q:\n%s", want, out)
		}
	}
}

func TestCustomerReceiptPickupSkipsAddress(t *testing.T) {
	o := testOrder()
	o.Type = domain.OrderPickup
	o.DeliveryFee = 0
	out := Customer(o, domain.Settings{BusinessName: "Pizzaria Divina"})

	if strings.Contains(out, "Rua das Flores") {
		t.Error("pickup receipt should not print the address")
	}
	if strings.Contains(out, "Taxa de entrega") {
		t.Error("pickup receipt should not print a delivery fee line")
	}
	if !strings.Contains(out, "RETIRADA") {
		t.Error("pickup receipt should be labeled RETIRADA")
	}
}

func TestKitchenTicket(t *testing.T) {
	out := Kitchen(testOrder())

	if strings.Contains(out, "R$") {
		t.Error("kitchen ticket must not show prices")
	}
	for _, want := range []string{
		"PEDIDO #1001",
		"SAIR ATE 20:20",
		"1x Margherita / Calabresa 8pc",
		">>> SEM CEBOLA",
		"2x Guarana 2L",
		"Cliente: Ana Souza",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ticket missing %q:\n%s", want, out)
		}
	}
}
