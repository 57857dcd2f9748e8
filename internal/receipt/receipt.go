// Package receipt renders the two printable layouts: the customer
// copy that travels with the order and the kitchen production ticket.
// Both target a 40-column thermal printer, so lines are plain text
// with no markup.
package receipt

import (
	"fmt"
	"strings"

	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/export"
)

const width = 40

var divider = strings.Repeat("-", width)

func center(s string) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// amountLine right-aligns a money value against its label.
func amountLine(label string, cents int64) string {
	value := "R$ " + export.Decimal(cents)
	gap := width - len(label) - len(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}

func typeLabel(t domain.OrderType) string {
	if t == domain.OrderDelivery {
		return "ENTREGA"
	}
	return "RETIRADA"
}

// Customer renders the customer-facing receipt.
func Customer(o domain.Order, s domain.Settings) string {
	var b strings.Builder

	b.WriteString(center(s.BusinessName) + "\n")
	if s.BusinessAddress != "" {
		b.WriteString(center(s.BusinessAddress) + "\n")
	}
	if s.BusinessPhone != "" {
		b.WriteString(center(s.BusinessPhone) + "\n")
	}
	b.WriteString(divider + "\n")
	b.WriteString(fmt.Sprintf("PEDIDO #%d  %s\n", o.Number, typeLabel(o.Type)))
	b.WriteString(o.CreatedAt.Format("02/01/2006 15:04") + "\n")
	b.WriteString(divider + "\n")

	b.WriteString("Cliente: " + o.Customer.Name + "\n")
	if o.Customer.Phone != "" {
		b.WriteString("Fone:    " + o.Customer.Phone + "\n")
	}
	if o.Type == domain.OrderDelivery {
		b.WriteString("End:     " + o.Customer.Address + "\n")
		if o.Customer.Neighborhood != "" {
			b.WriteString("Bairro:  " + o.Customer.Neighborhood + "\n")
		}
		if o.Customer.Reference != "" {
			b.WriteString("Ref:     " + o.Customer.Reference + "\n")
		}
	}
	b.WriteString(divider + "\n")

	for _, item := range o.Items {
		label := fmt.Sprintf("%dx %s", item.Qty, itemTitle(item))
		b.WriteString(amountLine(label, item.UnitPrice*int64(item.Qty)) + "\n")
		if item.Observation != "" {
			b.WriteString("   obs: " + item.Observation + "\n")
		}
	}
	b.WriteString(divider + "\n")

	b.WriteString(amountLine("Subtotal", o.Subtotal) + "\n")
	if o.Discount > 0 {
		b.WriteString(amountLine("Desconto", -o.Discount) + "\n")
	}
	if o.Type == domain.OrderDelivery {
		b.WriteString(amountLine("Taxa de entrega", o.DeliveryFee) + "\n")
	}
	b.WriteString(amountLine("TOTAL", o.Total) + "\n")
	b.WriteString(divider + "\n")

	b.WriteString("Pagamento: " + paymentLabel(o.PaymentMethod) + "\n")
	if o.PaymentMethod == domain.PayCash && o.ChangeFor > 0 {
		b.WriteString(amountLine("Troco para", o.ChangeFor) + "\n")
		b.WriteString(amountLine("Troco", o.ChangeFor-o.Total) + "\n")
	}
	if !o.Deadline.IsZero() {
		b.WriteString("Previsao: " + o.Deadline.Format("15:04") + "\n")
	}
	if s.ReceiptFooter != "" {
		b.WriteString(divider + "\n")
		b.WriteString(center(s.ReceiptFooter) + "\n")
	}
	return b.String()
}

// Kitchen renders the production ticket. No prices, big on what to
// make and any per-item notes.
func Kitchen(o domain.Order) string {
	var b strings.Builder

	b.WriteString(center(fmt.Sprintf("*** PEDIDO #%d ***", o.Number)) + "\n")
	b.WriteString(center(typeLabel(o.Type)) + "\n")
	b.WriteString(o.CreatedAt.Format("02/01/2006 15:04") + "\n")
	if !o.Deadline.IsZero() {
		b.WriteString("SAIR ATE " + o.Deadline.Format("15:04") + "\n")
	}
	b.WriteString(divider + "\n")

	for _, item := range o.Items {
		b.WriteString(fmt.Sprintf("%dx %s\n", item.Qty, itemTitle(item)))
		if item.Observation != "" {
			b.WriteString("   >>> " + strings.ToUpper(item.Observation) + "\n")
		}
	}
	b.WriteString(divider + "\n")
	b.WriteString("Cliente: " + o.Customer.Name + "\n")
	if o.Type == domain.OrderDelivery && o.Customer.Neighborhood != "" {
		b.WriteString("Bairro:  " + o.Customer.Neighborhood + "\n")
	}
	return b.String()
}

func itemTitle(item domain.CartItem) string {
	name := item.Name
	if len(item.Flavors) > 1 {
		name = strings.Join(item.Flavors, " / ")
	}
	if item.Pieces > 0 {
		name = fmt.Sprintf("%s %dpc", name, item.Pieces)
	}
	return name
}

func paymentLabel(m domain.PaymentMethod) string {
	switch m {
	case domain.PayCash:
		return "Dinheiro"
	case domain.PayCard:
		return "Cartao"
	case domain.PayPix:
		return "Pix"
	case domain.PayFiado:
		return "Fiado"
	}
	return string(m)
}
