// Package export renders orders and customers into spreadsheet
// formats. The CSV dialect follows what pt-BR Excel expects when a
// file is double-clicked: semicolon delimiter, UTF-8 BOM, comma as
// the decimal separator.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"pizzapos-backend/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var orderHeader = []string{
	"numero", "data", "hora", "tipo", "status", "cliente", "telefone",
	"endereco", "bairro", "itens", "subtotal", "desconto", "taxa_entrega",
	"total", "pagamento", "entregador", "operador",
}

// Decimal renders cents as a comma-decimal string, e.g. 3500 -> "35,00".
func Decimal(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d,%02d", sign, cents/100, cents%100)
}

// ParseDecimal converts a comma-decimal string back to cents.
func ParseDecimal(s string) (int64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if v < 0 {
		return int64(v*100 - 0.5), nil
	}
	return int64(v*100 + 0.5), nil
}

func itemLabel(item domain.CartItem) string {
	name := item.Name
	if len(item.Flavors) > 1 {
		name = strings.Join(item.Flavors, " / ")
	}
	if item.Pieces > 0 {
		name = fmt.Sprintf("%s (%d pedacos)", name, item.Pieces)
	}
	return fmt.Sprintf("%dx %s", item.Qty, name)
}

// OrdersCSV writes one row per order.
func OrdersCSV(orders []domain.Order) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(utf8BOM)
	w := csv.NewWriter(buf)
	w.Comma = ';'
	_ = w.Write(orderHeader)
	for _, o := range orders {
		items := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, itemLabel(item))
		}
		_ = w.Write([]string{
			strconv.FormatInt(o.Number, 10),
			o.CreatedAt.Format("2006-01-02"),
			o.CreatedAt.Format("15:04"),
			string(o.Type),
			string(o.Status),
			o.Customer.Name,
			o.Customer.Phone,
			o.Customer.Address,
			o.Customer.Neighborhood,
			strings.Join(items, " | "),
			Decimal(o.Subtotal),
			Decimal(o.Discount),
			Decimal(o.DeliveryFee),
			Decimal(o.Total),
			string(o.PaymentMethod),
			o.Driver,
			o.Operator,
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// OrderRow is the parsed form of one exported order line, read back
// for backup verification.
type OrderRow struct {
	Number int64
	Total  int64
}

// ReadOrdersCSV parses an export back into (number, total) pairs.
func ReadOrdersCSV(data []byte) ([]OrderRow, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ';'
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rows := make([]OrderRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(orderHeader) {
			return nil, fmt.Errorf("row has %d columns, want %d", len(rec), len(orderHeader))
		}
		number, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse order number %q: %w", rec[0], err)
		}
		total, err := ParseDecimal(rec[13])
		if err != nil {
			return nil, err
		}
		rows = append(rows, OrderRow{Number: number, Total: total})
	}
	return rows, nil
}

// CustomersCSV writes one row per customer.
func CustomersCSV(customers []domain.Customer) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(utf8BOM)
	w := csv.NewWriter(buf)
	w.Comma = ';'
	_ = w.Write([]string{"nome", "telefone", "endereco", "bairro", "referencia", "pedidos", "total_gasto"})
	for _, c := range customers {
		_ = w.Write([]string{
			c.Name,
			c.Phone,
			c.Address,
			c.Neighborhood,
			c.Reference,
			strconv.Itoa(c.OrderCount),
			Decimal(c.TotalSpent),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
