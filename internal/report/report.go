// Package report computes the CRM and finance views from order
// history. Everything here is a pure reduction over a slice of
// orders; the handlers pick the date range and the store fetches it.
package report

import (
	"sort"
	"strings"

	"pizzapos-backend/internal/domain"
)

// PaymentSlice is one row of the payment-method breakdown.
type PaymentSlice struct {
	Method domain.PaymentMethod `json:"method"`
	Count  int                  `json:"count"`
	Total  int64                `json:"total"`
}

// Summary aggregates a period. Gross includes fiado sales; net is
// what actually entered the register, so fiado is carved out of it.
type Summary struct {
	Orders           int            `json:"orders"`
	Gross            int64          `json:"gross"`
	Net              int64          `json:"net"`
	FiadoOutstanding int64          `json:"fiadoOutstanding"`
	DeliveryFees     int64          `json:"deliveryFees"`
	Discounts        int64          `json:"discounts"`
	AverageTicket    int64          `json:"averageTicket"`
	Deliveries       int            `json:"deliveries"`
	Pickups          int            `json:"pickups"`
	Canceled         int            `json:"canceled"`
	ByPayment        []PaymentSlice `json:"byPayment"`
}

// counted reports whether an order contributes revenue. Canceled
// orders never do; archived ones were completed before archiving.
func counted(o domain.Order) bool {
	return o.Status != domain.StatusCanceled
}

// Summarize reduces a period of orders into totals.
func Summarize(orders []domain.Order) Summary {
	var s Summary
	byMethod := make(map[domain.PaymentMethod]*PaymentSlice)

	for _, o := range orders {
		if o.Status == domain.StatusCanceled {
			s.Canceled++
			continue
		}
		s.Orders++
		s.Gross += o.Total
		s.DeliveryFees += o.DeliveryFee
		s.Discounts += o.Discount
		if o.PaymentMethod == domain.PayFiado {
			s.FiadoOutstanding += o.Total
		} else {
			s.Net += o.Total
		}
		switch o.Type {
		case domain.OrderDelivery:
			s.Deliveries++
		case domain.OrderPickup:
			s.Pickups++
		}

		slice, ok := byMethod[o.PaymentMethod]
		if !ok {
			slice = &PaymentSlice{Method: o.PaymentMethod}
			byMethod[o.PaymentMethod] = slice
		}
		slice.Count++
		slice.Total += o.Total
	}

	if s.Orders > 0 {
		s.AverageTicket = s.Gross / int64(s.Orders)
	}

	s.ByPayment = make([]PaymentSlice, 0, len(byMethod))
	for _, slice := range byMethod {
		s.ByPayment = append(s.ByPayment, *slice)
	}
	sort.Slice(s.ByPayment, func(i, j int) bool {
		if s.ByPayment[i].Total != s.ByPayment[j].Total {
			return s.ByPayment[i].Total > s.ByPayment[j].Total
		}
		return s.ByPayment[i].Method < s.ByPayment[j].Method
	})
	return s
}

// DriverLine is one driver's delivery tally for a period.
type DriverLine struct {
	Driver     string `json:"driver"`
	Deliveries int    `json:"deliveries"`
	Fees       int64  `json:"fees"`
}

// Drivers tallies deliveries and collected fees per driver. Orders
// without an assigned driver land under an empty name and are
// reported last.
func Drivers(orders []domain.Order) []DriverLine {
	byDriver := make(map[string]*DriverLine)
	for _, o := range orders {
		if !counted(o) || o.Type != domain.OrderDelivery {
			continue
		}
		line, ok := byDriver[o.Driver]
		if !ok {
			line = &DriverLine{Driver: o.Driver}
			byDriver[o.Driver] = line
		}
		line.Deliveries++
		line.Fees += o.DeliveryFee
	}

	lines := make([]DriverLine, 0, len(byDriver))
	for _, line := range byDriver {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if (lines[i].Driver == "") != (lines[j].Driver == "") {
			return lines[j].Driver == ""
		}
		if lines[i].Deliveries != lines[j].Deliveries {
			return lines[i].Deliveries > lines[j].Deliveries
		}
		return lines[i].Driver < lines[j].Driver
	})
	return lines
}

// FiadoBalance is the open tab of one customer.
type FiadoBalance struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Orders  int    `json:"orders"`
	Balance int64  `json:"balance"`
}

// FiadoBalances sums unpaid fiado totals per customer phone, largest
// balance first.
func FiadoBalances(orders []domain.Order) []FiadoBalance {
	byPhone := make(map[string]*FiadoBalance)
	for _, o := range orders {
		if !counted(o) || o.PaymentMethod != domain.PayFiado {
			continue
		}
		b, ok := byPhone[o.Customer.Phone]
		if !ok {
			b = &FiadoBalance{Name: o.Customer.Name, Phone: o.Customer.Phone}
			byPhone[o.Customer.Phone] = b
		}
		b.Orders++
		b.Balance += o.Total
	}

	balances := make([]FiadoBalance, 0, len(byPhone))
	for _, b := range byPhone {
		balances = append(balances, *b)
	}
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Balance != balances[j].Balance {
			return balances[i].Balance > balances[j].Balance
		}
		return balances[i].Phone < balances[j].Phone
	})
	return balances
}

// ProductLine is one product's sales tally.
type ProductLine struct {
	Product string `json:"product"`
	Units   int    `json:"units"`
}

// TopProducts ranks products by units sold. A half-and-half pizza
// counts one unit for each flavor, so flavor popularity stays
// comparable across whole and split pies. Single-price lines (drinks,
// desserts, extras) count under the product name.
func TopProducts(orders []domain.Order, n int) []ProductLine {
	units := make(map[string]int)
	for _, o := range orders {
		if !counted(o) {
			continue
		}
		for _, item := range o.Items {
			if len(item.Flavors) == 0 {
				units[item.Name] += item.Qty
				continue
			}
			for _, flavor := range item.Flavors {
				units[flavor] += item.Qty
			}
		}
	}

	lines := make([]ProductLine, 0, len(units))
	for product, count := range units {
		lines = append(lines, ProductLine{Product: product, Units: count})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Units != lines[j].Units {
			return lines[i].Units > lines[j].Units
		}
		return strings.ToLower(lines[i].Product) < strings.ToLower(lines[j].Product)
	})
	if n > 0 && len(lines) > n {
		lines = lines[:n]
	}
	return lines
}

// Comparison holds two adjacent periods side by side for the
// dashboard trend cards.
type Comparison struct {
	Current  Summary `json:"current"`
	Previous Summary `json:"previous"`
}

// Compare summarizes both periods.
func Compare(current, previous []domain.Order) Comparison {
	return Comparison{Current: Summarize(current), Previous: Summarize(previous)}
}
