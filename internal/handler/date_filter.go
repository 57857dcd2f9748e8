package handler

import (
	"net/http"
	"time"

	"pizzapos-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// parseDateQuery reads a day boundary in the server's time zone, the
// same zone orders are stamped in.
func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// filterOrdersByDate keeps orders created within [start, end]. The end
// date is inclusive for the whole day.
func filterOrdersByDate(orders []domain.Order, start, end *time.Time) []domain.Order {
	if start == nil && end == nil {
		return orders
	}
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if start != nil && o.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && !o.CreatedAt.Before(end.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// dateRangeQuery reads startDate/endDate and validates ordering.
func dateRangeQuery(r *http.Request) (*time.Time, *time.Time, bool, string) {
	start, err := parseDateQuery(r, "startDate")
	if err != nil {
		return nil, nil, false, "invalid startDate"
	}
	end, err := parseDateQuery(r, "endDate")
	if err != nil {
		return nil, nil, false, "invalid endDate"
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, false, "startDate must be before endDate"
	}
	return start, end, true, ""
}
