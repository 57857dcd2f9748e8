package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pizzapos-backend/internal/domain"
)

func stampedOrder(number int64, at time.Time) domain.Order {
	return domain.Order{Number: number, CreatedAt: at}
}

func TestDateFilterUsesServerLocalDayBoundaries(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	orders := []domain.Order{
		stampedOrder(1, day.Add(-12*time.Hour+15*time.Minute)), // 00:15 that day
		stampedOrder(2, day.Add(11*time.Hour+45*time.Minute)),  // 23:45 that day
		stampedOrder(3, day.Add(-13*time.Hour)),                // day before
		stampedOrder(4, day.Add(13*time.Hour)),                 // day after
	}

	req := httptest.NewRequest(http.MethodGet, "/orders?startDate=2026-03-10&endDate=2026-03-10", nil)
	start, end, ok, msg := dateRangeQuery(req)
	if !ok {
		t.Fatalf("dateRangeQuery: %s", msg)
	}

	got := filterOrdersByDate(orders, start, end)
	if len(got) != 2 {
		t.Fatalf("filtered %d orders, want 2: %+v", len(got), got)
	}
	if got[0].Number != 1 || got[1].Number != 2 {
		t.Errorf("kept orders %d and %d, want 1 and 2", got[0].Number, got[1].Number)
	}
}

func TestDateRangeQueryRejectsInvertedRange(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders?startDate=2026-03-11&endDate=2026-03-10", nil)
	if _, _, ok, _ := dateRangeQuery(req); ok {
		t.Error("inverted range accepted")
	}
}
