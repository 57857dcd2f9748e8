package board

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"pizzapos-backend/internal/domain"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDriverRequired    = errors.New("driver required for delivery dispatch")
	ErrReasonRequired    = errors.New("cancel reason must come from the fixed list")
	ErrDragNotAllowed    = errors.New("transition requires the explicit action")
)

// forward is the one-step pipeline. CANCELED and ARCHIVED are side
// exits handled by Cancel and Archive, never by Advance.
var forward = map[domain.OrderStatus]domain.OrderStatus{
	domain.StatusConfirmed: domain.StatusKitchen,
	domain.StatusKitchen:   domain.StatusDelivery,
	domain.StatusDelivery:  domain.StatusCompleted,
}

// AdvanceInput carries what the dispatch step needs to know.
type AdvanceInput struct {
	// Driver is the employee chosen for a delivery dispatch. Empty is
	// only accepted when SkipDriver is set or the order is a pickup.
	Driver     string
	SkipDriver bool
	// Scheduled are today's active-shift employees, used to vet the
	// chosen driver.
	Scheduled []domain.Employee
}

// Advance moves the order one step forward and returns the new status
// with the driver to record (empty when none). KITCHEN -> DELIVERY on
// a delivery order demands a scheduled driver unless explicitly
// skipped; pickup orders pass through the same column as ready for
// pickup.
func Advance(o domain.Order, in AdvanceInput) (domain.OrderStatus, string, error) {
	next, ok := forward[o.Status]
	if !ok {
		return "", "", fmt.Errorf("%w: %s has no next step", ErrInvalidTransition, o.Status)
	}

	var driver string
	if o.Status == domain.StatusKitchen && o.Type == domain.OrderDelivery && !in.SkipDriver {
		if in.Driver == "" {
			return "", "", ErrDriverRequired
		}
		if !scheduledDriver(in.Driver, in.Scheduled) {
			return "", "", fmt.Errorf("%w: %s is not a scheduled driver", ErrDriverRequired, in.Driver)
		}
		driver = in.Driver
	}
	return next, driver, nil
}

func scheduledDriver(name string, scheduled []domain.Employee) bool {
	for _, e := range scheduled {
		if e.Name == name && e.IsDriver {
			return true
		}
	}
	return false
}

// Cancel validates the side exit from any non-terminal state. The
// reason must come from the fixed list; actor and timestamp are
// recorded on the order.
func Cancel(o domain.Order, reason, actor string, now time.Time) (domain.CancelInfo, error) {
	if o.Status.Terminal() {
		return domain.CancelInfo{}, fmt.Errorf("%w: cannot cancel %s order", ErrInvalidTransition, o.Status)
	}
	if !domain.ValidCancelReason(reason) {
		return domain.CancelInfo{}, ErrReasonRequired
	}
	return domain.CancelInfo{Reason: reason, Actor: actor, CanceledAt: now}, nil
}

// Archive is the manual housekeeping move out of the board.
func Archive(o domain.Order) (domain.OrderStatus, error) {
	if o.Status != domain.StatusCompleted {
		return "", fmt.Errorf("%w: only completed orders archive", ErrInvalidTransition)
	}
	return domain.StatusArchived, nil
}

// Restore undoes an archive.
func Restore(o domain.Order) (domain.OrderStatus, error) {
	if o.Status != domain.StatusArchived {
		return "", fmt.Errorf("%w: only archived orders restore", ErrInvalidTransition)
	}
	return domain.StatusCompleted, nil
}

// CheckDrop vets a drag-and-drop between columns. Drops into CANCELED
// or ARCHIVED always go through the explicit modal actions instead,
// and a drop is otherwise just a one-step advance.
func CheckDrop(o domain.Order, target domain.OrderStatus) error {
	if target == domain.StatusCanceled || target == domain.StatusArchived {
		return ErrDragNotAllowed
	}
	if o.Status.Terminal() {
		return fmt.Errorf("%w: %s orders do not move", ErrInvalidTransition, o.Status)
	}
	if forward[o.Status] != target {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, target)
	}
	return nil
}

// Columns is the board snapshot grouped by status. COMPLETED and
// CANCELED hold only today's orders; older ones are implicitly
// archived and live in the history view.
type Columns struct {
	Confirmed []domain.Order
	Kitchen   []domain.Order
	Delivery  []domain.Order
	Completed []domain.Order
	Canceled  []domain.Order
}

func Group(orders []domain.Order, now time.Time) Columns {
	var c Columns
	for _, o := range orders {
		switch o.Status {
		case domain.StatusConfirmed:
			c.Confirmed = append(c.Confirmed, o)
		case domain.StatusKitchen:
			c.Kitchen = append(c.Kitchen, o)
		case domain.StatusDelivery:
			c.Delivery = append(c.Delivery, o)
		case domain.StatusCompleted:
			if sameDay(o.CreatedAt, now) {
				c.Completed = append(c.Completed, o)
			}
		case domain.StatusCanceled:
			if sameDay(o.CreatedAt, now) {
				c.Canceled = append(c.Canceled, o)
			}
		}
	}
	return c
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// HistoryDay is one calendar date of finished orders.
type HistoryDay struct {
	Date   string
	Orders []domain.Order
}

// History returns completed/canceled/archived orders created before
// today, grouped by calendar date, newest date first.
func History(orders []domain.Order, now time.Time) []HistoryDay {
	byDate := make(map[string][]domain.Order)
	for _, o := range orders {
		if o.Status != domain.StatusCompleted && o.Status != domain.StatusCanceled && o.Status != domain.StatusArchived {
			continue
		}
		if sameDay(o.CreatedAt, now) && o.Status != domain.StatusArchived {
			continue
		}
		key := o.CreatedAt.Format("2006-01-02")
		byDate[key] = append(byDate[key], o)
	}

	days := make([]HistoryDay, 0, len(byDate))
	for date, list := range byDate {
		sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
		days = append(days, HistoryDay{Date: date, Orders: list})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })
	return days
}
