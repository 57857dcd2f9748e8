package board

import (
	"errors"
	"testing"
	"time"

	"pizzapos-backend/internal/domain"
)

var drivers = []domain.Employee{
	{Name: "Carla", IsDriver: true},
	{Name: "Otavio", IsDriver: false},
}

func TestAdvanceForwardOnly(t *testing.T) {
	tests := []struct {
		name    string
		order   domain.Order
		in      AdvanceInput
		want    domain.OrderStatus
		driver  string
		wantErr error
	}{
		{
			name:  "confirmedToKitchen",
			order: domain.Order{Status: domain.StatusConfirmed, Type: domain.OrderDelivery},
			want:  domain.StatusKitchen,
		},
		{
			name:    "kitchenToDeliveryNeedsDriver",
			order:   domain.Order{Status: domain.StatusKitchen, Type: domain.OrderDelivery},
			wantErr: ErrDriverRequired,
		},
		{
			name:   "kitchenToDeliveryWithScheduledDriver",
			order:  domain.Order{Status: domain.StatusKitchen, Type: domain.OrderDelivery},
			in:     AdvanceInput{Driver: "Carla", Scheduled: drivers},
			want:   domain.StatusDelivery,
			driver: "Carla",
		},
		{
			name:    "nonDriverStaffRejected",
			order:   domain.Order{Status: domain.StatusKitchen, Type: domain.OrderDelivery},
			in:      AdvanceInput{Driver: "Otavio", Scheduled: drivers},
			wantErr: ErrDriverRequired,
		},
		{
			name:  "driverSkippedExplicitly",
			order: domain.Order{Status: domain.StatusKitchen, Type: domain.OrderDelivery},
			in:    AdvanceInput{SkipDriver: true},
			want:  domain.StatusDelivery,
		},
		{
			name:  "pickupPassesWithoutDriver",
			order: domain.Order{Status: domain.StatusKitchen, Type: domain.OrderPickup},
			want:  domain.StatusDelivery,
		},
		{
			name:  "deliveryToCompleted",
			order: domain.Order{Status: domain.StatusDelivery, Type: domain.OrderDelivery},
			want:  domain.StatusCompleted,
		},
		{
			name:    "completedHasNoNextStep",
			order:   domain.Order{Status: domain.StatusCompleted},
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "canceledHasNoNextStep",
			order:   domain.Order{Status: domain.StatusCanceled},
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, driver, err := Advance(tt.order, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Advance: %v", err)
			}
			if got != tt.want {
				t.Errorf("status = %q, want %q", got, tt.want)
			}
			if driver != tt.driver {
				t.Errorf("driver = %q, want %q", driver, tt.driver)
			}
		})
	}
}

func TestCancelRules(t *testing.T) {
	now := time.Now()

	info, err := Cancel(domain.Order{Status: domain.StatusConfirmed}, "wrong order", "ana", now)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if info.Reason != "wrong order" || info.Actor != "ana" || !info.CanceledAt.Equal(now) {
		t.Errorf("cancel info = %+v", info)
	}

	if _, err := Cancel(domain.Order{Status: domain.StatusKitchen}, "felt like it", "ana", now); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("free-form reason err = %v, want ErrReasonRequired", err)
	}
	if _, err := Cancel(domain.Order{Status: domain.StatusKitchen}, "", "ana", now); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("empty reason err = %v, want ErrReasonRequired", err)
	}
	if _, err := Cancel(domain.Order{Status: domain.StatusCompleted}, "wrong order", "ana", now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("terminal cancel err = %v, want ErrInvalidTransition", err)
	}
}

func TestArchiveRestore(t *testing.T) {
	if _, err := Archive(domain.Order{Status: domain.StatusKitchen}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("archive from kitchen err = %v, want ErrInvalidTransition", err)
	}
	st, err := Archive(domain.Order{Status: domain.StatusCompleted})
	if err != nil || st != domain.StatusArchived {
		t.Errorf("Archive = %q, %v", st, err)
	}
	st, err = Restore(domain.Order{Status: domain.StatusArchived})
	if err != nil || st != domain.StatusCompleted {
		t.Errorf("Restore = %q, %v", st, err)
	}
	if _, err := Restore(domain.Order{Status: domain.StatusCompleted}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("restore from completed err = %v, want ErrInvalidTransition", err)
	}
}

func TestCheckDrop(t *testing.T) {
	tests := []struct {
		name    string
		order   domain.Order
		target  domain.OrderStatus
		wantErr error
	}{
		{
			name:   "oneStepForwardAllowed",
			order:  domain.Order{Status: domain.StatusConfirmed},
			target: domain.StatusKitchen,
		},
		{
			name:    "skipAheadRejected",
			order:   domain.Order{Status: domain.StatusConfirmed},
			target:  domain.StatusCompleted,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "backwardRejected",
			order:   domain.Order{Status: domain.StatusDelivery},
			target:  domain.StatusKitchen,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "dropIntoCanceledRejected",
			order:   domain.Order{Status: domain.StatusConfirmed},
			target:  domain.StatusCanceled,
			wantErr: ErrDragNotAllowed,
		},
		{
			name:    "dropIntoArchivedRejected",
			order:   domain.Order{Status: domain.StatusCompleted},
			target:  domain.StatusArchived,
			wantErr: ErrDragNotAllowed,
		},
		{
			name:    "draggingCanceledOrderIsNoOp",
			order:   domain.Order{Status: domain.StatusCanceled},
			target:  domain.StatusKitchen,
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDrop(tt.order, tt.target)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("CheckDrop: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGroupFiltersFinishedColumnsToToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	orders := []domain.Order{
		{Number: 1, Status: domain.StatusConfirmed, CreatedAt: now},
		{Number: 2, Status: domain.StatusCompleted, CreatedAt: now},
		{Number: 3, Status: domain.StatusCompleted, CreatedAt: yesterday},
		{Number: 4, Status: domain.StatusCanceled, CreatedAt: yesterday},
		{Number: 5, Status: domain.StatusArchived, CreatedAt: now},
	}

	cols := Group(orders, now)
	if len(cols.Confirmed) != 1 || len(cols.Completed) != 1 || len(cols.Canceled) != 0 {
		t.Errorf("columns = %+v", cols)
	}

	days := History(orders, now)
	// Yesterday's completed and canceled orders plus today's archived one.
	if len(days) != 2 {
		t.Fatalf("history days = %d, want 2", len(days))
	}
	if days[0].Date != "2026-03-10" || len(days[0].Orders) != 1 || days[0].Orders[0].Number != 5 {
		t.Errorf("newest history day = %+v", days[0])
	}
	if days[1].Date != "2026-03-09" || len(days[1].Orders) != 2 {
		t.Errorf("older history day = %+v", days[1])
	}
}
