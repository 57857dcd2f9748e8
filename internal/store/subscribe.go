package store

import (
	"context"
	"time"

	"pizzapos-backend/internal/domain"
)

// Subscriptions deliver the full current snapshot of a collection on
// every change; no incremental diffing. While the remote is readable
// the loop polls it on a short interval; in forced-offline mode, or
// after a remote read error, it follows the local mirror's change
// notifications instead. Toggling the offline flag re-establishes the
// loop against the newly selected backend and emits a fresh snapshot
// immediately.

func (s *Store) SubscribeOrders(ctx context.Context) <-chan []domain.Order {
	return subscribe(ctx, s, func(ctx context.Context) []domain.Order {
		return s.ListOrders(ctx)
	})
}

func (s *Store) SubscribeEmployees(ctx context.Context) <-chan []domain.Employee {
	return subscribe(ctx, s, func(ctx context.Context) []domain.Employee {
		return s.ListEmployees(ctx)
	})
}

func (s *Store) SubscribeCustomers(ctx context.Context) <-chan []domain.Customer {
	return subscribe(ctx, s, func(ctx context.Context) []domain.Customer {
		return s.ListCustomers(ctx)
	})
}

func (s *Store) SubscribeBlocked(ctx context.Context) <-chan []domain.BlockedItem {
	return subscribe(ctx, s, func(ctx context.Context) []domain.BlockedItem {
		return s.ListBlocked(ctx)
	})
}

func subscribe[T any](ctx context.Context, s *Store, fetch func(context.Context) []T) <-chan []T {
	out := make(chan []T, 1)
	localCh := s.local.Watch()

	go func() {
		defer close(out)

		emit := func() {
			snap := fetch(ctx)
			// Drop the stale snapshot when the consumer lags; only the
			// latest full snapshot matters.
			select {
			case out <- snap:
			default:
				select {
				case <-out:
				default:
				}
				out <- snap
			}
		}

		emit()
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		for {
			resub := s.resubCh()
			select {
			case <-ctx.Done():
				return
			case <-resub:
				emit()
			case <-localCh:
				emit()
			case <-ticker.C:
				// Remote polling path; local-only sessions already get
				// change notifications, the tick is a no-op refresh.
				if s.remoteReadable() {
					emit()
				}
			}
		}
	}()

	return out
}
