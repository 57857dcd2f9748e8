package repository

import (
	"context"
	"errors"
	"time"

	"pizzapos-backend/internal/db"
	"pizzapos-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderRepository struct {
	DB          *db.Postgres
	CounterSeed int64
}

// Create assigns the next order number and inserts the order with its
// lines in one transaction. The counter read and write happen under
// FOR UPDATE so two tills never share a number.
func (r OrderRepository) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	number, err := r.nextNumber(ctx, tx)
	if err != nil {
		return nil, err
	}
	o.Number = number
	if o.Status == "" {
		o.Status = domain.StatusConfirmed
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO orders
		(number, order_type, status, customer_name, customer_phone, customer_address, customer_neighborhood, customer_reference,
		 subtotal, discount, delivery_fee, total, payment_method, change_for, operator, driver, created_at, deadline)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`, o.Number, o.Type, o.Status, o.Customer.Name, o.Customer.Phone, o.Customer.Address, o.Customer.Neighborhood, o.Customer.Reference,
		o.Subtotal, o.Discount, o.DeliveryFee, o.Total, o.PaymentMethod, o.ChangeFor, o.Operator, o.Driver, o.CreatedAt, o.Deadline)
	if err != nil {
		return nil, err
	}

	for _, it := range o.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_number, line_id, name, category, flavors, pieces, unit_price, qty, observation)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, o.Number, it.ID, it.Name, it.Category, it.Flavors, it.Pieces, it.UnitPrice, it.Qty, it.Observation)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r OrderRepository) nextNumber(ctx context.Context, tx pgx.Tx) (int64, error) {
	seed := r.CounterSeed
	if seed == 0 {
		seed = 1000
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO counters (name, value) VALUES ('orders', $1)
		ON CONFLICT (name) DO NOTHING
	`, seed)
	if err != nil {
		return 0, err
	}

	var current int64
	if err := tx.QueryRow(ctx, `SELECT value FROM counters WHERE name='orders' FOR UPDATE`).Scan(&current); err != nil {
		return 0, err
	}
	next := current + 1
	if _, err := tx.Exec(ctx, `UPDATE counters SET value=$1 WHERE name='orders'`, next); err != nil {
		return 0, err
	}
	return next, nil
}

// CounterValue reads the current counter without advancing it.
func (r OrderRepository) CounterValue(ctx context.Context) (int64, error) {
	var v int64
	err := r.DB.Pool.QueryRow(ctx, `SELECT value FROM counters WHERE name='orders'`).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		seed := r.CounterSeed
		if seed == 0 {
			seed = 1000
		}
		return seed, nil
	}
	return v, err
}

func (r OrderRepository) SetStatus(ctx context.Context, number int64, status domain.OrderStatus, driver string) error {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE orders SET status=$2, driver=CASE WHEN $3 <> '' THEN $3 ELSE driver END
		WHERE number=$1
	`, number, status, driver)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r OrderRepository) Cancel(ctx context.Context, number int64, info domain.CancelInfo) error {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE orders SET status=$2, cancel_reason=$3, cancel_actor=$4, canceled_at=$5
		WHERE number=$1
	`, number, domain.StatusCanceled, info.Reason, info.Actor, info.CanceledAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r OrderRepository) Get(ctx context.Context, number int64) (*domain.Order, error) {
	orders, err := r.list(ctx, `WHERE number=$1`, number)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return &orders[0], nil
}

func (r OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, ``)
}

func (r OrderRepository) list(ctx context.Context, where string, args ...any) ([]domain.Order, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT number, order_type, status, customer_name, customer_phone, customer_address, customer_neighborhood, customer_reference,
		       subtotal, discount, delivery_fee, total, payment_method, change_for, operator, driver, created_at, deadline,
		       cancel_reason, cancel_actor, canceled_at
		FROM orders
		`+where+`
		ORDER BY number ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var numbers []int64
	for rows.Next() {
		var o domain.Order
		var orderType, status, payment string
		var cancelReason, cancelActor pgtype.Text
		var canceledAt pgtype.Timestamptz
		if err := rows.Scan(
			&o.Number, &orderType, &status, &o.Customer.Name, &o.Customer.Phone, &o.Customer.Address, &o.Customer.Neighborhood, &o.Customer.Reference,
			&o.Subtotal, &o.Discount, &o.DeliveryFee, &o.Total, &payment, &o.ChangeFor, &o.Operator, &o.Driver, &o.CreatedAt, &o.Deadline,
			&cancelReason, &cancelActor, &canceledAt,
		); err != nil {
			return nil, err
		}
		o.Type = domain.OrderType(orderType)
		o.Status = domain.OrderStatus(status)
		o.PaymentMethod = domain.PaymentMethod(payment)
		if cancelReason.Valid && cancelReason.String != "" {
			o.Cancel = &domain.CancelInfo{
				Reason: cancelReason.String,
				Actor:  cancelActor.String,
			}
			if canceledAt.Valid {
				o.Cancel.CanceledAt = canceledAt.Time
			}
		}
		numbers = append(numbers, o.Number)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		return orders, nil
	}

	itemRows, err := r.DB.Pool.Query(ctx, `
		SELECT order_number, line_id, name, category, flavors, pieces, unit_price, qty, observation
		FROM order_items
		WHERE order_number = ANY($1)
		ORDER BY order_number, line_id
	`, numbers)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	itemsByOrder := make(map[int64][]domain.CartItem)
	for itemRows.Next() {
		var it domain.CartItem
		var number int64
		var category string
		if err := itemRows.Scan(&number, &it.ID, &it.Name, &category, &it.Flavors, &it.Pieces, &it.UnitPrice, &it.Qty, &it.Observation); err != nil {
			return nil, err
		}
		it.Category = domain.ProductCategory(category)
		itemsByOrder[number] = append(itemsByOrder[number], it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].Number]
	}
	return orders, nil
}

// ListRange returns orders created inside [start, end).
func (r OrderRepository) ListRange(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
	return r.list(ctx, `WHERE created_at >= $1 AND created_at < $2`, start, end)
}
