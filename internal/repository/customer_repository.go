package repository

import (
	"context"

	"pizzapos-backend/internal/db"
	"pizzapos-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type CustomerRepository struct {
	DB *db.Postgres
}

func (r CustomerRepository) List(ctx context.Context, limit int) ([]domain.Customer, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, phone, address, neighborhood, reference, order_count, total_spent, created_at, updated_at
		FROM customers
		WHERE deleted_at IS NULL
		ORDER BY name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Neighborhood, &c.Reference, &c.OrderCount, &c.TotalSpent, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Upsert keys on phone, the natural key a till operator searches by.
// Running totals are preserved on conflict; they move only through
// RecordOrder.
func (r CustomerRepository) Upsert(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	var out domain.Customer
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO customers (name, phone, address, neighborhood, reference, order_count, total_spent, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,0,0, now(), now())
		ON CONFLICT (phone) DO UPDATE SET
			name=EXCLUDED.name,
			address=EXCLUDED.address,
			neighborhood=EXCLUDED.neighborhood,
			reference=EXCLUDED.reference,
			updated_at=now(),
			deleted_at=NULL
		RETURNING id, name, phone, address, neighborhood, reference, order_count, total_spent, created_at, updated_at
	`, c.Name, c.Phone, c.Address, c.Neighborhood, c.Reference).Scan(
		&out.ID, &out.Name, &out.Phone, &out.Address, &out.Neighborhood, &out.Reference, &out.OrderCount, &out.TotalSpent, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordOrder bumps orderCount/totalSpent when an order completes.
func (r CustomerRepository) RecordOrder(ctx context.Context, phone string, total int64) error {
	_, err := r.DB.Pool.Exec(ctx, `
		UPDATE customers SET order_count = order_count + 1, total_spent = total_spent + $2, updated_at = now()
		WHERE phone=$1 AND deleted_at IS NULL
	`, phone, total)
	return err
}

func (r CustomerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, phone, address, neighborhood, reference, order_count, total_spent, created_at, updated_at
		FROM customers
		WHERE phone=$1 AND deleted_at IS NULL
	`, phone)
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Neighborhood, &c.Reference, &c.OrderCount, &c.TotalSpent, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r CustomerRepository) Delete(ctx context.Context, phone string) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE customers SET deleted_at = now() WHERE phone=$1`, phone)
	return err
}
