package repository

import (
	"context"

	"pizzapos-backend/internal/db"
	"pizzapos-backend/internal/domain"
)

// BlockedRepository holds the out-of-stock product and ingredient
// names. A row's existence means blocked.
type BlockedRepository struct {
	DB *db.Postgres
}

func (r BlockedRepository) List(ctx context.Context) ([]domain.BlockedItem, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT name, blocked_by, created_at
		FROM blocked_items
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.BlockedItem
	for rows.Next() {
		var b domain.BlockedItem
		if err := rows.Scan(&b.Name, &b.BlockedBy, &b.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r BlockedRepository) Put(ctx context.Context, b domain.BlockedItem) error {
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO blocked_items (name, blocked_by, created_at)
		VALUES ($1,$2, now())
		ON CONFLICT (name) DO UPDATE SET blocked_by=EXCLUDED.blocked_by
	`, b.Name, b.BlockedBy)
	return err
}

func (r BlockedRepository) Delete(ctx context.Context, name string) error {
	_, err := r.DB.Pool.Exec(ctx, `DELETE FROM blocked_items WHERE name=$1`, name)
	return err
}
