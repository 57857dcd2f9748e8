package repository

import (
	"context"

	"pizzapos-backend/internal/db"
	"pizzapos-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type EmployeeRepository struct {
	DB *db.Postgres
}

func (r EmployeeRepository) List(ctx context.Context, limit int) ([]domain.Employee, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, role, pay_period, is_driver, active, created_at, updated_at
		FROM employees
		WHERE deleted_at IS NULL
		ORDER BY name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.PayPeriod, &e.IsDriver, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r EmployeeRepository) Upsert(ctx context.Context, e domain.Employee) (*domain.Employee, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO employees (id, name, role, pay_period, is_driver, active, created_at, updated_at)
		VALUES (COALESCE($1, nextval('employees_id_seq')), $2,$3,$4,$5,$6, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name,
			role=EXCLUDED.role,
			pay_period=EXCLUDED.pay_period,
			is_driver=EXCLUDED.is_driver,
			active=EXCLUDED.active,
			updated_at=now(),
			deleted_at=NULL
		RETURNING id, name, role, pay_period, is_driver, active, created_at, updated_at
	`, nullableID(e.ID), e.Name, e.Role, e.PayPeriod, e.IsDriver, e.Active)
	if err := row.Scan(&e.ID, &e.Name, &e.Role, &e.PayPeriod, &e.IsDriver, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r EmployeeRepository) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, role, pay_period, is_driver, active, created_at, updated_at
		FROM employees
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	var e domain.Employee
	if err := row.Scan(&e.ID, &e.Name, &e.Role, &e.PayPeriod, &e.IsDriver, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r EmployeeRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE employees SET deleted_at = now() WHERE id=$1`, id)
	return err
}

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
