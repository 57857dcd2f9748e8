package service

import (
	"context"

	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/localstore"
	"pizzapos-backend/internal/repository"
)

// LocalUsers adapts the offline snapshot store to the UserDirectory
// interface for deployments without a database.
type LocalUsers struct {
	Store *localstore.Store
}

func (l LocalUsers) Create(ctx context.Context, p repository.CreateUserParams) (*domain.User, error) {
	u, err := l.Store.CreateUser(domain.User{
		Name:         p.Name,
		Email:        p.Email,
		Role:         p.Role,
		PasswordHash: p.PasswordHash,
		IsGoogle:     p.IsGoogle,
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (l LocalUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := l.Store.GetUserByEmail(email)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (l LocalUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := l.Store.GetUserByID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (l LocalUsers) List(ctx context.Context) ([]domain.User, error) {
	return l.Store.ListUsers(), nil
}

func (l LocalUsers) CountAdmins(ctx context.Context) (int, error) {
	return l.Store.CountAdmins(), nil
}

func (l LocalUsers) Delete(ctx context.Context, id int64) error {
	if err := l.Store.DeleteUser(id); err != nil {
		return repository.ErrNotFound
	}
	return nil
}
