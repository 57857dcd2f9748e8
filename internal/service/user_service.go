package service

import (
	"context"
	"errors"

	"pizzapos-backend/internal/domain"
)

var (
	ErrLastAdmin  = errors.New("cannot delete the last admin account")
	ErrSelfDelete = errors.New("cannot delete your own account")
)

// UserService covers account administration. Deletion guards keep the
// system reachable: the last admin stays, and nobody removes the
// account they are logged in with.
type UserService struct {
	Users UserDirectory
}

func (s UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Users.List(ctx)
}

func (s UserService) Delete(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return ErrSelfDelete
	}
	target, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleAdmin {
		admins, err := s.Users.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	return s.Users.Delete(ctx, targetID)
}
