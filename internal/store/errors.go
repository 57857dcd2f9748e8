package store

import (
	"errors"

	"pizzapos-backend/internal/repository"
)

// ErrOrderNotFound is returned when neither backend knows the order.
var ErrOrderNotFound = errors.New("order not found")

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
