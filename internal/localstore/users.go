package localstore

import (
	"errors"
	"sort"
	"strings"
	"time"

	"pizzapos-backend/internal/domain"
)

var (
	ErrDuplicateEmail = errors.New("email already used")
	ErrUserNotFound   = errors.New("user not found")
)

// CreateUser adds an account, enforcing email uniqueness the way the
// remote users table does with its unique index.
func (s *Store) CreateUser(u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range s.users {
		if strings.ToLower(existing.Email) == email {
			return domain.User{}, ErrDuplicateEmail
		}
	}
	s.userSeq++
	u.ID = s.userSeq
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u
	s.notifyLocked()
	return u, nil
}

func (s *Store) GetUserByEmail(email string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if strings.ToLower(u.Email) == email {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *Store) GetUserByID(id int64) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) ListUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) CountAdmins() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, u := range s.users {
		if u.Role == domain.RoleAdmin {
			n++
		}
	}
	return n
}

func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	s.notifyLocked()
	return nil
}
