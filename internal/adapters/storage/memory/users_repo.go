package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ubs-monitoring/internal/domain/users"
	"ubs-monitoring/internal/platform/sentinel"
)

type UsersRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		byID: make(map[string]users.User),
	}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return sentinel.ErrConflict
	}
	for _, other := range r.byID {
		if strings.EqualFold(other.Username, u.Username) {
			return sentinel.ErrConflict
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, sentinel.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return users.User{}, sentinel.ErrNotFound
}
