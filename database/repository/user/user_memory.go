package userRepo

import (
	"context"
	"sync"
	"time"

	"kisansaarthi/models"
)

// MemoryUserRepo keeps users in process memory. It is the default store of
// the stub server and of tests.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]models.User)}
}

func (r *MemoryUserRepo) find(match func(models.User) bool) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			found := u
			return &found
		}
	}
	return nil
}

func (r *MemoryUserRepo) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Phone == phone }), nil
}

func (r *MemoryUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email }), nil
}

func (r *MemoryUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == user.ID || u.Email == user.Email || u.Phone == user.Phone {
			return ErrDuplicateUser
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

// Len is the number of stored users.
func (r *MemoryUserRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
