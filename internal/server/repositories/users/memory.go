package users

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/server/models"
)

// MemoryRepository keeps users in a map. Test backend.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]models.User
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.UserName]; exists {
		return nil, common.ErrAlreadyExists
	}
	user.ID = uuid.NewString()
	r.users[user.UserName] = *user
	return user, nil
}

func (r *MemoryRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userName]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &user, nil
}
