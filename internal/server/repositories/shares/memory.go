package shares

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/server/models"
)

// MemoryRepository keeps shares in a map. Test backend.
type MemoryRepository struct {
	mu     sync.Mutex
	shares map[string]models.Share
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{shares: make(map[string]models.Share)}
}

func (r *MemoryRepository) Upsert(ctx context.Context, share *models.Share) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.shares[share.ID]; ok && existing.UserID != share.UserID {
		return common.ErrUnauthorized
	}
	clone := *share
	clone.ItemIDs = append([]string(nil), share.ItemIDs...)
	r.shares[share.ID] = clone
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	share, ok := r.shares[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := share
	clone.ItemIDs = append([]string(nil), share.ItemIDs...)
	return &clone, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if share, ok := r.shares[id]; ok && share.UserID == userID {
		delete(r.shares, id)
	}
	return nil
}
