package items

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/server/models"
)

// MemoryRepository keeps items in a map keyed by user and id. Test backend.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[string]map[string]models.Item
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]map[string]models.Item)}
}

func (r *MemoryRepository) Upsert(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byID, ok := r.items[item.UserID]
	if !ok {
		byID = make(map[string]models.Item)
		r.items[item.UserID] = byID
	}
	byID[item.ID] = *item
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, userID, id string) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[userID][id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &item, nil
}

func (r *MemoryRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id := range r.items[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items[userID], id)
	return nil
}
