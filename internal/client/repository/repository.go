// Package repository provides a write-through cache of decrypted items in
// front of the server's encrypted-item store. Envelopes cross the wire;
// only decoded items live in memory.
package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/photovault/internal/client/api"
	"github.com/dmitrijs2005/photovault/internal/client/models"
	"github.com/dmitrijs2005/photovault/internal/logging"
)

// Repository caches decrypted items by id. Concurrent reads are permitted;
// writes take exclusive access. Server I/O happens outside the lock, so a
// failed write never leaves a stale cache entry behind.
type Repository struct {
	api api.Client
	log logging.Logger

	mu    sync.RWMutex
	cache map[string]models.Item
}

func New(apiClient api.Client, log logging.Logger) *Repository {
	return &Repository{
		api:   apiClient,
		log:   log.With("component", "repository"),
		cache: make(map[string]models.Item),
	}
}

func (r *Repository) cached(id string) (models.Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.cache[id]
	return item, ok
}

// Get returns the item stored under id, decrypted with key, or (nil, nil)
// when the server has no such item. Cached items are returned without
// server I/O.
func (r *Repository) Get(ctx context.Context, id string, key []byte) (*models.Item, error) {
	if item, ok := r.cached(id); ok {
		return &item, nil
	}

	env, err := r.api.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching item %s: %w", id, err)
	}
	if env == nil {
		return nil, nil
	}

	item, err := models.DecodeItem(key, env)
	if err != nil {
		return nil, fmt.Errorf("decoding item %s: %w", id, err)
	}

	r.mu.Lock()
	r.cache[id] = *item
	r.mu.Unlock()
	return item, nil
}

// GetOr behaves like Get but materializes and persists a default when the
// item is absent.
func (r *Repository) GetOr(ctx context.Context, id string, key []byte, defaultFn func() (models.Item, error)) (*models.Item, error) {
	item, err := r.Get(ctx, id, key)
	if err != nil || item != nil {
		return item, err
	}

	fresh, err := defaultFn()
	if err != nil {
		return nil, err
	}
	if err := r.Set(ctx, id, key, fresh); err != nil {
		return nil, err
	}
	return &fresh, nil
}

// Set encrypts item under key, writes it to the server and then updates
// the cache. The cache is only touched after the server accepted the
// write, so retries observe a consistent state.
func (r *Repository) Set(ctx context.Context, id string, key []byte, item models.Item) error {
	env, err := models.EncodeItem(key, item)
	if err != nil {
		return fmt.Errorf("encoding item %s: %w", id, err)
	}
	if err := r.api.PutItem(ctx, id, env); err != nil {
		return fmt.Errorf("storing item %s: %w", id, err)
	}

	r.mu.Lock()
	r.cache[id] = item
	r.mu.Unlock()
	return nil
}

// Delete evicts id from the cache and deletes it on the server. The server
// call is issued unconditionally: another client may have created the item
// without this process ever caching it.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.cache, id)
	r.mu.Unlock()

	if err := r.api.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	return nil
}

// Evict drops a cached entry without touching the server. Used to roll
// back in-memory state when a compound operation fails midway.
func (r *Repository) Evict(id string) {
	r.mu.Lock()
	delete(r.cache, id)
	r.mu.Unlock()
}

// Reset clears the whole cache, e.g. on logout.
func (r *Repository) Reset() {
	r.mu.Lock()
	r.cache = make(map[string]models.Item)
	r.mu.Unlock()
}
