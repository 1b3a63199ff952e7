package keystore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/photovault/internal/common"
)

// MemoryKeyStore keeps keys in process memory only. Used by tests and by
// recipients who never log in.
type MemoryKeyStore struct {
	mu   sync.Mutex
	keys map[string][]byte
}

var _ KeyStore = (*MemoryKeyStore)(nil)

func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{keys: make(map[string][]byte)}
}

func (m *MemoryKeyStore) set(name string, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[name] = append([]byte(nil), key...)
	return nil
}

func (m *MemoryKeyStore) get(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, ok := m.keys[name]
	if !ok {
		return nil, common.ErrNotFound
	}
	return append([]byte(nil), key...), nil
}

func (m *MemoryKeyStore) SetMasterKey(ctx context.Context, key []byte) error {
	return m.set(masterKeyName, key)
}

func (m *MemoryKeyStore) MasterKey(ctx context.Context) ([]byte, error) {
	return m.get(masterKeyName)
}

func (m *MemoryKeyStore) SetShareKey(ctx context.Context, shareID string, key []byte) error {
	return m.set(sharePrefix+shareID, key)
}

func (m *MemoryKeyStore) ShareKey(ctx context.Context, shareID string) ([]byte, error) {
	return m.get(sharePrefix + shareID)
}

func (m *MemoryKeyStore) DeleteShareKey(ctx context.Context, shareID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, sharePrefix+shareID)
	return nil
}

func (m *MemoryKeyStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = make(map[string][]byte)
	return nil
}
