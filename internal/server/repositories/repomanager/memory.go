package repomanager

import (
	"github.com/dmitrijs2005/photovault/internal/dbx"
	"github.com/dmitrijs2005/photovault/internal/server/repositories/items"
	"github.com/dmitrijs2005/photovault/internal/server/repositories/shares"
	"github.com/dmitrijs2005/photovault/internal/server/repositories/users"
)

// MemoryManager serves the in-memory repositories. The DBTX argument is
// ignored; handlers still pass one so the Postgres path stays identical.
type MemoryManager struct {
	users  *users.MemoryRepository
	items  *items.MemoryRepository
	shares *shares.MemoryRepository
}

var _ RepositoryManager = (*MemoryManager)(nil)

func NewMemoryManager() *MemoryManager {
	return &MemoryManager{
		users:  users.NewMemoryRepository(),
		items:  items.NewMemoryRepository(),
		shares: shares.NewMemoryRepository(),
	}
}

func (m *MemoryManager) Users(dbx.DBTX) users.Repository   { return m.users }
func (m *MemoryManager) Items(dbx.DBTX) items.Repository   { return m.items }
func (m *MemoryManager) Shares(dbx.DBTX) shares.Repository { return m.shares }
