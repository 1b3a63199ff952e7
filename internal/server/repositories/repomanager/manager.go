// Package repomanager hands out repositories bound to a DB handle, so the
// same code path works on *sql.DB and inside dbx.WithTx transactions.
package repomanager

import (
	"github.com/dmitrijs2005/photovault/internal/dbx"
	"github.com/dmitrijs2005/photovault/internal/server/repositories/items"
	"github.com/dmitrijs2005/photovault/internal/server/repositories/shares"
	"github.com/dmitrijs2005/photovault/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
	Shares(db dbx.DBTX) shares.Repository
}
