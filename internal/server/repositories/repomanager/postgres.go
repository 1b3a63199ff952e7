package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/photovault/internal/dbx"
	"github.com/dmitrijs2005/photovault/internal/server/migrations"
	"github.com/dmitrijs2005/photovault/internal/server/repositories/items"
	"github.com/dmitrijs2005/photovault/internal/server/repositories/shares"
	"github.com/dmitrijs2005/photovault/internal/server/repositories/users"
)

// PostgresManager builds Postgres repositories on demand. Repositories are
// stateless wrappers, so constructing them per call is free.
type PostgresManager struct{}

var _ RepositoryManager = (*PostgresManager)(nil)

func NewPostgresManager() *PostgresManager { return &PostgresManager{} }

func (m *PostgresManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresManager) Items(db dbx.DBTX) items.Repository {
	return items.NewPostgresRepository(db)
}

func (m *PostgresManager) Shares(db dbx.DBTX) shares.Repository {
	return shares.NewPostgresRepository(db)
}

// OpenDatabase opens the pgx stdlib connection and applies the embedded
// goose migrations.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return db, nil
}
