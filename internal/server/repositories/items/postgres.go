package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/dbx"
	"github.com/dmitrijs2005/photovault/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, user_id, nonce, base64)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, id)
		DO UPDATE SET
			nonce = EXCLUDED.nonce,
			base64 = EXCLUDED.base64
	`
	if _, err := r.db.ExecContext(ctx, query, item.ID, item.UserID, item.Nonce, item.Base64); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Item, error) {
	query := `
		SELECT id, user_id, nonce, base64 FROM items
		WHERE user_id = $1 AND id = $2
	`
	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(&item.ID, &item.UserID, &item.Nonce, &item.Base64)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT id FROM items WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM items WHERE user_id = $1 AND id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
