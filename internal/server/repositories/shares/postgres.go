package shares

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/dbx"
	"github.com/dmitrijs2005/photovault/internal/server/models"
)

// PostgresRepository implements share storage over a dbx.DBTX. Upsert
// rewrites the share_items set; callers run it inside dbx.WithTx so the
// record and its id set change together.
type PostgresRepository struct {
	db dbx.DBTX
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, share *models.Share) error {
	var owner string
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM shares WHERE id = $1`, share.ID).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("db error: %w", err)
	case owner != share.UserID:
		return common.ErrUnauthorized
	}

	query := `
		INSERT INTO shares (id, user_id, password_hash, nonce, base64)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			nonce = EXCLUDED.nonce,
			base64 = EXCLUDED.base64
	`
	if _, err := r.db.ExecContext(ctx, query,
		share.ID, share.UserID, share.PasswordHash, share.Nonce, share.Base64); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM share_items WHERE share_id = $1`, share.ID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	for _, itemID := range share.ItemIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO share_items (share_id, item_id) VALUES ($1, $2)`, share.ID, itemID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Share, error) {
	query := `
		SELECT id, user_id, password_hash, nonce, base64 FROM shares
		WHERE id = $1
	`
	share := &models.Share{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&share.ID, &share.UserID, &share.PasswordHash, &share.Nonce, &share.Base64)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT item_id FROM share_items WHERE share_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var itemID string
		if err := rows.Scan(&itemID); err != nil {
			return nil, err
		}
		share.ItemIDs = append(share.ItemIDs, itemID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return share, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM shares WHERE id = $1 AND user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
