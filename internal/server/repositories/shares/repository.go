// Package shares persists share records and their accessible id sets.
package shares

import (
	"context"

	"github.com/dmitrijs2005/photovault/internal/server/models"
)

type Repository interface {
	// Upsert replaces the share and its whole accessible id set. Only the
	// owner may replace an existing share; a foreign id yields
	// common.ErrUnauthorized.
	Upsert(ctx context.Context, share *models.Share) error
	// Get returns common.ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*models.Share, error)
	// Delete removes the share owned by userID.
	Delete(ctx context.Context, userID, id string) error
}
