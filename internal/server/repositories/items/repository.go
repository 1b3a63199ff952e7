// Package items persists encrypted item envelopes per user.
package items

import (
	"context"

	"github.com/dmitrijs2005/photovault/internal/server/models"
)

type Repository interface {
	// Upsert replaces the envelope stored under (user, id).
	Upsert(ctx context.Context, item *models.Item) error
	// Get returns common.ErrNotFound when the user has no such item.
	Get(ctx context.Context, userID, id string) (*models.Item, error)
	// ListIDs returns all item ids owned by the user.
	ListIDs(ctx context.Context, userID string) ([]string, error)
	Delete(ctx context.Context, userID, id string) error
}
