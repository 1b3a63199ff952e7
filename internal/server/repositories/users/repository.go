// Package users persists account records.
package users

import (
	"context"

	"github.com/dmitrijs2005/photovault/internal/server/models"
)

type Repository interface {
	// Create inserts a new user and fills in the generated id.
	// A taken username yields common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByUserName returns common.ErrNotFound for unknown names.
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
}
