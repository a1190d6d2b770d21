// Package users stores storefront accounts. Accounts are only ever appended:
// there is no update or delete path.
package users

import (
	"context"

	"github.com/dmitrijs2005/crickshots/internal/models"
)

type Repository interface {
	// Create appends user, assigning ID = Count()+1. It returns
	// common.ErrDuplicateUser when the email is already taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByEmail looks up by exact email match; common.ErrorNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// List returns all users ordered by ID.
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}
