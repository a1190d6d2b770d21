// Package purchases is the client-local purchase ledger. Rows are appended
// after a successful checkout and never mutated or removed.
package purchases

import (
	"context"

	"github.com/dmitrijs2005/crickshots/internal/models"
)

type Repository interface {
	// Append stores items in order. Rows whose ID is already present are
	// skipped, so replaying server history is safe.
	Append(ctx context.Context, items ...models.PurchasedImage) error
	// List returns the user's ledger in append order.
	List(ctx context.Context, userID int64) ([]models.PurchasedImage, error)
	// Last returns at most n of the user's most recent rows, oldest first.
	Last(ctx context.Context, userID int64, n int) ([]models.PurchasedImage, error)
	// ListByTransaction returns common.ErrorNotFound when txID is unknown.
	ListByTransaction(ctx context.Context, userID int64, txID string) ([]models.PurchasedImage, error)
}
