// Package purchases is the server-side purchase ledger. Rows are appended
// at checkout and never mutated or removed.
package purchases

import (
	"context"

	"github.com/dmitrijs2005/crickshots/internal/models"
)

type Repository interface {
	// Append stores items in order. Items must carry ID, UserID and
	// TransactionID.
	Append(ctx context.Context, items ...models.PurchasedImage) error
	// ListByUser returns the user's ledger in append order.
	ListByUser(ctx context.Context, userID int64) ([]models.PurchasedImage, error)
	// ListByTransaction returns common.ErrorNotFound when the user has no
	// rows for txID.
	ListByTransaction(ctx context.Context, userID int64, txID string) ([]models.PurchasedImage, error)
}
