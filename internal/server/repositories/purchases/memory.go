package purchases

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	ledger []models.PurchasedImage
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Append adds all items under a single lock, so a checkout is never seen
// half-written.
func (r *InMemoryRepository) Append(ctx context.Context, items ...models.PurchasedImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ledger = append(r.ledger, items...)
	return nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID int64) ([]models.PurchasedImage, error) {
	return r.filter(func(p models.PurchasedImage) bool { return p.UserID == userID }), nil
}

func (r *InMemoryRepository) ListByTransaction(ctx context.Context, userID int64, txID string) ([]models.PurchasedImage, error) {
	out := r.filter(func(p models.PurchasedImage) bool { return p.UserID == userID && p.TransactionID == txID })
	if len(out) == 0 {
		return nil, common.ErrorNotFound
	}
	return out, nil
}

func (r *InMemoryRepository) filter(keep func(models.PurchasedImage) bool) []models.PurchasedImage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.PurchasedImage
	for _, p := range r.ledger {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
