package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]models.RefreshToken
	now    func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{tokens: make(map[string]models.RefreshToken), now: time.Now}
}

func (r *InMemoryRepository) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.tokens[token] = models.RefreshToken{UserID: userID, Token: token, Expires: now.Add(validity), CreatedAt: now}
	return nil
}

func (r *InMemoryRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, token)
	return nil
}
