package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

// InMemoryRepository keeps users in a slice guarded by a RWMutex. IDs are
// assigned under the write lock, so concurrent Create calls never collide.
type InMemoryRepository struct {
	mu      sync.RWMutex
	users   []models.User
	byEmail map[string]int
	now     func() time.Time
}

// NewInMemoryRepository returns a repository preloaded with seed, in order.
// Seed IDs are reassigned as count+1.
func NewInMemoryRepository(seed ...models.User) *InMemoryRepository {
	r := &InMemoryRepository{byEmail: make(map[string]int), now: time.Now}
	for i := range seed {
		_, _ = r.Create(context.Background(), &seed[i])
	}
	return r
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrDuplicateUser
	}

	u := *user
	u.ID = int64(len(r.users)) + 1
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.now().UTC()
	}

	r.byEmail[u.Email] = len(r.users)
	r.users = append(r.users, u)

	out := u
	return &out, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := r.users[i]
	return &u, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id < 1 || id > int64(len(r.users)) {
		return nil, common.ErrorNotFound
	}
	u := r.users[id-1]
	return &u, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *InMemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.users)), nil
}
