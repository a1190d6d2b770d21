package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/crickshots/internal/models"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/purchases"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. State is
// lost on restart.
type InMemoryRepositoryManager struct {
	users         *users.InMemoryRepository
	refreshTokens refreshtokens.Repository
	purchases     *purchases.InMemoryRepository

	// txMu serializes WithTx callers; there is no rollback.
	txMu sync.Mutex
}

func NewInMemoryRepositoryManager(seed []models.User, opts ...Option) *InMemoryRepositoryManager {
	o := applyOptions(opts)
	rt := o.refreshTokens
	if rt == nil {
		rt = refreshtokens.NewInMemoryRepository()
	}
	return &InMemoryRepositoryManager{
		users:         users.NewInMemoryRepository(seed...),
		refreshTokens: rt,
		purchases:     purchases.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository                 { return m.users }
func (m *InMemoryRepositoryManager) RefreshTokens() refreshtokens.Repository { return m.refreshTokens }
func (m *InMemoryRepositoryManager) Purchases() purchases.Repository         { return m.purchases }

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m)
}

func (m *InMemoryRepositoryManager) Close() error { return nil }
