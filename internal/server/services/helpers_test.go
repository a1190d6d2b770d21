package services

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/crickshots/internal/models"
	"github.com/dmitrijs2005/crickshots/internal/server/config"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/purchases"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/repomanager"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newUserService(t *testing.T, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	s := NewUserService(rm, cfg)
	s.bcryptCost = bcrypt.MinCost
	return s
}

// failingManager wraps a working manager and lets a test break WithTx or
// the purchase ledger.
type failingManager struct {
	*repomanager.InMemoryRepositoryManager
	txErr     error
	appendErr error
}

func (m *failingManager) Purchases() purchases.Repository {
	return failingPurchases{m.InMemoryRepositoryManager.Purchases(), m.appendErr}
}

func (m *failingManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos repomanager.Repositories) error) error {
	if m.txErr != nil {
		return m.txErr
	}
	return fn(ctx, m)
}

type failingPurchases struct {
	purchases.Repository
	appendErr error
}

func (f failingPurchases) Append(ctx context.Context, items ...models.PurchasedImage) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	return f.Repository.Append(ctx, items...)
}

