// Package repomanager vends the repositories a storefront server needs and
// owns their shared connection, migrations and transactions.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/crickshots/internal/server/repositories/purchases"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/users"
)

// Repositories is a set of repositories bound to one connection or to one
// open transaction.
type Repositories interface {
	Users() users.Repository
	RefreshTokens() refreshtokens.Repository
	Purchases() purchases.Repository
}

type RepositoryManager interface {
	Repositories
	RunMigrations(ctx context.Context) error
	// WithTx runs fn with repositories bound to a single transaction,
	// committing when fn returns nil.
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Close() error
}

// Option customizes a manager at construction.
type Option func(*options)

type options struct {
	refreshTokens refreshtokens.Repository
}

// WithRefreshTokens replaces the manager's own refresh-token store, e.g.
// with a Redis-backed one. The replacement is not part of WithTx.
func WithRefreshTokens(r refreshtokens.Repository) Option {
	return func(o *options) { o.refreshTokens = r }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
