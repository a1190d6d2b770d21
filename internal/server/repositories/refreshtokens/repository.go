// Package refreshtokens stores the refresh tokens issued at login. Backends:
// in-memory, PostgreSQL and Redis.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/crickshots/internal/models"
)

type Repository interface {
	// Create stores token for userID, expiring validity from now.
	Create(ctx context.Context, userID int64, token string, validity time.Duration) error
	// Find returns common.ErrorNotFound for unknown tokens. A token past its
	// expiry may still be returned; callers check Expires.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete is idempotent.
	Delete(ctx context.Context, token string) error
}
