package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/dbx"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

const (
	insertTokenQuery = `INSERT INTO refresh_tokens (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`
	selectTokenQuery = `SELECT user_id, expires_at, created_at FROM refresh_tokens WHERE token = $1`
	deleteTokenQuery = `DELETE FROM refresh_tokens WHERE token = $1`
)

// PostgresRepository keeps refresh tokens in the refresh_tokens table. It
// can be bound to a pool or to a transaction opened by the repomanager.
type PostgresRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

func (r *PostgresRepository) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	issued := r.now().UTC()
	if _, err := r.db.ExecContext(ctx, insertTokenQuery, token, userID, issued.Add(validity), issued); err != nil {
		return fmt.Errorf("insert refresh token for user %d: %w", userID, err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt := models.RefreshToken{Token: token}
	err := r.db.QueryRowContext(ctx, selectTokenQuery, token).Scan(&rt.UserID, &rt.Expires, &rt.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, common.ErrorNotFound
	case err != nil:
		return nil, fmt.Errorf("select refresh token: %w", err)
	}
	return &rt, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, deleteTokenQuery, token); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
