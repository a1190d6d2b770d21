package purchases

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/dbx"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append issues one INSERT per item. Run it inside dbx.WithTx to make a
// checkout atomic.
func (r *PostgresRepository) Append(ctx context.Context, items ...models.PurchasedImage) error {
	query := `
		INSERT INTO purchases (id, user_id, transaction_id, image_id, title, price, purchased_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, it := range items {
		if _, err := r.db.ExecContext(ctx, query,
			it.ID, it.UserID, it.TransactionID, it.ImageID, it.Title, it.Price, it.PurchasedAt); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.PurchasedImage, error) {
	query := `
		SELECT id, user_id, transaction_id, image_id, title, price, purchased_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY seq
	`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByTransaction(ctx context.Context, userID int64, txID string) ([]models.PurchasedImage, error) {
	query := `
		SELECT id, user_id, transaction_id, image_id, title, price, purchased_at
		FROM purchases
		WHERE user_id = $1 AND transaction_id = $2
		ORDER BY seq
	`
	out, err := r.list(ctx, query, userID, txID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, common.ErrorNotFound
	}
	return out, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.PurchasedImage, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.PurchasedImage
	for rows.Next() {
		var p models.PurchasedImage
		if err := rows.Scan(&p.ID, &p.UserID, &p.TransactionID, &p.ImageID, &p.Title, &p.Price, &p.PurchasedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
