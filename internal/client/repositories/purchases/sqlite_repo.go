package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/dbx"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

// timestamps are stored as RFC 3339 text so they sort and round-trip exactly
const timeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, items ...models.PurchasedImage) error {
	query := `
		INSERT INTO purchases (id, user_id, transaction_id, image_id, title, price, purchased_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`
	for _, it := range items {
		if _, err := r.db.ExecContext(ctx, query,
			it.ID, it.UserID, it.TransactionID, it.ImageID, it.Title, it.Price,
			it.PurchasedAt.UTC().Format(timeLayout)); err != nil {
			return fmt.Errorf("failed to append purchase %s: %w", it.ID, err)
		}
	}
	return nil
}

const selectColumns = `SELECT id, user_id, transaction_id, image_id, title, price, purchased_at FROM purchases`

func (r *SQLiteRepository) List(ctx context.Context, userID int64) ([]models.PurchasedImage, error) {
	return r.query(ctx, selectColumns+` WHERE user_id = ? ORDER BY seq`, userID)
}

func (r *SQLiteRepository) Last(ctx context.Context, userID int64, n int) ([]models.PurchasedImage, error) {
	if n <= 0 {
		return []models.PurchasedImage{}, nil
	}
	out, err := r.query(ctx, selectColumns+` WHERE user_id = ? ORDER BY seq DESC LIMIT ?`, userID, n)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *SQLiteRepository) ListByTransaction(ctx context.Context, userID int64, txID string) ([]models.PurchasedImage, error) {
	out, err := r.query(ctx, selectColumns+` WHERE user_id = ? AND transaction_id = ? ORDER BY seq`, userID, txID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, common.ErrorNotFound
	}
	return out, nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.PurchasedImage, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	out := []models.PurchasedImage{}
	for rows.Next() {
		var (
			p  models.PurchasedImage
			at string
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.TransactionID, &p.ImageID, &p.Title, &p.Price, &at); err != nil {
			return nil, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		if p.PurchasedAt, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("bad purchased_at %q: %w", at, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchase rows: %w", err)
	}
	return out, nil
}
