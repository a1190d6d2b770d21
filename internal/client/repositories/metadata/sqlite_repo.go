package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/dbx"
)

const upsertQuery = `INSERT INTO metadata (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`

type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository binds the repository to db, which may be an open
// transaction. Put does not open one itself.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, common.ErrorNotFound
	case err != nil:
		return nil, fmt.Errorf("metadata get %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, pairs map[string][]byte) error {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	// stable statement order keeps failures reproducible
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := r.db.ExecContext(ctx, upsertQuery, k, pairs[k]); err != nil {
			return fmt.Errorf("metadata put %q: %w", k, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Fetch(ctx context.Context, keys ...string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	q, args := inClause(`SELECT key, value FROM metadata WHERE key IN `, keys)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("metadata fetch: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			k string
			v []byte
		)
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("metadata fetch scan: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("metadata fetch: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	q, args := inClause(`DELETE FROM metadata WHERE key IN `, keys)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("metadata delete: %w", err)
	}
	return nil
}

func inClause(prefix string, keys []string) (string, []any) {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return prefix + "(" + strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",") + ")", args
}

var _ Repository = (*SQLiteRepository)(nil)
