package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/crickshots/internal/dbx"
	"github.com/dmitrijs2005/crickshots/internal/server/migrations"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/purchases"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories over a
// single *sql.DB (pgx stdlib driver).
type PostgresRepositoryManager struct {
	db   *sql.DB
	opts options
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// OpenPostgres connects with the pgx driver and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string, opts ...Option) (*PostgresRepositoryManager, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return NewPostgresRepositoryManager(db, opts...), nil
}

// NewPostgresRepositoryManager wraps an open database.
func NewPostgresRepositoryManager(db *sql.DB, opts ...Option) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db, opts: applyOptions(opts)}
}

type pgRepos struct {
	db            dbx.DBTX
	refreshTokens refreshtokens.Repository
}

func (r pgRepos) Users() users.Repository { return users.NewPostgresRepository(r.db) }

func (r pgRepos) RefreshTokens() refreshtokens.Repository {
	if r.refreshTokens != nil {
		return r.refreshTokens
	}
	return refreshtokens.NewPostgresRepository(r.db)
}

func (r pgRepos) Purchases() purchases.Repository { return purchases.NewPostgresRepository(r.db) }

func (m *PostgresRepositoryManager) bind(db dbx.DBTX) pgRepos {
	return pgRepos{db: db, refreshTokens: m.opts.refreshTokens}
}

func (m *PostgresRepositoryManager) Users() users.Repository { return m.bind(m.db).Users() }

func (m *PostgresRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return m.bind(m.db).RefreshTokens()
}

func (m *PostgresRepositoryManager) Purchases() purchases.Repository {
	return m.bind(m.db).Purchases()
}

func (m *PostgresRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, m.bind(tx))
	})
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and applies them.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
