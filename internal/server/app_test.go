package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/crickshots/internal/server/config"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/crickshots/internal/server/storage"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	return c
}

func TestNewApp_Memory(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	assert.IsType(t, &repomanager.InMemoryRepositoryManager{}, app.repomanager)
	assert.Nil(t, app.redis)
}

func TestNewApp_UnknownStorage(t *testing.T) {
	c := testConfig()
	c.StorageMode = "cassandra"
	_, err := NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "unknown storage mode")
}

func TestNewApp_UnknownLogBackend(t *testing.T) {
	c := testConfig()
	c.LogBackend = "log4j"
	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestNewApp_PostgresOpenError(t *testing.T) {
	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })

	var gotDSN string
	openPostgres = func(ctx context.Context, dsn string, opts ...repomanager.Option) (repomanager.RepositoryManager, error) {
		gotDSN = dsn
		return nil, errors.New("connection refused")
	}

	c := testConfig()
	c.StorageMode = config.StoragePostgres
	c.DatabaseDSN = "postgres://x"
	_, err := NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "db init error")
	assert.Equal(t, "postgres://x", gotDSN)
}

func TestNewApp_S3(t *testing.T) {
	orig := newObjectStore
	t.Cleanup(func() { newObjectStore = orig })

	var got storage.S3Config
	newObjectStore = func(ctx context.Context, c storage.S3Config) (storage.ObjectStore, error) {
		got = c
		return nil, errors.New("no bucket")
	}

	c := testConfig()
	c.S3Enabled = true
	_, err := NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "s3 init error")
	assert.Equal(t, "receipts", got.Bucket)
	assert.Equal(t, "admin", got.AccessKey)
}

func TestApp_RunSeedsAndStops(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	require.NoError(t, app.Run(ctx))

	n, err := app.repomanager.Users().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
