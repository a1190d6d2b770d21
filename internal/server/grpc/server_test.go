package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/dmitrijs2005/crickshots/internal/api"
	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/logging"
	"github.com/dmitrijs2005/crickshots/internal/server/config"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/crickshots/internal/server/services"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop{}, Services{}, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err, "Run returned error on graceful stop")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, Services{}, "secret")
	assert.Error(t, srv.Run(context.Background()))
}

// startStorefront serves real in-memory services over bufconn.
func startStorefront(t *testing.T) *grpc.ClientConn {
	t.Helper()

	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: time.Hour,
	}
	rm := repomanager.NewInMemoryRepositoryManager(nil)
	cat := catalog.NewStaticRepository(catalog.SampleImages)
	us := services.NewUserService(rm, cfg)
	require.NoError(t, us.SeedFixtureUser(context.Background()))

	srv := NewGRPCServer("", logging.Nop{}, Services{
		Users:    us,
		Catalog:  services.NewCatalogService(cat),
		Checkout: services.NewCheckoutService(rm, cat),
		Receipts: services.NewReceiptService(rm, nil, time.Minute),
	}, cfg.SecretKey)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return conn
}

func TestStorefront_EndToEnd(t *testing.T) {
	conn := startStorefront(t)
	c := api.NewStorefrontClient(conn)
	ctx := context.Background()

	images, err := c.ListImages(ctx, &api.ListImagesRequest{OnlyFree: true})
	require.NoError(t, err)
	assert.Len(t, images.Images, 3)

	_, err = c.Purchase(ctx, &api.PurchaseRequest{ImageIDs: []int64{1}, Method: "qr"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	sess, err := c.Login(ctx, &api.LoginRequest{Email: "test@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Test User", sess.User.Name)

	authCtx := metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, sess.AccessToken)

	me, err := c.Profile(authCtx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), me.ID)

	tx, err := c.Purchase(authCtx, &api.PurchaseRequest{ImageIDs: []int64{1, 2, 4, 5}, Method: "id", UPIID: "test@okaxis"})
	require.NoError(t, err)
	assert.Len(t, tx.Items, 4)

	history, err := c.ListPurchases(authCtx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Len(t, history.Items, 4)

	rc, err := c.GetReceipt(authCtx, &api.GetReceiptRequest{TransactionID: tx.ID})
	require.NoError(t, err)
	// last three: 4.99 + 6.99 + 7.99
	assert.Equal(t, 1657.51, rc.Total)
	assert.Equal(t, "CrickShots-Receipt-"+tx.ID+".pdf", rc.Filename)
	assert.NotEmpty(t, rc.Document)

	_, err = c.GetReceipt(authCtx, &api.GetReceiptRequest{TransactionID: "TXNNOPE"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	refreshed, err := c.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: sess.RefreshToken})
	require.NoError(t, err)
	_, err = c.Logout(ctx, &api.LogoutRequest{RefreshToken: refreshed.RefreshToken})
	require.NoError(t, err)

	_, err = c.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refreshed.RefreshToken})
	assert.ErrorIs(t, api.FromStatus(err), common.ErrInvalidToken)

	_, err = c.RegisterUser(ctx, &api.RegisterUserRequest{Name: "X", Email: "test@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	assert.ErrorIs(t, api.FromStatus(err), common.ErrDuplicateUser)
}

func TestStorefront_Health(t *testing.T) {
	conn := startStorefront(t)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: api.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}
