// Package grpc exposes the storefront services over gRPC using the JSON
// codec from internal/api.
package grpc

import (
	"context"
	"net"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/crickshots/internal/api"
	"github.com/dmitrijs2005/crickshots/internal/logging"
	"github.com/dmitrijs2005/crickshots/internal/models"
	"github.com/dmitrijs2005/crickshots/internal/server/services"
)

type userSvc interface {
	Register(ctx context.Context, r models.Registration) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID int64) (*models.SessionUser, error)
}

type catalogSvc interface {
	List(ctx context.Context, f models.ImageFilter) ([]models.Image, error)
	Get(ctx context.Context, id int64) (*models.Image, error)
}

type checkoutSvc interface {
	Purchase(ctx context.Context, userID int64, req models.PaymentRequest) (*models.Transaction, error)
	History(ctx context.Context, userID int64) ([]models.PurchasedImage, error)
}

type receiptSvc interface {
	Document(ctx context.Context, userID int64, txID string, inline bool) (*models.ReceiptDocument, error)
}

// Services groups the business services the server dispatches to.
type Services struct {
	Users    userSvc
	Catalog  catalogSvc
	Checkout checkoutSvc
	Receipts receiptSvc
}

type GRPCServer struct {
	api.UnimplementedStorefrontServer
	address   string
	users     userSvc
	catalog   catalogSvc
	checkout  checkoutSvc
	receipts  receiptSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     svc.Users,
		catalog:   svc.Catalog,
		checkout:  svc.Checkout,
		receipts:  svc.Receipts,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
	)

	api.RegisterStorefrontServer(srv, s)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
