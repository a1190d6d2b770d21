package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/crickshots/internal/api"
	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/server/auth"
)

type ctxKey string

const UserIDKey ctxKey = "userID"

// protectedMethods require a valid access token.
var protectedMethods = map[string]struct{}{
	api.MethodProfile:       {},
	api.MethodPurchase:      {},
	api.MethodListPurchases: {},
	api.MethodGetReceipt:    {},
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if _, ok := protectedMethods[info.FullMethod]; ok {

		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AccessTokenHeaderName)
			if len(values) > 0 {
				accessToken = values[0]
			}
		}
		if len(accessToken) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return nil, api.ToStatus(common.ErrTokenExpired)
			}
			return nil, api.ToStatus(common.ErrInvalidToken)
		}

		ctx = context.WithValue(ctx, UserIDKey, userID)
	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "rpc", args...)
	case codes.Internal, codes.Unknown:
		s.logger.Error(ctx, "rpc failed", args...)
	default:
		s.logger.Info(ctx, "rpc rejected", append(args, "message", status.Convert(err).Message())...)
	}
	return resp, err
}

// userIDFromContext returns the id stored by accessTokenInterceptor.
func userIDFromContext(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(UserIDKey).(int64)
	if !ok {
		return 0, api.ToStatus(common.ErrorUnauthorized)
	}
	return id, nil
}
