package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/crickshots/internal/api"
	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/logging"
	"github.com/dmitrijs2005/crickshots/internal/server/auth"
)

func withToken(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func mustNotCall(t *testing.T) grpc.UnaryHandler {
	return func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler must not be called")
		return nil, nil
	}
}

func TestInterceptor_PublicMethodAllowsWithoutToken(t *testing.T) {
	s := newServer(Services{})

	called := false
	h := func(ctx context.Context, req any) (any, error) {
		called = true
		return "ok", nil
	}

	for _, m := range []string{api.MethodPing, api.MethodLogin, api.MethodListImages, api.MethodGetImage} {
		called = false
		resp, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: m}, h)
		require.NoError(t, err, m)
		assert.True(t, called, m)
		assert.Equal(t, "ok", resp)
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newServer(Services{})
	info := &grpc.UnaryServerInfo{FullMethod: api.MethodPurchase}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, mustNotCall(t))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "missing token", status.Convert(err).Message())
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s := newServer(Services{})
	info := &grpc.UnaryServerInfo{FullMethod: api.MethodGetReceipt}

	_, err := s.accessTokenInterceptor(withToken("not-a-valid-jwt"), nil, info, mustNotCall(t))
	st := status.Convert(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, "INVALID_TOKEN", api.Reason(st))
}

func TestInterceptor_ExpiredToken(t *testing.T) {
	s := newServer(Services{})
	info := &grpc.UnaryServerInfo{FullMethod: api.MethodProfile}

	claims := auth.Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "crickshots",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = s.accessTokenInterceptor(withToken(token), nil, info, mustNotCall(t))
	assert.Equal(t, "TOKEN_EXPIRED", api.Reason(status.Convert(err)))
}

func TestInterceptor_ValidTokenSetsUserID(t *testing.T) {
	s := newServer(Services{})
	token, err := auth.GenerateToken(42, []byte("k"), time.Hour)
	require.NoError(t, err)

	var got any
	h := func(ctx context.Context, req any) (any, error) {
		got = ctx.Value(UserIDKey)
		return "ok", nil
	}

	_, err = s.accessTokenInterceptor(withToken(token), nil, &grpc.UnaryServerInfo{FullMethod: api.MethodListPurchases}, h)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
}

func TestLoggingInterceptor_Levels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := NewGRPCServer("", logging.NewZapLogger(zap.New(core)), Services{}, "k")
	info := &grpc.UnaryServerInfo{FullMethod: api.MethodLogin}

	ok := func(ctx context.Context, req any) (any, error) { return "ok", nil }
	rejected := func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.InvalidArgument, "bad")
	}
	failed := func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.Internal, "internal error")
	}

	for _, h := range []grpc.UnaryHandler{ok, rejected, failed} {
		_, _ = s.loggingInterceptor(context.Background(), nil, info, h)
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, zap.InfoLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	assert.Equal(t, api.MethodLogin, entries[2].ContextMap()["method"])
}
