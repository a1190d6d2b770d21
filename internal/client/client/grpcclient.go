package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/dmitrijs2005/crickshots/internal/api"
	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

const defaultCallTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.StorefrontClient
	callTimeout time.Duration

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	onRefresh    func(accessToken, refreshToken string)
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) SetTokens(accessToken, refreshToken string) {
	s.mu.Lock()
	s.accessToken, s.refreshToken = accessToken, refreshToken
	s.mu.Unlock()
}

func (s *GRPCClient) OnTokensRefreshed(fn func(accessToken, refreshToken string)) {
	s.mu.Lock()
	s.onRefresh = fn
	s.mu.Unlock()
}

// accessTokenInterceptor attaches the access token and, when the server
// reports it expired, rotates the pair once and retries the call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, refresh := s.tokens()
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)

	if err == nil || method == api.MethodRefreshToken {
		return err
	}
	if !errors.Is(api.FromStatus(err), common.ErrTokenExpired) {
		return err
	}
	if refresh == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refresh})
	if rerr != nil {
		return rerr
	}

	s.mu.Lock()
	s.accessToken = resp.AccessToken
	s.refreshToken = resp.RefreshToken
	onRefresh := s.onRefresh
	s.mu.Unlock()

	if onRefresh != nil {
		onRefresh(resp.AccessToken, resp.RefreshToken)
	}

	// tokens refreshed, retrying with the new access token
	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

func NewStorefrontClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, callTimeout: defaultCallTimeout}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewStorefrontClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) startSession(resp *api.SessionResponse) *models.Session {
	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	return &models.Session{
		Token:        resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.User.Model(),
	}
}

func (s *GRPCClient) Register(ctx context.Context, r models.Registration) (*models.Session, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.RegisterUser(ctx, &api.RegisterUserRequest{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return s.startSession(resp), nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	return s.startSession(resp), nil
}

// Logout revokes the refresh token and forgets both tokens, even when the
// server cannot be reached.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, refresh := s.tokens()
	s.SetTokens("", "")
	if refresh == "" {
		return nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.Logout(ctx, &api.LogoutRequest{RefreshToken: refresh}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Profile(ctx context.Context) (*models.SessionUser, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Profile(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	u := resp.Model()
	return &u, nil
}

func (s *GRPCClient) ListImages(ctx context.Context, f models.ImageFilter) ([]models.Image, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListImages(ctx, api.ListImagesRequestFromFilter(f))
	if err != nil {
		return nil, s.mapError(err)
	}

	out := make([]models.Image, 0, len(resp.Images))
	for _, img := range resp.Images {
		out = append(out, img.Model())
	}
	return out, nil
}

func (s *GRPCClient) GetImage(ctx context.Context, id int64) (*models.Image, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetImage(ctx, &api.GetImageRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	img := resp.Model()
	return &img, nil
}

// Purchase returns the transaction with UserID left zero; the caller knows
// which account it is acting for.
func (s *GRPCClient) Purchase(ctx context.Context, req models.PaymentRequest) (*models.Transaction, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Purchase(ctx, &api.PurchaseRequest{
		ImageIDs: req.ImageIDs,
		Method:   string(req.Method),
		UPIID:    req.UPIID,
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Model(0), nil
}

func (s *GRPCClient) ListPurchases(ctx context.Context) ([]models.PurchasedImage, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListPurchases(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return api.PurchasedImagesToModel(resp.Items), nil
}

func (s *GRPCClient) GetReceipt(ctx context.Context, txID string, inline bool) (*models.ReceiptDocument, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetReceipt(ctx, &api.GetReceiptRequest{TransactionID: txID, IncludeDocument: inline})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.ReceiptDocument{
		Filename: resp.Filename,
		Content:  resp.Document,
		URL:      resp.URL,
		Total:    resp.Total,
	}, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, status.Convert(err).Message())
	}
	if mapped := api.FromStatus(err); mapped != err {
		return mapped
	}
	return fmt.Errorf("rpc error: %w", err)
}
