package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "crickshots.service.StorefrontService"

// Full method names, as seen by interceptors in info.FullMethod.
const (
	MethodPing          = "/" + ServiceName + "/Ping"
	MethodRegisterUser  = "/" + ServiceName + "/RegisterUser"
	MethodLogin         = "/" + ServiceName + "/Login"
	MethodRefreshToken  = "/" + ServiceName + "/RefreshToken"
	MethodLogout        = "/" + ServiceName + "/Logout"
	MethodProfile       = "/" + ServiceName + "/Profile"
	MethodListImages    = "/" + ServiceName + "/ListImages"
	MethodGetImage      = "/" + ServiceName + "/GetImage"
	MethodPurchase      = "/" + ServiceName + "/Purchase"
	MethodListPurchases = "/" + ServiceName + "/ListPurchases"
	MethodGetReceipt    = "/" + ServiceName + "/GetReceipt"
)

// StorefrontServer is implemented by the storefront backend.
type StorefrontServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RegisterUser(context.Context, *RegisterUserRequest) (*SessionResponse, error)
	Login(context.Context, *LoginRequest) (*SessionResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*emptypb.Empty, error)
	Profile(context.Context, *emptypb.Empty) (*User, error)
	ListImages(context.Context, *ListImagesRequest) (*ListImagesResponse, error)
	GetImage(context.Context, *GetImageRequest) (*Image, error)
	Purchase(context.Context, *PurchaseRequest) (*Transaction, error)
	ListPurchases(context.Context, *emptypb.Empty) (*ListPurchasesResponse, error)
	GetReceipt(context.Context, *GetReceiptRequest) (*ReceiptResponse, error)
}

// UnimplementedStorefrontServer answers every method with codes.Unimplemented.
// Embed it to stay forward compatible.
type UnimplementedStorefrontServer struct{}

func (UnimplementedStorefrontServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedStorefrontServer) RegisterUser(context.Context, *RegisterUserRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterUser not implemented")
}
func (UnimplementedStorefrontServer) Login(context.Context, *LoginRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedStorefrontServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedStorefrontServer) Logout(context.Context, *LogoutRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedStorefrontServer) Profile(context.Context, *emptypb.Empty) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method Profile not implemented")
}
func (UnimplementedStorefrontServer) ListImages(context.Context, *ListImagesRequest) (*ListImagesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListImages not implemented")
}
func (UnimplementedStorefrontServer) GetImage(context.Context, *GetImageRequest) (*Image, error) {
	return nil, status.Error(codes.Unimplemented, "method GetImage not implemented")
}
func (UnimplementedStorefrontServer) Purchase(context.Context, *PurchaseRequest) (*Transaction, error) {
	return nil, status.Error(codes.Unimplemented, "method Purchase not implemented")
}
func (UnimplementedStorefrontServer) ListPurchases(context.Context, *emptypb.Empty) (*ListPurchasesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPurchases not implemented")
}
func (UnimplementedStorefrontServer) GetReceipt(context.Context, *GetReceiptRequest) (*ReceiptResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetReceipt not implemented")
}

// unary adapts a typed server method to grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(StorefrontServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(StorefrontServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(StorefrontServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes StorefrontService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StorefrontServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(MethodPing, StorefrontServer.Ping)},
		{MethodName: "RegisterUser", Handler: unary(MethodRegisterUser, StorefrontServer.RegisterUser)},
		{MethodName: "Login", Handler: unary(MethodLogin, StorefrontServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(MethodRefreshToken, StorefrontServer.RefreshToken)},
		{MethodName: "Logout", Handler: unary(MethodLogout, StorefrontServer.Logout)},
		{MethodName: "Profile", Handler: unary(MethodProfile, StorefrontServer.Profile)},
		{MethodName: "ListImages", Handler: unary(MethodListImages, StorefrontServer.ListImages)},
		{MethodName: "GetImage", Handler: unary(MethodGetImage, StorefrontServer.GetImage)},
		{MethodName: "Purchase", Handler: unary(MethodPurchase, StorefrontServer.Purchase)},
		{MethodName: "ListPurchases", Handler: unary(MethodListPurchases, StorefrontServer.ListPurchases)},
		{MethodName: "GetReceipt", Handler: unary(MethodGetReceipt, StorefrontServer.GetReceipt)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "crickshots/storefront",
}

func RegisterStorefrontServer(s grpc.ServiceRegistrar, srv StorefrontServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// StorefrontClient is the client API for StorefrontService.
type StorefrontClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Profile(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*User, error)
	ListImages(ctx context.Context, in *ListImagesRequest, opts ...grpc.CallOption) (*ListImagesResponse, error)
	GetImage(ctx context.Context, in *GetImageRequest, opts ...grpc.CallOption) (*Image, error)
	Purchase(ctx context.Context, in *PurchaseRequest, opts ...grpc.CallOption) (*Transaction, error)
	ListPurchases(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListPurchasesResponse, error)
	GetReceipt(ctx context.Context, in *GetReceiptRequest, opts ...grpc.CallOption) (*ReceiptResponse, error)
}

type storefrontClient struct {
	cc grpc.ClientConnInterface
}

func NewStorefrontClient(cc grpc.ClientConnInterface) StorefrontClient {
	return &storefrontClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storefrontClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *storefrontClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, MethodRegisterUser, in, opts)
}

func (c *storefrontClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *storefrontClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *storefrontClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodLogout, in, opts)
}

func (c *storefrontClient) Profile(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodProfile, in, opts)
}

func (c *storefrontClient) ListImages(ctx context.Context, in *ListImagesRequest, opts ...grpc.CallOption) (*ListImagesResponse, error) {
	return invoke[ListImagesResponse](ctx, c.cc, MethodListImages, in, opts)
}

func (c *storefrontClient) GetImage(ctx context.Context, in *GetImageRequest, opts ...grpc.CallOption) (*Image, error) {
	return invoke[Image](ctx, c.cc, MethodGetImage, in, opts)
}

func (c *storefrontClient) Purchase(ctx context.Context, in *PurchaseRequest, opts ...grpc.CallOption) (*Transaction, error) {
	return invoke[Transaction](ctx, c.cc, MethodPurchase, in, opts)
}

func (c *storefrontClient) ListPurchases(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListPurchasesResponse, error) {
	return invoke[ListPurchasesResponse](ctx, c.cc, MethodListPurchases, in, opts)
}

func (c *storefrontClient) GetReceipt(ctx context.Context, in *GetReceiptRequest, opts ...grpc.CallOption) (*ReceiptResponse, error) {
	return invoke[ReceiptResponse](ctx, c.cc, MethodGetReceipt, in, opts)
}
