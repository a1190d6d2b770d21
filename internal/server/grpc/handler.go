package grpc

import (
	"context"
	"strings"

	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/dmitrijs2005/crickshots/internal/api"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

func sessionResponse(sess *models.Session) *api.SessionResponse {
	return &api.SessionResponse{
		AccessToken:  sess.Token,
		RefreshToken: sess.RefreshToken,
		User:         api.UserFromModel(sess.User),
	}
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *api.RegisterUserRequest) (*api.SessionResponse, error) {

	sess, err := s.users.Register(ctx, models.Registration{
		Name:            req.Name,
		Email:           strings.TrimSpace(req.Email),
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return nil, api.ToStatus(err)
	}

	s.logger.Info(ctx, "Registered", "user_id", sess.User.ID)
	return sessionResponse(sess), nil

}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.SessionResponse, error) {

	sess, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, api.ToStatus(err)
	}

	return sessionResponse(sess), nil

}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {

	pair, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, api.ToStatus(err)
	}

	return &api.RefreshTokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil

}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*emptypb.Empty, error) {

	if err := s.users.Logout(ctx, req.RefreshToken); err != nil {
		return nil, api.ToStatus(err)
	}

	return &emptypb.Empty{}, nil

}

func (s *GRPCServer) Profile(ctx context.Context, _ *emptypb.Empty) (*api.User, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Profile(ctx, userID)
	if err != nil {
		return nil, api.ToStatus(err)
	}

	return api.UserFromModel(*u), nil
}

func (s *GRPCServer) ListImages(ctx context.Context, req *api.ListImagesRequest) (*api.ListImagesResponse, error) {

	images, err := s.catalog.List(ctx, req.Filter())
	if err != nil {
		return nil, api.ToStatus(err)
	}

	resp := &api.ListImagesResponse{Images: make([]*api.Image, 0, len(images))}
	for _, img := range images {
		resp.Images = append(resp.Images, api.ImageFromModel(img))
	}
	return resp, nil

}

func (s *GRPCServer) GetImage(ctx context.Context, req *api.GetImageRequest) (*api.Image, error) {

	img, err := s.catalog.Get(ctx, req.ID)
	if err != nil {
		return nil, api.ToStatus(err)
	}

	return api.ImageFromModel(*img), nil

}

func (s *GRPCServer) Purchase(ctx context.Context, req *api.PurchaseRequest) (*api.Transaction, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.checkout.Purchase(ctx, userID, models.PaymentRequest{
		ImageIDs: req.ImageIDs,
		Method:   models.PaymentMethod(req.Method),
		UPIID:    strings.TrimSpace(req.UPIID),
	})
	if err != nil {
		return nil, api.ToStatus(err)
	}

	s.logger.Info(ctx, "Purchase recorded", "user_id", userID, "transaction_id", tx.ID, "items", len(tx.Items))
	return api.TransactionFromModel(tx), nil
}

func (s *GRPCServer) ListPurchases(ctx context.Context, _ *emptypb.Empty) (*api.ListPurchasesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.checkout.History(ctx, userID)
	if err != nil {
		return nil, api.ToStatus(err)
	}

	return &api.ListPurchasesResponse{Items: api.PurchasedImagesFromModel(items)}, nil
}

func (s *GRPCServer) GetReceipt(ctx context.Context, req *api.GetReceiptRequest) (*api.ReceiptResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.receipts.Document(ctx, userID, req.TransactionID, req.IncludeDocument)
	if err != nil {
		return nil, api.ToStatus(err)
	}

	return &api.ReceiptResponse{
		Filename: doc.Filename,
		Total:    doc.Total,
		URL:      doc.URL,
		Document: doc.Content,
	}, nil
}
