package client

import (
	"context"

	"github.com/dmitrijs2005/crickshots/internal/models"
)

// Client is the storefront API as seen by client services. Methods that
// need an account use the tokens installed by Login, Register or SetTokens.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, r models.Registration) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.SessionUser, error)

	ListImages(ctx context.Context, f models.ImageFilter) ([]models.Image, error)
	GetImage(ctx context.Context, id int64) (*models.Image, error)

	Purchase(ctx context.Context, req models.PaymentRequest) (*models.Transaction, error)
	ListPurchases(ctx context.Context) ([]models.PurchasedImage, error)
	GetReceipt(ctx context.Context, txID string, inline bool) (*models.ReceiptDocument, error)

	// SetTokens installs a session restored from local storage.
	SetTokens(accessToken, refreshToken string)
	// OnTokensRefreshed registers fn to be called after every successful
	// token rotation, e.g. to persist the new pair.
	OnTokensRefreshed(fn func(accessToken, refreshToken string))
}
