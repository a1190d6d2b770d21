package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/crickshots/internal/client/client"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ---- fake client ----

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	// behavior/results
	CloseErr error
	PingErr  error

	SessionRet *models.Session
	SessionErr error

	LogoutErr error

	ProfileRet *models.SessionUser
	ProfileErr error
	// RotateOnProfile simulates the interceptor refreshing the token pair
	// during the Profile call.
	RotateOnProfile [2]string

	ImagesRet []models.Image
	ImageRet  *models.Image
	ImageErr  error

	PurchaseRet *models.Transaction
	PurchaseErr error

	HistoryRet []models.PurchasedImage
	HistoryErr error

	ReceiptRet *models.ReceiptDocument
	ReceiptErr error

	// argument capture
	LastRegistration models.Registration
	LastEmail        string
	LastPassword     string
	LastFilter       models.ImageFilter
	LastPayment      models.PaymentRequest
	LastReceiptTx    string
	LogoutCalls      int

	AccessToken  string
	RefreshToken string
	OnRefresh    func(accessToken, refreshToken string)
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error                   { return f.CloseErr }
func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Register(ctx context.Context, r models.Registration) (*models.Session, error) {
	f.LastRegistration = r
	return f.SessionRet, f.SessionErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	f.LastEmail, f.LastPassword = email, password
	return f.SessionRet, f.SessionErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) Profile(ctx context.Context) (*models.SessionUser, error) {
	if f.RotateOnProfile[0] != "" && f.OnRefresh != nil {
		f.OnRefresh(f.RotateOnProfile[0], f.RotateOnProfile[1])
	}
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) ListImages(ctx context.Context, flt models.ImageFilter) ([]models.Image, error) {
	f.LastFilter = flt
	return f.ImagesRet, f.ImageErr
}

func (f *fakeClient) GetImage(ctx context.Context, id int64) (*models.Image, error) {
	return f.ImageRet, f.ImageErr
}

func (f *fakeClient) Purchase(ctx context.Context, req models.PaymentRequest) (*models.Transaction, error) {
	f.LastPayment = req
	return f.PurchaseRet, f.PurchaseErr
}

func (f *fakeClient) ListPurchases(ctx context.Context) ([]models.PurchasedImage, error) {
	return f.HistoryRet, f.HistoryErr
}

func (f *fakeClient) GetReceipt(ctx context.Context, txID string, inline bool) (*models.ReceiptDocument, error) {
	f.LastReceiptTx = txID
	return f.ReceiptRet, f.ReceiptErr
}

func (f *fakeClient) SetTokens(accessToken, refreshToken string) {
	f.AccessToken, f.RefreshToken = accessToken, refreshToken
}

func (f *fakeClient) OnTokensRefreshed(fn func(accessToken, refreshToken string)) {
	f.OnRefresh = fn
}
