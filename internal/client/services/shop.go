package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/crickshots/internal/client/client"
	"github.com/dmitrijs2005/crickshots/internal/client/repositories/purchases"
	"github.com/dmitrijs2005/crickshots/internal/filex"
	"github.com/dmitrijs2005/crickshots/internal/models"
	"github.com/dmitrijs2005/crickshots/internal/netx"
	"github.com/dmitrijs2005/crickshots/internal/receipt"
)

// ShopService covers browsing, checkout and receipts. Operations that act
// for an account take the session explicitly.
type ShopService interface {
	Browse(ctx context.Context, f models.ImageFilter) ([]models.Image, error)
	Image(ctx context.Context, id int64) (*models.Image, error)
	Buy(ctx context.Context, sess *models.Session, req models.PaymentRequest) (*models.Transaction, error)
	Purchases(ctx context.Context, sess *models.Session) ([]models.PurchasedImage, error)
	// Receipt prices the local ledger; an empty txID means the latest checkout.
	Receipt(ctx context.Context, sess *models.Session, txID string) (*receipt.Receipt, error)
	// SaveReceipt renders Receipt as PDF into the receipts directory.
	SaveReceipt(ctx context.Context, r *receipt.Receipt) (string, error)
	// DownloadReceipt fetches the server-rendered PDF for txID.
	DownloadReceipt(ctx context.Context, txID string) (string, error)
}

type shopService struct {
	client      client.Client
	db          *sql.DB
	receiptsDir string
	now         func() time.Time
	download    func(ctx context.Context, url string) ([]byte, error)
}

func NewShopService(c client.Client, db *sql.DB, receiptsDir string) ShopService {
	return &shopService{
		client:      c,
		db:          db,
		receiptsDir: receiptsDir,
		now:         time.Now,
		download:    netx.DownloadFromPresignedURL,
	}
}

func (s *shopService) ledger() purchases.Repository {
	return purchases.NewSQLiteRepository(s.db)
}

func (s *shopService) Browse(ctx context.Context, f models.ImageFilter) ([]models.Image, error) {
	return s.client.ListImages(ctx, f)
}

func (s *shopService) Image(ctx context.Context, id int64) (*models.Image, error) {
	return s.client.GetImage(ctx, id)
}

// Buy checks out on the server and appends the bought images to the local
// ledger.
func (s *shopService) Buy(ctx context.Context, sess *models.Session, req models.PaymentRequest) (*models.Transaction, error) {
	tx, err := s.client.Purchase(ctx, req)
	if err != nil {
		return nil, err
	}

	tx.UserID = sess.User.ID
	for i := range tx.Items {
		tx.Items[i].UserID = sess.User.ID
	}

	if err := s.ledger().Append(ctx, tx.Items...); err != nil {
		return nil, fmt.Errorf("ledger update error: %w", err)
	}
	return tx, nil
}

// Purchases merges the server history into the local ledger and returns
// the ledger. While offline the local ledger is returned as is.
func (s *shopService) Purchases(ctx context.Context, sess *models.Session) ([]models.PurchasedImage, error) {
	remote, err := s.client.ListPurchases(ctx)
	switch {
	case err == nil:
		for i := range remote {
			remote[i].UserID = sess.User.ID
		}
		if err := s.ledger().Append(ctx, remote...); err != nil {
			return nil, fmt.Errorf("ledger update error: %w", err)
		}
	case errors.Is(err, client.ErrUnavailable):
	default:
		return nil, err
	}

	return s.ledger().List(ctx, sess.User.ID)
}

func (s *shopService) Receipt(ctx context.Context, sess *models.Session, txID string) (*receipt.Receipt, error) {
	repo := s.ledger()
	uid := sess.User.ID

	if txID == "" {
		last, err := repo.Last(ctx, uid, 1)
		if err != nil {
			return nil, err
		}
		if len(last) == 0 {
			return receipt.Build("", nil, s.now()).WithCustomer(&sess.User), nil
		}
		txID = last[0].TransactionID
	}

	if _, err := repo.ListByTransaction(ctx, uid, txID); err != nil {
		return nil, err
	}
	ledger, err := repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	return receipt.Build(txID, receipt.UpTo(ledger, txID), s.now()).WithCustomer(&sess.User), nil
}

// ErrNothingToSave is returned by SaveReceipt for the placeholder receipt of
// an empty ledger.
var ErrNothingToSave = errors.New("no purchases to put on a receipt")

func (s *shopService) SaveReceipt(ctx context.Context, r *receipt.Receipt) (string, error) {
	if r.Empty() || r.TransactionID == "" {
		return "", ErrNothingToSave
	}
	content, err := receipt.Render(receipt.PDFWriter{}, r)
	if err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return s.saveDocument(receipt.Filename(r.TransactionID), content)
}

func (s *shopService) DownloadReceipt(ctx context.Context, txID string) (string, error) {
	doc, err := s.client.GetReceipt(ctx, txID, false)
	if err != nil {
		return "", err
	}

	content := doc.Content
	if len(content) == 0 {
		if doc.URL == "" {
			return "", fmt.Errorf("server returned no document for %s", txID)
		}
		if content, err = s.download(ctx, doc.URL); err != nil {
			return "", err
		}
	}

	name := doc.Filename
	if name == "" {
		name = receipt.Filename(txID)
	}
	return s.saveDocument(name, content)
}

func (s *shopService) saveDocument(name string, content []byte) (string, error) {
	dir, err := filex.EnsureSubDir(s.receiptsDir)
	if err != nil {
		return "", err
	}
	return filex.WriteFile(dir, name, content)
}
