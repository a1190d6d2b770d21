package services

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/dmitrijs2005/crickshots/internal/models"
	"github.com/dmitrijs2005/crickshots/internal/receipt"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/crickshots/internal/server/storage"
)

const (
	receiptContentType = "application/pdf"
	receiptKeyPrefix   = "receipts"
)

// ReceiptService renders PDF receipts from the server-side ledger. With an
// object store configured the PDF is uploaded and handed out as a presigned
// URL; otherwise the bytes are returned inline.
type ReceiptService struct {
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	urlTTL      time.Duration
	writer      receipt.Writer
	now         func() time.Time
}

// NewReceiptService accepts a nil store.
func NewReceiptService(m repomanager.RepositoryManager, store storage.ObjectStore, urlTTL time.Duration) *ReceiptService {
	return &ReceiptService{
		repomanager: m,
		store:       store,
		urlTTL:      urlTTL,
		writer:      receipt.PDFWriter{},
		now:         time.Now,
	}
}

// Build assembles the receipt for txID: the last receipt.Window ledger rows
// up to and including that transaction. It returns common.ErrorNotFound
// when the transaction does not belong to the user.
func (s *ReceiptService) Build(ctx context.Context, userID int64, txID string) (*receipt.Receipt, error) {
	if _, err := s.repomanager.Purchases().ListByTransaction(ctx, userID, txID); err != nil {
		return nil, err
	}

	ledger, err := s.repomanager.Purchases().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing purchases: %w", err)
	}

	r := receipt.Build(txID, receipt.UpTo(ledger, txID), s.now())

	user, err := s.repomanager.Users().GetByID(ctx, userID)
	if err == nil {
		su := user.SessionUser()
		r.WithCustomer(&su)
	}
	return r, nil
}

// Document renders the receipt. When inline is false and a store is
// configured, Content is left empty and URL points at the uploaded PDF.
func (s *ReceiptService) Document(ctx context.Context, userID int64, txID string, inline bool) (*models.ReceiptDocument, error) {
	r, err := s.Build(ctx, userID, txID)
	if err != nil {
		return nil, err
	}

	body, err := receipt.Render(s.writer, r)
	if err != nil {
		return nil, err
	}

	doc := &models.ReceiptDocument{
		Filename: receipt.Filename(txID),
		Total:    r.Total,
	}

	if s.store == nil || inline {
		doc.Content = body
		return doc, nil
	}

	key := path.Join(receiptKeyPrefix, strconv.FormatInt(userID, 10), txID+".pdf")
	if err := s.store.Put(ctx, key, body, receiptContentType); err != nil {
		return nil, fmt.Errorf("error uploading receipt: %w", err)
	}
	url, err := s.store.PresignGet(ctx, key, s.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("error presigning receipt: %w", err)
	}
	doc.URL = url
	return doc, nil
}
