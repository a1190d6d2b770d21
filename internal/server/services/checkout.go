package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/models"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/repomanager"
)

// upiIDPattern accepts handles like "name@bank" or "98765.43210@upi".
var upiIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{2,256}@[A-Za-z][A-Za-z0-9]{1,63}$`)

// ValidUPIID reports whether id looks like a UPI virtual payment address.
func ValidUPIID(id string) bool {
	return upiIDPattern.MatchString(id)
}

// CheckoutService validates payment forms and appends the resulting rows
// to the purchase ledger.
type CheckoutService struct {
	repomanager repomanager.RepositoryManager
	catalog     catalog.Repository
	now         func() time.Time
	newTxID     func() (string, error)
	newItemID   func() string
}

func NewCheckoutService(m repomanager.RepositoryManager, c catalog.Repository) *CheckoutService {
	return &CheckoutService{
		repomanager: m,
		catalog:     c,
		now:         time.Now,
		newTxID:     newTransactionID,
		newItemID:   uuid.NewString,
	}
}

func newTransactionID() (string, error) {
	s, err := common.MakeRandHexString(6)
	if err != nil {
		return "", err
	}
	return "TXN" + strings.ToUpper(s), nil
}

// Purchase records one ledger row per distinct selected image, all under a
// single new transaction id. Nothing is written if any image is unknown.
func (s *CheckoutService) Purchase(ctx context.Context, userID int64, req models.PaymentRequest) (*models.Transaction, error) {
	if len(req.ImageIDs) == 0 {
		return nil, common.ErrEmptyCart
	}
	switch req.Method {
	case models.PaymentMethodQR:
	case models.PaymentMethodUPIID:
		if !ValidUPIID(req.UPIID) {
			return nil, common.ErrInvalidUPIID
		}
	default:
		return nil, common.ErrInvalidPaymentMethod
	}

	txID, err := s.newTxID()
	if err != nil {
		return nil, common.ErrorInternal
	}

	tx := &models.Transaction{
		ID:        txID,
		UserID:    userID,
		Method:    req.Method,
		CreatedAt: s.now().UTC(),
	}
	if req.Method == models.PaymentMethodUPIID {
		tx.UPIID = req.UPIID
	}

	seen := make(map[int64]struct{}, len(req.ImageIDs))
	for _, id := range req.ImageIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		img, err := s.catalog.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", id, err)
		}
		tx.Items = append(tx.Items, models.PurchasedImage{
			ID:            s.newItemID(),
			UserID:        userID,
			TransactionID: txID,
			ImageID:       img.ID,
			Title:         img.Title,
			Price:         img.Price,
			PurchasedAt:   tx.CreatedAt,
		})
	}

	if err := s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		return repos.Purchases().Append(ctx, tx.Items...)
	}); err != nil {
		return nil, fmt.Errorf("error recording purchase: %w", err)
	}

	return tx, nil
}

// History returns the user's ledger in purchase order.
func (s *CheckoutService) History(ctx context.Context, userID int64) ([]models.PurchasedImage, error) {
	return s.repomanager.Purchases().ListByUser(ctx, userID)
}
