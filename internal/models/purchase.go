package models

import "time"

// PaymentMethod selects how a UPI payment is collected.
type PaymentMethod string

const (
	PaymentMethodUPIID PaymentMethod = "id"
	PaymentMethodQR    PaymentMethod = "qr"
)

// PurchasedImage is one ledger row. Rows are appended at purchase time and
// never mutated or removed.
type PurchasedImage struct {
	ID            string
	UserID        int64
	TransactionID string
	ImageID       int64
	Title         string
	Price         float64
	PurchasedAt   time.Time
}

// PaymentRequest is the checkout form.
type PaymentRequest struct {
	ImageIDs []int64
	Method   PaymentMethod
	UPIID    string
}

// Transaction groups the ledger rows written by one checkout.
type Transaction struct {
	ID        string
	UserID    int64
	Method    PaymentMethod
	UPIID     string
	Items     []PurchasedImage
	CreatedAt time.Time
}

// ReceiptDocument is a rendered receipt ready to be saved.
type ReceiptDocument struct {
	Filename string
	Content  []byte
	URL      string
	Total    float64
}
