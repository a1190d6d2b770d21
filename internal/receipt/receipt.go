// Package receipt turns the tail of a purchase ledger into a priced receipt
// and renders it as plain text or PDF.
package receipt

import (
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/crickshots/internal/models"
)

const (
	// Window is how many of the most recent ledger entries a receipt covers.
	Window = 3
	// ConversionRate converts catalog prices (USD) to the receipt currency.
	ConversionRate = 83.0
	// Currency is printed next to every converted amount.
	Currency = "INR"

	// EmptyPlaceholder is the single line printed when the ledger is empty.
	EmptyPlaceholder = "No items found"

	StoreName    = "CrickShots"
	StoreTagline = "Premium Cricket Photography"
	FooterText   = "Thank you for your purchase! Images are licensed for personal and commercial use."
)

// Line is one itemized row.
type Line struct {
	Title  string
	Price  float64 // original catalog price
	Amount float64 // Price * ConversionRate, rounded to 2 decimals
}

type Receipt struct {
	TransactionID string
	IssuedAt      time.Time
	Customer      *models.SessionUser
	Lines         []Line
	Total         float64
}

// Empty reports whether the receipt has no purchased items.
func (r *Receipt) Empty() bool {
	return len(r.Lines) == 0
}

// Build prices the last Window entries of ledger. It never fails: an empty
// ledger yields a receipt with no lines and a zero total.
func Build(txID string, ledger []models.PurchasedImage, issuedAt time.Time) *Receipt {
	items := ledger
	if len(items) > Window {
		items = items[len(items)-Window:]
	}

	r := &Receipt{
		TransactionID: txID,
		IssuedAt:      issuedAt,
		Lines:         make([]Line, 0, len(items)),
	}

	var sum float64
	for _, it := range items {
		sum += it.Price
		r.Lines = append(r.Lines, Line{
			Title:  it.Title,
			Price:  it.Price,
			Amount: Round2(it.Price * ConversionRate),
		})
	}
	r.Total = Round2(sum * ConversionRate)

	return r
}

// UpTo cuts ledger after the last entry of txID so later checkouts do not
// leak into an older receipt. The result is empty when txID is absent.
func UpTo(ledger []models.PurchasedImage, txID string) []models.PurchasedImage {
	last := -1
	for i, it := range ledger {
		if it.TransactionID == txID {
			last = i
		}
	}
	return ledger[:last+1:last+1]
}

// WithCustomer sets the customer block and returns r.
func (r *Receipt) WithCustomer(u *models.SessionUser) *Receipt {
	r.Customer = u
	return r
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Filename is the download name of the PDF receipt for txID.
func Filename(txID string) string {
	return fmt.Sprintf("%s-Receipt-%s.pdf", StoreName, txID)
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%s %.2f", Currency, v)
}
