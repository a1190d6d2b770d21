package receipt

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

const (
	dateLayout = "02 Jan 2006"
	timeLayout = "15:04:05"
)

// Writer renders a receipt to w.
type Writer interface {
	Write(w io.Writer, r *Receipt) error
}

// Render is a convenience that renders r with wr into memory.
func Render(wr Writer, r *Receipt) ([]byte, error) {
	var buf bytes.Buffer
	if err := wr.Write(&buf, r); err != nil {
		return nil, fmt.Errorf("render receipt %s: %w", r.TransactionID, err)
	}
	return buf.Bytes(), nil
}

// TextWriter renders a fixed-width plain-text receipt.
type TextWriter struct {
	Width int
}

func (t TextWriter) Write(w io.Writer, r *Receipt) error {
	width := t.Width
	if width <= 0 {
		width = 56
	}
	rule := strings.Repeat("-", width)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n%s\n", StoreName, StoreTagline, rule)
	fmt.Fprintf(&b, "Transaction ID: %s\n", r.TransactionID)
	fmt.Fprintf(&b, "Date: %s\n", r.IssuedAt.Format(dateLayout))
	fmt.Fprintf(&b, "Time: %s\n", r.IssuedAt.Format(timeLayout))
	if r.Customer != nil {
		fmt.Fprintf(&b, "Customer: %s <%s>\n", r.Customer.Name, r.Customer.Email)
	}
	b.WriteString(rule + "\n")

	if r.Empty() {
		b.WriteString(EmptyPlaceholder + "\n")
	}
	for _, l := range r.Lines {
		amount := formatAmount(l.Amount)
		title := truncate(l.Title, width-len(amount)-1)
		fmt.Fprintf(&b, "%-*s %s\n", width-len(amount)-1, title, amount)
	}

	total := formatAmount(r.Total)
	fmt.Fprintf(&b, "%s\n%-*s %s\n%s\n%s\n", rule, width-len(total)-1, "Total", total, rule, FooterText)

	_, err := io.WriteString(w, b.String())
	return err
}

// truncate shortens s to at most limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	if limit <= 3 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit-3]) + "..."
}

// PDFWriter renders an A4 receipt with fpdf core fonts. Text is converted
// to cp1252, the encoding of the core fonts; runes outside it are dropped.
type PDFWriter struct {
	// Uncompressed leaves page content streams readable.
	Uncompressed bool
}

func (p PDFWriter) Write(w io.Writer, r *Receipt) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!p.Uncompressed)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(Filename(r.TransactionID), false)
	pdf.SetAuthor(StoreName, false)
	pdf.SetCreationDate(r.IssuedAt)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentW := pageW - left - right

	// header
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(contentW, 10, StoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(contentW, 6, StoreTagline, "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
	hr(pdf, left, pageW-right)

	// transaction metadata
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Payment Receipt", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	meta := [][2]string{
		{"Transaction ID:", r.TransactionID},
		{"Date:", r.IssuedAt.Format(dateLayout)},
		{"Time:", r.IssuedAt.Format(timeLayout)},
	}
	if r.Customer != nil {
		meta = append(meta, [2]string{"Customer:", r.Customer.Name}, [2]string{"Email:", r.Customer.Email})
	}
	for _, kv := range meta {
		pdf.CellFormat(40, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW-40, 6, tr(kv[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// items
	amountW := 45.0
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(235, 245, 235)
	pdf.CellFormat(contentW-amountW, 8, "Item", "B", 0, "L", true, 0, "")
	pdf.CellFormat(amountW, 8, "Amount", "B", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if r.Empty() {
		pdf.CellFormat(contentW, 8, EmptyPlaceholder, "", 1, "C", false, 0, "")
	}
	for _, l := range r.Lines {
		pdf.CellFormat(contentW-amountW, 7, tr(l.Title), "", 0, "L", false, 0, "")
		pdf.CellFormat(amountW, 7, formatAmount(l.Amount), "", 1, "R", false, 0, "")
	}
	hr(pdf, left, pageW-right)

	// total
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW-amountW, 8, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(amountW, 8, formatAmount(r.Total), "", 1, "R", false, 0, "")
	pdf.Ln(10)

	// footer
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(contentW, 5, FooterText, "", "C", false)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func hr(pdf *fpdf.Fpdf, x1, x2 float64) {
	y := pdf.GetY()
	pdf.Line(x1, y, x2, y)
	pdf.Ln(3)
}
