package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/crickshots/internal/future"
	"github.com/dmitrijs2005/crickshots/internal/models"
	"github.com/dmitrijs2005/crickshots/internal/receipt"
)

// progressTick paces the "..." indicator printed while a future runs.
var progressTick = 300 * time.Millisecond

// await prints label followed by a dot per tick until f completes.
func await[T any](ctx context.Context, w io.Writer, label string, f *future.Future[T]) (T, error) {
	fmt.Fprint(w, label)
	defer fmt.Fprintln(w)

	ticker := time.NewTicker(progressTick)
	defer ticker.Stop()

	for {
		select {
		case <-f.Done():
			return f.Await(ctx)
		case <-ticker.C:
			fmt.Fprint(w, ".")
		case <-ctx.Done():
			f.Cancel()
			var zero T
			return zero, ctx.Err()
		}
	}
}

// parseFilter understands free, premium, min=N, max=N and cat=<slug>.
// Anything else becomes part of the search term.
func parseFilter(args []string) (models.ImageFilter, error) {
	var f models.ImageFilter
	var search []string

	for _, arg := range args {
		key, val, hasVal := strings.Cut(arg, "=")
		switch {
		case strings.EqualFold(arg, "free"):
			f.OnlyFree = true
		case strings.EqualFold(arg, "premium"):
			f.OnlyPremium = true
		case hasVal && (key == "min" || key == "max"):
			v, err := strconv.ParseFloat(val, 64)
			if err != nil || v < 0 {
				return f, fmt.Errorf("invalid price %q", val)
			}
			if key == "min" {
				f.MinPrice = v
			} else {
				f.MaxPrice = v
			}
		case hasVal && key == "cat":
			c, ok := models.CategoryBySlug(val)
			if !ok {
				return f, fmt.Errorf("unknown category %q", val)
			}
			f.Category = c
		default:
			search = append(search, arg)
		}
	}
	f.Search = strings.Join(search, " ")

	return f, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		for _, s := range strings.Split(arg, ",") {
			if s == "" {
				continue
			}
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid image id %q", s)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func formatPrice(img models.Image) string {
	if !img.IsPremium || img.Price == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%.2f", img.Price)
}

func (a *App) printImages(imgs []models.Image) {
	if len(imgs) == 0 {
		fmt.Fprintln(a.out, "No images match")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE")
	for _, img := range imgs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", img.ID, img.Title, img.Category, formatPrice(img))
	}
	_ = tw.Flush()
}

func (a *App) Browse(ctx context.Context, args []string) error {
	f, err := parseFilter(args)
	if err != nil {
		return err
	}

	imgs, err := a.shopService.Browse(ctx, f)
	if err != nil {
		return err
	}
	a.printImages(imgs)
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: search <term>")
		return nil
	}
	imgs, err := a.shopService.Browse(ctx, models.ImageFilter{Search: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	a.printImages(imgs)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return nil
	}

	img, err := a.shopService.Image(ctx, ids[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "#%d %s\nCategory: %s\nPrice:    %s\nImage:    %s\n",
		img.ID, img.Title, img.Category, formatPrice(*img), img.ImageURL)
	return nil
}

// Buy collects the payment method and runs the checkout in the background
// while printing a progress indicator.
func (a *App) Buy(ctx context.Context, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "Usage: buy <id> [id...]")
		return nil
	}

	method, err := GetChoice(a.reader, "Pay with UPI ID or QR code?", []string{"id", "qr"}, a.out)
	if err != nil {
		return err
	}
	req := models.PaymentRequest{ImageIDs: ids, Method: models.PaymentMethod(method)}

	if req.Method == models.PaymentMethodUPIID {
		if req.UPIID, err = getSimpleText(a.reader, "UPI ID (name@bank)", a.out); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(a.out, "Scan the QR code shown in your UPI app to pay.")
	}

	sess := a.session
	tx, err := await(ctx, a.out, "Processing payment", future.Go(ctx, func(ctx context.Context) (*models.Transaction, error) {
		return a.shopService.Buy(ctx, sess, req)
	}))
	if err != nil {
		return err
	}

	var total float64
	for _, it := range tx.Items {
		total += it.Price
	}
	fmt.Fprintf(a.out, "Payment successful! Transaction %s, %d image(s), $%.2f\n", tx.ID, len(tx.Items), total)
	fmt.Fprintf(a.out, "Type 'receipt %s' to view your receipt.\n", tx.ID)
	return nil
}

func (a *App) Purchases(ctx context.Context) error {
	items, err := a.shopService.Purchases(ctx, a.session)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No purchases yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTRANSACTION\tTITLE\tPRICE")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t$%.2f\n", it.PurchasedAt.Local().Format("2006-01-02 15:04"), it.TransactionID, it.Title, it.Price)
	}
	return tw.Flush()
}

// Receipt prints the receipt for a transaction (latest when omitted). With
// "pdf" it is also rendered to a PDF file in the background.
func (a *App) Receipt(ctx context.Context, args []string) error {
	var txID string
	var asPDF bool
	for _, arg := range args {
		if strings.EqualFold(arg, "pdf") {
			asPDF = true
		} else {
			txID = arg
		}
	}

	r, err := a.shopService.Receipt(ctx, a.session, txID)
	if err != nil {
		return err
	}
	if err := (receipt.TextWriter{}).Write(a.out, r); err != nil {
		return err
	}
	if !asPDF || r.Empty() {
		return nil
	}

	path, err := await(ctx, a.out, "Generating PDF", future.Go(ctx, func(ctx context.Context) (string, error) {
		return a.shopService.SaveReceipt(ctx, r)
	}))
	if err != nil {
		fmt.Fprintf(a.out, "Could not generate PDF receipt: %s\n", err.Error())
		return nil
	}
	fmt.Fprintf(a.out, "Saved %s\n", path)
	return nil
}

// Download fetches the server-rendered receipt PDF.
func (a *App) Download(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: download <transaction id>")
		return nil
	}

	path, err := await(ctx, a.out, "Downloading receipt", future.Go(ctx, func(ctx context.Context) (string, error) {
		return a.shopService.DownloadReceipt(ctx, args[0])
	}))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s\n", path)
	return nil
}
