// Package netx holds plain-HTTP helpers used alongside the gRPC API.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxDocumentSize caps a downloaded document.
const MaxDocumentSize = 16 << 20

// DownloadFromPresignedURL fetches a document from a presigned object
// storage URL. Any status other than 200 is an error.
func DownloadFromPresignedURL(ctx context.Context, url string) ([]byte, error) {
	return download(ctx, http.DefaultClient, url)
}

func download(ctx context.Context, c *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > MaxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", MaxDocumentSize)
	}
	return body, nil
}
