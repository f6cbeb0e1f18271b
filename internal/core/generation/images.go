package generation

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultFetchTimeout = 30 * time.Second
	defaultImageMIME    = "image/jpeg"

	// Some CDNs reject requests without a browser user agent.
	fetchUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	maxImageBytes = 20 << 20 // 20 MiB
)

var errDataURLMalformed = errors.New("malformed data URL")

// ImageFetcher downloads images so they can be inlined as raw bytes for
// providers that do not accept URLs. data: URLs are decoded locally without
// a network round trip.
type ImageFetcher struct {
	client *http.Client
}

func NewImageFetcher(timeout time.Duration) *ImageFetcher {
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}

	return &ImageFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch returns the MIME type and raw bytes for an image URL.
func (f *ImageFetcher) Fetch(ctx context.Context, url string) (string, []byte, error) {
	if strings.HasPrefix(url, "data:") {
		return decodeDataURL(url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", nil, fmt.Errorf("read image body: %w", err)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}

	return mime, data, nil
}

// decodeDataURL parses "data:<mime>;base64,<payload>" URLs. Payloads without
// a recognizable MIME type default to JPEG.
func decodeDataURL(url string) (string, []byte, error) {
	header, payload, found := strings.Cut(url, ",")
	if !found {
		return "", nil, errDataURLMalformed
	}

	mime := defaultImageMIME

	meta := strings.TrimPrefix(header, "data:")
	if idx := strings.Index(meta, ";"); idx > 0 {
		meta = meta[:idx]
	}

	if meta != "" {
		mime = meta
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL: %w", err)
	}

	return mime, data, nil
}
