// Package documents downloads listing paperwork, splits it into extractable
// text and vision-bound images, and assembles the combined prompt sections
// used by the document-based generation endpoints.
package documents

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/listing-magic/content-backend/internal/platform/observability"
)

const (
	downloadUserAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	defaultFetchTimeout = 30 * time.Second
	maxDocumentBytes    = 32 << 20

	kindText  = "text"
	kindImage = "image"

	statusOK      = "ok"
	statusSkipped = "skipped"
	statusError   = "error"
)

// Image extensions are routed to vision analysis instead of text extraction.
var imageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
	"heic": {},
	"gif":  {},
}

// TextExtractor turns a downloaded document body into plain text. ext is the
// lowercased file extension without the dot.
type TextExtractor interface {
	Extract(ext string, content []byte) (string, error)
}

// plainTextExtractor decodes any body as UTF-8, dropping invalid sequences.
// Structured formats lose their markup but the embedded text usually survives
// well enough for summarization.
type plainTextExtractor struct{}

func (plainTextExtractor) Extract(_ string, content []byte) (string, error) {
	return strings.ToValidUTF8(string(content), ""), nil
}

// Processed is the outcome of a document batch.
type Processed struct {
	// CombinedText concatenates per-document sections, each prefixed with a
	// filename marker.
	CombinedText string
	// ImageURLs are passed through untouched for vision analysis.
	ImageURLs []string
	// TextCount is the number of documents that yielded text.
	TextCount int
}

// Empty reports whether the batch produced nothing usable.
func (p Processed) Empty() bool {
	return p.CombinedText == "" && len(p.ImageURLs) == 0
}

// Processor downloads and classifies documents.
type Processor struct {
	client    *http.Client
	extractor TextExtractor
	logger    *zerolog.Logger
}

func NewProcessor(timeout time.Duration, extractor TextExtractor, logger *zerolog.Logger) *Processor {
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}

	if extractor == nil {
		extractor = plainTextExtractor{}
	}

	return &Processor{
		client:    &http.Client{Timeout: timeout},
		extractor: extractor,
		logger:    logger,
	}
}

// Process walks the URL list in order. Images are collected for vision;
// everything else is downloaded and run through the extractor. A document
// that fails to download or yields no text is skipped, not fatal.
func (p *Processor) Process(ctx context.Context, urls []string) Processed {
	var (
		parts  []string
		images []string
	)

	for _, url := range urls {
		ext := fileExtension(url)

		if _, ok := imageExtensions[ext]; ok {
			observability.DocumentsProcessed.WithLabelValues(kindImage, statusOK).Inc()

			images = append(images, url)

			continue
		}

		text, err := p.extractText(ctx, url, ext)
		if err != nil {
			p.logger.Warn().Err(err).Str("url", truncateURL(url)).Msg("document extraction failed")

			observability.DocumentsProcessed.WithLabelValues(kindText, statusError).Inc()

			continue
		}

		if strings.TrimSpace(text) == "" {
			observability.DocumentsProcessed.WithLabelValues(kindText, statusSkipped).Inc()

			continue
		}

		observability.DocumentsProcessed.WithLabelValues(kindText, statusOK).Inc()

		parts = append(parts, fmt.Sprintf("--- Document: %s ---\n%s", fileName(url), text))
	}

	return Processed{
		CombinedText: strings.Join(parts, "\n\n"),
		ImageURLs:    images,
		TextCount:    len(parts),
	}
}

func (p *Processor) extractText(ctx context.Context, url, ext string) (string, error) {
	content, err := p.download(ctx, url)
	if err != nil {
		return "", err
	}

	text, err := p.extractor.Extract(ext, content)
	if err != nil {
		return "", fmt.Errorf("extract %q: %w", ext, err)
	}

	return text, nil
}

func (p *Processor) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", downloadUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download document: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read document body: %w", err)
	}

	return body, nil
}

// BuildUserPrompt appends the combined document text to the user's
// instructions under a section header. With no text the instructions pass
// through unchanged.
func BuildUserPrompt(userPrompt, sectionHeader, documentText string) string {
	if documentText == "" {
		return userPrompt
	}

	return userPrompt + "\n\n\n=== " + sectionHeader + " ===\n" + documentText
}

// fileExtension returns the lowercased extension of the URL's last path
// segment, ignoring any query string.
func fileExtension(url string) string {
	base := fileName(url)

	idx := strings.LastIndex(base, ".")
	if idx < 0 {
		return ""
	}

	return strings.ToLower(base[idx+1:])
}

func fileName(url string) string {
	path, _, _ := strings.Cut(url, "?")

	idx := strings.LastIndex(path, "/")

	return path[idx+1:]
}

func truncateURL(url string) string {
	const max = 80
	if len(url) <= max {
		return url
	}

	return url[:max]
}
