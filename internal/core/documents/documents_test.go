package documents

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestProcessor() *Processor {
	logger := zerolog.Nop()

	return NewProcessor(0, nil, &logger)
}

func TestProcess_SeparatesImagesFromText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != downloadUserAgent {
			t.Errorf("unexpected user agent: %q", r.Header.Get("User-Agent"))
		}

		_, _ = w.Write([]byte("Roof replaced in 2021. HVAC serviced annually."))
	}))
	defer srv.Close()

	urls := []string{
		srv.URL + "/inspection-report.txt",
		"https://cdn.example.com/photos/front.jpg?sig=abc",
		"https://cdn.example.com/photos/kitchen.PNG",
	}

	result := newTestProcessor().Process(context.Background(), urls)

	if len(result.ImageURLs) != 2 {
		t.Fatalf("image urls = %d, want 2", len(result.ImageURLs))
	}

	if result.ImageURLs[0] != urls[1] {
		t.Errorf("image url should pass through untouched: %q", result.ImageURLs[0])
	}

	if result.TextCount != 1 {
		t.Fatalf("text count = %d, want 1", result.TextCount)
	}

	if !strings.Contains(result.CombinedText, "--- Document: inspection-report.txt ---") {
		t.Errorf("missing filename marker: %q", result.CombinedText)
	}

	if !strings.Contains(result.CombinedText, "Roof replaced in 2021") {
		t.Errorf("missing extracted text: %q", result.CombinedText)
	}
}

func TestProcess_SkipsFailedDownloads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	result := newTestProcessor().Process(context.Background(), []string{srv.URL + "/missing.pdf"})

	if !result.Empty() {
		t.Errorf("failed downloads should yield an empty batch: %+v", result)
	}
}

func TestProcess_SkipsEmptyDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("   \n\t  "))
	}))
	defer srv.Close()

	result := newTestProcessor().Process(context.Background(), []string{srv.URL + "/blank.txt"})

	if result.TextCount != 0 {
		t.Errorf("whitespace-only documents should be skipped, got %q", result.CombinedText)
	}
}

func TestProcess_NoDocuments(t *testing.T) {
	result := newTestProcessor().Process(context.Background(), nil)

	if !result.Empty() {
		t.Errorf("empty url list should be an empty batch: %+v", result)
	}
}

func TestBuildUserPrompt(t *testing.T) {
	got := BuildUserPrompt("Draft the remarks.", "DOCUMENT CONTENT", "--- Document: a.txt ---\nhello")

	want := "Draft the remarks.\n\n\n=== DOCUMENT CONTENT ===\n--- Document: a.txt ---\nhello"
	if got != want {
		t.Errorf("BuildUserPrompt() = %q, want %q", got, want)
	}

	if BuildUserPrompt("Draft the remarks.", "DOCUMENT CONTENT", "") != "Draft the remarks." {
		t.Error("empty document text should leave the prompt unchanged")
	}
}

func TestFileExtension(t *testing.T) {
	cases := map[string]string{
		"https://cdn.example.com/a/b/report.PDF?sig=x": "pdf",
		"https://cdn.example.com/photo.jpeg":           "jpeg",
		"https://cdn.example.com/noext":                "",
		"https://cdn.example.com/archive.tar.gz":       "gz",
	}

	for url, want := range cases {
		if got := fileExtension(url); got != want {
			t.Errorf("fileExtension(%q) = %q, want %q", url, got, want)
		}
	}
}
