package generation

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetch_DataURL(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	mime, data, err := NewImageFetcher(0).Fetch(context.Background(), url)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png", mime)
	}

	if string(data) != string(payload) {
		t.Errorf("data mismatch")
	}
}

func TestFetch_DataURLDefaultsToJPEG(t *testing.T) {
	url := "data:;base64," + base64.StdEncoding.EncodeToString([]byte("x"))

	mime, _, err := NewImageFetcher(0).Fetch(context.Background(), url)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if mime != "image/jpeg" {
		t.Errorf("mime = %q, want image/jpeg", mime)
	}
}

func TestFetch_MalformedDataURL(t *testing.T) {
	if _, _, err := NewImageFetcher(0).Fetch(context.Background(), "data:image/png;base64"); err == nil {
		t.Error("expected error for data URL without payload")
	}
}

func TestFetch_HTTP(t *testing.T) {
	body := []byte("fake image bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("expected a user agent header")
		}

		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	mime, data, err := NewImageFetcher(0).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if mime != "image/jpeg" {
		t.Errorf("mime = %q", mime)
	}

	if string(data) != string(body) {
		t.Error("body mismatch")
	}
}

func TestFetch_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, _, err := NewImageFetcher(0).Fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected error for non-200 status")
	}
}
