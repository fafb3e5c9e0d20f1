package imagehost

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
)

func upload(t *testing.T, h http.HandlerFunc) (*domain.HostedImage, error) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	host := NewCloudinary(Config{BaseURL: srv.URL, CloudName: "newsdesk", UploadPreset: "unsigned"}, zerolog.Nop())
	return host.Upload(context.Background(), domain.ImageUpload{
		Filename:    "cover.png",
		ContentType: "image/png",
		Size:        4,
		Body:        strings.NewReader("\x89PNG"),
	})
}

func TestCloudinary_Upload(t *testing.T) {
	img, err := upload(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/newsdesk/image/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.FormValue("upload_preset") != "unsigned" || !strings.HasPrefix(r.FormValue("public_id"), "article_") {
			t.Errorf("unexpected fields %v", r.MultipartForm.Value)
		}
		f, fh, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file: %v", err)
		}
		body, _ := io.ReadAll(f)
		if fh.Filename != "cover.png" || string(body) != "\x89PNG" {
			t.Errorf("unexpected file %s %q", fh.Filename, body)
		}
		_, _ = w.Write([]byte(`{"secure_url":"https://res.example/cover.png","public_id":"article_x"}`))
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.SecureURL != "https://res.example/cover.png" || img.PublicID != "article_x" {
		t.Fatalf("unexpected image %+v", img)
	}
}

func TestCloudinary_Rejected(t *testing.T) {
	_, err := upload(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	})
	if err == nil || !strings.Contains(err.Error(), "Invalid image file") {
		t.Fatalf("expected rejection, got %v", err)
	}
}

func TestCloudinary_NotConfigured(t *testing.T) {
	host := NewCloudinary(Config{}, zerolog.Nop())
	if _, err := host.Upload(context.Background(), domain.ImageUpload{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
