package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kickside/newsdesk/internal/core/domain"
)

type stubImageHost struct {
	uploadFn func(ctx context.Context, img domain.ImageUpload) (*domain.HostedImage, error)
	calls    int
}

func (h *stubImageHost) Upload(ctx context.Context, img domain.ImageUpload) (*domain.HostedImage, error) {
	h.calls++
	return h.uploadFn(ctx, img)
}

func TestMediaService_RejectsBeforeUpload(t *testing.T) {
	host := &stubImageHost{}
	svc := NewMediaService(host, 1024)

	cases := []domain.ImageUpload{
		{Filename: "notes.pdf", ContentType: "application/pdf", Size: 10, Body: strings.NewReader("x")},
		{Filename: "big.png", ContentType: "image/png", Size: 4096, Body: strings.NewReader("x")},
		{Filename: "empty.png", ContentType: "image/png", Size: 0, Body: strings.NewReader("")},
	}
	for _, img := range cases {
		if _, err := svc.Upload(context.Background(), img); !errors.Is(err, domain.ErrInvalidImage) {
			t.Errorf("%s: expected ErrInvalidImage, got %v", img.Filename, err)
		}
	}
	if host.calls != 0 {
		t.Fatalf("host called %d times", host.calls)
	}
}

func TestMediaService_Upload(t *testing.T) {
	host := &stubImageHost{uploadFn: func(context.Context, domain.ImageUpload) (*domain.HostedImage, error) {
		return &domain.HostedImage{SecureURL: "https://img.example/a.png", PublicID: "article_1"}, nil
	}}
	svc := NewMediaService(host, 1024)

	got, err := svc.Upload(context.Background(), domain.ImageUpload{Filename: "a.png", ContentType: "image/png", Size: 3, Body: strings.NewReader("png")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SecureURL != "https://img.example/a.png" {
		t.Fatalf("unexpected image %+v", got)
	}
}
