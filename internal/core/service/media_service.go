package service

import (
	"context"
	"fmt"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/ports"
)

// MediaService uploads staff pictures (profile photos, inline images).
type MediaService struct {
	host     ports.ImageHost
	maxBytes int64
}

func NewMediaService(host ports.ImageHost, maxBytes int64) *MediaService {
	return &MediaService{host: host, maxBytes: maxBytes}
}

func (s *MediaService) Upload(ctx context.Context, img domain.ImageUpload) (*domain.HostedImage, error) {
	if err := img.Check(s.maxBytes); err != nil {
		return nil, err
	}
	hosted, err := s.host.Upload(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return hosted, nil
}
