package domain

import (
	"fmt"
	"io"
	"strings"
)

// DefaultMaxImageBytes caps cover and profile photo uploads.
const DefaultMaxImageBytes = 5 << 20

// ImageUpload is a file picked by a staff member for upload.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Check rejects non-image content and files over maxBytes.
func (u ImageUpload) Check(maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	if !strings.HasPrefix(strings.ToLower(u.ContentType), "image/") {
		return fmt.Errorf("%w: %q is not an image", ErrInvalidImage, u.ContentType)
	}
	if u.Size <= 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidImage)
	}
	if u.Size > maxBytes {
		return fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidImage, maxBytes)
	}
	return nil
}

// HostedImage is what the image host returns after an upload.
type HostedImage struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}
