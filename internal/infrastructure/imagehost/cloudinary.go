// Package imagehost uploads staff pictures to Cloudinary with an unsigned
// upload preset.
package imagehost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/pkg/metrics"
)

const (
	defaultBaseURL = "https://api.cloudinary.com/v1_1"
	uploadTimeout  = 60 * time.Second
)

// ErrNotConfigured is returned when no cloud name or preset is set.
var ErrNotConfigured = errors.New("image host not configured")

type Config struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
}

// Cloudinary implements ports.ImageHost.
type Cloudinary struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewCloudinary(cfg Config, log zerolog.Logger) *Cloudinary {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Cloudinary{cfg: cfg, http: &http.Client{Timeout: uploadTimeout}, log: log}
}

func (c *Cloudinary) endpoint() string {
	return fmt.Sprintf("%s/%s/image/upload", c.cfg.BaseURL, c.cfg.CloudName)
}

// Upload streams img as multipart form data. The public id is
// article_<uuid>.
func (c *Cloudinary) Upload(ctx context.Context, img domain.ImageUpload) (*domain.HostedImage, error) {
	if c.cfg.CloudName == "" || c.cfg.UploadPreset == "" {
		return nil, ErrNotConfigured
	}

	publicID := "article_" + uuid.NewString()
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeForm(mw, img, c.cfg.UploadPreset, publicID))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), pr)
	if err != nil {
		_ = pr.Close()
		return nil, fmt.Errorf("image upload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		_ = pr.CloseWithError(err)
		metrics.BackendRequestsTotal.WithLabelValues("cloudinary:upload", "503").Inc()
		return nil, fmt.Errorf("image upload: %w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestsTotal.WithLabelValues("cloudinary:upload", strconv.Itoa(resp.StatusCode)).Inc()
	metrics.BackendRequestDuration.WithLabelValues("cloudinary:upload").Observe(time.Since(start).Seconds())

	var out struct {
		domain.HostedImage
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("image upload: decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= http.StatusBadRequest || out.Error != nil {
		msg := http.StatusText(resp.StatusCode)
		if out.Error != nil {
			msg = out.Error.Message
		}
		c.log.Warn().Int("status", resp.StatusCode).Str("message", msg).Msg("image upload rejected")
		return nil, fmt.Errorf("image upload rejected: %s", msg)
	}

	c.log.Debug().Str("public_id", out.PublicID).Int64("size", img.Size).Msg("image uploaded")
	return &out.HostedImage, nil
}

func writeForm(mw *multipart.Writer, img domain.ImageUpload, preset, publicID string) error {
	if err := mw.WriteField("upload_preset", preset); err != nil {
		return err
	}
	if err := mw.WriteField("public_id", publicID); err != nil {
		return err
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, img.Filename))
	h.Set("Content-Type", img.ContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, img.Body); err != nil {
		return err
	}
	return mw.Close()
}
