package hall_of_fame

import (
	"context"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/sethgrid/pester"
)

// DefaultMaxImageBytes is the largest image the downloader accepts
const DefaultMaxImageBytes = 8 << 20

// DownloaderConfig configures the HTTP downloader
type DownloaderConfig struct {
	MaxRetries int
	Timeout    time.Duration
	MaxBytes   int64
}

// HTTPDownloader fetches images with retries
type HTTPDownloader struct {
	client   *pester.Client
	maxBytes int64
}

// NewHTTPDownloader creates a retrying downloader
func NewHTTPDownloader(cfg *DownloaderConfig) *HTTPDownloader {
	if cfg == nil {
		cfg = &DownloaderConfig{}
	}

	timeout := 30 * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	client := pester.NewExtendedClient(&http.Client{Timeout: timeout})
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = 3
	if cfg.MaxRetries > 0 {
		client.MaxRetries = cfg.MaxRetries
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}

	return &HTTPDownloader{
		client:   client,
		maxBytes: maxBytes,
	}
}

// Download fetches url and returns its body
func (d *HTTPDownloader) Download(ctx context.Context, url string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid image url %s", url)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("failed to download %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", url)
	}
	if int64(len(data)) > d.maxBytes {
		return nil, errors.Errorf("image %s exceeds %d bytes", url, d.maxBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &Image{
		Name:        imageName(req.URL.Path),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func imageName(p string) string {
	name := path.Base(p)
	if name == "." || name == "/" || name == "" {
		return "image"
	}
	return name
}
