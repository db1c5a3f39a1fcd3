package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/dealerhub/dealership-service/internal/config"
)

const (
	// MaxFileSize caps individual uploads at 5 MiB.
	MaxFileSize = 5 * 1024 * 1024
	// MaxFilesPerRequest caps a single multipart batch.
	MaxFilesPerRequest = 10

	// uploadTransformation applies server-side quality and format
	// auto-optimization at ingest.
	uploadTransformation = "q_auto:good,f_auto"
)

// ErrNotImage rejects non-image uploads.
var ErrNotImage = errors.New("Only image files are allowed")

// ErrFileTooLarge rejects uploads over MaxFileSize.
var ErrFileTooLarge = errors.New("File size too large. Maximum 5MB allowed")

// UploadResult describes a stored asset.
type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Uploader is the image host contract. Handlers depend on this interface so
// tests can inject a fake instead of the real provider.
type Uploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
	Ping(ctx context.Context) error
	Folder() string
}

// CloudinaryClient talks to the Cloudinary upload API.
type CloudinaryClient struct {
	client *resty.Client
	cfg    config.CloudinaryConfig
}

// NewCloudinaryClient builds a client from configuration. The base URL is
// overridable so tests can point at a local server.
func NewCloudinaryClient(cfg config.CloudinaryConfig) *CloudinaryClient {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/v1_1/" + cfg.CloudName).
		SetTimeout(cfg.UploadTimeout())
	return &CloudinaryClient{client: cli, cfg: cfg}
}

// Folder returns the fixed folder namespace assets are stored under.
func (c *CloudinaryClient) Folder() string {
	return c.cfg.Folder
}

// ValidateFile applies the upload filter: image/* MIME type, size cap.
func ValidateFile(file *multipart.FileHeader) error {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return ErrNotImage
	}
	if file.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// Upload forwards the file to the image host under the folder namespace and
// returns the stable URL. Each asset gets a generated public id, so the
// last URL path segment round-trips through public-id reconstruction.
func (c *CloudinaryClient) Upload(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error) {
	if err := ValidateFile(file); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	publicID := uuid.NewString()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"folder":         c.cfg.Folder,
		"public_id":      publicID,
		"timestamp":      timestamp,
		"transformation": uploadTransformation,
	}

	var result UploadResult
	resp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("file", file.Filename, src).
		SetFormData(params).
		SetFormData(map[string]string{
			"api_key":   c.cfg.APIKey,
			"signature": c.sign(params),
		}).
		SetResult(&result).
		Post("/image/upload")
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("upload failed: %s", resp.Status())
	}
	if result.SecureURL == "" {
		return nil, errors.New("upload response missing secure_url")
	}
	return &result, nil
}

// Destroy removes an asset by its full public id.
func (c *CloudinaryClient) Destroy(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	var result struct {
		Result string `json:"result"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(params).
		SetFormData(map[string]string{
			"api_key":   c.cfg.APIKey,
			"signature": c.sign(params),
		}).
		SetResult(&result).
		Post("/image/destroy")
	if err != nil {
		return fmt.Errorf("destroy request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("destroy failed: %s", resp.Status())
	}
	if result.Result != "ok" {
		return fmt.Errorf("destroy failed: %s", result.Result)
	}
	return nil
}

// Ping verifies image host connectivity and credentials.
func (c *CloudinaryClient) Ping(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBasicAuth(c.cfg.APIKey, c.cfg.APISecret).
		Get("/ping")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("ping failed: %s", resp.Status())
	}
	return nil
}

// sign produces the request signature: params sorted by key, joined as a
// query string, suffixed with the API secret, SHA-1 hex encoded.
func (c *CloudinaryClient) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	digest := sha1.Sum([]byte(strings.Join(pairs, "&") + c.cfg.APISecret))
	return hex.EncodeToString(digest[:])
}
