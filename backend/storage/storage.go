// Package storage uploads files to a Supabase-compatible object storage API
// and prepares journal images (downscale + webp re-encode) before upload.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"

	"thinkhabit/backend/config"
)

type Client struct {
	BaseURL    string
	ServiceKey string
	Bucket     string
	HTTP       *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL:    cfg.StorageURL,
		ServiceKey: cfg.StorageKey,
		Bucket:     cfg.StorageBucket,
		HTTP:       &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload puts an object into the bucket and returns its public URL.
func (cl *Client) Upload(objectKey, contentType string, data []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		cl.BaseURL, cl.Bucket, url.PathEscape(objectKey))

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+cl.ServiceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := cl.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage upload: status %d: %s", resp.StatusCode, body)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		cl.BaseURL, cl.Bucket, url.PathEscape(objectKey)), nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// SanitizeFilename strips everything but letters, digits, dot, dash and
// underscore.
func SanitizeFilename(filename string) string {
	return unsafeChars.ReplaceAllString(filename, "_")
}

// ObjectKey builds a collision-free object key: folder/date-uuid-name.
func ObjectKey(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s",
		folder, timestamp, uuid.New().String(), SanitizeFilename(originalFilename))
}
