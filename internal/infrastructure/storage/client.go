// Package storage provides the REST client for the Supabase-style object
// storage API that holds the content document and image assets.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
)

var (
	// ErrNotConfigured is returned when no storage base URL or credential is
	// set; callers fall back to local sources instead of failing.
	ErrNotConfigured = errors.New("object storage not configured")

	// ErrNotFound is returned when the store reports a missing object.
	ErrNotFound = errors.New("object not found")
)

// Client talks to the object storage REST API. A zero-value base URL marks
// the client unconfigured; every call then returns ErrNotConfigured.
type Client struct {
	baseURL    string
	serviceKey string
	anonKey    string
	http       *resty.Client
	logger     *logging.ChanneledLogger
}

// NewClient creates a storage client.
func NewClient(baseURL, serviceKey, anonKey string, timeout time.Duration, logger *logging.ChanneledLogger) *Client {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0)

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		anonKey:    anonKey,
		http:       httpClient,
		logger:     logger,
	}
}

// Configured reports whether the client can perform authenticated writes.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.serviceKey != ""
}

// HasBaseURL reports whether public reads are possible.
func (c *Client) HasBaseURL() bool {
	return c.baseURL != ""
}

// encodeObjectPath escapes each path segment while keeping separators, the
// same normalization the original proxy applied to nested object keys.
func encodeObjectPath(object string) string {
	segments := strings.Split(object, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// PublicURL returns the public download URL for an object.
func (c *Client) PublicURL(bucket, object string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		c.baseURL, url.PathEscape(bucket), encodeObjectPath(object))
}

func (c *Client) objectURL(bucket, object string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s",
		c.baseURL, url.PathEscape(bucket), encodeObjectPath(object))
}

func (c *Client) authHeaders() map[string]string {
	key := c.serviceKey
	if key == "" {
		key = c.anonKey
	}
	return map[string]string{
		"apikey":        key,
		"Authorization": "Bearer " + key,
	}
}

// DownloadPublic fetches an object through the public URL. Returns the body
// and the reported content type.
func (c *Client) DownloadPublic(ctx context.Context, bucket, object string) ([]byte, string, error) {
	if !c.HasBaseURL() {
		return nil, "", ErrNotConfigured
	}

	res, err := c.http.R().SetContext(ctx).Get(c.PublicURL(bucket, object))
	if err != nil {
		return nil, "", fmt.Errorf("storage download: %w", err)
	}
	if res.StatusCode() == 404 {
		return nil, "", ErrNotFound
	}
	if res.IsError() {
		return nil, "", fmt.Errorf("storage download: %s: %s", res.Status(), strings.TrimSpace(string(res.Body())))
	}
	return res.Body(), res.Header().Get("Content-Type"), nil
}

// DownloadAuthed fetches an object through the authenticated URL, used when
// the bucket is not public.
func (c *Client) DownloadAuthed(ctx context.Context, bucket, object string) ([]byte, string, error) {
	if !c.HasBaseURL() || (c.serviceKey == "" && c.anonKey == "") {
		return nil, "", ErrNotConfigured
	}

	res, err := c.http.R().SetContext(ctx).
		SetHeaders(c.authHeaders()).
		Get(c.objectURL(bucket, object))
	if err != nil {
		return nil, "", fmt.Errorf("storage download: %w", err)
	}
	if res.StatusCode() == 404 {
		return nil, "", ErrNotFound
	}
	if res.IsError() {
		return nil, "", fmt.Errorf("storage download: %s: %s", res.Status(), strings.TrimSpace(string(res.Body())))
	}
	return res.Body(), res.Header().Get("Content-Type"), nil
}

// Upload overwrites an object. The PUT is atomic at the store: it either
// fully succeeds or leaves the previous object intact.
func (c *Client) Upload(ctx context.Context, bucket, object, contentType string, body []byte) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	start := time.Now()
	res, err := c.http.R().SetContext(ctx).
		SetHeaders(c.authHeaders()).
		SetHeader("Content-Type", contentType).
		SetBody(body).
		Put(c.objectURL(bucket, object))
	if err != nil {
		return fmt.Errorf("storage upload: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("storage upload: %s: %s", res.Status(), strings.TrimSpace(string(res.Body())))
	}

	c.logger.Storage().Info("Object uploaded",
		"bucket", bucket, "object", object, "bytes", len(body), "duration", time.Since(start))
	return nil
}

// Delete removes an object from a bucket.
func (c *Client) Delete(ctx context.Context, bucket, object string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	res, err := c.http.R().SetContext(ctx).
		SetHeaders(c.authHeaders()).
		Delete(c.objectURL(bucket, object))
	if err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}
	if res.StatusCode() == 404 {
		return ErrNotFound
	}
	if res.IsError() {
		return fmt.Errorf("storage delete: %s: %s", res.Status(), strings.TrimSpace(string(res.Body())))
	}

	c.logger.Storage().Info("Object deleted", "bucket", bucket, "object", object)
	return nil
}

// ObjectInfo is one entry from the provider's list API.
type ObjectInfo struct {
	Name      string `json:"name"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type listRequest struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// List enumerates bucket contents via the provider's list endpoint.
func (c *Client) List(ctx context.Context, bucket, prefix string, limit int) ([]ObjectInfo, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if limit <= 0 {
		limit = 100
	}

	var objects []ObjectInfo
	res, err := c.http.R().SetContext(ctx).
		SetHeaders(c.authHeaders()).
		SetHeader("Content-Type", "application/json").
		SetBody(listRequest{Prefix: prefix, Limit: limit}).
		SetResult(&objects).
		Post(fmt.Sprintf("%s/storage/v1/object/list/%s", c.baseURL, url.PathEscape(bucket)))
	if err != nil {
		return nil, fmt.Errorf("storage list: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("storage list: %s: %s", res.Status(), strings.TrimSpace(string(res.Body())))
	}
	return objects, nil
}
