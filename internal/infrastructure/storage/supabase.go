// Package storage is the client of the hosted object store (Supabase Storage).
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("storage: SUPABASE_URL and SUPABASE_SECRET_KEY must be set")

const defaultTimeout = 30 * time.Second

// defaultHTTP serves clients built without an explicit HTTP client.
var defaultHTTP = &http.Client{Timeout: defaultTimeout}

// Client talks to the Supabase Storage HTTP API with the service key. A Client
// is never mutated after construction and is safe for concurrent use.
type Client struct {
	BaseURL   string
	SecretKey string
	HTTP      *http.Client
}

// NewClient returns a Client with its own HTTP client.
func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		HTTP:      &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return defaultHTTP
	}
	return c.HTTP
}

func (c *Client) base() (string, error) {
	if c.BaseURL == "" || c.SecretKey == "" {
		return "", ErrNotConfigured
	}
	return strings.TrimRight(c.BaseURL, "/"), nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("apikey", c.SecretKey)
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage request: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: apiMessage(body)}
	}
	return body, nil
}

// APIError is a non-2xx answer from the storage API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storage: status %d: %s", e.StatusCode, e.Message)
}

// apiMessage pulls the message out of a storage error body, falling back to the raw body.
func apiMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	return string(body)
}

func objectPath(bucket, path string) string {
	return url.PathEscape(bucket) + "/" + strings.TrimLeft(path, "/")
}

// Upload stores r at bucket/path.
func (c *Client) Upload(ctx context.Context, bucket, path, contentType string, r io.Reader) error {
	base, err := c.base()
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/storage/v1/object/"+objectPath(bucket, path), r)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")
	_, err = c.do(req)
	return err
}

// Remove deletes bucket/path.
func (c *Client) Remove(ctx context.Context, bucket, path string) error {
	base, err := c.base()
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, base+"/storage/v1/object/"+objectPath(bucket, path), nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// PublicURL is where a public bucket serves bucket/path.
func (c *Client) PublicURL(bucket, path string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/storage/v1/object/public/" + objectPath(bucket, path)
}

type signedUploadResponse struct {
	SignedURL      string `json:"signedUrl"`
	SignedURLSnake string `json:"signed_url"`
	URL            string `json:"url"`
}

// CreateSignedUploadURL returns a one-hour URL the browser can upload bucket/path to.
func (c *Client) CreateSignedUploadURL(ctx context.Context, bucket, path string) (string, error) {
	base, err := c.base()
	if err != nil {
		return "", err
	}
	payload, _ := json.Marshal(map[string]interface{}{"expiresIn": 3600, "upsert": false})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		base+"/storage/v1/object/upload/sign/"+objectPath(bucket, path), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var data signedUploadResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("storage: decode signed url: %w", err)
	}
	switch {
	case data.SignedURL != "":
		return data.SignedURL, nil
	case data.SignedURLSnake != "":
		return data.SignedURLSnake, nil
	case data.URL != "":
		// relative to the project URL, e.g. /object/upload/sign/...?token=
		u := data.URL
		if !strings.HasPrefix(u, "/") {
			u = "/" + u
		}
		if !strings.HasPrefix(u, "/storage/v1") {
			u = "/storage/v1" + u
		}
		return base + u, nil
	}
	return "", fmt.Errorf("storage: no signed URL in response: %s", string(body))
}

// Ping reports whether the storage API answers at all.
func (c *Client) Ping(ctx context.Context) error {
	base, err := c.base()
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/storage/v1/bucket", nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}
