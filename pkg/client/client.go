// Package client talks to the photo relay's upload and listing endpoints.
//
// The storage provider is fixed when a Client is built. Use returns a copy
// bound to a different provider, so callers never share a mutable switch.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// Provider selects which backend pair of endpoints the client calls.
type Provider string

const (
	// ProviderCDN routes through the hosted media CDN endpoints.
	ProviderCDN Provider = "cdn"
	// ProviderS3 routes through the object storage endpoints.
	ProviderS3 Provider = "s3"
)

type endpoints struct {
	upload string
	list   string
}

var routes = map[Provider]endpoints{
	ProviderCDN: {upload: "/api/upload", list: "/api/get-photos"},
	ProviderS3:  {upload: "/api/upload-s3", list: "/api/get-photos-s3"},
}

// Photo is one stored upload as returned by the server.
type Photo struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
	Type         string    `json:"type"`
	UploadDate   time.Time `json:"uploadDate"`
	UserID       string    `json:"userId"`
	StorageKey   string    `json:"storageKey"`
	Bucket       string    `json:"bucket"`
}

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return fmt.Sprintf("photo relay: status %d: %s", e.StatusCode, msg)
}

// Client uploads and lists photos through one provider.
type Client struct {
	baseURL  string
	provider Provider
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithProvider selects the provider. The default is ProviderS3.
func WithProvider(p Provider) Option {
	return func(c *Client) { c.provider = p }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		provider: ProviderS3,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if _, ok := routes[c.provider]; !ok {
		return nil, fmt.Errorf("unknown provider %q", c.provider)
	}
	return c, nil
}

// Provider reports the provider this client is bound to.
func (c *Client) Provider() Provider {
	return c.provider
}

// Use returns a copy of c bound to p. c itself is unchanged.
func (c *Client) Use(p Provider) (*Client, error) {
	if _, ok := routes[p]; !ok {
		return nil, fmt.Errorf("unknown provider %q", p)
	}
	cp := *c
	cp.provider = p
	return &cp, nil
}

// Upload sends one file with an optional owner and returns the stored photo.
func (c *Client) Upload(ctx context.Context, filename, contentType string, data []byte, userID string) (*Photo, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	pw, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := pw.Write(data); err != nil {
		return nil, fmt.Errorf("write file part: %w", err)
	}
	if userID != "" {
		if err := mw.WriteField("userId", userID); err != nil {
			return nil, fmt.Errorf("write userId field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	var out struct {
		Data Photo `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, routes[c.provider].upload, mw.FormDataContentType(), &body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ListPhotos returns userID's photos. An empty userID lists the server's default user.
func (c *Client) ListPhotos(ctx context.Context, userID string) ([]Photo, error) {
	path := routes[c.provider].list
	if userID != "" {
		path += "?" + url.Values{"userId": {userID}}.Encode()
	}

	var out struct {
		Data []Photo `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []Photo{}
	}
	return out.Data, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env struct {
			Error   string `json:"error"`
			Code    string `json:"code"`
			Details string `json:"details"`
		}
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message, apiErr.Code, apiErr.Details = env.Error, env.Code, env.Details
		}
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
