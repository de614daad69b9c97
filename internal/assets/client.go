// Package assets proxies the media library's Admin API (Cloudinary
// shaped) behind a short-lived in-process cache.
package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Resource is one asset as reported by the media library.
type Resource struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Client calls the media library's Admin API directly over HTTP.
type Client struct {
	baseURL   string
	cloudName string
	apiKey    string
	apiSecret string
	client    *http.Client
}

// NewClient creates a media-library client. baseURL is the API root
// without the cloud name (e.g. https://api.cloudinary.com/v1_1).
func NewClient(baseURL, cloudName, apiKey, apiSecret string) *Client {
	return &Client{
		baseURL:   baseURL,
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    &http.Client{},
	}
}

type listResponse struct {
	Resources  []Resource `json:"resources"`
	NextCursor string     `json:"next_cursor,omitempty"`
	Error      *apiError  `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := fmt.Sprintf("%s/%s%s", c.baseURL, c.cloudName, path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling media library: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error *apiError `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
			return fmt.Errorf("media library error (%d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("media library returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// ListImages returns image resources under the given folder prefix.
func (c *Client) ListImages(ctx context.Context, prefix string) ([]Resource, error) {
	q := url.Values{}
	q.Set("type", "upload")
	q.Set("prefix", prefix)
	q.Set("max_results", "500")

	var resp listResponse
	if err := c.get(ctx, "/resources/image", q, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("media library error: %s", resp.Error.Message)
	}
	return resp.Resources, nil
}

// GetResource returns a single image resource by public ID.
func (c *Client) GetResource(ctx context.Context, publicID string) (*Resource, error) {
	var r Resource
	if err := c.get(ctx, "/resources/image/upload/"+url.PathEscape(publicID), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Ping checks connectivity and credentials against the provider.
func (c *Client) Ping(ctx context.Context) error {
	var resp struct {
		Status string    `json:"status"`
		Error  *apiError `json:"error,omitempty"`
	}
	if err := c.get(ctx, "/ping", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("media library ping status %q", resp.Status)
	}
	return nil
}
