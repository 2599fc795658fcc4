// Package catalog is the HTTP gateway to the music catalog service. Album
// payloads pass through the tolerant decoder in decoder.go, which shields
// the orchestrator from catalog schema drift.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/musicstore/orders-api/internal/clients/http/remote"
	"github.com/musicstore/orders-api/internal/orders/domain"
)

const serviceName = "musiccatalog-service"

// Client reads albums and artists and patches album conditions.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds the catalog gateway. baseURL points at the service root,
// e.g. http://catalog:8082/api/v1.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// GetAlbum reads one album of an artist.
func (c *Client) GetAlbum(ctx context.Context, artistID, albumID string) (domain.AlbumSnapshot, error) {
	url := fmt.Sprintf("%s/artists/%s/albums/%s", c.baseURL, artistID, albumID)
	return c.fetchAlbum(ctx, http.MethodGet, url, nil)
}

// GetArtist reads artist-only data. The response reuses the album payload
// shape with the album fields absent.
func (c *Client) GetArtist(ctx context.Context, artistID string) (domain.AlbumSnapshot, error) {
	url := fmt.Sprintf("%s/artists/%s", c.baseURL, artistID)
	return c.fetchAlbum(ctx, http.MethodGet, url, nil)
}

// PatchCondition updates an album's availability. The PATCH payload is the
// bare condition token, matching the catalog's contract.
func (c *Client) PatchCondition(ctx context.Context, artistID, albumID string, condition domain.Condition) (domain.AlbumSnapshot, error) {
	url := fmt.Sprintf("%s/artists/%s/albums/%s/condition", c.baseURL, artistID, albumID)
	return c.fetchAlbum(ctx, http.MethodPatch, url, strings.NewReader(string(condition)))
}

func (c *Client) fetchAlbum(ctx context.Context, method, url string, payload io.Reader) (domain.AlbumSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return domain.AlbumSnapshot{}, fmt.Errorf("build catalog request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "text/plain")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.AlbumSnapshot{}, fmt.Errorf("call %s: %w", serviceName, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.AlbumSnapshot{}, fmt.Errorf("read %s response: %w", serviceName, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.AlbumSnapshot{}, remote.TranslateStatus(serviceName, resp.StatusCode, body)
	}
	return DecodeAlbum(body)
}
