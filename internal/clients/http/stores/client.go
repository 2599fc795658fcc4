// Package stores is the HTTP gateway to the store directory service.
package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/musicstore/orders-api/internal/clients/http/remote"
	"github.com/musicstore/orders-api/internal/orders/domain"
)

const serviceName = "storelocation-service"

// Client fetches store snapshots by id.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds the stores gateway. baseURL points at the service root,
// e.g. http://stores:8084/api/v1.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("stores base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

type storePayload struct {
	StoreID     string `json:"storeId"`
	OwnerName   string `json:"ownerName"`
	ManagerName string `json:"managerName"`
}

// GetStore reads one store location, translating 404/422 into the shared
// gateway error taxonomy.
func (c *Client) GetStore(ctx context.Context, storeID string) (domain.StoreSnapshot, error) {
	url := fmt.Sprintf("%s/stores/%s", c.baseURL, storeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.StoreSnapshot{}, fmt.Errorf("build stores request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.StoreSnapshot{}, fmt.Errorf("call %s: %w", serviceName, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.StoreSnapshot{}, fmt.Errorf("read %s response: %w", serviceName, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.StoreSnapshot{}, remote.TranslateStatus(serviceName, resp.StatusCode, body)
	}
	var payload storePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.StoreSnapshot{}, fmt.Errorf("decode %s response: %w", serviceName, err)
	}
	return domain.StoreSnapshot{
		StoreID:     payload.StoreID,
		OwnerName:   payload.OwnerName,
		ManagerName: payload.ManagerName,
	}, nil
}
