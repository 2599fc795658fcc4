// Package customers is the HTTP gateway to the customer directory service.
package customers

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

const serviceName = "customers-service"

// Client fetches customer snapshots by id.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds the customers gateway with sane defaults. baseURL points
// at the service root, e.g. http://customers:8081/api/v1.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("customers base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

type customerPayload struct {
	CustomerID string `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
}

// GetCustomer reads one customer. A remote 404 surfaces as
// remote.ErrNotFound, a 422 as remote.ErrInvalidInput; other statuses are
// fatal transport errors.
func (c *Client) GetCustomer(ctx context.Context, customerID string) (domain.CustomerSnapshot, error) {
	url := fmt.Sprintf("%s/customers/%s", c.baseURL, customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.CustomerSnapshot{}, fmt.Errorf("build customers request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.CustomerSnapshot{}, fmt.Errorf("call %s: %w", serviceName, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.CustomerSnapshot{}, fmt.Errorf("read %s response: %w", serviceName, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.CustomerSnapshot{}, remote.TranslateStatus(serviceName, resp.StatusCode, body)
	}
	var payload customerPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.CustomerSnapshot{}, fmt.Errorf("decode %s response: %w", serviceName, err)
	}
	return domain.CustomerSnapshot{
		CustomerID: payload.CustomerID,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
	}, nil
}
