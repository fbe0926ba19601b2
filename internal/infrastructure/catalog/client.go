// Package catalog reads the mock REST backend that served the original
// collections: usuarios, carrito and especialidades.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/telemedicina/booking-api/internal/api/metrics"
	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Client implements ports.CatalogClient over HTTP. It only issues GETs.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL, e.g. http://localhost:3000.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

var _ ports.CatalogClient = (*Client)(nil)

func (c *Client) FetchUsers(ctx context.Context) ([]ports.RemoteUser, error) {
	var users []ports.RemoteUser
	if err := c.get(ctx, "usuarios", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) FetchCart(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := c.get(ctx, "carrito", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FetchSpecialties queries especialidades?id=<id>.
func (c *Client) FetchSpecialties(ctx context.Context, id string) ([]domain.Specialty, error) {
	var specialties []domain.Specialty
	if err := c.get(ctx, "especialidades", url.Values{"id": {id}}, &specialties); err != nil {
		return nil, err
	}
	return specialties, nil
}

func (c *Client) get(ctx context.Context, resource string, query url.Values, dst any) (err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.CatalogRequestDuration.WithLabelValues(resource, result).Observe(time.Since(start).Seconds())
	}()

	u := c.baseURL + "/" + resource
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog %s: unexpected status %d", resource, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("catalog %s: decode: %w", resource, err)
	}
	return nil
}
