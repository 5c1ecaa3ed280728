package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
)

// Client is the typed consumer of the USEGM backend REST API. Every request
// carries the bearer token of the session found on the context; responses
// other than 2xx decode into an *APIError.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration, onExpire ExpiryHandler) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: otelhttp.NewTransport(&Transport{
				OnExpire: onExpire,
			}),
		},
	}
}

// APIError carries the backend's rejection: the HTTP status and the message
// field of its error envelope, when one was present.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

type OrderQuery struct {
	Page   int
	Size   int
	Status domain.OrderStatus
	All    bool
}

func (c *Client) ListOrders(ctx context.Context, q OrderQuery) (*domain.Page[domain.Order], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("size", strconv.Itoa(q.Size))
	if q.Status != "" {
		params.Set("status", string(q.Status))
	}
	if q.All {
		params.Set("all", "true")
	}

	var page domain.Page[domain.Order]
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders", params, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateOrder(ctx context.Context, o domain.Order) (*domain.Order, error) {
	var created domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/v1/orders", nil, o, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateOrder(ctx context.Context, o domain.Order) (*domain.Order, error) {
	var updated domain.Order
	path := fmt.Sprintf("/api/v1/orders/%d", o.ID)
	if err := c.do(ctx, http.MethodPut, path, nil, o, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	body := struct {
		Status domain.OrderStatus `json:"status"`
	}{Status: status}

	var updated domain.Order
	path := fmt.Sprintf("/api/v1/orders/%d/status", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/orders/%d", id), nil, nil, nil)
}

type ProductQuery struct {
	Page      int
	Size      int
	Reference string
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*domain.Page[domain.Product], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("size", strconv.Itoa(q.Size))
	if q.Reference != "" {
		params.Set("reference", q.Reference)
	}

	var page domain.Page[domain.Product]
	if err := c.do(ctx, http.MethodGet, "/api/v1/products", params, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var created domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/v1/products", nil, p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var updated domain.Product
	path := fmt.Sprintf("/api/v1/products/%d", p.ID)
	if err := c.do(ctx, http.MethodPut, path, nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", id), nil, nil, nil)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenResponse, error) {
	var token TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/login", nil, creds, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.do(ctx, http.MethodPost, "/api/v1/register", nil, reg, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		// Best effort: the backend's error envelope carries a message field.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
