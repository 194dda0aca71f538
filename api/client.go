// Package api is the typed client for the el-cafe platform REST backend.
// Resource calls go through a bearer Transport that keeps the session alive;
// authentication calls go through the interceptor-free AuthService.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Client groups the resource endpoints of the admin backend. Construct it
// with an *http.Client whose Transport is an api.Transport so every call
// carries the session's bearer token.
type Client struct {
	baseURL string
	http    *http.Client

	Restaurants *RestaurantsService
	Menu        *MenuService
	Orders      *OrdersService
	Customers   *CustomersService
	Couriers    *CouriersService
	Operators   *OperatorsService
	Analytics   *AnalyticsService
	Kitchen     *KitchenService
}

// NewClient creates a Client against the given API base URL. A nil
// httpClient falls back to a plain client with a default timeout, which
// will dispatch unauthenticated.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[NewClient] baseURL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
	client.Restaurants = &RestaurantsService{client}
	client.Menu = &MenuService{client}
	client.Orders = &OrdersService{client}
	client.Customers = &CustomersService{client}
	client.Couriers = &CouriersService{client}
	client.Operators = &OperatorsService{client}
	client.Analytics = &AnalyticsService{client}
	client.Kitchen = &KitchenService{client}

	return client, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, query, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do performs one backend call and decodes the data section of the response
// envelope into out. Non-2xx responses become *Error values carrying the
// backend's message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "[Client.do] marshal %s", path)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.Wrapf(err, "[Client.do] new request %s", path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[Client.do] %s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "[Client.do] read body")
	}

	var env envelope
	_ = json.Unmarshal(data, &env)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrapf(err, "[Client.do] decode %s", path)
		}
	}
	return nil
}
