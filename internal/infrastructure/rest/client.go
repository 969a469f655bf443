// Package rest is the HTTP boundary to the NaayiKhata backend. All JSON
// decoding, error-shape sniffing, and pagination-envelope normalization
// happens here; the layers above only see typed results and the error
// taxonomy from errors.go. No call is ever retried automatically.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/pkg/logger"
)

const defaultTimeout = 15 * time.Second

// Client talks to one backend. Auth rides on the cookie jar (the backend
// sets httponly cookies on login); SetToken adds a bearer header for
// sessions restored from the on-disk token cache, where no jar survives.
type Client struct {
	http *resty.Client
	log  *logger.Logger
}

// New builds a client for the given base URL, e.g. "https://api.naayikhata.in".
func New(baseURL string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	jar, _ := cookiejar.New(nil)
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetCookieJar(jar)

	return &Client{http: httpClient, log: log}
}

// SetToken attaches a bearer token to every subsequent request. Empty
// clears it.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// do runs one request and funnels every failure through the taxonomy.
// out, when non-nil, receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, path string, body, out any, query map[string]string) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("transport failure")
		return &NetworkError{Err: err}
	}
	if resp.IsError() {
		apiErr := decodeAPIError(resp.StatusCode(), resp.Body())
		c.log.Debug().Int("status", resp.StatusCode()).Str("path", path).Msg("api error")
		return apiErr
	}
	if out == nil || resp.StatusCode() == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("rest: decode %s %s: %w", method, path, err)
	}
	return nil
}

// decodePage normalizes a list body into the canonical Page shape. The
// backend answers some list endpoints with a bare array and some with the
// {items, total, has_more} envelope; both arrive here, one shape leaves.
func decodePage[T any](raw []byte) (dto.Page[T], error) {
	var page dto.Page[T]

	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		page.Items = items
		page.Total = len(items)
		return page, nil
	}

	var envelope dto.ListEnvelope[T]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return page, fmt.Errorf("rest: decode list body: %w", err)
	}
	page.Items = envelope.Items
	page.Total = envelope.Total
	page.HasMore = envelope.HasMore
	return page, nil
}

// doRaw is do for endpoints whose body shape must be inspected before
// decoding (the array-or-envelope lists).
func (c *Client) doRaw(ctx context.Context, method, path string, query map[string]string) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.IsError() {
		return nil, decodeAPIError(resp.StatusCode(), resp.Body())
	}
	return resp.Body(), nil
}
