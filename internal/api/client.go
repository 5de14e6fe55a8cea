// Package api is the HTTP transport for the OpsDeck admin API. Each resource
// gets a namespace (Users, Servers, ...) exposing its list, detail, and action
// endpoints; all of them share one Client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/opsdeck/opsdeck/pkg/model"
)

// Client is an HTTP client for the OpsDeck admin API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates an admin API client. token may be empty for anonymous
// sandbox use.
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{},
		Logger:     logger,
	}
}

// errorEnvelope is the body of every non-2xx response.
type errorEnvelope struct {
	Error *model.APIError `json:"error"`
}

// do performs a request and decodes a JSON response into out (when non-nil).
// Non-2xx responses are returned as *model.APIError so callers can surface the
// server-supplied message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	data, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// doRaw performs a request and returns the raw response body. Used directly by
// the audit export endpoint, which returns a blob rather than JSON.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		c.Logger.Debug("HTTP request body", "body", string(data))
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	c.Logger.Debug("HTTP request", "method", method, "url", u)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.Logger.Debug("HTTP response", "status", resp.StatusCode, "bytes", len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		if err := json.Unmarshal(respBody, &env); err == nil && env.Error != nil {
			return nil, env.Error
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// listQuery merges pagination with a filter's query parameters.
func listQuery(page, size int, f model.Filter) url.Values {
	v := f.Query()
	v.Set("page", strconv.Itoa(page))
	v.Set("size", strconv.Itoa(size))
	return v
}
