// Package api is the HTTP client for the task backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdxmph/tarefas-tui/internal/config"
	"github.com/pdxmph/tarefas-tui/internal/task"
)

// maxErrorBody bounds how much of an error response is read
const maxErrorBody = 64 << 10

// Client issues requests against the backend task endpoint. Each call is a
// single attempt; cancellation comes from the caller's context.
type Client struct {
	baseURL   string
	endpoints config.EndpointsConfig
	http      *http.Client
	log       zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithEndpoints overrides the endpoint layout
func WithEndpoints(ep config.EndpointsConfig) Option {
	return func(c *Client) {
		c.endpoints = ep
	}
}

// WithLogger sets the request logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a client for the backend rooted at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: config.DefaultEndpoints(),
		http:      &http.Client{},
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromConfig creates a client from the [api] section
func NewFromConfig(cfg config.APIConfig, opts ...Option) (*Client, error) {
	return New(cfg.BaseURL, append([]Option{WithEndpoints(cfg.Endpoints)}, opts...)...)
}

// Create registers a new task and returns the stored record
func (c *Client) Create(ctx context.Context, t task.Task) (task.Record, error) {
	if err := t.Validate(); err != nil {
		return task.Record{}, err
	}
	var rec task.Record
	err := c.do(ctx, "create", http.MethodPost, c.endpoints.Create, t, &rec)
	return rec, err
}

// ListAll returns every task in the order the backend sends them
func (c *Client) ListAll(ctx context.Context) ([]task.Record, error) {
	var recs []task.Record
	if err := c.do(ctx, "list", http.MethodGet, c.endpoints.List, nil, &recs); err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []task.Record{}
	}
	return recs, nil
}

// GetByID fetches one task
func (c *Client) GetByID(ctx context.Context, id string) (task.Record, error) {
	if id == "" {
		return task.Record{}, &TransportError{Op: "get", Err: ErrNotFound}
	}
	var rec task.Record
	err := c.do(ctx, "get", http.MethodGet, withID(c.endpoints.Get, id), nil, &rec)
	return rec, err
}

// Update overwrites the title, description and status of a task
func (c *Client) Update(ctx context.Context, id string, t task.Task) (task.Record, error) {
	if id == "" {
		return task.Record{}, &TransportError{Op: "update", Err: ErrNotFound}
	}
	if err := t.Validate(); err != nil {
		return task.Record{}, err
	}
	method := strings.ToUpper(c.endpoints.UpdateMethod)
	if method == "" {
		method = http.MethodPut
	}
	var rec task.Record
	err := c.do(ctx, "update", method, withID(c.endpoints.Update, id), t, &rec)
	return rec, err
}

// DeleteByID removes a task
func (c *Client) DeleteByID(ctx context.Context, id string) error {
	if id == "" {
		return &TransportError{Op: "delete", Err: ErrNotFound}
	}
	return c.do(ctx, "delete", http.MethodDelete, withID(c.endpoints.Delete, id), nil, nil)
}

func withID(tmpl, id string) string {
	return strings.ReplaceAll(tmpl, "{id}", url.PathEscape(id))
}

// do performs one request. body is JSON-encoded when non-nil; out is decoded
// from a 2xx response when non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("encoding request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("op", op).Str("method", method).Str("url", endpoint).Msg("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("op", op).Msg("request failed")
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		te := &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    parseErrorBody(raw),
		}
		if resp.StatusCode == http.StatusNotFound {
			te.Err = ErrNotFound
		}
		c.log.Debug().Str("op", op).Int("status", resp.StatusCode).Str("message", te.Message).Msg("backend rejected request")
		return te
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}

	c.log.Debug().Str("op", op).Int("status", resp.StatusCode).Msg("request succeeded")
	return nil
}
