// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package directus is a typed read client for the Directus REST API.
package directus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single CMS request.
	DefaultTimeout = 10 * time.Second
	// MaxResponseSize caps the body read from the CMS.
	MaxResponseSize = 16 << 20
	// UserAgent is sent with every request.
	UserAgent = "cargo-site/1.0"
)

// Client reads items from a Directus instance.
type Client struct {
	base   *url.URL
	http   *http.Client
	token  string
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithToken sends a static bearer token with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for gateway failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client for the CMS at baseURL, which must be absolute.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute, got %q", baseURL)
	}

	c := &Client{
		base:   u,
		http:   &http.Client{Timeout: DefaultTimeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the CMS base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// ReadItem fetches one item of collection by id and decodes it into out.
func (c *Client) ReadItem(ctx context.Context, collection, id string, q Query, out any) error {
	return c.read(ctx, collection, c.base.JoinPath("items", collection, id), q, out)
}

// ReadItems fetches the items of collection matching q and decodes them into out.
func (c *Client) ReadItems(ctx context.Context, collection string, q Query, out any) error {
	return c.read(ctx, collection, c.base.JoinPath("items", collection), q, out)
}

// Ping checks that the CMS answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, c.base.JoinPath("server", "ping"))
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &GatewayError{Collection: "server/ping", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode != http.StatusOK {
		return &GatewayError{Collection: "server/ping", Status: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	return nil
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []apiError      `json:"errors"`
}

type apiError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

func (c *Client) read(ctx context.Context, collection string, endpoint *url.URL, q Query, out any) error {
	params, err := q.Values()
	if err != nil {
		return fmt.Errorf("encoding query for %s: %w", collection, err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		gerr := &GatewayError{Collection: collection, Err: err}
		c.logger.ErrorContext(ctx, "cms request failed", "collection", collection, "error", err)
		return gerr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		c.logger.ErrorContext(ctx, "cms response read failed", "collection", collection, "error", err)
		return &GatewayError{Collection: collection, Status: resp.StatusCode, Err: err}
	}

	c.logger.DebugContext(ctx, "cms request",
		"collection", collection,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusForbidden:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		gerr := &GatewayError{Collection: collection, Status: resp.StatusCode, Err: errors.New(errorMessage(body, resp.StatusCode))}
		c.logger.ErrorContext(ctx, "cms returned error status", "collection", collection, "status", resp.StatusCode, "error", gerr.Err)
		return gerr
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &GatewayError{Collection: collection, Status: resp.StatusCode, Err: fmt.Errorf("decoding envelope: %w", err)}
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return ErrNotFound
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &GatewayError{Collection: collection, Status: resp.StatusCode, Err: fmt.Errorf("decoding data: %w", err)}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, u *url.URL) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// errorMessage extracts the first API error message from body.
func errorMessage(body []byte, status int) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Errors) > 0 {
		msg := env.Errors[0].Message
		if code := env.Errors[0].Extensions.Code; code != "" {
			msg = code + ": " + msg
		}
		return msg
	}
	return http.StatusText(status)
}
