// client.go
//
// A community catalog service for speedcubing algorithms
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of cubehub.
// cubehub is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// cubehub is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with cubehub.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package remote talks to the hosted collection store over its PostgREST
// interface. It knows nothing about caching or fallbacks.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/localnerve/cubehub/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// Collection names a remote table.
type Collection string

const (
	Algorithms Collection = "algorithms"
	Comments   Collection = "comments"
)

// maxErrorBody bounds how much of a failed response is kept in a StatusError.
const maxErrorBody = 512

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Collection Collection
	Method     string
	Code       int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote %s %s: status %d: %s", e.Method, e.Collection, e.Code, e.Body)
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables limiting
	// Transport overrides the base round tripper. Tests use it.
	Transport http.RoundTripper
}

// Client is a minimal PostgREST client for the algorithms and comments tables.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
	limiter *rate.Limiter
}

// New builds a Client. BaseURL and Token must be non-empty.
func New(opts Options) *Client {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: opts.BaseURL,
		token:   opts.Token,
		timeout: timeout,
		http: &http.Client{
			Transport: otelhttp.NewTransport(base),
			Timeout:   timeout,
		},
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(1, int(opts.RateLimit)))
	}
	return c
}

// NewForConfig returns nil when either remote setting is blank.
func NewForConfig(cfg *config.Config) *Client {
	if !cfg.CloudEnabled() {
		return nil
	}
	return New(Options{
		BaseURL:   cfg.RemoteURL,
		Token:     cfg.RemoteToken,
		Timeout:   cfg.RemoteTimeout,
		RateLimit: cfg.RemoteRateLimit,
	})
}

// BaseURL returns the configured project URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) endpoint(coll Collection) string {
	return c.baseURL + "/rest/v1/" + url.PathEscape(string(coll))
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.token)
	req.Header.Set("Authorization", "Bearer "+c.token)
	return req, nil
}

func (c *Client) do(req *http.Request, coll Collection) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("remote %s %s: %w", req.Method, coll, err)
		}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote %s %s: %w", req.Method, coll, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Collection: coll, Method: req.Method, Code: resp.StatusCode, Body: string(msg)}
	}
	return resp, nil
}

// List fetches every row of coll, newest first, and decodes the array into dest.
func (c *Client) List(ctx context.Context, coll Collection, dest any) error {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")

	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint(coll)+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req, coll)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("remote GET %s: decode: %w", coll, err)
	}
	return nil
}

// Insert posts record with created_at set to createdAt. The record must encode
// as a JSON object.
func (c *Client) Insert(ctx context.Context, coll Collection, record any, createdAt time.Time) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("remote POST %s: encode: %w", coll, err)
	}
	var row map[string]any
	if err := json.Unmarshal(raw, &row); err != nil {
		return fmt.Errorf("remote POST %s: record is not an object: %w", coll, err)
	}
	row["created_at"] = createdAt.UTC().Format(time.RFC3339Nano)
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("remote POST %s: encode: %w", coll, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint(coll), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if coll == Algorithms {
		req.Header.Set("Prefer", "return=minimal")
	}
	resp, err := c.do(req, coll)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// pingTimeout bounds Ping below the request timeout so health checks stay quick.
const pingTimeout = 1500 * time.Millisecond

// Ping checks the project host accepts TCP connections. It does not call the
// REST API, so it costs no request against the rate limit or the project quota.
func (c *Client) Ping(ctx context.Context) error {
	address, err := projectAddress(c.baseURL)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, min(c.timeout, pingTimeout))
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}

// projectAddress turns the project URL into host:port. Hosted projects are
// https on 443; self-hosted PostgREST is often plain http.
func projectAddress(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid remote URL: %w", err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("invalid remote URL %q: no host", baseURL)
	}
	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		case "http":
			port = "80"
		default:
			return "", fmt.Errorf("invalid remote URL %q: unsupported scheme %q", baseURL, u.Scheme)
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}
