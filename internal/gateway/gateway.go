// Package gateway is the single place HTTP requests to the storefront API
// are built and authenticated.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource yields the current session token, or "" when logged out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Doer sends a request to the storefront API. *Client implements it.
type Doer interface {
	Do(ctx context.Context, path string, req Request) (*http.Response, error)
}

// Request describes one call. A nil Body sends no body, an empty non-nil
// Body sends an empty payload.
type Request struct {
	Method string
	Header http.Header
	Body   []byte
}

// Client prefixes paths with a fixed origin and attaches the bearer token.
// It never retries and never inspects the status code.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	log     logrus.FieldLogger
}

var _ Doer = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the request logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a gateway for baseURL. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		log:     discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the origin every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends the request and returns the raw response. The caller owns the body.
func (c *Client) Do(ctx context.Context, path string, req Request) (*http.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for k, vs := range req.Header {
		httpReq.Header[http.CanonicalHeaderKey(k)] = vs
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read session token: %w", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).WithError(err).Debug("request failed")
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debug("request completed")
	return resp, nil
}

// Accept returns a header set asking for the given media type.
func Accept(mediaType string) http.Header {
	return http.Header{"Accept": []string{mediaType}}
}

// JSONBody marshals v for use as Request.Body.
func JSONBody(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return b, nil
}

// DecodeJSON reads resp's body into v and closes it.
func DecodeJSON(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Discard drains and closes resp's body so the connection can be reused.
func Discard(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
