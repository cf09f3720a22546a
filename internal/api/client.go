package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"characli/internal/model"
)

const (
	// MaxResponseSize limits response bodies to 50MB to prevent memory exhaustion
	MaxResponseSize = 50 * 1024 * 1024

	// DefaultTimeout is the transport timeout applied when none is configured
	DefaultTimeout = 30 * time.Second
)

// Client issues requests against the catalog backend. Construct one with
// New and pass it to collaborators explicitly; there is no package-level
// instance. Calls are independent of each other: no shared mutable state,
// no retry, no deduplication of identical in-flight requests.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithTransport overrides the underlying round-tripper. Tests use this to
// stub the network.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request executes the endpoint and decodes the JSON response body into T.
// Decoding is all-or-nothing: on any failure the zero value of T is
// returned together with one of the errors from errors.go. A URL that does
// not resolve fails before any network I/O.
func Request[T any](ctx context.Context, c *Client, ep Endpoint) (T, error) {
	var zero T

	reqURL, err := ep.URL(c.baseURL)
	if err != nil {
		return zero, err
	}

	desc := ep.descriptor()

	var bodyReader io.Reader
	if desc.Body != nil {
		payload, err := json.Marshal(desc.Body)
		if err != nil {
			return zero, &UnknownError{Cause: err}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, reqURL, bodyReader)
	if err != nil {
		return zero, &UnknownError{Cause: err}
	}
	for key, value := range desc.Headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return zero, &UnknownError{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return zero, &UnknownError{Cause: err}
	}

	c.log.Debug().
		Str("method", desc.Method).
		Str("url", reqURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request complete")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, &ServerError{StatusCode: resp.StatusCode}
	}

	if len(body) == 0 {
		return zero, ErrEmptyResponse
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		// The raw parse failure stays in the diagnostics log; callers only
		// see the classified error.
		c.log.Debug().Err(err).Str("url", reqURL).Msg("response decode failed")
		return zero, ErrDecoding
	}

	return out, nil
}

// FetchCharacters retrieves the full character catalog, unwrapping the
// {"data": [...]} envelope.
func (c *Client) FetchCharacters(ctx context.Context) ([]model.Character, error) {
	resp, err := Request[model.CharactersResponse](ctx, c, EndpointCharacters)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
