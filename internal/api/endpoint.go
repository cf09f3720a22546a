package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Endpoint is a closed enumeration of the backend endpoints the client
// knows how to call. Adding an endpoint means adding a constant and one
// case arm in descriptor().
type Endpoint int

const (
	// EndpointCharacters is GET {baseURL}/characters.
	EndpointCharacters Endpoint = iota
)

// QueryParam is one key/value pair of a query string. Parameters keep the
// order they are declared in.
type QueryParam struct {
	Key   string
	Value string
}

// descriptor is the fully resolved shape of one request.
type descriptor struct {
	Path    string
	Method  string
	Headers map[string]string
	Query   []QueryParam
	Body    map[string]any
}

func (e Endpoint) descriptor() descriptor {
	switch e {
	case EndpointCharacters:
		return descriptor{
			Path:    "characters",
			Method:  http.MethodGet,
			Headers: map[string]string{"Content-Type": "application/json"},
		}
	}
	return descriptor{}
}

// URL resolves the endpoint against baseURL. It returns ErrInvalidURL when
// baseURL plus path does not form a syntactically valid absolute URL.
func (e Endpoint) URL(baseURL string) (string, error) {
	desc := e.descriptor()

	full := strings.TrimSuffix(baseURL, "/") + "/" + desc.Path

	parsed, err := url.Parse(full)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("%w: missing hostname", ErrInvalidURL)
	}

	if len(desc.Query) > 0 {
		full += "?" + encodeQuery(desc.Query)
	}

	return full, nil
}

// encodeQuery percent-encodes parameters, preserving declaration order.
func encodeQuery(params []QueryParam) string {
	pairs := make([]string, 0, len(params))
	for _, q := range params {
		pairs = append(pairs, url.QueryEscape(q.Key)+"="+url.QueryEscape(q.Value))
	}
	return strings.Join(pairs, "&")
}
