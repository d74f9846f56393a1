package submission

import (
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "http://localhost:8000"
	defaultHTTPTimeout = 30 * time.Second
	endpointPath       = "/api/recommendations/"
	maxErrorBody       = 64 << 10
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// Endpoint joins a base URL with the recommendations path. Trailing slashes
// on the base are dropped so "http://host/" and "http://host" agree.
func Endpoint(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return strings.TrimRight(baseURL, "/") + endpointPath
}
