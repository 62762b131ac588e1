package ai

import (
	"context"
	"net/http"
	"time"
)

// NetworkProbe answers whether the network is currently usable. Probed live
// before every assistant action and every queue flush.
type NetworkProbe interface {
	HasNetwork(ctx context.Context) bool
}

const defaultProbeURL = "https://generativelanguage.googleapis.com"

// HTTPProbe checks reachability of the provider host. Any HTTP response
// counts as "network present"; only a failed exchange counts as offline.
type HTTPProbe struct {
	url    string
	client *http.Client
}

// NewHTTPProbe builds a probe against rawURL, defaulting to the Gemini host.
func NewHTTPProbe(rawURL string) *HTTPProbe {
	if rawURL == "" {
		rawURL = defaultProbeURL
	}
	return &HTTPProbe{
		url:    rawURL,
		client: &http.Client{Timeout: 3 * time.Second},
	}
}

// HasNetwork implements NetworkProbe.
func (p *HTTPProbe) HasNetwork(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
