package connectivity

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Prober checks whether the server is reachable.
type Prober interface {
	Probe(ctx context.Context) bool
}

// HTTPProber issues GET {serverURL}/health and treats any 2xx as online.
type HTTPProber struct {
	url    string
	client *http.Client
}

func NewHTTPProber(serverURL string, timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPProber{
		url:    serverURL + "/health",
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProber) Probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
