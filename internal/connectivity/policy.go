// Package connectivity decides, per operation, whether the terminal operates
// offline.
package connectivity

import (
	"context"
	"io"
	"net/http"
	"time"

	"pos-terminal/internal/settings"
)

// ProbeTimeout bounds the reachability probe.
const ProbeTimeout = 3000 * time.Millisecond

type Policy struct {
	settings *settings.Settings
	client   *http.Client
}

func New(s *settings.Settings) *Policy {
	return &Policy{settings: s, client: &http.Client{}}
}

// ShouldOperateOffline reports whether the next operation must use the local
// cache. The manual offline flag always wins; otherwise the answer comes from
// a fresh bounded probe of the server's health endpoint. The result is never
// cached across calls and probe failures are swallowed: this returns a
// boolean, never an error.
func (p *Policy) ShouldOperateOffline(ctx context.Context) bool {
	if p.settings.IsOfflineMode() {
		return true
	}
	return !p.probe(ctx)
}

func (p *Policy) probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.settings.BaseURL(ctx)+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// SetOfflineMode persists the manual override; it always wins over the probe.
func (p *Policy) SetOfflineMode(ctx context.Context, on bool) error {
	return p.settings.SetOfflineMode(ctx, on)
}

func (p *Policy) IsOfflineMode() bool {
	return p.settings.IsOfflineMode()
}
