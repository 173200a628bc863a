// Package settings persists terminal settings (API base URL, manual offline
// flag) in the local kv store, with config defaults as fallback.
package settings

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"pos-terminal/internal/kv"
)

const (
	baseURLKey     = "settings:api_base_url"
	offlineModeKey = "settings:offline_mode"
)

type Settings struct {
	kv             kv.KV
	defaultBaseURL string

	mu      sync.RWMutex
	offline bool
}

func New(kvs kv.KV, defaultBaseURL string) *Settings {
	return &Settings{kv: kvs, defaultBaseURL: defaultBaseURL}
}

// Load pulls the persisted offline flag into memory. Called once at startup;
// afterwards SetOfflineMode keeps both copies in step.
func (s *Settings) Load(ctx context.Context) error {
	val, err := s.kv.Get(ctx, offlineModeKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.offline = val == "true"
	s.mu.Unlock()
	return nil
}

// BaseURL returns the persisted API base URL, or the configured default when
// none is stored. Read fresh on every call so a change takes effect on the
// next request without a restart.
func (s *Settings) BaseURL(ctx context.Context) string {
	val, err := s.kv.Get(ctx, baseURLKey)
	if err != nil || strings.TrimSpace(val) == "" {
		return strings.TrimRight(s.defaultBaseURL, "/")
	}
	return strings.TrimRight(strings.TrimSpace(val), "/")
}

func (s *Settings) SetBaseURL(ctx context.Context, url string) error {
	return s.kv.Set(ctx, baseURLKey, strings.TrimSpace(url))
}

// SetOfflineMode persists the manual offline flag and updates the in-memory
// copy synchronously.
func (s *Settings) SetOfflineMode(ctx context.Context, on bool) error {
	val := "false"
	if on {
		val = "true"
	}
	if err := s.kv.Set(ctx, offlineModeKey, val); err != nil {
		return err
	}
	s.mu.Lock()
	s.offline = on
	s.mu.Unlock()
	log.Printf("[Settings] manual offline mode set to %v", on)
	return nil
}

func (s *Settings) IsOfflineMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offline
}
