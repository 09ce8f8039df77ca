package api

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"sync"
	"sync/atomic"
	"time"
)

// Defaults for a new Config.
const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 15 * time.Second
)

// Config is the active client configuration.
type Config struct {
	// BaseURL is prefixed to every request path.
	BaseURL string
	// Timeout bounds a whole call, retries and backoff included. Zero disables it.
	Timeout time.Duration
	// WithCredentials sends and stores cookies for every call.
	WithCredentials bool
	// DefaultHeaders are set on every request before per-call headers.
	DefaultHeaders map[string]string
	// Retry is the global retry policy.
	Retry RetryPolicy
	// AutoUnwrap enables envelope unwrapping.
	AutoUnwrap bool
	// Unwrap replaces the default envelope unwrap. Per-call hooks take precedence.
	Unwrap UnwrapFunc
	// Transport performs the HTTP exchange. nil means DefaultTransport.
	Transport Transport
	// AdminMode sends the sealed admin API key instead of the bearer token.
	AdminMode bool
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
		DefaultHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		Retry:      DefaultRetryPolicy(),
		AutoUnwrap: true,
	}
}

// Clone returns a deep copy of c. Function and interface fields are shared.
func (c *Config) Clone() *Config {
	out := *c
	out.DefaultHeaders = maps.Clone(c.DefaultHeaders)
	out.Retry = c.Retry.Clone()
	return &out
}

// Validate reports whether the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: scheme and host are required", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	if err := c.Retry.Validate(); err != nil {
		return fmt.Errorf("invalid retry policy: %w", err)
	}
	return nil
}

// ConfigStore holds the active Config. Readers always see a complete value;
// updates replace it in one step.
type ConfigStore struct {
	mu  sync.Mutex // serializes writers
	cur atomic.Pointer[Config]
}

// NewConfigStore creates a store holding cfg. A nil cfg means DefaultConfig.
func NewConfigStore(cfg *Config) (*ConfigStore, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &ConfigStore{}
	s.cur.Store(cfg.Clone())
	return s, nil
}

// Load returns a copy of the current configuration.
func (s *ConfigStore) Load() *Config {
	return s.cur.Load().Clone()
}

// Update applies fn to a copy of the current configuration and stores the
// result if it validates. Fields fn leaves alone keep their values, so
// callers merge by assigning only what they change.
func (s *ConfigStore) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cur.Load().Clone()
	fn(next)
	if err := next.Validate(); err != nil {
		return err
	}
	s.cur.Store(next)
	return nil
}
