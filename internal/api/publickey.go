package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// PublicKeyPath is the endpoint serving the server's public key.
const PublicKeyPath = "/api/security/public-key"

// ErrPublicKeyFetch is returned when the public key cannot be fetched.
var ErrPublicKeyFetch = errors.New("failed to fetch public key")

// PublicKeyProvider supplies the server's public key.
type PublicKeyProvider interface {
	PublicKey(ctx context.Context) (string, error)
}

// PublicKeyCache fetches the server's public key once and keeps it until
// Clear is called. Concurrent misses share a single fetch.
type PublicKeyCache struct {
	config *ConfigStore
	group  singleflight.Group
	key    atomic.Pointer[string]
}

// NewPublicKeyCache creates an empty cache that fetches from the base URL
// and transport of config.
func NewPublicKeyCache(config *ConfigStore) *PublicKeyCache {
	return &PublicKeyCache{config: config}
}

// PublicKey returns the cached key, fetching it first if needed. The shared
// fetch is detached from ctx so one caller giving up does not fail the
// others waiting on it. Each caller still returns as soon as its own ctx is
// done.
func (c *PublicKeyCache) PublicKey(ctx context.Context) (string, error) {
	if k := c.key.Load(); k != nil {
		return *k, nil
	}

	ch := c.group.DoChan("public-key", func() (any, error) {
		if k := c.key.Load(); k != nil {
			return *k, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout())
		defer cancel()

		key, err := c.fetch(fetchCtx)
		if err != nil {
			return "", err
		}
		c.key.Store(&key)
		return key, nil
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrPublicKeyFetch, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *PublicKeyCache) fetchTimeout() time.Duration {
	if t := c.config.Load().Timeout; t > 0 {
		return t
	}
	return DefaultTimeout
}

// Cached returns the cached key without fetching.
func (c *PublicKeyCache) Cached() (string, bool) {
	if k := c.key.Load(); k != nil {
		return *k, true
	}
	return "", false
}

// Clear drops the cached key. The next PublicKey call fetches again.
func (c *PublicKeyCache) Clear() {
	c.key.Store(nil)
}

func (c *PublicKeyCache) fetch(ctx context.Context) (string, error) {
	cfg := c.config.Load()
	url := BuildURL(cfg.BaseURL, PublicKeyPath, nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPublicKeyFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	transport := cfg.Transport
	if transport == nil {
		transport = DefaultTransport
	}
	resp, err := transport.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPublicKeyFetch, err)
	}
	if resp.Body != nil {
		defer resp.Body.Close()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrPublicKeyFetch, resp.StatusCode)
	}

	var body []byte
	if resp.Body != nil {
		if body, err = io.ReadAll(resp.Body); err != nil {
			return "", fmt.Errorf("%w: %w", ErrPublicKeyFetch, err)
		}
	}

	var envelope struct {
		Success bool   `json:"success"`
		Data    string `json:"data"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPublicKeyFetch, err)
	}
	if !envelope.Success || envelope.Data == "" {
		if envelope.Message != "" {
			return "", fmt.Errorf("%w: %s", ErrPublicKeyFetch, envelope.Message)
		}
		return "", fmt.Errorf("%w: empty key in response", ErrPublicKeyFetch)
	}
	return envelope.Data, nil
}
