package soulnest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/soulnest/client-go/internal/api"
	"github.com/soulnest/client-go/internal/credentials"
	"github.com/soulnest/client-go/internal/crypto"
	"github.com/soulnest/client-go/internal/telemetry"
)

// Client is the soulnest API client. It is safe for concurrent use.
type Client struct {
	dispatcher *api.Dispatcher
	config     *api.ConfigStore
	creds      *credentials.Store
	keys       *api.PublicKeyCache
	encrypter  Encrypter
	metrics    *telemetry.Metrics
	tracer     trace.Tracer
	jar        http.CookieJar
	logger     logrus.FieldLogger
	closers    []func() error

	mu     sync.RWMutex
	closed bool
}

// New creates a client. Persisted credentials are loaded before it returns.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{api: api.DefaultConfig()}
	for _, opt := range opts {
		opt(cfg)
	}
	return newClient(cfg)
}

func newClient(cfg *clientConfig) (*Client, error) {
	logger := cfg.logger
	if logger == nil {
		logger = telemetry.NewLogger(telemetry.LoggerConfig{})
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err) //coverage:ignore
	}

	c := &Client{
		encrypter: cfg.encrypter,
		jar:       jar,
		logger:    logger,
		closers:   cfg.closers,
	}
	if c.encrypter == nil {
		c.encrypter = crypto.RSAOAEP{}
	}
	if cfg.registerer != nil {
		c.metrics = telemetry.NewMetrics(cfg.registerer)
	}
	if cfg.tracer != nil {
		c.tracer = cfg.tracer.Tracer(telemetry.TracerName)
	}

	cfg.api.Transport = c.wrapTransport(cfg.transport)
	store, err := api.NewConfigStore(cfg.api)
	if err != nil {
		c.runClosers()
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.config = store

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout(cfg.api))
	defer cancel()

	storage := cfg.storage
	if storage == nil {
		storage = cfg.fallback
	}
	creds, err := credentials.New(ctx, storage, credentials.WithLogger(logger))
	if err != nil {
		c.runClosers()
		return nil, err
	}
	c.creds = creds
	c.keys = api.NewPublicKeyCache(store)

	pipeline := api.NewPipeline()
	if cfg.propagate {
		pipeline.AddRequest(telemetry.PropagateTrace(cfg.propagator))
	}
	if c.metrics != nil {
		pipeline.AddResponse(c.metrics.ResponseInterceptor())
	}

	c.dispatcher = api.NewDispatcher(store, creds, c.keys, c.encrypter,
		api.WithLogger(logger),
		api.WithPipeline(pipeline),
	)
	return c, nil
}

func loadTimeout(cfg *api.Config) time.Duration {
	if cfg.Timeout > 0 {
		return cfg.Timeout
	}
	return api.DefaultTimeout
}

// wrapTransport layers instrumentation and the cookie jar over base.
func (c *Client) wrapTransport(base api.Transport) api.Transport {
	if base == nil {
		base = api.DefaultTransport
	}
	if c.metrics != nil || c.tracer != nil {
		base = telemetry.InstrumentTransport(base, c.metrics, c.tracer)
	}
	return &api.CookieTransport{Base: base, Jar: c.jar}
}

// Do sends a request and decodes the payload into out. A nil out discards
// the payload. Failures are returned as *Error, except for invalid input
// such as an unknown method or an unencodable body.
func (c *Client) Do(ctx context.Context, method, path string, out any, opts ...RequestOption) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	return c.dispatcher.Do(ctx, method, path, buildRequestOptions(opts), out)
}

// Config returns a snapshot of the current configuration.
func (c *Client) Config() *Config {
	return c.config.Load()
}

// UpdateConfig applies opts over the current configuration in one step.
// Fields not named by opts keep their values. Construction-only options
// such as WithLogger and WithCredentialStorage are ignored.
func (c *Client) UpdateConfig(opts ...Option) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	err := c.config.Update(func(cfg *api.Config) {
		cc := &clientConfig{api: cfg}
		for _, opt := range opts {
			opt(cc)
		}
		if cc.transport != nil {
			cfg.Transport = c.wrapTransport(cc.transport)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SetBearerToken stores the bearer token. An empty token clears it.
func (c *Client) SetBearerToken(ctx context.Context, token string) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	return c.creds.SetBearerToken(ctx, token)
}

// BearerToken returns the stored bearer token, or "" if none is set.
func (c *Client) BearerToken() string {
	return c.creds.BearerToken()
}

// SetAdminAPIKey stores the plaintext admin API key. It is sealed with the
// server public key on every admin mode request. An empty key clears it.
func (c *Client) SetAdminAPIKey(ctx context.Context, key string) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	return c.creds.SetAdminAPIKey(ctx, key)
}

// AdminAPIKey returns the stored admin API key, or "" if none is set.
func (c *Client) AdminAPIKey() string {
	return c.creds.AdminAPIKey()
}

// ClearCredentials removes the bearer token and the admin API key.
func (c *Client) ClearCredentials(ctx context.Context) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	return c.creds.ClearAll(ctx)
}

// PublicKey returns the server public key, fetching it on first use.
func (c *Client) PublicKey(ctx context.Context) (string, error) {
	if err := c.checkClosed(); err != nil {
		return "", err
	}
	return c.keys.PublicKey(ctx)
}

// ClearCachedPublicKey drops the cached public key.
func (c *Client) ClearCachedPublicKey() {
	c.keys.Clear()
}

// Encrypt seals plaintext with the server public key using the configured
// Encrypter. Failures are ENCRYPTION_ERROR.
func (c *Client) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if err := c.checkClosed(); err != nil {
		return "", err
	}
	publicKey, err := c.keys.PublicKey(ctx)
	if err != nil {
		return "", &Error{Code: CodeEncryption, Err: err}
	}
	sealed, err := c.encrypter.Encrypt(plaintext, publicKey)
	if err != nil {
		return "", &Error{Code: CodeEncryption, Err: err}
	}
	return sealed, nil
}

// AddRequestInterceptor appends a request interceptor. It applies to calls
// started after it is added.
func (c *Client) AddRequestInterceptor(i RequestInterceptor) {
	c.dispatcher.Pipeline().AddRequest(i)
}

// AddResponseInterceptor appends a response interceptor. It applies to
// calls started after it is added.
func (c *Client) AddResponseInterceptor(i ResponseInterceptor) {
	c.dispatcher.Pipeline().AddResponse(i)
}

// Close releases resources held by the client, such as a Redis connection
// opened by NewFromFile. Further calls return ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	return c.runClosers()
}

func (c *Client) runClosers() error {
	var errs []error
	for _, fn := range c.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}
