package soulnest

import (
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/soulnest/client-go/internal/api"
)

// clientConfig holds configuration for the client. Options that only make
// sense at construction are ignored by UpdateConfig.
type clientConfig struct {
	api       *api.Config
	transport api.Transport

	// Construction only
	storage    CredentialStorage
	fallback   CredentialStorage
	logger     logrus.FieldLogger
	encrypter  Encrypter
	registerer prometheus.Registerer
	tracer     trace.TracerProvider
	propagator propagation.TextMapPropagator
	propagate  bool
	closers    []func() error
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.api.BaseURL = url
	}
}

// WithTimeout bounds each call, retries and backoff included.
// Zero disables the client timeout.
// Default: 15 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.api.Timeout = timeout
	}
}

// WithCredentials sends and stores cookies on every call.
func WithCredentials(enabled bool) Option {
	return func(c *clientConfig) {
		c.api.WithCredentials = enabled
	}
}

// WithDefaultHeaders merges headers into the default header set.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *clientConfig) {
		if c.api.DefaultHeaders == nil {
			c.api.DefaultHeaders = make(map[string]string, len(headers))
		}
		maps.Copy(c.api.DefaultHeaders, headers)
	}
}

// WithHeader sets one default header. An empty value removes it.
func WithHeader(key, value string) Option {
	return func(c *clientConfig) {
		if value == "" {
			delete(c.api.DefaultHeaders, key)
			return
		}
		if c.api.DefaultHeaders == nil {
			c.api.DefaultHeaders = make(map[string]string)
		}
		c.api.DefaultHeaders[key] = value
	}
}

// WithRetries sets the number of retries for retryable methods.
// Default: 3
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.api.Retry.Retries = count
	}
}

// WithRetryDelays sets the first backoff delay and the delay cap.
// Default: 300ms and 4s
func WithRetryDelays(initial, maxDelay time.Duration) Option {
	return func(c *clientConfig) {
		c.api.Retry.InitialDelay = initial
		c.api.Retry.MaxDelay = maxDelay
	}
}

// WithBackoffFactor sets the backoff multiplier. It must be at least 1.
// Default: 2
func WithBackoffFactor(factor float64) Option {
	return func(c *clientConfig) {
		c.api.Retry.BackoffFactor = factor
	}
}

// WithRetryMethods sets the HTTP methods that may be retried.
// Default: GET, PUT, DELETE, HEAD, OPTIONS
func WithRetryMethods(methods ...string) Option {
	return func(c *clientConfig) {
		upper := make([]string, len(methods))
		for i, m := range methods {
			upper[i] = strings.ToUpper(m)
		}
		c.api.Retry.Methods = upper
	}
}

// WithAutoUnwrap enables or disables envelope unwrapping.
// Default: true
func WithAutoUnwrap(enabled bool) Option {
	return func(c *clientConfig) {
		c.api.AutoUnwrap = enabled
	}
}

// WithUnwrap replaces the default envelope unwrap for every call.
func WithUnwrap(fn UnwrapFunc) Option {
	return func(c *clientConfig) {
		c.api.Unwrap = fn
	}
}

// WithTransport sets the transport used for every HTTP exchange.
func WithTransport(t Transport) Option {
	return func(c *clientConfig) {
		c.transport = t
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		if client != nil {
			c.transport = client
		}
	}
}

// WithAdminMode sends the sealed admin API key instead of the bearer token.
func WithAdminMode(enabled bool) Option {
	return func(c *clientConfig) {
		c.api.AdminMode = enabled
	}
}

// WithCredentialStorage sets where credentials are persisted.
// Default: in memory
func WithCredentialStorage(s CredentialStorage) Option {
	return func(c *clientConfig) {
		c.storage = s
	}
}

// WithDefaultCredentialStorage sets the storage used when neither
// WithCredentialStorage nor a settings file selects one.
func WithDefaultCredentialStorage(s CredentialStorage) Option {
	return func(c *clientConfig) {
		c.fallback = s
	}
}

// WithLogger sets the client logger.
// Default: logrus at warn level on stderr
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithEncrypter sets how the admin API key and passwords are sealed.
// Default: RSAOAEP
func WithEncrypter(e Encrypter) Option {
	return func(c *clientConfig) {
		c.encrypter = e
	}
}

// WithMetrics registers request metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *clientConfig) {
		c.registerer = reg
	}
}

// WithTracing records a client span for every attempt using tp.
func WithTracing(tp trace.TracerProvider) Option {
	return func(c *clientConfig) {
		c.tracer = tp
	}
}

// WithTracePropagation injects the caller's trace context into request
// headers. A nil propagator means the global one.
func WithTracePropagation(p propagation.TextMapPropagator) Option {
	return func(c *clientConfig) {
		c.propagate = true
		c.propagator = p
	}
}

// RequestOption configures a single call.
type RequestOption func(*api.RequestOptions)

// WithParams sets query parameters. WithQuery values win on collisions.
func WithParams(q *Query) RequestOption {
	return func(o *api.RequestOptions) {
		o.Params = q
	}
}

// WithQuery sets query parameters applied after WithParams.
func WithQuery(q *Query) RequestOption {
	return func(o *api.RequestOptions) {
		o.Query = q
	}
}

// WithBody sets the request body. Structured values are sent as JSON;
// []byte, string, io.Reader and *RawBody are sent as is.
func WithBody(body any) RequestOption {
	return func(o *api.RequestOptions) {
		o.Body = body
	}
}

// WithRequestHeader sets a header for this call only.
func WithRequestHeader(key, value string) RequestOption {
	return func(o *api.RequestOptions) {
		if o.Header == nil {
			o.Header = make(http.Header)
		}
		o.Header.Set(key, value)
	}
}

// WithRetryOverride adjusts a copy of the retry policy for this call.
func WithRetryOverride(fn func(*RetryPolicy)) RequestOption {
	return func(o *api.RequestOptions) {
		o.Retry = fn
	}
}

// WithDirect skips credential injection for this call.
func WithDirect() RequestOption {
	return func(o *api.RequestOptions) {
		o.Direct = true
	}
}

// WithUnwrapHook overrides the unwrap function for this call.
func WithUnwrapHook(fn UnwrapFunc) RequestOption {
	return func(o *api.RequestOptions) {
		o.Unwrap = fn
	}
}

func buildRequestOptions(opts []RequestOption) *api.RequestOptions {
	ro := &api.RequestOptions{}
	for _, opt := range opts {
		opt(ro)
	}
	return ro
}
