package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soulnest/client-go/internal/apierrors"
)

// HeaderRequestID is the response header carrying the server request id.
const HeaderRequestID = "X-Request-Id"

// ErrInvalidMethod is returned for HTTP methods the dispatcher does not send.
var ErrInvalidMethod = errors.New("unsupported HTTP method")

// errClientTimeout is the cancellation cause when Config.Timeout elapses.
var errClientTimeout = errors.New("client timeout exceeded")

var methods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodDelete:  true,
	http.MethodPatch:   true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// RequestOptions are the per-call settings of Dispatcher.Do.
type RequestOptions struct {
	// Params and Query are merged into the query string; Query wins on collisions.
	Params *Query
	Query  *Query
	// Body is sent as JSON unless it is []byte, string, io.Reader or *RawBody.
	Body any
	// Header is applied over the default headers.
	Header http.Header
	// Retry adjusts a copy of the global retry policy.
	Retry func(*RetryPolicy)
	// Direct skips credential injection.
	Direct bool
	// Unwrap overrides the configured unwrap for this call.
	Unwrap UnwrapFunc
}

// RawBody is a request body sent as is with its own content type,
// such as a multipart form.
type RawBody struct {
	ContentType string
	Data        []byte
}

// Dispatcher sends requests through the pipeline described in the package
// documentation.
type Dispatcher struct {
	config   *ConfigStore
	creds    Credentials
	keys     PublicKeyProvider
	enc      Encrypter
	pipeline *Pipeline
	logger   logrus.FieldLogger
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger. The default discards everything below warn.
func WithLogger(l logrus.FieldLogger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithPipeline sets the interceptor pipeline.
func WithPipeline(p *Pipeline) DispatcherOption {
	return func(d *Dispatcher) {
		d.pipeline = p
	}
}

// WithSleep replaces the backoff sleep.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) DispatcherOption {
	return func(d *Dispatcher) {
		d.sleep = fn
	}
}

// NewDispatcher creates a dispatcher. creds, keys and enc may be nil when
// the caller never needs credential injection.
func NewDispatcher(config *ConfigStore, creds Credentials, keys PublicKeyProvider, enc Encrypter, opts ...DispatcherOption) *Dispatcher {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	d := &Dispatcher{
		config:   config,
		creds:    creds,
		keys:     keys,
		enc:      enc,
		pipeline: NewPipeline(),
		logger:   logger,
		sleep:    sleep,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config returns the dispatcher's configuration store.
func (d *Dispatcher) Config() *ConfigStore {
	return d.config
}

// Pipeline returns the dispatcher's interceptor pipeline.
func (d *Dispatcher) Pipeline() *Pipeline {
	return d.pipeline
}

// Do sends the request and decodes the resulting payload into out.
// A nil out discards the payload.
func (d *Dispatcher) Do(ctx context.Context, method, path string, opts *RequestOptions, out any) error {
	data, err := d.Send(ctx, method, path, opts)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Send sends the request and returns the payload as produced by the last
// response interceptor. A nil payload means the body was empty.
func (d *Dispatcher) Send(ctx context.Context, method, path string, opts *RequestOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method = strings.ToUpper(method)
	if !methods[method] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	cfg := d.config.Load()
	start := d.now()

	header := make(http.Header)
	for k, v := range cfg.DefaultHeaders {
		header.Set(k, v)
	}
	for k, vs := range opts.Header {
		header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}

	if !opts.Direct {
		if err := d.authorize(ctx, cfg, header); err != nil {
			return nil, err
		}
	}

	body, err := encodeBody(opts.Body, header)
	if err != nil {
		return nil, err
	}

	rc := &RequestContext{
		URL:    BuildURL(cfg.BaseURL, path, opts.Params.Merge(opts.Query)),
		Method: method,
		Header: header,
		Init: RequestInit{
			Body:            body,
			WithCredentials: cfg.WithCredentials,
		},
	}
	rc, err = d.pipeline.RunRequest(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("request interceptor failed: %w", err)
	}

	var cancel context.CancelFunc
	if cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeoutCause(ctx, cfg.Timeout, errClientTimeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	policy := cfg.Retry.Resolve(method, opts.Retry)
	log := d.logger.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
	})

	var lastErr error
	for attempt := 1; attempt <= policy.Retries+1; attempt++ {
		log.WithField("attempt", attempt).Debug("sending request")

		data, err := d.attempt(ctx, cfg, opts, rc, attempt, start)
		if err == nil {
			return data, nil
		}
		if apierrors.IsTerminal(err) {
			return nil, err
		}
		if isAbort(ctx, err) {
			return nil, abortError(ctx, path, err)
		}

		lastErr = err
		if attempt > policy.Retries {
			break
		}

		delay := policy.Delay(attempt)
		log.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"delay":   delay,
		}).Warn("request failed, retrying")

		if err := d.sleep(ctx, delay); err != nil {
			return nil, abortError(ctx, path, err)
		}
	}

	return nil, &apierrors.Error{
		Code:    apierrors.CodeNetwork,
		Message: "network or unknown error",
		Err:     lastErr,
	}
}

// authorize injects the credential header for the configured mode.
func (d *Dispatcher) authorize(ctx context.Context, cfg *Config, header http.Header) error {
	if d.creds == nil {
		return nil
	}

	if !cfg.AdminMode {
		if token := d.creds.BearerToken(); token != "" {
			SetBearer(header, token)
		}
		return nil
	}

	adminKey := d.creds.AdminAPIKey()
	if adminKey == "" {
		d.logger.Warn("admin mode enabled without admin API key")
		return nil
	}

	sealed, err := d.sealAdminKey(ctx, adminKey)
	if err != nil {
		d.logger.WithError(err).Error("failed to encrypt admin API key")
		return &apierrors.Error{
			Code: apierrors.CodeEncryption,
			Err:  err,
		}
	}
	header.Set(HeaderAdminAPIKey, sealed)
	return nil
}

func (d *Dispatcher) sealAdminKey(ctx context.Context, adminKey string) (string, error) {
	if d.keys == nil || d.enc == nil {
		return "", errors.New("no public key provider or encrypter configured")
	}
	publicKey, err := d.keys.PublicKey(ctx)
	if err != nil {
		return "", err
	}
	return d.enc.Encrypt(adminKey, publicKey)
}

// attempt performs one network call and processes its response.
func (d *Dispatcher) attempt(ctx context.Context, cfg *Config, opts *RequestOptions, rc *RequestContext, attempt int, start time.Time) (json.RawMessage, error) {
	var body io.Reader
	if rc.Init.Body != nil {
		body = bytes.NewReader(rc.Init.Body)
	}
	req, err := http.NewRequestWithContext(ContextWithCredentials(ctx, rc.Init.WithCredentials), rc.Method, rc.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = rc.Header.Clone()

	transport := cfg.Transport
	if transport == nil {
		transport = DefaultTransport
	}
	resp, err := transport.Do(req)
	if err != nil {
		return nil, err
	}
	text, readErr := readBody(resp)
	if readErr != nil {
		if ctx.Err() != nil {
			return nil, readErr
		}
		text = nil
	}

	requestID := resp.Header.Get(HeaderRequestID)

	var raw json.RawMessage
	if resp.StatusCode != http.StatusNoContent && len(bytes.TrimSpace(text)) > 0 {
		if !json.Valid(text) {
			return nil, &apierrors.Error{
				Status:    resp.StatusCode,
				Code:      apierrors.CodeJSONParse,
				Details:   &apierrors.ParseDetails{Body: string(text)},
				RequestID: requestID,
			}
		}
		raw = json.RawMessage(text)
	}

	env := ParseEnvelope(raw)
	data := raw
	if cfg.AutoUnwrap && env.Kind != RawPassthrough {
		if env.Kind == EnvelopeFailure {
			return nil, &apierrors.Error{
				Status:    resp.StatusCode,
				Code:      apierrors.CodeBusiness,
				Message:   env.Message,
				Details:   env,
				RequestID: requestID,
			}
		}

		unwrap := UnwrapData
		switch {
		case opts.Unwrap != nil:
			unwrap = opts.Unwrap
		case cfg.Unwrap != nil:
			unwrap = cfg.Unwrap
		}
		if data, err = unwrap(env); err != nil {
			return nil, fmt.Errorf("unwrap failed: %w", err)
		}
	}

	out, err := d.pipeline.RunResponse(ctx, &ResponseContext{
		URL:      rc.URL,
		Method:   rc.Method,
		Response: resp,
		Data:     data,
		Raw:      raw,
		Envelope: env,
		Attempt:  attempt,
		Elapsed:  d.now().Sub(start),
	})
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// encodeBody returns the wire form of body. Structured values become JSON;
// raw values pass through.
func encodeBody(body any, header http.Header) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case *RawBody:
		if b == nil {
			return nil, nil
		}
		if b.ContentType != "" {
			header.Set("Content-Type", b.ContentType)
		}
		return b.Data, nil
	case io.Reader:
		data, err := io.ReadAll(b)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		return data, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	header.Set("Content-Type", "application/json")
	return data, nil
}

func isAbort(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		ctx.Err() != nil
}

func abortError(ctx context.Context, path string, err error) error {
	cause := context.Cause(ctx)
	if cause == nil {
		cause = err
	}
	return &apierrors.Error{
		Code:    apierrors.CodeTimeoutAbort,
		Details: &apierrors.AbortDetails{Path: path, Timeout: errors.Is(cause, errClientTimeout)},
		Err:     cause,
	}
}

// readBody drains and closes the response body. Custom transports may
// return a response without one, which reads as empty.
func readBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
