package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// RequestInit carries the transport options of a prepared request.
type RequestInit struct {
	// Body is the encoded request body, nil for none.
	Body []byte
	// WithCredentials sends and stores cookies for this request.
	WithCredentials bool
}

// RequestContext is a prepared request as seen by request interceptors.
type RequestContext struct {
	URL    string
	Method string
	Header http.Header
	Init   RequestInit
}

// ResponseContext is a processed response as seen by response interceptors.
type ResponseContext struct {
	URL    string
	Method string
	// Response is the HTTP response. Its body has already been read.
	Response *http.Response
	// Data is the unwrapped payload and becomes the call's result.
	Data json.RawMessage
	// Raw is the parsed body before unwrapping.
	Raw json.RawMessage
	// Envelope is the classification of Raw.
	Envelope *Envelope
	// Attempt is the 1-indexed attempt that produced the response.
	Attempt int
	// Elapsed is the time since the call started.
	Elapsed time.Duration
}

// RequestInterceptor transforms a request before it is sent. Returning a nil
// context keeps the input unchanged. An error aborts the call.
type RequestInterceptor func(ctx context.Context, rc *RequestContext) (*RequestContext, error)

// ResponseInterceptor transforms a response before it is returned. Returning
// a nil context keeps the input unchanged. An error that is not an
// *apierrors.Error is treated like a transport failure and may be retried.
type ResponseInterceptor func(ctx context.Context, rc *ResponseContext) (*ResponseContext, error)

// Pipeline holds the ordered request and response interceptors. Interceptors
// can be added at any time and run in registration order; a call uses the
// lists as they were when its phase started.
type Pipeline struct {
	mu       sync.RWMutex
	request  []RequestInterceptor
	response []ResponseInterceptor
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// AddRequest appends a request interceptor.
func (p *Pipeline) AddRequest(i RequestInterceptor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.request = append(p.request, i)
}

// AddResponse appends a response interceptor.
func (p *Pipeline) AddResponse(i ResponseInterceptor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.response = append(p.response, i)
}

// Len returns the number of request and response interceptors.
func (p *Pipeline) Len() (request, response int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.request), len(p.response)
}

// RunRequest folds the request interceptors over rc.
func (p *Pipeline) RunRequest(ctx context.Context, rc *RequestContext) (*RequestContext, error) {
	p.mu.RLock()
	chain := p.request[:len(p.request):len(p.request)]
	p.mu.RUnlock()

	for _, i := range chain {
		next, err := i(ctx, rc)
		if err != nil {
			return nil, err
		}
		if next != nil {
			rc = next
		}
	}
	return rc, nil
}

// RunResponse folds the response interceptors over rc.
func (p *Pipeline) RunResponse(ctx context.Context, rc *ResponseContext) (*ResponseContext, error) {
	p.mu.RLock()
	chain := p.response[:len(p.response):len(p.response)]
	p.mu.RUnlock()

	for _, i := range chain {
		next, err := i(ctx, rc)
		if err != nil {
			return nil, err
		}
		if next != nil {
			rc = next
		}
	}
	return rc, nil
}
