package telemetry

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/soulnest/client-go/internal/api"
)

// TracerName is the instrumentation name used for client spans.
const TracerName = "github.com/soulnest/client-go"

// Tracer returns the client tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// InstrumentTransport wraps base so every attempt gets a client span and is
// recorded in m. A nil m or tracer disables that half.
func InstrumentTransport(base api.Transport, m *Metrics, tracer trace.Tracer) api.Transport {
	if base == nil {
		base = api.DefaultTransport
	}
	return api.TransportFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()

		var span trace.Span
		if tracer != nil {
			var ctx context.Context
			ctx, span = tracer.Start(req.Context(), "HTTP "+req.Method,
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String("http.request.method", req.Method),
					attribute.String("url.full", req.URL.String()),
					attribute.String("server.address", req.URL.Host),
				),
			)
			defer span.End()
			req = req.WithContext(ctx)
		}

		resp, err := base.Do(req)

		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		if m != nil {
			m.ObserveAttempt(req.Method, status, time.Since(start))
		}
		if span != nil {
			switch {
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			case status >= 500:
				span.SetAttributes(attribute.Int("http.response.status_code", status))
				span.SetStatus(codes.Error, http.StatusText(status))
			default:
				span.SetAttributes(attribute.Int("http.response.status_code", status))
			}
		}
		return resp, err
	})
}

// PropagateTrace returns a request interceptor that injects the trace
// context of the call into the request headers. A nil propagator means the
// global one.
func PropagateTrace(propagator propagation.TextMapPropagator) api.RequestInterceptor {
	return func(ctx context.Context, rc *api.RequestContext) (*api.RequestContext, error) {
		p := propagator
		if p == nil {
			p = otel.GetTextMapPropagator()
		}
		p.Inject(ctx, propagation.HeaderCarrier(rc.Header))
		return rc, nil
	}
}
