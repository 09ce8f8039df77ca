package telemetry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/soulnest/client-go/internal/api"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "debug", JSON: true, Output: &buf})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.Debug("hello")
	assert.Contains(t, buf.String(), `"message":"hello"`)

	fallback := NewLogger(LoggerConfig{Level: "nope"})
	assert.Equal(t, logrus.WarnLevel, fallback.GetLevel())
}

func TestInstrumentTransport_MetricsAndSpans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	tr := InstrumentTransport(nil, m, tp.Tracer(TracerName))

	for _, path := range []string{"/ok", "/ok", "/fail"} {
		req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
		require.NoError(t, err)
		resp, err := tr.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.attempts.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attempts.WithLabelValues("GET", "500")))

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "HTTP GET", spans[0].Name())
	assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[2].Status().Code)
}

func TestInstrumentTransport_TransportError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	boom := errors.New("refused")
	tr := InstrumentTransport(api.TransportFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	}), m, tp.Tracer(TracerName))

	req, err := http.NewRequest(http.MethodPost, "http://example.invalid/x", nil)
	require.NoError(t, err)
	_, err = tr.Do(req)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.attempts.WithLabelValues("POST", "error")))
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Events(), 1)
}

func TestPropagateTrace(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer(TracerName).Start(context.Background(), "parent")
	defer span.End()

	rc := &api.RequestContext{Header: http.Header{}}
	out, err := PropagateTrace(propagation.TraceContext{})(ctx, rc)
	require.NoError(t, err)

	tp0 := out.Header.Get("traceparent")
	require.NotEmpty(t, tp0)
	assert.Contains(t, tp0, span.SpanContext().TraceID().String())
}

func TestMetrics_ResponseInterceptor(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	intercept := m.ResponseInterceptor()

	_, err := intercept(context.Background(), &api.ResponseContext{
		Method:   http.MethodGet,
		Envelope: &api.Envelope{Kind: api.EnvelopeSuccess},
	})
	require.NoError(t, err)
	_, err = intercept(context.Background(), &api.ResponseContext{Method: http.MethodGet})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.envelopes.WithLabelValues("GET", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.envelopes.WithLabelValues("GET", "raw")))
}
