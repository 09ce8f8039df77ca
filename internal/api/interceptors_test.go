package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_RunRequestFoldsInOrder(t *testing.T) {
	p := NewPipeline()
	var order []string

	p.AddRequest(func(_ context.Context, rc *RequestContext) (*RequestContext, error) {
		order = append(order, "first")
		rc.URL += "/a"
		return rc, nil
	})
	p.AddRequest(func(_ context.Context, rc *RequestContext) (*RequestContext, error) {
		order = append(order, "second")
		assert.Equal(t, "http://h/a", rc.URL)
		return &RequestContext{URL: rc.URL + "/b", Method: rc.Method, Header: rc.Header}, nil
	})
	p.AddRequest(func(_ context.Context, rc *RequestContext) (*RequestContext, error) {
		order = append(order, "third")
		return nil, nil
	})

	out, err := p.RunRequest(context.Background(), &RequestContext{URL: "http://h", Method: http.MethodGet, Header: http.Header{}})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, order)
	assert.Equal(t, "http://h/a/b", out.URL)
	reqs, resps := p.Len()
	assert.Equal(t, 3, reqs)
	assert.Equal(t, 0, resps)
}

func TestPipeline_RunRequestStopsOnError(t *testing.T) {
	p := NewPipeline()
	boom := errors.New("boom")
	called := false

	p.AddRequest(func(context.Context, *RequestContext) (*RequestContext, error) {
		return nil, boom
	})
	p.AddRequest(func(_ context.Context, rc *RequestContext) (*RequestContext, error) {
		called = true
		return rc, nil
	})

	_, err := p.RunRequest(context.Background(), &RequestContext{})
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestPipeline_RunResponseFoldsData(t *testing.T) {
	p := NewPipeline()
	p.AddResponse(func(_ context.Context, rc *ResponseContext) (*ResponseContext, error) {
		rc.Data = []byte(`{"step":1}`)
		return rc, nil
	})
	p.AddResponse(func(_ context.Context, rc *ResponseContext) (*ResponseContext, error) {
		assert.JSONEq(t, `{"step":1}`, string(rc.Data))
		rc.Data = []byte(`{"step":2}`)
		return rc, nil
	})

	out, err := p.RunResponse(context.Background(), &ResponseContext{Data: []byte(`{}`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"step":2}`, string(out.Data))
}

func TestPipeline_AddDuringRun(t *testing.T) {
	p := NewPipeline()
	ran := 0
	p.AddRequest(func(_ context.Context, rc *RequestContext) (*RequestContext, error) {
		ran++
		p.AddRequest(func(_ context.Context, rc *RequestContext) (*RequestContext, error) {
			ran += 10
			return rc, nil
		})
		return rc, nil
	})

	_, err := p.RunRequest(context.Background(), &RequestContext{})
	require.NoError(t, err)
	assert.Equal(t, 1, ran, "interceptors added during a run apply to later calls")

	_, err = p.RunRequest(context.Background(), &RequestContext{})
	require.NoError(t, err)
	assert.Equal(t, 12, ran)
}
