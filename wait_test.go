package soulnest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastPoll = []WaitOption{
	WithPollInterval(time.Millisecond, 2*time.Millisecond),
	WithPollJitter(-1),
}

func TestSessions_WaitForStatus(t *testing.T) {
	b := newBackend(t)
	var calls atomic.Int32
	b.handle("GET /api/llm/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		status := map[string]any{
			"sessionId":  r.PathValue("id"),
			"lastActive": fmt.Sprintf("2026-01-01T00:00:0%dZ", n),
		}
		if n >= 3 {
			status["dialogueId"] = 77
		}
		writeJSON(w, http.StatusOK, ok(status))
	})
	c := b.client()

	st, err := c.Sessions().WaitForStatus(context.Background(), "abc",
		func(st *SessionStatus) bool { return st.DialogueID != nil }, fastPoll...)
	require.NoError(t, err)
	require.NotNil(t, st.DialogueID)
	assert.Equal(t, int64(77), *st.DialogueID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSessions_WaitForStatusStopsOnBusinessError(t *testing.T) {
	b := newBackend(t)
	var calls atomic.Int32
	b.handle("GET /api/llm/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "session expired"})
	})
	c := b.client()

	_, err := c.Sessions().WaitForStatus(context.Background(), "gone",
		func(*SessionStatus) bool { return true }, fastPoll...)
	require.ErrorIs(t, err, ErrBusiness)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSessions_WaitForStatusHonorsContext(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/llm/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok(map[string]any{"sessionId": "abc"}))
	})
	c := b.client()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := c.Sessions().WaitForStatus(ctx, "abc",
		func(*SessionStatus) bool { return false }, fastPoll...)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSessions_WaitHealthy(t *testing.T) {
	b := newBackend(t)
	var calls atomic.Int32
	b.handle("GET /api/llm/health", func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("<html>starting</html>"))
		case 2:
			writeJSON(w, http.StatusOK, map[string]any{"status": "starting"})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"status": HealthOK})
		}
	})
	c := b.client()

	h, err := c.Sessions().WaitHealthy(context.Background(), fastPoll...)
	require.NoError(t, err)
	assert.Equal(t, HealthOK, h.Status)
	assert.Equal(t, int32(3), calls.Load())
}

func TestTransientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network", &Error{Code: CodeNetwork}, true},
		{"timeout", &Error{Code: CodeTimeoutAbort}, true},
		{"business", &Error{Code: CodeBusiness}, false},
		{"parse", &Error{Code: CodeJSONParse}, false},
		{"encryption", &Error{Code: CodeEncryption}, false},
		{"closed", ErrClientClosed, false},
		{"other", errors.New("boom"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transientError(tt.err))
		})
	}
}

func TestStatusFingerprint(t *testing.T) {
	last := "t1"
	id := int64(4)
	a := statusFingerprint(&SessionStatus{LastActive: &last, DialogueID: &id, TimeoutSeconds: 60})
	assert.Equal(t, "t1|4|60", a)
	assert.Equal(t, "||0", statusFingerprint(&SessionStatus{}))
	assert.Empty(t, statusFingerprint(nil))
}
