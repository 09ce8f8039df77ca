package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	srv *httptest.Server
	key *rsa.PrivateKey
	der []byte

	mu       sync.Mutex
	password string
	auth     string
	body     string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	f := &fakeServer{key: key, der: der}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/security/public-key", func(w http.ResponseWriter, r *http.Request) {
		reply(w, base64.StdEncoding.EncodeToString(der))
	})
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&in)
		ct, _ := base64.StdEncoding.DecodeString(in.Password)
		pt, _ := rsa.DecryptOAEP(sha256.New(), nil, key, ct, nil)

		f.mu.Lock()
		f.password = string(pt)
		f.mu.Unlock()
		reply(w, map[string]any{"userId": 7, "username": in.Username, "token": "tok-123"})
	})
	mux.HandleFunc("GET /api/diaries", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.auth = r.Header.Get("Authorization")
		f.mu.Unlock()
		reply(w, []map[string]any{{"id": 1, "title": "first"}})
	})
	mux.HandleFunc("POST /api/diaries", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.body = string(data)
		f.mu.Unlock()
		reply(w, map[string]any{"id": 2})
	})
	mux.HandleFunc("GET /api/test/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "hello soulnest")
	})
	mux.HandleFunc("GET /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "user not found"})
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func reply(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

// harness runs the command against f with an isolated settings and
// credentials file.
type harness struct {
	t      *testing.T
	config string
	creds  string
	stdin  string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T, f *fakeServer) *harness {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "soulnest.toml")
	settings := fmt.Sprintf(`base_url = %q

[retry]
retries = 0
`, f.srv.URL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(settings), 0o600))
	t.Setenv("SOULNEST_BASE_URL", f.srv.URL)

	return &harness{
		t:      t,
		config: cfgPath,
		creds:  filepath.Join(dir, "credentials.json"),
	}
}

func (h *harness) run(args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()
	base := []string{"-config", h.config, "-credentials", h.creds, "-env-file", ""}
	return run(context.Background(), append(base, args...), Config{
		Stdin:  strings.NewReader(h.stdin),
		Stdout: &h.stdout,
		Stderr: &h.stderr,
	})
}

func TestRun_MissingCommand(t *testing.T) {
	h := newHarness(t, newFakeServer(t))

	err := h.run()
	require.Error(t, err)
	assert.Contains(t, h.stderr.String(), "usage: soulnest")
}

func TestRun_UnknownCommand(t *testing.T) {
	h := newHarness(t, newFakeServer(t))

	err := h.run("frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command: frobnicate")
}

func TestRun_PublicKey(t *testing.T) {
	f := newFakeServer(t)
	h := newHarness(t, f)

	require.NoError(t, h.run("public-key"))
	assert.Equal(t, base64.StdEncoding.EncodeToString(f.der), strings.TrimSpace(h.stdout.String()))
}

func TestRun_Hello(t *testing.T) {
	h := newHarness(t, newFakeServer(t))

	require.NoError(t, h.run("hello"))
	assert.Equal(t, "hello soulnest\n", h.stdout.String())
}

func TestRun_LoginPersistsToken(t *testing.T) {
	f := newFakeServer(t)
	h := newHarness(t, f)
	h.stdin = "s3cret\n"

	require.NoError(t, h.run("login", "alice"))

	f.mu.Lock()
	assert.Equal(t, "s3cret", f.password)
	f.mu.Unlock()

	var out map[string]any
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &out))
	assert.Equal(t, "alice", out["username"])
	assert.NotContains(t, h.stdout.String(), "tok-123")

	data, err := os.ReadFile(h.creds)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tok-123")

	// A fresh process picks the token up from the credentials file.
	require.NoError(t, h.run("request", "get", "/api/diaries"))
	f.mu.Lock()
	assert.Equal(t, "Bearer tok-123", f.auth)
	f.mu.Unlock()
	assert.Contains(t, h.stdout.String(), `"title": "first"`)

	require.NoError(t, h.run("logout"))
	require.NoError(t, h.run("request", "GET", "/api/diaries"))
	f.mu.Lock()
	assert.Empty(t, f.auth)
	f.mu.Unlock()
}

func TestRun_LoginUsage(t *testing.T) {
	h := newHarness(t, newFakeServer(t))

	err := h.run("login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: soulnest login")
}

func TestRun_RequestBodyFromStdin(t *testing.T) {
	f := newFakeServer(t)
	h := newHarness(t, f)
	h.stdin = `{"title":"today"}`

	require.NoError(t, h.run("request", "POST", "/api/diaries", "-"))

	f.mu.Lock()
	assert.JSONEq(t, `{"title":"today"}`, f.body)
	f.mu.Unlock()
	assert.Contains(t, h.stdout.String(), `"id": 2`)
}

func TestRun_RequestRejectsInvalidBody(t *testing.T) {
	h := newHarness(t, newFakeServer(t))

	err := h.run("request", "POST", "/api/diaries", "{not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestRun_RequestBusinessError(t *testing.T) {
	h := newHarness(t, newFakeServer(t))

	err := h.run("request", "GET", "/api/users/9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BUSINESS_ERROR")
	assert.Contains(t, err.Error(), "user not found")
}

func TestRun_AdminKeyAndClear(t *testing.T) {
	h := newHarness(t, newFakeServer(t))

	require.NoError(t, h.run("admin-key", "adm-1"))
	data, err := os.ReadFile(h.creds)
	require.NoError(t, err)
	assert.Contains(t, string(data), "adm-1")

	require.NoError(t, h.run("clear"))
	data, err = os.ReadFile(h.creds)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "adm-1")
}

func TestRun_EnvFile(t *testing.T) {
	f := newFakeServer(t)
	h := newHarness(t, f)

	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("SOULNEST_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("SOULNEST_LOG_LEVEL", "")
	os.Unsetenv("SOULNEST_LOG_LEVEL")

	err := run(context.Background(),
		[]string{"-config", h.config, "-credentials", h.creds, "-env-file", envPath, "public-key"},
		Config{Stdin: strings.NewReader(""), Stdout: &h.stdout, Stderr: &h.stderr})
	require.NoError(t, err)
	assert.Equal(t, "debug", os.Getenv("SOULNEST_LOG_LEVEL"))
}

func TestRun_MissingEnvFileIgnored(t *testing.T) {
	h := newHarness(t, newFakeServer(t))

	err := run(context.Background(),
		[]string{"-config", h.config, "-credentials", h.creds, "-env-file", filepath.Join(t.TempDir(), "none.env"), "public-key"},
		Config{Stdin: strings.NewReader(""), Stdout: &h.stdout, Stderr: &h.stderr})
	require.NoError(t, err)
}
