package api

import (
	"context"
	"net/http"
)

// Transport performs one HTTP exchange. *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(req *http.Request) (*http.Response, error)

// Do calls f(req).
func (f TransportFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// DefaultTransport is used when Config.Transport is nil. It has no timeout
// of its own; calls are bounded by the dispatcher's context.
var DefaultTransport Transport = &http.Client{}

type credentialsKey struct{}

// ContextWithCredentials marks requests made with ctx as carrying cookies.
func ContextWithCredentials(ctx context.Context, include bool) context.Context {
	return context.WithValue(ctx, credentialsKey{}, include)
}

// CredentialsFromContext reports whether ContextWithCredentials marked ctx.
func CredentialsFromContext(ctx context.Context) bool {
	include, _ := ctx.Value(credentialsKey{}).(bool)
	return include
}

// CookieTransport attaches cookies from Jar to requests whose context carries
// credentials and stores cookies from their responses. Other requests pass
// through untouched.
type CookieTransport struct {
	Base Transport
	Jar  http.CookieJar
}

// Do implements Transport.
func (t *CookieTransport) Do(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = DefaultTransport
	}
	if t.Jar == nil || !CredentialsFromContext(req.Context()) {
		return base.Do(req)
	}

	for _, c := range t.Jar.Cookies(req.URL) {
		req.AddCookie(c)
	}
	resp, err := base.Do(req)
	if err != nil {
		return nil, err
	}
	if cookies := resp.Cookies(); len(cookies) > 0 {
		t.Jar.SetCookies(req.URL, cookies)
	}
	return resp, nil
}
