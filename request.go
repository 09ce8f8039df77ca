package soulnest

import (
	"context"
	"net/http"
)

// Request sends a request through c and decodes the payload as T.
//
//	users, err := soulnest.Request[[]soulnest.User](ctx, client, http.MethodGet, "/api/users")
func Request[T any](ctx context.Context, c *Client, method, path string, opts ...RequestOption) (T, error) {
	var out T
	if err := c.Do(ctx, method, path, &out, opts...); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	return Request[T](ctx, c, http.MethodGet, path, opts...)
}

func post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	if body == nil {
		return Request[T](ctx, c, http.MethodPost, path)
	}
	return Request[T](ctx, c, http.MethodPost, path, WithBody(body))
}

func put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Request[T](ctx, c, http.MethodPut, path, WithBody(body))
}

func del(ctx context.Context, c *Client, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// send issues a call whose payload is discarded.
func send(ctx context.Context, c *Client, method, path string, body any) error {
	if body == nil {
		return c.Do(ctx, method, path, nil)
	}
	return c.Do(ctx, method, path, nil, WithBody(body))
}
