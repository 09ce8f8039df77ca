package soulnest

import (
	"context"
	"fmt"
	"net/url"
)

// Sessions drives LLM chat sessions.
type Sessions interface {
	// Health reports the LLM service status. The endpoint does not use the
	// standard envelope, so the whole body is returned.
	Health(ctx context.Context) (*Health, error)

	Create(ctx context.Context, req *SessionCreate) (*Session, error)
	Status(ctx context.Context, sessionID string) (*SessionStatus, error)
	Send(ctx context.Context, sessionID string, msg *Message) (*Reply, error)
	Close(ctx context.Context, sessionID string) (*SessionClose, error)

	// WaitForStatus polls Status until match accepts it or ctx is done.
	WaitForStatus(ctx context.Context, sessionID string, match func(*SessionStatus) bool, opts ...WaitOption) (*SessionStatus, error)

	// WaitHealthy polls Health until the service reports "ok".
	WaitHealthy(ctx context.Context, opts ...WaitOption) (*Health, error)
}

type sessionsImpl struct {
	client *Client
}

// Sessions returns the LLM session operations.
func (c *Client) Sessions() Sessions {
	return &sessionsImpl{client: c}
}

func (s *sessionsImpl) Health(ctx context.Context) (*Health, error) {
	return get[*Health](ctx, s.client, "/api/llm/health", WithUnwrapHook(UnwrapEnvelope))
}

func (s *sessionsImpl) Create(ctx context.Context, req *SessionCreate) (*Session, error) {
	return post[*Session](ctx, s.client, "/api/llm/sessions", req)
}

func (s *sessionsImpl) Status(ctx context.Context, sessionID string) (*SessionStatus, error) {
	return get[*SessionStatus](ctx, s.client, sessionPath(sessionID, ""))
}

func (s *sessionsImpl) Send(ctx context.Context, sessionID string, msg *Message) (*Reply, error) {
	return post[*Reply](ctx, s.client, sessionPath(sessionID, "/messages"), msg)
}

func (s *sessionsImpl) Close(ctx context.Context, sessionID string) (*SessionClose, error) {
	return post[*SessionClose](ctx, s.client, sessionPath(sessionID, "/close"), nil)
}

func sessionPath(sessionID, suffix string) string {
	return fmt.Sprintf("/api/llm/sessions/%s%s", url.PathEscape(sessionID), suffix)
}
