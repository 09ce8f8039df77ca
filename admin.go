package soulnest

import (
	"context"
	"fmt"
)

// Admin provides access to administrative operations. Calls are only
// authorized in admin mode with an admin API key set:
//
//	client.UpdateConfig(soulnest.WithAdminMode(true))
//	client.SetAdminAPIKey(ctx, "ADMIN_KEY_...")
//	users, err := client.Admin().ListUsers(ctx)
type Admin interface {
	// ListUsers returns every account. Passwords are redacted by the server.
	ListUsers(ctx context.Context) ([]User, error)

	// RiskConversations returns the conversations of a user together with
	// their messages and risk detector results.
	RiskConversations(ctx context.Context, userID int64) ([]RiskConversation, error)

	// ProcessRiskDetection marks a detection as handled with optional notes.
	ProcessRiskDetection(ctx context.Context, detectionID int64, req *ProcessRiskDetection) (*RiskDetection, error)
}

// adminImpl implements the Admin interface.
type adminImpl struct {
	client *Client
}

// Admin returns an Admin interface for administrative operations.
func (c *Client) Admin() Admin {
	return &adminImpl{client: c}
}

// ListUsers returns every account.
func (a *adminImpl) ListUsers(ctx context.Context) ([]User, error) {
	return get[[]User](ctx, a.client, "/api/admin/users")
}

// RiskConversations returns the risk conversations of a user.
func (a *adminImpl) RiskConversations(ctx context.Context, userID int64) ([]RiskConversation, error) {
	return get[[]RiskConversation](ctx, a.client, fmt.Sprintf("/api/admin/users/%d/risk-conversations", userID))
}

// ProcessRiskDetection marks a detection as handled.
func (a *adminImpl) ProcessRiskDetection(ctx context.Context, detectionID int64, req *ProcessRiskDetection) (*RiskDetection, error) {
	if req == nil {
		req = &ProcessRiskDetection{Processed: true}
	}
	return post[*RiskDetection](ctx, a.client, fmt.Sprintf("/api/admin/users/risk-detections/%d/process", detectionID), req)
}
