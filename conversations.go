package soulnest

import (
	"context"
	"fmt"
)

// Conversations reads stored dialogues.
type Conversations interface {
	// ListByUser returns the dialogues of a user.
	ListByUser(ctx context.Context, userID int64) ([]Conversation, error)

	// Contents returns the user and assistant messages of a dialogue.
	Contents(ctx context.Context, conversationID int64) ([]ConversationMessage, error)
}

type conversationsImpl struct {
	client *Client
}

// Conversations returns the dialogue history operations.
func (c *Client) Conversations() Conversations {
	return &conversationsImpl{client: c}
}

func (v *conversationsImpl) ListByUser(ctx context.Context, userID int64) ([]Conversation, error) {
	return get[[]Conversation](ctx, v.client, fmt.Sprintf("/api/conversations/lists/%d", userID))
}

func (v *conversationsImpl) Contents(ctx context.Context, conversationID int64) ([]ConversationMessage, error) {
	return get[[]ConversationMessage](ctx, v.client, fmt.Sprintf("/api/conversations/contents/%d", conversationID))
}
