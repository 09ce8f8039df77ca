package soulnest

import (
	"context"
	"fmt"
	"net/http"
)

// Community provides the community board: posts, comments and likes.
type Community interface {
	// ListPosts returns posts, optionally filtered by status or author.
	ListPosts(ctx context.Context, filter *PostFilter) ([]Post, error)
	GetPost(ctx context.Context, postID int64) (*Post, error)
	CreatePost(ctx context.Context, req *PostInput) (*Post, error)
	UpdatePost(ctx context.Context, postID int64, req *PostInput) (*Post, error)
	DeletePost(ctx context.Context, postID int64) error
	LikePost(ctx context.Context, postID int64) error

	ListComments(ctx context.Context, postID int64) ([]Comment, error)
	CreateComment(ctx context.Context, postID int64, comment *Comment) (*Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
	LikeComment(ctx context.Context, commentID int64) error
}

type communityImpl struct {
	client *Client
}

// Community returns the community board operations.
func (c *Client) Community() Community {
	return &communityImpl{client: c}
}

func (m *communityImpl) ListPosts(ctx context.Context, filter *PostFilter) ([]Post, error) {
	var opts []RequestOption
	if filter != nil {
		opts = append(opts, WithParams(NewQuery("status", filter.Status, "userId", filter.UserID)))
	}
	return get[[]Post](ctx, m.client, "/api/community/posts", opts...)
}

func (m *communityImpl) GetPost(ctx context.Context, postID int64) (*Post, error) {
	return get[*Post](ctx, m.client, fmt.Sprintf("/api/community/posts/%d", postID))
}

func (m *communityImpl) CreatePost(ctx context.Context, req *PostInput) (*Post, error) {
	return post[*Post](ctx, m.client, "/api/community/posts", req)
}

func (m *communityImpl) UpdatePost(ctx context.Context, postID int64, req *PostInput) (*Post, error) {
	return put[*Post](ctx, m.client, fmt.Sprintf("/api/community/posts/%d", postID), req)
}

func (m *communityImpl) DeletePost(ctx context.Context, postID int64) error {
	return del(ctx, m.client, fmt.Sprintf("/api/community/posts/%d", postID))
}

func (m *communityImpl) LikePost(ctx context.Context, postID int64) error {
	return send(ctx, m.client, http.MethodPost, fmt.Sprintf("/api/community/posts/%d/like", postID), nil)
}

func (m *communityImpl) ListComments(ctx context.Context, postID int64) ([]Comment, error) {
	return get[[]Comment](ctx, m.client, fmt.Sprintf("/api/community/posts/%d/comments", postID))
}

func (m *communityImpl) CreateComment(ctx context.Context, postID int64, comment *Comment) (*Comment, error) {
	return post[*Comment](ctx, m.client, fmt.Sprintf("/api/community/posts/%d/comments", postID), comment)
}

func (m *communityImpl) DeleteComment(ctx context.Context, commentID int64) error {
	return del(ctx, m.client, fmt.Sprintf("/api/community/comments/%d", commentID))
}

func (m *communityImpl) LikeComment(ctx context.Context, commentID int64) error {
	return send(ctx, m.client, http.MethodPost, fmt.Sprintf("/api/community/comments/%d/like", commentID), nil)
}
