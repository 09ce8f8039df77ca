package soulnest

import (
	"context"
	"fmt"
)

// Diaries manages the diary entries of the signed in user.
type Diaries interface {
	Create(ctx context.Context, req *DiaryInput) (*Diary, error)
	Update(ctx context.Context, id int64, req *DiaryInput) (*Diary, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*Diary, error)
	List(ctx context.Context) ([]Diary, error)
}

type diariesImpl struct {
	client *Client
}

// Diaries returns the diary operations.
func (c *Client) Diaries() Diaries {
	return &diariesImpl{client: c}
}

func (d *diariesImpl) Create(ctx context.Context, req *DiaryInput) (*Diary, error) {
	return post[*Diary](ctx, d.client, "/api/diaries", req)
}

func (d *diariesImpl) Update(ctx context.Context, id int64, req *DiaryInput) (*Diary, error) {
	return put[*Diary](ctx, d.client, fmt.Sprintf("/api/diaries/%d", id), req)
}

func (d *diariesImpl) Delete(ctx context.Context, id int64) error {
	return del(ctx, d.client, fmt.Sprintf("/api/diaries/%d", id))
}

func (d *diariesImpl) Get(ctx context.Context, id int64) (*Diary, error) {
	return get[*Diary](ctx, d.client, fmt.Sprintf("/api/diaries/%d", id))
}

func (d *diariesImpl) List(ctx context.Context) ([]Diary, error) {
	return get[[]Diary](ctx, d.client, "/api/diaries")
}
