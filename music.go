package soulnest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Music manages the relaxation music library.
type Music interface {
	Get(ctx context.Context, musicID int64) (*MusicTrack, error)
	List(ctx context.Context) ([]MusicTrack, error)
	ListByCategory(ctx context.Context, category string) ([]MusicTrack, error)
	ListByArtist(ctx context.Context, artist string) ([]MusicTrack, error)
	Search(ctx context.Context, keyword string) ([]MusicTrack, error)

	// ListMetadata returns every track without file data or cover images.
	ListMetadata(ctx context.Context) ([]MusicTrack, error)

	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, category string) (int64, error)

	Add(ctx context.Context, req *MusicInput) (*MusicTrack, error)
	// Update replaces the track, files included.
	Update(ctx context.Context, musicID int64, req *MusicInput) error
	// UpdateMetadata changes the descriptive fields and keeps the stored files.
	UpdateMetadata(ctx context.Context, musicID int64, req *MusicInput) error
	Delete(ctx context.Context, musicID int64) error
}

type musicImpl struct {
	client *Client
}

// Music returns the music library operations.
func (c *Client) Music() Music {
	return &musicImpl{client: c}
}

func (m *musicImpl) Get(ctx context.Context, musicID int64) (*MusicTrack, error) {
	return get[*MusicTrack](ctx, m.client, musicPath(musicID))
}

func (m *musicImpl) List(ctx context.Context) ([]MusicTrack, error) {
	return get[[]MusicTrack](ctx, m.client, "/api/music")
}

func (m *musicImpl) ListByCategory(ctx context.Context, category string) ([]MusicTrack, error) {
	return get[[]MusicTrack](ctx, m.client, "/api/music/category/"+url.PathEscape(category))
}

func (m *musicImpl) ListByArtist(ctx context.Context, artist string) ([]MusicTrack, error) {
	return get[[]MusicTrack](ctx, m.client, "/api/music/artist/"+url.PathEscape(artist))
}

func (m *musicImpl) Search(ctx context.Context, keyword string) ([]MusicTrack, error) {
	return get[[]MusicTrack](ctx, m.client, "/api/music/search",
		WithParams(NewQuery("keyword", keyword)))
}

func (m *musicImpl) ListMetadata(ctx context.Context) ([]MusicTrack, error) {
	return get[[]MusicTrack](ctx, m.client, "/api/music/metadata")
}

func (m *musicImpl) Count(ctx context.Context) (int64, error) {
	return get[int64](ctx, m.client, "/api/music/count")
}

func (m *musicImpl) CountByCategory(ctx context.Context, category string) (int64, error) {
	return get[int64](ctx, m.client, "/api/music/count/category/"+url.PathEscape(category))
}

func (m *musicImpl) Add(ctx context.Context, req *MusicInput) (*MusicTrack, error) {
	return post[*MusicTrack](ctx, m.client, "/api/music", req)
}

func (m *musicImpl) Update(ctx context.Context, musicID int64, req *MusicInput) error {
	return send(ctx, m.client, http.MethodPut, musicPath(musicID), req)
}

func (m *musicImpl) UpdateMetadata(ctx context.Context, musicID int64, req *MusicInput) error {
	var meta MusicInput
	if req != nil {
		meta = *req
	}
	meta.FileData, meta.FileSize, meta.MimeType, meta.CoverImage = "", 0, "", ""
	return send(ctx, m.client, http.MethodPatch, musicPath(musicID), &meta)
}

func (m *musicImpl) Delete(ctx context.Context, musicID int64) error {
	return del(ctx, m.client, musicPath(musicID))
}

func musicPath(musicID int64) string {
	return fmt.Sprintf("/api/music/%d", musicID)
}
