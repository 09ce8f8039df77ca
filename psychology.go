package soulnest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Default paging of the knowledge base list endpoints.
const (
	DefaultPage      = 1
	DefaultPageSize  = 10
	DefaultListLimit = 10
)

// Page selects a page of a list. Zero fields use DefaultPage and
// DefaultPageSize.
type Page struct {
	Page     int
	PageSize int
}

func (p Page) query() *Query {
	page, size := p.Page, p.PageSize
	if page <= 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return NewQuery("page", page, "pageSize", size)
}

func limitQuery(limit int) *Query {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return NewQuery("limit", limit)
}

// Psychology reads the psychology knowledge base: categories, articles,
// expert Q&A, resources and user favorites.
type Psychology interface {
	Categories(ctx context.Context) ([]PsychologyCategory, error)
	CategoryTree(ctx context.Context) ([]CategoryTreeNode, error)
	ChildCategories(ctx context.Context, parentID int64) ([]PsychologyCategory, error)
	// CreateCategory returns the server confirmation message.
	CreateCategory(ctx context.Context, category *PsychologyCategory) (string, error)

	GetArticle(ctx context.Context, articleID int64) (*Article, error)
	ArticlesByCategory(ctx context.Context, categoryID int64, page Page) ([]Article, error)
	FeaturedArticles(ctx context.Context, limit int) ([]Article, error)
	LatestArticles(ctx context.Context, limit int) ([]Article, error)
	SearchArticles(ctx context.Context, keyword string, page Page) ([]Article, error)
	LikeArticle(ctx context.Context, articleID int64) error
	CreateArticle(ctx context.Context, article *Article) (string, error)

	GetQnA(ctx context.Context, qnaID int64) (*QnA, error)
	QnAByCategory(ctx context.Context, categoryID int64, page Page) ([]QnA, error)
	VerifiedQnA(ctx context.Context, limit int) ([]QnA, error)
	SearchQnA(ctx context.Context, keyword string, page Page) ([]QnA, error)
	LikeQnA(ctx context.Context, qnaID int64) error

	GetResource(ctx context.Context, resourceID int64) (*Resource, error)
	ResourcesByCategory(ctx context.Context, categoryID int64, page Page) ([]Resource, error)
	ResourcesByType(ctx context.Context, resourceType string, page Page) ([]Resource, error)
	LikeResource(ctx context.Context, resourceID int64) error

	// Favorites lists a user's favorites. An empty contentType lists all.
	Favorites(ctx context.Context, userID int64, contentType string) ([]Favorite, error)
	IsFavorite(ctx context.Context, userID int64, contentType string, contentID int64) (bool, error)
	// ToggleFavorite adds or removes the item and reports the new state.
	ToggleFavorite(ctx context.Context, userID int64, contentType string, contentID int64) (bool, error)
}

type psychologyImpl struct {
	client *Client
}

// Psychology returns the knowledge base operations.
func (c *Client) Psychology() Psychology {
	return &psychologyImpl{client: c}
}

const psychologyBase = "/api/psychology"

func (p *psychologyImpl) Categories(ctx context.Context) ([]PsychologyCategory, error) {
	return get[[]PsychologyCategory](ctx, p.client, psychologyBase+"/categories")
}

func (p *psychologyImpl) CategoryTree(ctx context.Context) ([]CategoryTreeNode, error) {
	return get[[]CategoryTreeNode](ctx, p.client, psychologyBase+"/categories/tree")
}

func (p *psychologyImpl) ChildCategories(ctx context.Context, parentID int64) ([]PsychologyCategory, error) {
	return get[[]PsychologyCategory](ctx, p.client, fmt.Sprintf("%s/categories/children/%d", psychologyBase, parentID))
}

func (p *psychologyImpl) CreateCategory(ctx context.Context, category *PsychologyCategory) (string, error) {
	return post[string](ctx, p.client, psychologyBase+"/categories", category)
}

func (p *psychologyImpl) GetArticle(ctx context.Context, articleID int64) (*Article, error) {
	return get[*Article](ctx, p.client, fmt.Sprintf("%s/articles/%d", psychologyBase, articleID))
}

func (p *psychologyImpl) ArticlesByCategory(ctx context.Context, categoryID int64, page Page) ([]Article, error) {
	return get[[]Article](ctx, p.client, fmt.Sprintf("%s/articles/category/%d", psychologyBase, categoryID),
		WithParams(page.query()))
}

func (p *psychologyImpl) FeaturedArticles(ctx context.Context, limit int) ([]Article, error) {
	return get[[]Article](ctx, p.client, psychologyBase+"/articles/featured", WithParams(limitQuery(limit)))
}

func (p *psychologyImpl) LatestArticles(ctx context.Context, limit int) ([]Article, error) {
	return get[[]Article](ctx, p.client, psychologyBase+"/articles/latest", WithParams(limitQuery(limit)))
}

func (p *psychologyImpl) SearchArticles(ctx context.Context, keyword string, page Page) ([]Article, error) {
	return get[[]Article](ctx, p.client, psychologyBase+"/articles/search",
		WithParams(NewQuery("keyword", keyword)), WithQuery(page.query()))
}

func (p *psychologyImpl) LikeArticle(ctx context.Context, articleID int64) error {
	return p.like(ctx, "articles", articleID)
}

func (p *psychologyImpl) CreateArticle(ctx context.Context, article *Article) (string, error) {
	return post[string](ctx, p.client, psychologyBase+"/articles", article)
}

func (p *psychologyImpl) GetQnA(ctx context.Context, qnaID int64) (*QnA, error) {
	return get[*QnA](ctx, p.client, fmt.Sprintf("%s/qna/%d", psychologyBase, qnaID))
}

func (p *psychologyImpl) QnAByCategory(ctx context.Context, categoryID int64, page Page) ([]QnA, error) {
	return get[[]QnA](ctx, p.client, fmt.Sprintf("%s/qna/category/%d", psychologyBase, categoryID),
		WithParams(page.query()))
}

func (p *psychologyImpl) VerifiedQnA(ctx context.Context, limit int) ([]QnA, error) {
	return get[[]QnA](ctx, p.client, psychologyBase+"/qna/verified", WithParams(limitQuery(limit)))
}

func (p *psychologyImpl) SearchQnA(ctx context.Context, keyword string, page Page) ([]QnA, error) {
	return get[[]QnA](ctx, p.client, psychologyBase+"/qna/search",
		WithParams(NewQuery("keyword", keyword)), WithQuery(page.query()))
}

func (p *psychologyImpl) LikeQnA(ctx context.Context, qnaID int64) error {
	return p.like(ctx, "qna", qnaID)
}

func (p *psychologyImpl) GetResource(ctx context.Context, resourceID int64) (*Resource, error) {
	return get[*Resource](ctx, p.client, fmt.Sprintf("%s/resources/%d", psychologyBase, resourceID))
}

func (p *psychologyImpl) ResourcesByCategory(ctx context.Context, categoryID int64, page Page) ([]Resource, error) {
	return get[[]Resource](ctx, p.client, fmt.Sprintf("%s/resources/category/%d", psychologyBase, categoryID),
		WithParams(page.query()))
}

func (p *psychologyImpl) ResourcesByType(ctx context.Context, resourceType string, page Page) ([]Resource, error) {
	return get[[]Resource](ctx, p.client, psychologyBase+"/resources/type/"+url.PathEscape(resourceType),
		WithParams(page.query()))
}

func (p *psychologyImpl) LikeResource(ctx context.Context, resourceID int64) error {
	return p.like(ctx, "resources", resourceID)
}

func (p *psychologyImpl) Favorites(ctx context.Context, userID int64, contentType string) ([]Favorite, error) {
	var opts []RequestOption
	if contentType != "" {
		opts = append(opts, WithParams(NewQuery("contentType", contentType)))
	}
	return get[[]Favorite](ctx, p.client, fmt.Sprintf("%s/favorites/%d", psychologyBase, userID), opts...)
}

func (p *psychologyImpl) IsFavorite(ctx context.Context, userID int64, contentType string, contentID int64) (bool, error) {
	return p.favorite(ctx, http.MethodGet, "check", userID, contentType, contentID)
}

func (p *psychologyImpl) ToggleFavorite(ctx context.Context, userID int64, contentType string, contentID int64) (bool, error) {
	return p.favorite(ctx, http.MethodPost, "toggle", userID, contentType, contentID)
}

func (p *psychologyImpl) favorite(ctx context.Context, method, action string, userID int64, contentType string, contentID int64) (bool, error) {
	state, err := Request[*FavoriteState](ctx, p.client, method, psychologyBase+"/favorites/"+action,
		WithParams(NewQuery("userId", userID, "contentType", contentType, "contentId", contentID)))
	if err != nil {
		return false, err
	}
	return state != nil && state.IsFavorited, nil
}

func (p *psychologyImpl) like(ctx context.Context, kind string, id int64) error {
	return send(ctx, p.client, http.MethodPost, fmt.Sprintf("%s/%s/%d/like", psychologyBase, kind, id), nil)
}
