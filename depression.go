package soulnest

import (
	"context"
	"fmt"
)

// Depression provides rating scales and assessments.
type Depression interface {
	// Scales returns the available rating scales.
	Scales(ctx context.Context) ([]Scale, error)

	GetAssessment(ctx context.Context, assessmentID int64) (*Assessment, error)

	// ListAssessments returns the assessments of a user. A zero scaleID
	// returns all scales.
	ListAssessments(ctx context.Context, userID, scaleID int64) ([]Assessment, error)

	CreateAssessment(ctx context.Context, a *Assessment) (*Assessment, error)
	UpdateAssessment(ctx context.Context, assessmentID int64, a *Assessment) (*Assessment, error)
	DeleteAssessment(ctx context.Context, assessmentID int64) error
}

type depressionImpl struct {
	client *Client
}

// Depression returns the rating scale and assessment operations.
func (c *Client) Depression() Depression {
	return &depressionImpl{client: c}
}

func (d *depressionImpl) Scales(ctx context.Context) ([]Scale, error) {
	return get[[]Scale](ctx, d.client, "/api/depression-scale")
}

func (d *depressionImpl) GetAssessment(ctx context.Context, assessmentID int64) (*Assessment, error) {
	return get[*Assessment](ctx, d.client, fmt.Sprintf("/api/depression-assessments/%d", assessmentID))
}

func (d *depressionImpl) ListAssessments(ctx context.Context, userID, scaleID int64) ([]Assessment, error) {
	var scale any
	if scaleID != 0 {
		scale = scaleID
	}
	return get[[]Assessment](ctx, d.client, fmt.Sprintf("/api/depression-assessments/user/%d", userID),
		WithParams(NewQuery("scaleId", scale)))
}

func (d *depressionImpl) CreateAssessment(ctx context.Context, a *Assessment) (*Assessment, error) {
	return post[*Assessment](ctx, d.client, "/api/depression-assessments", a)
}

func (d *depressionImpl) UpdateAssessment(ctx context.Context, assessmentID int64, a *Assessment) (*Assessment, error) {
	return put[*Assessment](ctx, d.client, fmt.Sprintf("/api/depression-assessments/%d", assessmentID), a)
}

func (d *depressionImpl) DeleteAssessment(ctx context.Context, assessmentID int64) error {
	return del(ctx, d.client, fmt.Sprintf("/api/depression-assessments/%d", assessmentID))
}
