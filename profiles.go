package soulnest

import (
	"context"
	"encoding/json"
	"fmt"
)

// Profiles manages user profiles.
type Profiles interface {
	Get(ctx context.Context, userID int64) (*Profile, error)
	Save(ctx context.Context, profile *ProfileSave) (*Profile, error)
	Delete(ctx context.Context, userID int64) error
}

type profilesImpl struct {
	client *Client
}

// Profiles returns the profile operations.
func (c *Client) Profiles() Profiles {
	return &profilesImpl{client: c}
}

func (p *profilesImpl) Get(ctx context.Context, userID int64) (*Profile, error) {
	return get[*Profile](ctx, p.client, fmt.Sprintf("/api/profiles/%d", userID))
}

// Save creates or replaces a profile. The server stores each list as a
// JSON array string, so lists are encoded before sending.
func (p *profilesImpl) Save(ctx context.Context, profile *ProfileSave) (*Profile, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is nil")
	}

	body := map[string]any{"userId": profile.UserID}
	fields := []struct {
		name   string
		values []string
	}{
		{"interests", profile.Interests},
		{"personalityTraits", profile.PersonalityTraits},
		{"interactionPreferences", profile.InteractionPreferences},
		{"emotionalTendency", profile.EmotionalTendency},
		{"learningRecords", profile.LearningRecords},
	}
	for _, f := range fields {
		if f.values == nil {
			continue
		}
		encoded, err := json.Marshal(f.values)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.name, err) //coverage:ignore
		}
		body[f.name] = string(encoded)
	}

	return post[*Profile](ctx, p.client, "/api/profiles", body)
}

func (p *profilesImpl) Delete(ctx context.Context, userID int64) error {
	return del(ctx, p.client, fmt.Sprintf("/api/profiles/%d", userID))
}
