package domain

import "context"

// MatchBreakdown lists the points each scoring component contributed.
type MatchBreakdown struct {
	LocationGatePassed bool     `json:"location_gate_passed"`
	Experience         float64  `json:"experience"`
	Skills             float64  `json:"skills"`
	Education          float64  `json:"education"`
	Age                float64  `json:"age"`
	Location           float64  `json:"location"`
	MatchedSkills      []string `json:"matched_skills"`
}

// MatchResult is derived on every query and never persisted.
type MatchResult struct {
	UserID         string         `json:"user_id"`
	FullName       string         `json:"full_name"`
	Headline       string         `json:"headline"`
	AvatarURL      string         `json:"avatar_url"`
	Skills         []string       `json:"skills"`
	PreferredAreas []string       `json:"preferred_areas"`
	ExperienceTier ExperienceTier `json:"experience_tier"`
	Age            *int           `json:"age,omitempty"`
	MatchScore     int            `json:"match_score"`
	Breakdown      MatchBreakdown `json:"breakdown"`
}

type MatchUsecase interface {
	// Match ranks open-to-work candidates of pref.Role against pref.
	Match(ctx context.Context, pref Preference) ([]MatchResult, error)
	// MatchSaved ranks candidates against a stored preference owned by userID.
	MatchSaved(ctx context.Context, userID, preferenceID string) ([]MatchResult, error)
}
