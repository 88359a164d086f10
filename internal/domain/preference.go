package domain

import (
	"context"
	"time"
)

// LocationType describes how an HR role is staffed. It is informational and
// does not take part in scoring.
type LocationType string

const (
	LocationOnsite LocationType = "ONSITE"
	LocationRemote LocationType = "REMOTE"
	LocationHybrid LocationType = "HYBRID"
)

var LocationTypes = []LocationType{LocationOnsite, LocationRemote, LocationHybrid}

// Preference is an HR-owned hiring profile that candidates are ranked against.
type Preference struct {
	ID                 string       `json:"id"`
	UserID             string       `json:"user_id"`
	Name               string       `json:"name" validate:"required,min=1,max=100"`
	RequiredSkills     []string     `json:"required_skills" validate:"max=50,dive,required,max=60"`
	MinExperienceYears float64      `json:"min_experience_years" validate:"min=0,max=60"`
	LocationType       LocationType `json:"location_type" validate:"omitempty,location_type"`
	HiringLocation     []string     `json:"hiring_location" validate:"max=20,dive,required,max=100"`
	EducationLevel     []string     `json:"education_level" validate:"max=10,dive,required,max=60"`
	MinAge             int          `json:"min_age" validate:"min=0,max=120"`
	MaxAge             *int         `json:"max_age,omitempty" validate:"omitempty,min=0,max=120"`
	Role               JobRole      `json:"role" validate:"required,job_role"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// PreferenceInput is the writable shape of a Preference. MinAge is a pointer so
// an absent value can be told apart from an explicit zero.
type PreferenceInput struct {
	Name               string       `json:"name"`
	RequiredSkills     []string     `json:"required_skills" binding:"required"`
	MinExperienceYears float64      `json:"min_experience_years"`
	LocationType       LocationType `json:"location_type"`
	HiringLocation     []string     `json:"hiring_location"`
	EducationLevel     []string     `json:"education_level"`
	MinAge             *int         `json:"min_age"`
	MaxAge             *int         `json:"max_age"`
	Role               JobRole      `json:"role" binding:"required"`
}

// ToPreference builds a Preference, applying defaultMinAge when MinAge is unset.
func (in PreferenceInput) ToPreference(defaultMinAge int) Preference {
	minAge := defaultMinAge
	if in.MinAge != nil {
		minAge = *in.MinAge
	}
	return Preference{
		Name:               in.Name,
		RequiredSkills:     in.RequiredSkills,
		MinExperienceYears: in.MinExperienceYears,
		LocationType:       in.LocationType,
		HiringLocation:     in.HiringLocation,
		EducationLevel:     in.EducationLevel,
		MinAge:             minAge,
		MaxAge:             in.MaxAge,
		Role:               in.Role,
	}
}

type PreferenceRepository interface {
	// CreateWithLimit inserts pref unless its owner already has limit preferences,
	// in which case it returns false without writing.
	CreateWithLimit(ctx context.Context, pref *Preference, limit int) (bool, error)
	GetByID(ctx context.Context, id string) (*Preference, error)
	ListByUserID(ctx context.Context, userID string) ([]Preference, error)
	Update(ctx context.Context, pref *Preference) error
	Delete(ctx context.Context, id, userID string) error
}

type PreferenceUsecase interface {
	Create(ctx context.Context, userID string, input PreferenceInput) (*Preference, error)
	Get(ctx context.Context, userID, id string) (*Preference, error)
	List(ctx context.Context, userID string) ([]Preference, error)
	Update(ctx context.Context, userID, id string, input PreferenceInput) (*Preference, error)
	Delete(ctx context.Context, userID, id string) error
}
