package domain

import (
	"context"
	"time"
)

// ExperienceTier is the bucketed work experience a candidate reports.
type ExperienceTier string

const (
	ExperienceNone         ExperienceTier = "NONE"
	ExperienceUnder1Y      ExperienceTier = "UNDER_1Y"
	ExperienceOneToTwoY    ExperienceTier = "ONE_TO_2Y"
	ExperienceThreeToFiveY ExperienceTier = "THREE_TO_5Y"
	ExperienceFivePlusY    ExperienceTier = "FIVE_PLUS_Y"
)

// JobRole tags both candidate profiles and HR preferences.
type JobRole string

const (
	RoleSoftwareEngineer JobRole = "SOFTWARE_ENGINEER"
	RoleDataScientist    JobRole = "DATA_SCIENTIST"
	RoleProductManager   JobRole = "PRODUCT_MANAGER"
	RoleDesigner         JobRole = "DESIGNER"
	RoleDevOpsEngineer   JobRole = "DEVOPS_ENGINEER"
	RoleQAEngineer       JobRole = "QA_ENGINEER"
	RoleMarketing        JobRole = "MARKETING"
	RoleSales            JobRole = "SALES"
	RoleHumanResources   JobRole = "HR"
	RoleOther            JobRole = "OTHER"
)

var ExperienceTiers = []ExperienceTier{
	ExperienceNone, ExperienceUnder1Y, ExperienceOneToTwoY, ExperienceThreeToFiveY, ExperienceFivePlusY,
}

var JobRoles = []JobRole{
	RoleSoftwareEngineer, RoleDataScientist, RoleProductManager, RoleDesigner, RoleDevOpsEngineer,
	RoleQAEngineer, RoleMarketing, RoleSales, RoleHumanResources, RoleOther,
}

// Candidate is the matchable part of a user profile.
type Candidate struct {
	UserID         string         `json:"user_id" validate:"required"`
	FullName       string         `json:"full_name" validate:"required,min=2,max=100,no_emoji"`
	Headline       string         `json:"headline" validate:"max=160"`
	AvatarURL      string         `json:"avatar_url" validate:"omitempty,url"`
	Skills         []string       `json:"skills" validate:"max=50,dive,required,max=60"`
	EducationLevel []string       `json:"education_level" validate:"max=10,dive,required,max=60"`
	PreferredAreas []string       `json:"preferred_areas" validate:"max=20,dive,required,max=100"`
	ExperienceTier ExperienceTier `json:"experience_tier" validate:"required,experience_tier"`
	Age            *int           `json:"age,omitempty" validate:"omitempty,min=0,max=120"`
	OpenToWork     bool           `json:"open_to_work"`
	Role           JobRole        `json:"role" validate:"required,job_role"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type CandidateRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Candidate, error)
	Upsert(ctx context.Context, candidate *Candidate) error
	// ListOpenToWorkByRole returns only candidates with open_to_work = true for role.
	ListOpenToWorkByRole(ctx context.Context, role JobRole) ([]Candidate, error)
}

type CandidateUsecase interface {
	GetProfile(ctx context.Context, userID string) (*Candidate, error)
	UpdateProfile(ctx context.Context, candidate *Candidate) error
}
