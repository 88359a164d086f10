package usecase

import (
	"context"

	"talent-network-backend/internal/domain"
	"talent-network-backend/pkg/apperror"
	"talent-network-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type candidateUsecase struct {
	repo     domain.CandidateRepository
	validate *validator.Validate
}

func NewCandidateUsecase(repo domain.CandidateRepository, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:     repo,
		validate: validate,
	}
}

func (u *candidateUsecase) GetProfile(ctx context.Context, userID string) (*domain.Candidate, error) {
	// Security: Ownership Check
	ctxUserID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if ctxUserID != userID {
		return nil, apperror.Forbidden("You can only view your own profile")
	}

	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Candidate profile not found")
	}
	return profile, nil
}

func (u *candidateUsecase) UpdateProfile(ctx context.Context, profile *domain.Candidate) error {
	// Security: Verify context user matches profile user (IDOR prevention on update)
	ctxUserID, err := callerID(ctx)
	if err != nil {
		return err
	}
	if err := requireRole(ctx, domain.RoleCandidate); err != nil {
		return apperror.Forbidden("Only candidates can edit a candidate profile")
	}

	// Force the UserID to be the context user, ensuring they can't update someone else's profile
	profile.UserID = ctxUserID
	profile.Skills = cleanList(profile.Skills)
	profile.EducationLevel = cleanList(profile.EducationLevel)
	profile.PreferredAreas = cleanList(profile.PreferredAreas)

	if err := u.validate.Struct(profile); err != nil {
		return apperror.BadRequest(validation.Message(err))
	}

	if err := u.repo.Upsert(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
