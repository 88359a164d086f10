package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-network-backend/internal/domain"
	"talent-network-backend/pkg/apperror"
	"talent-network-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type preferenceUsecase struct {
	repo          domain.PreferenceRepository
	validate      *validator.Validate
	maxPerUser    int
	defaultMinAge int
}

// NewPreferenceUsecase creates the HR preference usecase. maxPerUser caps how
// many preferences one HR account may own.
func NewPreferenceUsecase(repo domain.PreferenceRepository, validate *validator.Validate, maxPerUser, defaultMinAge int) domain.PreferenceUsecase {
	return &preferenceUsecase{
		repo:          repo,
		validate:      validate,
		maxPerUser:    maxPerUser,
		defaultMinAge: defaultMinAge,
	}
}

// preparePreference normalises list fields and validates pref. It is shared by
// preference CRUD and ad-hoc matching.
func preparePreference(validate *validator.Validate, pref *domain.Preference) error {
	pref.RequiredSkills = cleanList(pref.RequiredSkills)
	pref.HiringLocation = cleanList(pref.HiringLocation)
	pref.EducationLevel = cleanList(pref.EducationLevel)

	if err := validate.Struct(pref); err != nil {
		return apperror.BadRequest(validation.Message(err))
	}
	if pref.MaxAge != nil && *pref.MaxAge < pref.MinAge {
		return apperror.BadRequest("Maximum age must be greater than or equal to minimum age")
	}
	return nil
}

func (u *preferenceUsecase) Create(ctx context.Context, userID string, input domain.PreferenceInput) (*domain.Preference, error) {
	if err := requireRole(ctx, domain.RoleHR); err != nil {
		return nil, apperror.Forbidden("Only HR accounts can manage hiring preferences")
	}

	pref := input.ToPreference(u.defaultMinAge)
	if err := preparePreference(u.validate, &pref); err != nil {
		return nil, err
	}
	pref.ID = uuid.NewString()
	pref.UserID = userID

	created, err := u.repo.CreateWithLimit(ctx, &pref, u.maxPerUser)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	if !created {
		return nil, apperror.Conflict(fmt.Sprintf("You can have at most %d hiring preferences", u.maxPerUser))
	}
	return &pref, nil
}

// loadOwned returns the preference if userID owns it.
func (u *preferenceUsecase) loadOwned(ctx context.Context, userID, id string) (*domain.Preference, error) {
	if err := requireRole(ctx, domain.RoleHR); err != nil {
		return nil, apperror.Forbidden("Only HR accounts can manage hiring preferences")
	}

	pref, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Preference not found")
		}
		return nil, apperror.Internal(err)
	}
	if pref.UserID != userID {
		return nil, apperror.Forbidden("You can only access your own preferences")
	}
	return pref, nil
}

func (u *preferenceUsecase) Get(ctx context.Context, userID, id string) (*domain.Preference, error) {
	return u.loadOwned(ctx, userID, id)
}

func (u *preferenceUsecase) List(ctx context.Context, userID string) ([]domain.Preference, error) {
	if err := requireRole(ctx, domain.RoleHR); err != nil {
		return nil, apperror.Forbidden("Only HR accounts can manage hiring preferences")
	}
	prefs, err := u.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return prefs, nil
}

func (u *preferenceUsecase) Update(ctx context.Context, userID, id string, input domain.PreferenceInput) (*domain.Preference, error) {
	existing, err := u.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	pref := input.ToPreference(u.defaultMinAge)
	pref.ID = existing.ID
	pref.UserID = existing.UserID
	pref.CreatedAt = existing.CreatedAt
	if err := preparePreference(u.validate, &pref); err != nil {
		return nil, err
	}
	pref.UpdatedAt = time.Now()

	if err := u.repo.Update(ctx, &pref); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Preference not found")
		}
		return nil, apperror.Internal(err)
	}
	return &pref, nil
}

func (u *preferenceUsecase) Delete(ctx context.Context, userID, id string) error {
	if _, err := u.loadOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Preference not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
