package usecase

import (
	"context"
	"fmt"
	"time"

	"talent-network-backend/internal/domain"
	"talent-network-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

var assignableRoles = map[string]bool{
	domain.RoleCandidate: true,
	domain.RoleHR:        true,
	domain.RoleAdmin:     true,
}

func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) error {
	existing, err := u.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if existing != nil {
		return nil // Already exists; roles only change through AssignRole
	}

	// Default to 'candidate' if no role
	if user.Role == "" {
		user.Role = domain.RoleCandidate
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	return u.userRepo.Create(ctx, user)
}

func (u *authUsecase) AssignRole(ctx context.Context, userID string, role string) error {
	// Security: Only admin can assign roles
	if err := requireRole(ctx, domain.RoleAdmin); err != nil {
		return apperror.Forbidden("Only admins can assign roles")
	}
	if !assignableRoles[role] {
		return apperror.BadRequest(fmt.Sprintf("Unknown role %q", role))
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}

	user.Role = role
	user.UpdatedAt = time.Now()
	return u.userRepo.Update(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}
