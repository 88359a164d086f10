package usecase

import (
	"context"

	"talent-network-backend/internal/domain"
	"talent-network-backend/pkg/apperror"
)

// callerID returns the authenticated user id carried by ctx.
func callerID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || id == "" {
		return "", apperror.Unauthorized("User not authenticated")
	}
	return id, nil
}

// requireRole fails unless the caller's role is one of roles.
func requireRole(ctx context.Context, roles ...string) error {
	role, ok := ctx.Value(domain.KeyUserRole).(string)
	if !ok || role == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	for _, r := range roles {
		if role == r {
			return nil
		}
	}
	return apperror.Forbidden("You do not have permission to perform this action")
}
