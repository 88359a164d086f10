package domain

import "errors"

// Sentinel errors returned by repositories. Usecases translate them into
// apperror values before they reach the delivery layer.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicatePending  = errors.New("pending friend request already exists for pair")
	ErrInvalidTransition = errors.New("friend request is not pending")
)
