package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"talent-network-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsSetKind(t *testing.T) {
	cases := []struct {
		err  *apperror.AppError
		code int
		kind apperror.Kind
	}{
		{apperror.BadRequest("x"), http.StatusBadRequest, apperror.KindInvalidRequest},
		{apperror.Unauthorized("x"), http.StatusUnauthorized, apperror.KindUnauthorized},
		{apperror.Forbidden("x"), http.StatusForbidden, apperror.KindForbidden},
		{apperror.NotFound("x"), http.StatusNotFound, apperror.KindNotFound},
		{apperror.Conflict("x"), http.StatusConflict, apperror.KindConflict},
		{apperror.Internal(errors.New("db down")), http.StatusInternalServerError, apperror.KindInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.kind, tc.err.Kind)
	}
}

func TestBlockedCarriesOverrideFlag(t *testing.T) {
	err := apperror.Blocked("blocked", true)
	assert.Equal(t, apperror.KindBlocked, err.Kind)
	assert.Equal(t, true, err.Details["can_override"])
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("send: %w", apperror.NotFound("Receiver not found"))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(wrapped))
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(errors.New("plain")))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperror.Internal(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal Server Error", err.Error())
}
