package middleware

import (
	"errors"
	"net/http"

	"talent-network-backend/internal/delivery/http/response"
	"talent-network-backend/pkg/apperror"
	"talent-network-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			var details interface{}
			if len(appErr.Details) > 0 {
				details = appErr.Details
			}
			response.Error(c, appErr.Code, appErr.Message, errorBody{Kind: appErr.Kind, Details: details})
			return
		}

		// SECURITY: Never expose internal error details to clients.
		logger.Log.Error("Internal Server Error",
			"error", err,
			"path", c.FullPath(),
			"method", c.Request.Method,
			"request_id", c.GetString("RequestID"),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.",
			errorBody{Kind: apperror.KindInternal})
	}
}

type errorBody struct {
	Kind    apperror.Kind `json:"kind"`
	Details interface{}   `json:"details,omitempty"`
}
