package v1

import (
	"net/http"

	"talent-network-backend/internal/delivery/http/middleware"
	"talent-network-backend/internal/delivery/http/response"
	"talent-network-backend/internal/domain"
	"talent-network-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUC       domain.MatchUsecase
	defaultMinAge int
}

func NewMatchHandler(r *gin.RouterGroup, matchUC domain.MatchUsecase, defaultMinAge int) {
	handler := &MatchHandler{matchUC: matchUC, defaultMinAge: defaultMinAge}

	r.POST("/match",
		middleware.RateLimitMiddleware(middleware.MatchRateLimitConfig()),
		handler.Match,
	)
}

// Match ranks open-to-work candidates against an ad-hoc preference.
// required_skills and role must be present; an empty skills array is accepted.
func (h *MatchHandler) Match(c *gin.Context) {
	var input domain.PreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("role and required_skills are required"))
		return
	}

	results, err := h.matchUC.Match(c.Request.Context(), input.ToPreference(h.defaultMinAge))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Matching candidates", gin.H{"users": results})
}
