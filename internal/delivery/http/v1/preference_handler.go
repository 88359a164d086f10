package v1

import (
	"net/http"

	"talent-network-backend/internal/delivery/http/middleware"
	"talent-network-backend/internal/delivery/http/response"
	"talent-network-backend/internal/domain"
	"talent-network-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	preferenceUC domain.PreferenceUsecase
	matchUC      domain.MatchUsecase
}

func NewPreferenceHandler(r *gin.RouterGroup, preferenceUC domain.PreferenceUsecase, matchUC domain.MatchUsecase) {
	handler := &PreferenceHandler{preferenceUC: preferenceUC, matchUC: matchUC}

	prefs := r.Group("/preferences")
	{
		prefs.GET("", handler.List)
		prefs.POST("", handler.Create)
		prefs.GET("/:id", handler.Get)
		prefs.PUT("/:id", handler.Update)
		prefs.DELETE("/:id", handler.Delete)
		prefs.GET("/:id/matches",
			middleware.RateLimitMiddleware(middleware.MatchRateLimitConfig()),
			handler.Matches,
		)
	}
}

func bindPreference(c *gin.Context) (domain.PreferenceInput, bool) {
	var input domain.PreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("role and required_skills are required"))
		return input, false
	}
	return input, true
}

func (h *PreferenceHandler) List(c *gin.Context) {
	prefs, err := h.preferenceUC.List(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Hiring preferences", prefs)
}

func (h *PreferenceHandler) Create(c *gin.Context) {
	input, ok := bindPreference(c)
	if !ok {
		return
	}
	pref, err := h.preferenceUC.Create(c.Request.Context(), c.GetString(string(domain.KeyUserID)), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Hiring preference created", pref)
}

func (h *PreferenceHandler) Get(c *gin.Context) {
	pref, err := h.preferenceUC.Get(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Hiring preference", pref)
}

func (h *PreferenceHandler) Update(c *gin.Context) {
	input, ok := bindPreference(c)
	if !ok {
		return
	}
	pref, err := h.preferenceUC.Update(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Hiring preference updated", pref)
}

func (h *PreferenceHandler) Delete(c *gin.Context) {
	if err := h.preferenceUC.Delete(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Hiring preference deleted", nil)
}

// Matches ranks candidates against a saved preference.
func (h *PreferenceHandler) Matches(c *gin.Context) {
	results, err := h.matchUC.MatchSaved(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Matching candidates", gin.H{"users": results})
}
