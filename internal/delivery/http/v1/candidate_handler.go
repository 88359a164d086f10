package v1

import (
	"net/http"

	"talent-network-backend/internal/delivery/http/response"
	"talent-network-backend/internal/domain"
	"talent-network-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.GET("/me", handler.GetProfile)
		candidates.PUT("/me", handler.UpdateProfile)
	}
}

// GetProfile returns the caller's own candidate profile.
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.candidateUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile", profile)
}

// UpdateProfile creates or replaces the caller's candidate profile. The user id
// in the body is ignored.
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	var profile domain.Candidate
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.Error(apperror.BadRequest("Invalid profile payload"))
		return
	}

	if err := h.candidateUC.UpdateProfile(c.Request.Context(), &profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile saved", profile)
}
