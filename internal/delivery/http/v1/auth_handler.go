package v1

import (
	"net/http"

	"talent-network-backend/internal/delivery/http/middleware"
	"talent-network-backend/internal/delivery/http/response"
	"talent-network-backend/internal/domain"
	"talent-network-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.PUT("/users/:id/role", middleware.RequireRole(domain.RoleAdmin), handler.AssignRole)
	}
}

// Me returns the authenticated user as stored locally.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User details", gin.H{"user": user})
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AuthHandler) AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("role is required"))
		return
	}

	if err := h.authUC.AssignRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role updated", nil)
}
