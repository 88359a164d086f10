package v1

import (
	"errors"
	"net/http"

	"talent-network-backend/internal/delivery/http/middleware"
	"talent-network-backend/internal/delivery/http/response"
	"talent-network-backend/internal/domain"
	"talent-network-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	friendUC domain.FriendUsecase
}

func NewFriendHandler(r *gin.RouterGroup, friendUC domain.FriendUsecase) {
	handler := &FriendHandler{friendUC: friendUC}
	writeLimit := middleware.RateLimitMiddleware(middleware.FriendWriteRateLimitConfig())

	requests := r.Group("/friend-requests")
	{
		requests.GET("", handler.ListPending)
		requests.POST("", writeLimit, handler.Send)
		requests.POST("/:id/accept", writeLimit, handler.Accept)
		requests.POST("/:id/reject", writeLimit, handler.Reject)
	}

	rejected := r.Group("/rejected-requests")
	{
		rejected.GET("", handler.ListRejections)
		rejected.DELETE("/:id", writeLimit, handler.UndoRejection)
	}

	r.GET("/friends", handler.ListFriends)
	r.GET("/friends/:id/status", handler.Status)
	r.POST("/friendships/remove", writeLimit, handler.Remove)

	admin := r.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.POST("/friend-requests/cleanup", handler.Cleanup)
	}
}

type SendFriendRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Override   bool   `json:"override"`
}

type RemoveFriendRequest struct {
	FriendID string `json:"friend_id" binding:"required"`
}

type CleanupRequest struct {
	SenderID   string `json:"sender_id" binding:"required"`
	ReceiverID string `json:"receiver_id" binding:"required"`
}

func callerID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}

// Send creates a friend request. A standing rejection is not an error for the
// client: it is reported with 200 and blocked=true so the UI can offer override.
func (h *FriendHandler) Send(c *gin.Context) {
	var req SendFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("receiver_id is required"))
		return
	}

	outcome, err := h.friendUC.Send(c.Request.Context(), callerID(c), req.ReceiverID, req.Override)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Kind == apperror.KindBlocked {
			data := gin.H{"blocked": true}
			for k, v := range appErr.Details {
				data[k] = v
			}
			response.Success(c, http.StatusOK, appErr.Message, data)
			return
		}
		c.Error(err)
		return
	}

	if outcome.AlreadyPending {
		response.Success(c, http.StatusOK, "Friend request already pending", outcome)
		return
	}
	response.Success(c, http.StatusCreated, "Friend request sent", outcome)
}

func (h *FriendHandler) Accept(c *gin.Context) {
	req, err := h.friendUC.Accept(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Friend request accepted", req)
}

func (h *FriendHandler) Reject(c *gin.Context) {
	req, err := h.friendUC.Reject(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Friend request rejected", req)
}

func (h *FriendHandler) UndoRejection(c *gin.Context) {
	if err := h.friendUC.UndoRejection(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rejection removed", nil)
}

func (h *FriendHandler) Remove(c *gin.Context) {
	var req RemoveFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("friend_id is required"))
		return
	}
	if err := h.friendUC.Remove(c.Request.Context(), callerID(c), req.FriendID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Friend removed", nil)
}

func (h *FriendHandler) Cleanup(c *gin.Context) {
	var req CleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("sender_id and receiver_id are required"))
		return
	}
	result, err := h.friendUC.Cleanup(c.Request.Context(), req.SenderID, req.ReceiverID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Friend relationship reset", result)
}

func (h *FriendHandler) ListPending(c *gin.Context) {
	views, err := h.friendUC.ListPending(c.Request.Context(), callerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Pending friend requests", views)
}

func (h *FriendHandler) ListFriends(c *gin.Context) {
	ids, err := h.friendUC.ListFriends(c.Request.Context(), callerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Friends", gin.H{"friend_ids": ids})
}

func (h *FriendHandler) ListRejections(c *gin.Context) {
	rejections, err := h.friendUC.ListRejections(c.Request.Context(), callerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rejected friend requests", rejections)
}

func (h *FriendHandler) Status(c *gin.Context) {
	state, err := h.friendUC.Status(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Relationship status", gin.H{"state": state})
}
