package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stall-marketplace/internal/usecase/user"
	"stall-marketplace/pkg/utils"
)

// UserHandler serves admin account management.
type UserHandler struct {
	service *user.Service
}

func NewUserHandler(service *user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/users")
	{
		admin.GET("", h.ListUsers)
		admin.PUT("/:id/status", h.SetStatus)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var query user.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), &query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) SetStatus(c *gin.Context) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	var req user.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.SetActive(c.Request.Context(), adminID, userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User status updated successfully", updated)
}
