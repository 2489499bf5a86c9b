package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stall-marketplace/internal/config"
	"stall-marketplace/internal/usecase/user"
	"stall-marketplace/pkg/utils"
)

type AuthHandler struct {
	service *user.Service
	cookie  config.CookieConfig
}

func NewAuthHandler(service *user.Service, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authenticated gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)

		authGroup.GET("/me", authenticated, h.Me)
		authGroup.PUT("/profile", authenticated, h.UpdateProfile)
		authGroup.PUT("/change-password", authenticated, h.ChangePassword)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	req.Username = utils.SanitizeString(req.Username)
	req.UserType = utils.SanitizeString(req.UserType)
	req.Avatar = utils.SanitizeOptional(req.Avatar, utils.SanitizeReference)
	req.ShopName = utils.SanitizeString(req.ShopName)
	req.StallNumber = utils.SanitizeString(req.StallNumber)
	req.FloorNumber = utils.SanitizeString(req.FloorNumber)
	req.Description = utils.SanitizeText(req.Description)
	req.ShopLogo = utils.SanitizeReference(req.ShopLogo)

	account, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", account)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	authResponse, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.setSessionCookie(c, authResponse.Token, int(time.Until(authResponse.ExpiresAt).Seconds()))
	utils.SuccessResponse(c, http.StatusOK, "Login successful", authResponse)
}

// Logout only clears the cookie; issued tokens stay valid until expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	account, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", account)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = utils.SanitizeOptional(req.Username, utils.SanitizeString)
	req.Email = utils.SanitizeOptional(req.Email, utils.SanitizeEmail)
	req.Avatar = utils.SanitizeOptional(req.Avatar, utils.SanitizeReference)

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", profile)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
