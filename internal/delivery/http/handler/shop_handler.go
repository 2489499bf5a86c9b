package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"stall-marketplace/internal/usecase/shop"
	"stall-marketplace/pkg/utils"
)

type ShopHandler struct {
	service *shop.Service
}

func NewShopHandler(service *shop.Service) *ShopHandler {
	return &ShopHandler{service: service}
}

func (h *ShopHandler) RegisterRoutes(router *gin.RouterGroup) {
	public := router.Group("/shops/public")
	{
		public.GET("", h.ListPublic)
		public.GET("/:id", h.GetPublic)
	}
}

func (h *ShopHandler) RegisterSellerRoutes(router *gin.RouterGroup) {
	router.GET("/my-shop", h.GetMyShop)
	router.PUT("/toggle-status", h.ToggleStatus)
}

func (h *ShopHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/pending", h.listScope(shop.ScopePending))
	router.GET("/approved", h.listScope(shop.ScopeApproved))
	router.GET("/rejected", h.listScope(shop.ScopeRejected))
	router.GET("/all", h.listScope(shop.ScopeAll))
	router.PUT("/approve/:id", h.Approve)
	router.PUT("/reject/:id", h.Reject)
}

func (h *ShopHandler) ListPublic(c *gin.Context) {
	var query shop.PublicShopQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	query.Search = utils.SanitizeString(query.Search)

	shops, err := h.service.ListPublic(c.Request.Context(), &query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shops retrieved successfully", shops)
}

func (h *ShopHandler) GetPublic(c *gin.Context) {
	shopID, ok := pathID(c, "id", "shop")
	if !ok {
		return
	}

	found, err := h.service.GetPublic(c.Request.Context(), shopID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shop retrieved successfully", found)
}

func (h *ShopHandler) GetMyShop(c *gin.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		return
	}

	own, err := h.service.GetMyShop(c.Request.Context(), sellerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shop retrieved successfully", own)
}

func (h *ShopHandler) ToggleStatus(c *gin.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		return
	}

	toggled, err := h.service.ToggleOpen(c.Request.Context(), sellerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	message := "Shop is now closed"
	if toggled.IsOpen {
		message = "Shop is now open"
	}
	utils.SuccessResponse(c, http.StatusOK, message, toggled)
}

func (h *ShopHandler) listScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query shop.AdminShopQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
			return
		}
		query.Search = utils.SanitizeString(query.Search)

		shops, err := h.service.ListForAdmin(c.Request.Context(), scope, &query)
		if err != nil {
			respondWithError(c, err)
			return
		}

		utils.SuccessResponse(c, http.StatusOK, "Shops retrieved successfully", shops)
	}
}

func (h *ShopHandler) Approve(c *gin.Context) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}
	shopID, ok := pathID(c, "id", "shop")
	if !ok {
		return
	}

	approved, err := h.service.Approve(c.Request.Context(), adminID, shopID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shop approved successfully", approved)
}

// Reject accepts an empty body; the reason then falls back to the default.
func (h *ShopHandler) Reject(c *gin.Context) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}
	shopID, ok := pathID(c, "id", "shop")
	if !ok {
		return
	}

	var req shop.RejectShopRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Reason = utils.SanitizeText(req.Reason)

	rejected, err := h.service.Reject(c.Request.Context(), adminID, shopID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shop rejected successfully", rejected)
}
