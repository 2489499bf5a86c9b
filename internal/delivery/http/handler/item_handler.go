package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domainItem "stall-marketplace/internal/domain/item"
	"stall-marketplace/internal/usecase/item"
	"stall-marketplace/pkg/utils"
)

// ItemHandler serves one catalog kind; the router mounts one per entry in item.Kinds.
type ItemHandler struct {
	service *item.Service
	kind    domainItem.Kind
}

func NewItemHandler(service *item.Service, kind domainItem.Kind) *ItemHandler {
	return &ItemHandler{service: service, kind: kind}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup, sellerOnly ...gin.HandlerFunc) {
	group := router.Group("/catalog/" + h.kind.Slug)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)

		seller := group.Group("", sellerOnly...)
		seller.POST("", h.Create)
		seller.PUT("/:id", h.Update)
		seller.DELETE("/:id", h.Delete)
	}
}

func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), h.kind.Slug)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, fmt.Sprintf("%s items retrieved successfully", h.kind.Name), items)
}

func (h *ItemHandler) Get(c *gin.Context) {
	itemID, ok := pathID(c, "id", "item")
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), h.kind.Slug, itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, fmt.Sprintf("%s item retrieved successfully", h.kind.Name), found)
}

func (h *ItemHandler) Create(c *gin.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		return
	}

	var req item.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = utils.SanitizeString(req.Name)
	req.Description = utils.SanitizeText(req.Description)
	req.ImageRef = utils.SanitizeOptional(req.ImageRef, utils.SanitizeReference)
	req.Attributes = sanitizeAttributes(req.Attributes)

	created, err := h.service.Create(c.Request.Context(), sellerID, h.kind.Slug, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, fmt.Sprintf("%s item created successfully", h.kind.Name), created)
}

func (h *ItemHandler) Update(c *gin.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id", "item")
	if !ok {
		return
	}

	var req item.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = utils.SanitizeOptional(req.Name, utils.SanitizeString)
	req.Description = utils.SanitizeOptional(req.Description, utils.SanitizeText)
	req.ImageRef = utils.SanitizeOptional(req.ImageRef, utils.SanitizeReference)
	req.Attributes = sanitizeAttributes(req.Attributes)

	updated, err := h.service.Update(c.Request.Context(), sellerID, h.kind.Slug, itemID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, fmt.Sprintf("%s item updated successfully", h.kind.Name), updated)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id", "item")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), sellerID, h.kind.Slug, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, fmt.Sprintf("%s item deleted successfully", h.kind.Name), nil)
}

func sanitizeAttributes(attributes map[string]string) map[string]string {
	if attributes == nil {
		return nil
	}
	clean := make(map[string]string, len(attributes))
	for k, v := range attributes {
		clean[utils.SanitizeString(k)] = utils.SanitizeString(v)
	}
	return clean
}
