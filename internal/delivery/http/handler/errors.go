package handler

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainItem "stall-marketplace/internal/domain/item"
	domainShop "stall-marketplace/internal/domain/shop"
	domainUser "stall-marketplace/internal/domain/user"
	"stall-marketplace/internal/logger"
	"stall-marketplace/internal/middleware"
	appErrors "stall-marketplace/pkg/errors"
	"stall-marketplace/pkg/utils"
)

// exposeStack adds the stack trace to 500 responses; off in production.
var exposeStack = true

func SetExposeStack(enabled bool) {
	exposeStack = enabled
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, domainUser.ErrEmailAlreadyExists),
		errors.Is(err, domainUser.ErrUsernameAlreadyExists),
		errors.Is(err, domainUser.ErrInvalidUserType),
		errors.Is(err, domainShop.ErrShopAlreadyExists),
		errors.Is(err, domainShop.ErrInvalidStatusTransition),
		errors.Is(err, domainShop.ErrInvalidCategory),
		errors.Is(err, appErrors.ErrWrongCurrentPassword):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrUnauthorized),
		errors.Is(err, domainUser.ErrUserInactive):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrInsufficientPermissions),
		errors.Is(err, domainShop.ErrShopNotApproved),
		errors.Is(err, domainShop.ErrShopInactive),
		errors.Is(err, domainItem.ErrNotItemOwner):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domainUser.ErrUserNotFound),
		errors.Is(err, domainShop.ErrShopNotFound),
		errors.Is(err, domainItem.ErrItemNotFound),
		errors.Is(err, domainItem.ErrUnknownKind):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, statusForCode(appErr.Code), appErr.Message)
			return
		}

		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		if exposeStack {
			utils.ErrorResponseWithStack(c, http.StatusInternalServerError, err.Error(), string(debug.Stack()))
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

func statusForCode(code string) int {
	switch code {
	case appErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErrors.CodeForbidden:
		return http.StatusForbidden
	case appErrors.CodeNotFound:
		return http.StatusNotFound
	case appErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// callerID reads the authenticated user or writes a 401 and reports false.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
