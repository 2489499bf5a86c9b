package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stall-marketplace/internal/config"
	"stall-marketplace/internal/delivery/http/handler"
	domainItem "stall-marketplace/internal/domain/item"
	domainUser "stall-marketplace/internal/domain/user"
	"stall-marketplace/internal/logger"
	"stall-marketplace/internal/middleware"
	"stall-marketplace/internal/usecase/item"
	"stall-marketplace/internal/usecase/shop"
	"stall-marketplace/internal/usecase/user"
	"stall-marketplace/pkg/utils"
)

// Dependencies are the wired services the HTTP layer needs.
type Dependencies struct {
	UserRepo    domainUser.Repository
	UserService *user.Service
	ShopService *shop.Service
	ItemService *item.Service
	HealthCheck func() error
}

// SetupRoutes builds the engine. ctx bounds background work such as the rate limiter janitor.
func SetupRoutes(ctx context.Context, cfg *config.Config, deps *Dependencies) *gin.Engine {
	production := cfg.Server.IsProduction()
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.SetExposeStack(!production)

	router := gin.New()

	// Order: recovery, request ID, logging, metrics, security headers, CORS, size limit, rate limit
	router.Use(middleware.RecoveryMiddleware(production))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(production))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	if cfg.RateLimit.GeneralRPS > 0 {
		limiter := middleware.NewRateLimiter(ctx, cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	router.GET("/health", func(c *gin.Context) {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(); err != nil {
				utils.ErrorResponse(c, http.StatusServiceUnavailable, "Database connection failed")
				return
			}
		}

		utils.SuccessResponse(c, http.StatusOK, "Service is running", gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "Route not found: "+c.Request.Method+" "+c.Request.URL.Path)
	})

	authenticated := middleware.AuthMiddleware(cfg.JWT.Secret, cfg.Cookie.Name)
	sellerOnly := middleware.SellerOnly(deps.UserRepo)
	adminOnly := middleware.AdminOnly(deps.UserRepo)

	authHandler := handler.NewAuthHandler(deps.UserService, cfg.Cookie)
	userHandler := handler.NewUserHandler(deps.UserService)
	shopHandler := handler.NewShopHandler(deps.ShopService)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1, authenticated)
		shopHandler.RegisterRoutes(v1)

		seller := v1.Group("/shops", authenticated, sellerOnly)
		{
			shopHandler.RegisterSellerRoutes(seller)
		}

		shopAdmin := v1.Group("/shops/admin", authenticated, adminOnly)
		{
			shopHandler.RegisterAdminRoutes(shopAdmin)
		}

		admin := v1.Group("/admin", authenticated, adminOnly)
		{
			userHandler.RegisterAdminRoutes(admin)
		}

		for _, kind := range domainItem.Kinds {
			handler.NewItemHandler(deps.ItemService, kind).RegisterRoutes(v1, authenticated, sellerOnly)
		}
	}

	logger.Info("All routes initialized")
	return router
}
