package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"stall-marketplace/internal/config"
	domainItem "stall-marketplace/internal/domain/item"
	domainShop "stall-marketplace/internal/domain/shop"
	domainUser "stall-marketplace/internal/domain/user"
	"stall-marketplace/internal/events"
	"stall-marketplace/internal/infrastructure/database/memory"
	"stall-marketplace/internal/infrastructure/database/postgres"
	"stall-marketplace/internal/logger"
	"stall-marketplace/internal/routes"
	"stall-marketplace/internal/usecase/item"
	"stall-marketplace/internal/usecase/shop"
	"stall-marketplace/internal/usecase/user"
	"stall-marketplace/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("db_driver", cfg.Database.Driver),
	)

	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}
	utils.SetPasswordCost(cfg.Security.BcryptCost)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var (
		userRepo    domainUser.Repository
		shopRepo    domainShop.Repository
		itemRepo    domainItem.Repository
		healthCheck func() error
	)

	if cfg.Database.InMemory() {
		store := memory.NewStore()
		userRepo, shopRepo, itemRepo = store.Users(), store.Shops(), store.Items()
		logger.Warn("Using in-memory store; data is lost on restart")
	} else {
		if cfg.Database.Host == "" || cfg.Database.DBName == "" {
			logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
		}

		db, err := postgres.NewDB(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", zap.Error(err))
			}
		}()

		if err := db.Migrate(); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}

		userRepo = postgres.NewUserRepository(db)
		shopRepo = postgres.NewShopRepository(db)
		itemRepo = postgres.NewItemRepository(db)
		healthCheck = db.Health
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.MQTT.Broker != "" {
		mqttPublisher, err := events.NewMQTTPublisher(&cfg.MQTT)
		if err != nil {
			logger.Warn("MQTT unavailable, shop events will not be published", zap.Error(err))
		} else {
			publisher = mqttPublisher
			defer mqttPublisher.Close()
		}
	}

	shopService := shop.NewService(shopRepo, publisher)
	userService := user.NewService(userRepo, shopRepo, shopService, cfg)
	itemService := item.NewService(itemRepo, shopRepo)

	if err := userService.SeedAdmin(ctx, cfg.Admin); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	router := routes.SetupRoutes(ctx, cfg, &routes.Dependencies{
		UserRepo:    userRepo,
		UserService: userService,
		ShopService: shopService,
		ItemService: itemService,
		HealthCheck: healthCheck,
	})

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
		return
	}

	logger.Info("Server exited properly")
}
