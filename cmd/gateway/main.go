package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-gateway/internal/common/cache"
	"storefront-gateway/internal/common/config"
	"storefront-gateway/internal/common/logger"
	"storefront-gateway/internal/common/middleware"
	adminHTTP "storefront-gateway/internal/features/admin/delivery/http"
	adminService "storefront-gateway/internal/features/admin/service"
	catalogHTTP "storefront-gateway/internal/features/catalog/delivery/http"
	catalogService "storefront-gateway/internal/features/catalog/service"
	checkoutHTTP "storefront-gateway/internal/features/checkout/delivery/http"
	checkoutService "storefront-gateway/internal/features/checkout/service"
	identityHTTP "storefront-gateway/internal/features/identity/delivery/http"
	identityService "storefront-gateway/internal/features/identity/service"
	paymentHTTP "storefront-gateway/internal/features/payment/delivery/http"
	paymentService "storefront-gateway/internal/features/payment/service"
	supportHTTP "storefront-gateway/internal/features/support/delivery/http"
	supportService "storefront-gateway/internal/features/support/service"
	"storefront-gateway/internal/platform/backend"
	"storefront-gateway/internal/platform/redis"
)

// @title           Storefront Gateway API
// @version         1.0
// @description     Gateway for a Telegram Mini App storefront: catalog, checkout, payments (manual rails and Telegram Stars), admin console and support inbox.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey TelegramInitData
// @in header
// @name init_data
// @description Telegram Mini App init_data string for authentication

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init("storefront-gateway", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("Starting storefront gateway")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.Open(ctx, cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	cacheService := cache.NewService(redisClient)

	client, err := backend.New(cfg.Storefront.BaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create storefront client")
	}

	identitySvc := identityService.NewIdentityService(client, cacheService)
	catalogSvc := catalogService.NewCatalogService(client, cacheService)
	checkoutSvc := checkoutService.NewCheckoutService(client)
	dispatcher := paymentService.NewDispatcher(client, cacheService)
	confirmation := paymentService.NewConfirmationService(client, cacheService)
	stars := paymentService.NewStarsService(client, cfg.Payments.StarsPerUSD)
	catalogAdmin := adminService.NewCatalogAdminService(client)
	orderAdmin := adminService.NewOrderAdminService(client)
	settings := adminService.NewSettingsService(client, cacheService)
	inbox := supportService.NewInboxService(client, cacheService)

	poller := supportService.NewPoller(client, cacheService)
	poller.Start(ctx)
	defer poller.Stop()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "init_data", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identity(cfg.Telegram.BotToken))
	{
		catalogHTTP.NewCatalogHandler(catalogSvc).RegisterRoutes(v1)
		identityHTTP.NewIdentityHandler(identitySvc).RegisterRoutes(v1)
		checkoutHTTP.NewCheckoutHandler(checkoutSvc).RegisterRoutes(v1)
		paymentHTTP.NewPaymentHandler(identitySvc, dispatcher, confirmation, stars).RegisterRoutes(v1)

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireTelegram(), middleware.RequireAdmin(cfg.Telegram.AdminIDs))
		{
			adminHTTP.NewAdminHandler(catalogAdmin, orderAdmin, settings).RegisterRoutes(admin)
			supportHTTP.NewSupportHandler(inbox, poller).RegisterRoutes(admin)
		}
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	registerHealth(router, client, redisClient)

	server := newHTTPServer(cfg.Server.Port, router)

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.Info().Msg("Server exited")
}

// newHTTPServer builds the gateway server. No write deadline is set:
// http.Server arms it when the request is read, and the Stars
// confirmation endpoint holds its response open for up to five minutes.
// Slow handlers are bounded by their own contexts instead.
func newHTTPServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:        fmt.Sprintf(":%d", port),
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
}

func registerHealth(router *gin.Engine, client *backend.Client, redisClient *redis.Client) {
	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"redis": "ok", "storefront": "ok"}

		if err := redisClient.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := client.HealthCheck(c.Request.Context()); err != nil {
			checks["storefront"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"status":    statusWord(status),
			"checks":    checks,
			"timestamp": time.Now().UTC(),
			"service":   "storefront-gateway",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ready", func(c *gin.Context) {
		if err := redisClient.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func statusWord(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
