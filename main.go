// @title RimSurge Shop API
// @version 1.0
// @description Wheel fitment and catalog API for the RimSurge storefront
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	public_cache "github.com/Mininormi/mininormi1210/cache"
	"github.com/Mininormi/mininormi1210/config"
	"github.com/Mininormi/mininormi1210/controllers/cms/cache_controller"
	"github.com/Mininormi/mininormi1210/controllers/ecommerce/shop_controller"
	"github.com/Mininormi/mininormi1210/middleware"
	"github.com/Mininormi/mininormi1210/repository"
	"github.com/Mininormi/mininormi1210/routes/cms_routes"
	"github.com/Mininormi/mininormi1210/routes/ecommerce_routes"
	"github.com/Mininormi/mininormi1210/services"
	"github.com/Mininormi/mininormi1210/services/fitment"
	"github.com/Mininormi/mininormi1210/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	config.InitLogger("shop-api")
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to DBs
	config.InitDB()
	config.InitAnalyticsDB()
	defer config.CloseDB()
	// Redis connection
	config.ConnectRedis()

	settings := config.LoadFitmentSettings()

	// ✅ Initialize JWT Service for Admin Auth
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		config.Log.Fatal().Msg("❌ JWT_SECRET environment variable not set")
	}
	if err := services.InitJWTService(jwtSecret); err != nil {
		config.Log.Fatal().Err(err).Msg("Failed to initialize JWT service")
	}
	config.Log.Info().Msg("✅ JWT Service initialized")

	catalog := repository.NewCatalogRepository(config.CatalogGorm)
	resolver := fitment.NewResolver(catalog,
		fitment.WithTimeout(settings.QueryTimeout),
		fitment.WithWidthPolicy(fitment.WidthPolicy(settings.WidthPolicy)),
		fitment.WithAssembleWorkers(settings.AssembleWorkers),
		fitment.WithLogger(config.Log.With().Str("component", "fitment").Logger()),
	)
	brandCache := public_cache.NewBrandCache(
		public_cache.NewStore(config.PublicCacheClient),
		catalog,
		settings.PublicCacheTTL,
		config.Log.With().Str("component", "public_cache").Logger(),
	)

	var tracker *utils.SearchTracker
	if config.AnalyticsDB != nil {
		tracker = utils.NewSearchTracker(config.AnalyticsDB)
	}

	shop_controller.InitShopController(resolver, brandCache, tracker)
	cache_controller.InitCacheController(brandCache)

	corsCfg := cors.Config{
		AllowOrigins:     []string{config.GetEnv("STOREFRONT_ORIGIN", "http://localhost:3000"), "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), cors.New(corsCfg))

	api := router.Group("/api/v1")

	// Public shop, rate limited per IP and route
	ecommerce_routes.SetupShopRoutes(api, middleware.RateLimiter(config.RedisClient, settings.RateLimit, settings.RateWindow))
	config.Log.Info().Msg("✅ Shop routes registered")

	adminGroup := api.Group("/admin")
	cms_routes.SetupCacheRoutes(adminGroup, services.GetJWTService())
	config.Log.Info().Msg("✅ Admin routes registered")

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	addr := ":" + config.GetEnv("PORT", "8081")
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		config.Log.Info().Str("addr", addr).Msg("🚀 Server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Log.Fatal().Err(err).Msg("❌ Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		config.Log.Error().Err(err).Msg("❌ Graceful shutdown failed")
	}
	tracker.Wait()
	config.Log.Info().Msg("✅ Server stopped")
}
