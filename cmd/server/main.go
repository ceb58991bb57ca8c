package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminapp "github.com/glossary/backend/internal/application/admin"
	catalogapp "github.com/glossary/backend/internal/application/catalog"
	commerceapp "github.com/glossary/backend/internal/application/commerce"
	identityapp "github.com/glossary/backend/internal/application/identity"
	learningapp "github.com/glossary/backend/internal/application/learning"
	"github.com/glossary/backend/internal/infrastructure/auth"
	"github.com/glossary/backend/internal/infrastructure/cache"
	"github.com/glossary/backend/internal/infrastructure/config"
	"github.com/glossary/backend/internal/infrastructure/logger"
	"github.com/glossary/backend/internal/infrastructure/payment"
	"github.com/glossary/backend/internal/infrastructure/persistence"
	"github.com/glossary/backend/internal/infrastructure/search"
	"github.com/glossary/backend/internal/infrastructure/storage"
	"github.com/glossary/backend/internal/infrastructure/telemetry"
	"github.com/glossary/backend/internal/interfaces/http/handler"
	"github.com/glossary/backend/internal/interfaces/http/middleware"
	"github.com/glossary/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Glossary Backend API
//	@version		1.0
//	@description	AI/ML glossary backend - terms, categories, learning progress and lifetime-access purchases

//	@contact.name	API Support
//	@contact.url	https://github.com/glossary/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// Ship logs to the OTEL collector when configured. The bridged logger
	// replaces the plain one so every component below exports its entries.
	if cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled {
		logsProvider, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Warn("Failed to initialize OTEL log export", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := logsProvider.Shutdown(ctx); err != nil {
					log.Error("Error shutting down logger provider", zap.Error(err))
				}
			}()

			bridged, err := telemetry.CreateBridgedLoggerFromConfig(&logger.Config{
				Level:      cfg.Log.Level,
				Format:     cfg.Log.Format,
				Output:     cfg.Log.Output,
				TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			}, logsProvider, cfg.Telemetry.ServiceName)
			if err != nil {
				log.Warn("Failed to bridge logs to OTEL", zap.Error(err))
			} else {
				log = bridged
			}
		}
	}

	log.Info("Starting Glossary Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// OpenTelemetry providers. When disabled both providers are no-ops and
	// the middleware below is simply not installed.
	var businessMetrics *telemetry.BusinessMetrics
	if cfg.Telemetry.Enabled {
		tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			SamplingRatio:     cfg.Telemetry.SamplingRatio,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize tracer provider", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(ctx); err != nil {
				log.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()

		meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize meter provider", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := meterProvider.Shutdown(ctx); err != nil {
				log.Error("Error shutting down meter provider", zap.Error(err))
			}
		}()

		if cfg.Telemetry.DBTraceEnabled {
			dbTracingCfg := telemetry.DefaultDBTracingConfig()
			dbTracingCfg.LogFullSQL = cfg.Telemetry.DBLogFullSQL
			if cfg.Telemetry.DBSlowQueryThresh > 0 {
				dbTracingCfg.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThresh
			}
			dbTracingPlugin := telemetry.NewDBTracingPlugin(dbTracingCfg, log)
			if err := dbTracingPlugin.RegisterOtelGorm(db.DB); err != nil {
				log.Warn("Failed to register database tracing", zap.Error(err))
			}
		}

		if cfg.Telemetry.DBMetricsEnabled {
			dbMetricsCfg := telemetry.DefaultDBMetricsConfig()
			if cfg.Telemetry.DBSlowQueryThresh > 0 {
				dbMetricsCfg.SlowQueryThreshold = cfg.Telemetry.DBSlowQueryThresh
			}
			dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, dbMetricsCfg, log)
			if err != nil {
				log.Warn("Failed to register database metrics", zap.Error(err))
			} else if dbMetrics != nil {
				dbMetrics.StartPoolStatsCollection(context.Background())
				defer dbMetrics.Stop()
			}
		}

		bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:           meterProvider.Meter("glossary-backend"),
			Logger:          log,
			ContentProvider: telemetry.NewGormContentMetricsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize business metrics", zap.Error(err))
		} else {
			businessMetrics = bm
			businessMetrics.StartPeriodicCollection(context.Background(), 5*time.Minute)
			defer businessMetrics.Stop()
		}

		log.Info("Telemetry enabled",
			zap.String("collector", cfg.Telemetry.CollectorEndpoint),
			zap.Float64("sampling_ratio", cfg.Telemetry.SamplingRatio),
		)
	}

	// Continuous profiling
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Profiling.Enabled,
		ServerAddress:       cfg.Profiling.ServerAddress,
		ApplicationName:     cfg.App.Name,
		BasicAuthUser:       cfg.Profiling.AuthUser,
		BasicAuthPassword:   cfg.Profiling.AuthPassword,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileInuseObjects: true,
		ProfileInuseSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Warn("Failed to start profiler", zap.Error(err))
	} else {
		defer func() {
			if err := profiler.Stop(); err != nil {
				log.Error("Error stopping profiler", zap.Error(err))
			}
		}()
	}

	// Initialize repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	subcategoryRepo := persistence.NewGormSubcategoryRepository(db.DB)
	termRepo := persistence.NewGormTermRepository(db.DB)
	favoriteRepo := persistence.NewGormFavoriteRepository(db.DB)
	progressRepo := persistence.NewGormProgressRepository(db.DB)
	viewRepo := persistence.NewGormViewRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	revenueReportRepo := persistence.NewGormRevenueReportRepository(db.DB)
	maintenanceRepo := persistence.NewGormMaintenanceRepository(db.DB)

	// Webhook idempotency store: Redis when reachable, in-memory otherwise
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Full-text search index. When Meilisearch is not configured, term
	// search falls back to database matching inside the term service.
	var searchIndex catalogapp.TermSearchIndex
	if cfg.Search.Host != "" {
		meiliIndex, err := search.NewMeiliTermIndex(cfg.Search, log)
		if err != nil {
			log.Warn("Failed to initialize Meilisearch, using database search", zap.Error(err))
		} else {
			searchIndex = meiliIndex
			log.Info("Meilisearch index ready", zap.String("host", cfg.Search.Host))
		}
	} else {
		log.Info("Meilisearch not configured, using database search")
	}

	// Asset storage
	var assetStorage catalogapp.AssetStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3AssetStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize asset storage", zap.Error(err))
		}
		assetStorage = s3Storage
		log.Info("Asset storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		assetStorage = storage.NewUnconfiguredAssetStorage()
		log.Info("Asset storage not configured, asset endpoints answer 503")
	}

	// Payment webhook verifier
	var webhookVerifier commerceapp.WebhookVerifier
	if cfg.Gumroad.SellerID != "" {
		verifier, err := payment.NewGumroadVerifier(cfg.Gumroad, log)
		if err != nil {
			log.Fatal("Failed to initialize Gumroad verifier", zap.Error(err))
		}
		webhookVerifier = verifier
	} else {
		webhookVerifier = payment.NewUnconfiguredVerifier()
		log.Warn("Gumroad seller_id not configured, webhook notifications are rejected")
	}

	// Initialize application services
	categoryService := catalogapp.NewCategoryService(categoryRepo, subcategoryRepo, termRepo)
	termService := catalogapp.NewTermService(termRepo, categoryRepo, subcategoryRepo, viewRepo, searchIndex, log)
	userService := identityapp.NewUserService(userRepo, settingsRepo, favoriteRepo, progressRepo, viewRepo, db.DB, log)
	learningService := learningapp.NewLearningService(favoriteRepo, progressRepo, viewRepo, termRepo)
	purchaseService := commerceapp.NewPurchaseService(purchaseRepo, userRepo, webhookVerifier, idempotencyStore, db.DB, log)
	reportService := commerceapp.NewReportService(revenueReportRepo)
	maintenanceService := adminapp.NewMaintenanceService(maintenanceRepo, log)
	statsService := adminapp.NewStatsService(termRepo, categoryRepo, userRepo, revenueReportRepo)

	if businessMetrics != nil {
		termService.SetBusinessMetrics(businessMetrics)
		purchaseService.SetBusinessMetrics(businessMetrics)
	}

	// Popular terms listing is cached in Redis when configured
	if cfg.Redis.Host != "" {
		popularCache, err := cache.NewRedisPopularTermsCache(cfg.Redis)
		if err != nil {
			log.Warn("Redis popular terms cache unavailable, serving from database", zap.Error(err))
		} else {
			termService.SetPopularTermsCache(popularCache)
			defer popularCache.Close()
		}
	}

	// JWT validation for tokens issued by the external identity provider
	jwtService := auth.NewJWTService(cfg.JWT)
	var tokenBlacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Warn("Redis token blacklist unavailable, using in-memory blacklist", zap.Error(err))
			tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		} else {
			tokenBlacklist = redisBlacklist
		}
	} else {
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler(db.DB)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	termHandler := handler.NewTermHandler(termService)
	userHandler := handler.NewUserHandler(userService)
	learningHandler := handler.NewLearningHandler(
		learningService,
		adminapp.UnimplementedAchievementTracker{},
		adminapp.UnimplementedQuizEngine{},
	)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService, reportService)
	adminHandler := handler.NewAdminHandler(
		maintenanceService,
		statsService,
		assetStorage,
		adminapp.UnimplementedModerationQueue{},
		adminapp.UnimplementedFeedbackStore{},
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing/Metrics/Profiling - Observability (when enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.HTTPMetrics(middleware.DefaultHTTPMetricsConfig()))
	}
	if cfg.Profiling.Enabled {
		engine.Use(middleware.ProfilingWithConfig(middleware.DefaultProfilingConfig()))
	}

	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Token validation on API routes. The public read surface and the
	// payment webhook are listed as skip paths; tokens are still parsed
	// there when present so admin checks work on public routes.
	authConfig := middleware.DefaultAuthConfig(jwtService)
	authConfig.TokenBlacklist = tokenBlacklist
	authConfig.Logger = log
	r.Use(middleware.AuthMiddlewareWithConfig(authConfig))

	requireAdmin := middleware.RequireAdmin()

	// Catalog domain: terms, categories and subcategories. Reads are
	// public, writes require an admin token.
	catalogRoutes := router.NewDomainGroup("catalog", "")
	catalogRoutes.GET("/terms", termHandler.List)
	catalogRoutes.GET("/terms/search", termHandler.Search)
	catalogRoutes.GET("/terms/popular", termHandler.MostViewed)
	catalogRoutes.GET("/terms/name/:name", termHandler.GetByName)
	catalogRoutes.GET("/terms/:id", termHandler.GetByID)
	catalogRoutes.POST("/terms", requireAdmin, termHandler.Create)
	catalogRoutes.PUT("/terms/:id", requireAdmin, termHandler.Update)
	catalogRoutes.DELETE("/terms/:id", requireAdmin, termHandler.Delete)
	catalogRoutes.GET("/categories", categoryHandler.List)
	catalogRoutes.GET("/categories/:id", categoryHandler.GetByID)
	catalogRoutes.GET("/categories/:id/terms", termHandler.ListByCategory)
	catalogRoutes.GET("/categories/:id/subcategories", categoryHandler.ListSubcategories)
	catalogRoutes.POST("/categories", requireAdmin, categoryHandler.Create)
	catalogRoutes.PUT("/categories/:id", requireAdmin, categoryHandler.Update)
	catalogRoutes.DELETE("/categories/:id", requireAdmin, categoryHandler.Delete)
	catalogRoutes.POST("/subcategories", requireAdmin, categoryHandler.CreateSubcategory)
	catalogRoutes.DELETE("/subcategories/:id", requireAdmin, categoryHandler.DeleteSubcategory)

	// Identity domain: profile sync and account data
	userRoutes := router.NewDomainGroup("identity", "/users")
	userRoutes.POST("/sync", userHandler.Sync)
	userRoutes.GET("/me", userHandler.GetProfile)
	userRoutes.GET("/me/settings", userHandler.GetSettings)
	userRoutes.PUT("/me/settings", userHandler.UpdateSettings)
	userRoutes.GET("/me/export", userHandler.ExportData)
	userRoutes.DELETE("/me/data", userHandler.DeleteData)

	// Learning domain: favorites, progress, streaks and recommendations
	learningRoutes := router.NewDomainGroup("learning", "/learning")
	learningRoutes.GET("/favorites", learningHandler.ListFavorites)
	learningRoutes.POST("/favorites/:id", learningHandler.AddFavorite)
	learningRoutes.GET("/favorites/:id", learningHandler.IsFavorite)
	learningRoutes.DELETE("/favorites/:id", learningHandler.RemoveFavorite)
	learningRoutes.GET("/learned", learningHandler.ListLearned)
	learningRoutes.POST("/learned/:id", learningHandler.MarkLearned)
	learningRoutes.DELETE("/learned/:id", learningHandler.UnmarkLearned)
	learningRoutes.GET("/progress", learningHandler.CategoryProgress)
	learningRoutes.GET("/streak", learningHandler.Streak)
	learningRoutes.GET("/recommendations", learningHandler.Recommendations)
	learningRoutes.GET("/stats", learningHandler.Stats)
	learningRoutes.GET("/achievements", learningHandler.Achievements)
	learningRoutes.POST("/quiz", learningHandler.GenerateQuiz)
	learningRoutes.POST("/quiz/:id/grade", learningHandler.GradeQuiz)

	// Commerce domain: the provider webhook is unauthenticated, purchase
	// history is user-scoped
	webhookRoutes := router.NewDomainGroup("webhooks", "/webhooks")
	webhookRoutes.POST("/gumroad", purchaseHandler.GumroadWebhook)

	purchaseRoutes := router.NewDomainGroup("purchases", "/purchases")
	purchaseRoutes.GET("/me", purchaseHandler.ListMine)

	// Admin domain: maintenance, stats, assets, purchases and reports
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(requireAdmin)
	adminRoutes.POST("/maintenance/reindex", adminHandler.ReindexSearch)
	adminRoutes.POST("/maintenance/cleanup", adminHandler.CleanupOrphans)
	adminRoutes.POST("/maintenance/vacuum", adminHandler.VacuumTables)
	adminRoutes.POST("/maintenance/run-all", adminHandler.RunAllMaintenance)
	adminRoutes.GET("/stats", adminHandler.ContentStats)
	adminRoutes.GET("/assets", adminHandler.ListAssets)
	adminRoutes.GET("/assets/*key", adminHandler.DownloadAsset)
	adminRoutes.PUT("/assets/*key", adminHandler.UploadAsset)
	adminRoutes.DELETE("/assets/*key", adminHandler.DeleteAsset)
	adminRoutes.GET("/moderation", adminHandler.ListModerationQueue)
	adminRoutes.GET("/feedback", adminHandler.ListFeedback)
	adminRoutes.GET("/purchases", purchaseHandler.ListRecent)
	adminRoutes.GET("/purchases/:order_id", purchaseHandler.GetByOrderID)
	adminRoutes.GET("/reports/revenue", purchaseHandler.RevenueSummary)
	adminRoutes.GET("/reports/revenue/daily", purchaseHandler.DailyRevenue)
	adminRoutes.GET("/reports/refunds", purchaseHandler.RefundAnalytics)
	adminRoutes.GET("/reports/funnel", purchaseHandler.PurchaseFunnel)
	adminRoutes.GET("/reports/top-buyers", purchaseHandler.TopBuyers)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(catalogRoutes).
		Register(userRoutes).
		Register(learningRoutes).
		Register(webhookRoutes).
		Register(purchaseRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
