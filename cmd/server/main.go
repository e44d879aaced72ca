package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	boardapp "github.com/sidequest/backend/internal/application/board"
	contentapp "github.com/sidequest/backend/internal/application/content"
	questapp "github.com/sidequest/backend/internal/application/quest"
	"github.com/sidequest/backend/internal/infrastructure/aigateway"
	"github.com/sidequest/backend/internal/infrastructure/auth"
	"github.com/sidequest/backend/internal/infrastructure/cache"
	"github.com/sidequest/backend/internal/infrastructure/config"
	"github.com/sidequest/backend/internal/infrastructure/geocode"
	"github.com/sidequest/backend/internal/infrastructure/logger"
	"github.com/sidequest/backend/internal/infrastructure/persistence"
	"github.com/sidequest/backend/internal/infrastructure/realtime"
	"github.com/sidequest/backend/internal/interfaces/http/handler"
	"github.com/sidequest/backend/internal/interfaces/http/middleware"
	"github.com/sidequest/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is stamped at build time via -ldflags "-X main.version=..."
var version = "dev"

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

	log.Info("Starting SideQuest Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the content cache and unread watermarks. If Redis is
	// unreachable the server still starts with in-memory stores.
	var contentCache cache.ContentCache
	var watermarks cache.WatermarkStore
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory stores", zap.Error(err))
		contentCache = cache.NewInMemoryContentCache()
		watermarks = cache.NewInMemoryWatermarkStore()
	} else {
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
		contentCache = cache.NewRedisContentCache(redisClient, "")
		watermarks = cache.NewRedisWatermarkStore(redisClient, "")
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
	}
	pingCancel()

	// Initialize repositories
	questRepo := persistence.NewGormQuestRepository(db.DB)
	participantRepo := persistence.NewGormParticipantRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	receiptRepo := persistence.NewGormReadReceiptRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)

	// Live feed bus for per-quest message and receipt events
	feed := realtime.NewFeedBus(cfg.Realtime.SubscriberBuffer, log)

	// External clients
	geocoder := geocode.NewClient(cfg.Geocode, log)
	sequencer := geocode.NewSequencer(geocoder)
	completer := aigateway.NewClient(cfg.AIGateway, log)

	// Initialize application services
	membershipService := questapp.NewMembershipService(questRepo, participantRepo, profileRepo, watermarks)
	questService := questapp.NewQuestService(questRepo, participantRepo, profileRepo, geocoder, membershipService)
	chatService := questapp.NewChatService(messageRepo, receiptRepo, profileRepo, membershipService, feed, watermarks)
	markerService := boardapp.NewMarkerService(questRepo, participantRepo, profileRepo, cfg.Map)
	contentService := contentapp.NewContentService(completer, contentCache, log)

	// Token verification (tokens are issued by the identity provider)
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	questHandler := handler.NewQuestHandler(questService, membershipService, log)
	chatHandler := handler.NewChatHandler(chatService, log)
	boardHandler := handler.NewBoardHandler(markerService, log)
	contentHandler := handler.NewContentHandler(contentService, log)
	geocodeHandler := handler.NewGeocodeHandler(sequencer, log)
	streamHandler := handler.NewStreamHandler(chatService, feed, markerService.DefaultCamera(), cfg.Realtime, log)
	systemHandler := handler.NewSystemHandler(version, db, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

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
	// 4. Security - Add security headers
	// 5. DeviceID - Resolve the caller's device for unread watermarks
	// 6. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.DeviceID())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning, no auth)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Every versioned API route requires a valid bearer token
	r.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
	}))

	// Quest domain (board entries, membership, chat, live feed)
	questRoutes := router.NewDomainGroup("quests", "/quests")
	questRoutes.POST("", questHandler.Create)
	questRoutes.GET("", questHandler.List)
	questRoutes.GET("/:id", questHandler.Get)
	questRoutes.DELETE("/:id", questHandler.Delete)
	questRoutes.POST("/:id/join", questHandler.Join)
	questRoutes.POST("/:id/leave", questHandler.Leave)
	questRoutes.GET("/:id/participants", questHandler.Participants)
	questRoutes.GET("/:id/messages", chatHandler.ListMessages)
	questRoutes.POST("/:id/messages", chatHandler.SendMessage)
	questRoutes.POST("/:id/read", chatHandler.MarkAllRead)
	questRoutes.GET("/:id/unread", chatHandler.Unread)
	questRoutes.GET("/:id/stream", streamHandler.Stream)

	// Message-scoped operations
	messageRoutes := router.NewDomainGroup("messages", "/messages")
	messageRoutes.POST("/:id/read", chatHandler.MarkRead)

	// Board domain (map markers and camera)
	boardRoutes := router.NewDomainGroup("board", "/board")
	boardRoutes.GET("/markers", boardHandler.Markers)
	boardRoutes.GET("/camera", boardHandler.Camera)

	// Content domain (AI-generated daily quotes and reflections)
	contentRoutes := router.NewDomainGroup("content", "/content")
	contentRoutes.POST("/daily-quotes", contentHandler.DailyQuotes)
	contentRoutes.POST("/daily-reflection", contentHandler.DailyReflection)

	// Geocode domain (location autocomplete)
	geocodeRoutes := router.NewDomainGroup("geocode", "/geocode")
	geocodeRoutes.GET("/autocomplete", geocodeHandler.Autocomplete)

	r.Register(questRoutes).
		Register(messageRoutes).
		Register(boardRoutes).
		Register(contentRoutes).
		Register(geocodeRoutes)

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
