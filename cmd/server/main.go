// Package main runs the event-management HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gatherly/backend/config"
	"github.com/gatherly/backend/internal/auth"
	"github.com/gatherly/backend/internal/events"
	"github.com/gatherly/backend/internal/middleware"
	"github.com/gatherly/backend/internal/organizations"
	"github.com/gatherly/backend/internal/users"
	"github.com/gatherly/backend/pkg/response"
	"github.com/gatherly/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	store, err := storage.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		logger.Fatal("storage", zap.Error(err))
	}

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Users
	userRepo := users.NewRepository(store)
	userHandler := users.NewHandler(userRepo, tokens, logger)

	// Organizations
	orgRepo := organizations.NewRepository(store)
	orgHandler := organizations.NewHandler(orgRepo, cfg.Orgs.SinglePerUser)

	// Events
	eventRepo := events.NewRepository(store)
	eventHandler := events.NewHandler(eventRepo, orgRepo, userRepo, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Users
	userGroup := router.Group("/users")
	{
		userGroup.POST("/register", userHandler.Register)
		userGroup.POST("/login", userHandler.Login)
	}
	userAuth := userGroup.Group("")
	userAuth.Use(middleware.RequireAuth(tokens))
	{
		userAuth.GET("", userHandler.List)
		userAuth.GET("/:id", userHandler.GetByID)
		userAuth.GET("/search/:username", userHandler.Search)
		userAuth.PUT("/:id", userHandler.Replace)
		userAuth.PATCH("/:id", userHandler.Update)
		userAuth.DELETE("/:id", userHandler.Delete)
	}

	// Organizations
	orgGroup := router.Group("/organizations")
	{
		orgGroup.GET("", orgHandler.List)
		orgGroup.GET("/:id", orgHandler.GetByID)
	}
	orgAuth := orgGroup.Group("")
	orgAuth.Use(middleware.RequireAuth(tokens))
	{
		orgAuth.POST("", orgHandler.Create)
		orgAuth.PATCH("/:id", orgHandler.Update)
		orgAuth.DELETE("/:id", orgHandler.Delete)
	}

	// Events. Listing works for anonymous callers; the identity, when a
	// token is present, only drives field redaction.
	eventGroup := router.Group("/events")
	{
		eventGroup.GET("", middleware.OptionalIdentity(tokens), eventHandler.List)
		eventGroup.GET("/:id", eventHandler.GetByID)
	}
	eventAuth := eventGroup.Group("")
	eventAuth.Use(middleware.RequireAuth(tokens))
	{
		eventAuth.POST("", eventHandler.Create)
		eventAuth.PATCH("/:id", eventHandler.Update)
		eventAuth.PATCH("/:id/participants", eventHandler.UpdateParticipants)
		eventAuth.DELETE("/:id", eventHandler.Delete)
		eventAuth.POST("/:id/request-participation", eventHandler.RequestParticipation)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
