package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"videoframes/config"
	"videoframes/internal/ffmpeg"
	"videoframes/internal/handler"
	"videoframes/internal/resolver"
	"videoframes/internal/service"
	"videoframes/internal/storage"
	"videoframes/pkg/logger"
	"videoframes/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting video frame extraction server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("video_dir", cfg.Media.VideoDir),
	)

	// Storage manager owns the video directory and upload TTL cleanup
	storageManager := storage.NewManager(&cfg.Media)
	if err := storageManager.EnsureVideoDir(); err != nil {
		logger.Logger.Fatal("Failed to create video directory", zap.Error(err))
	}
	storageManager.Start()
	defer storageManager.Stop()

	// Pipeline wiring: resolver, toolchain clients, orchestrating service
	videoService := service.NewVideoService(
		resolver.New(cfg.Media.VideoDir),
		ffmpeg.NewFFprobe(cfg.Media.FFprobePath),
		ffmpeg.NewFFmpeg(cfg.Media.FFmpegPath),
		storageManager,
		cfg.Extraction,
	)

	rateLimitService := service.NewRateLimitService(&cfg.RateLimit)
	defer rateLimitService.Stop()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(logger.GinLogger())

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimitMiddleware(rateLimitService))
		logger.Logger.Info("Rate limiting enabled",
			zap.Int("requests_per_minute", cfg.RateLimit.RequestsPerMinute))
	}

	videoHandler := handler.NewVideoHandler(videoService)
	uploadHandler := handler.NewUploadHandler(videoService, storageManager)

	api := router.Group("/api")
	{
		api.GET("/video/info", videoHandler.GetVideoInfo)
		api.POST("/video/frames", videoHandler.ExtractFrames)
		api.POST("/video/frame", videoHandler.ExtractFrameAtTime)

		api.GET("/videos", uploadHandler.ListVideos)
		api.POST("/upload", uploadHandler.Upload)

		api.GET("/health", videoHandler.HealthCheck)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.Timeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.Timeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server stopped")
}
