package config

import (
	"os"
	"strconv"
	"strings"

	"videoframes/internal/model"

	"github.com/joho/godotenv"
)

// Load loads configuration from environment variables
func Load() *model.Config {
	godotenv.Load()

	return &model.Config{
		Server: model.ServerConfig{
			Port:    getEnvInt("SERVER_PORT", 8080),
			Host:    getEnvStr("SERVER_HOST", "0.0.0.0"),
			Timeout: getEnvInt("SERVER_TIMEOUT", 300),
		},
		Media: model.MediaConfig{
			VideoDir:        getEnvStr("VIDEO_DIR", "./videos"),
			FFmpegPath:      getEnvStr("FFMPEG_PATH", "ffmpeg"),
			FFprobePath:     getEnvStr("FFPROBE_PATH", "ffprobe"),
			MaxUploadSizeMB: getEnvInt("MAX_UPLOAD_SIZE_MB", 500),
			CleanupInterval: getEnvInt("STORAGE_CLEANUP_INTERVAL", 3600),
			FileTTLSeconds:  getEnvInt("FILE_TTL_SECONDS", 86400),
		},
		Extraction: model.ExtractionConfig{
			Interval:     getEnvFloat("DEFAULT_INTERVAL", 2),
			MaxFrames:    getEnvInt("DEFAULT_MAX_FRAMES", 30),
			Quality:      getEnvInt("DEFAULT_QUALITY", 75),
			Width:        getEnvInt("DEFAULT_WIDTH", 800),
			FrameQuality: getEnvInt("FRAME_QUALITY", 85),
			FrameWidth:   getEnvInt("FRAME_WIDTH", 1280),
		},
		Logging: model.LoggingConfig{
			Level:    getEnvStr("LOG_LEVEL", "info"),
			FilePath: getEnvStr("LOG_FILE", "./log/app.log"),
		},
		RateLimit: model.RateLimitConfig{
			Enabled:           getEnvBool("RATELIMIT_ENABLED", true),
			RequestsPerMinute: getEnvInt("RATELIMIT_REQUESTS_PER_MINUTE", 60),
			CleanupInterval:   getEnvInt("RATELIMIT_CLEANUP_INTERVAL", 1800),
		},
	}
}

func getEnvStr(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	valStr := getEnvStr(key, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	valStr := getEnvStr(key, "")
	if val, err := strconv.ParseFloat(valStr, 64); err == nil {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	valStr := strings.ToLower(getEnvStr(key, ""))
	if valStr == "true" || valStr == "1" || valStr == "yes" {
		return true
	}
	if valStr == "false" || valStr == "0" || valStr == "no" {
		return false
	}
	return defaultVal
}
