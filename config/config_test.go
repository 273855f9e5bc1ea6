package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "./videos", cfg.Media.VideoDir)
	assert.Equal(t, "ffmpeg", cfg.Media.FFmpegPath)
	assert.Equal(t, "ffprobe", cfg.Media.FFprobePath)
	assert.Equal(t, 2.0, cfg.Extraction.Interval)
	assert.Equal(t, 30, cfg.Extraction.MaxFrames)
	assert.Equal(t, 75, cfg.Extraction.Quality)
	assert.Equal(t, 800, cfg.Extraction.Width)
	assert.Equal(t, 85, cfg.Extraction.FrameQuality)
	assert.Equal(t, 1280, cfg.Extraction.FrameWidth)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("VIDEO_DIR", "/data/videos")
	t.Setenv("FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("DEFAULT_INTERVAL", "0.5")
	t.Setenv("RATELIMIT_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "/data/videos", cfg.Media.VideoDir)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.Media.FFmpegPath)
	assert.Equal(t, 0.5, cfg.Extraction.Interval)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("DEFAULT_INTERVAL", "two")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 2.0, cfg.Extraction.Interval)
}
