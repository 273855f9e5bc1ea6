package model

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Media      MediaConfig
	Extraction ExtractionConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port    int
	Host    string
	Timeout int // seconds
}

// MediaConfig holds video storage and toolchain configuration
type MediaConfig struct {
	VideoDir        string // base directory for bare-filename resolution and uploads
	FFmpegPath      string // ffmpeg binary, empty means PATH lookup
	FFprobePath     string // ffprobe binary, empty means PATH lookup
	MaxUploadSizeMB int
	CleanupInterval int // seconds
	FileTTLSeconds  int // time to live for uploaded videos
}

// ExtractionConfig holds default frame extraction parameters
type ExtractionConfig struct {
	Interval     float64 // seconds between sampled frames
	MaxFrames    int
	Quality      int // user-facing 1-100 scale
	Width        int // target width, height derived from aspect ratio
	FrameQuality int // single-frame variant default
	FrameWidth   int // single-frame variant default
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string
	FilePath string
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	CleanupInterval   int // seconds
}
