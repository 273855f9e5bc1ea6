package model

import "time"

// SupportedExtensions is the fixed allow-list of container formats. Order
// matters: the resolver probes extension-less candidates in this order and
// returns the first match.
var SupportedExtensions = []string{
	".mp4", ".webm", ".mov", ".avi", ".mkv", ".m4v",
	".flv", ".wmv", ".gif", ".mpeg", ".mpg", ".3gp",
}

// VideoMetadata contains normalized metadata about a video file.
// DurationSeconds is the source of truth; Duration is derived from it.
type VideoMetadata struct {
	Filename        string  `json:"filename"`
	FilePath        string  `json:"filepath"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Resolution      string  `json:"resolution"`
	Fps             float64 `json:"fps"`
	VideoCodec      string  `json:"video_codec"`
	AudioCodec      *string `json:"audio_codec"`
	FileSize        string  `json:"file_size"`
	FileSizeBytes   int64   `json:"file_size_bytes"`
	HasAudio        bool    `json:"has_audio"`
	Bitrate         string  `json:"bitrate"`
	Created         string  `json:"created,omitempty"`
}

// ExtractedFrame is a single still image sampled from a video.
// Data is raw image bytes; encoding/json transports it as base64.
type ExtractedFrame struct {
	Index            int     `json:"index"`
	Timestamp        string  `json:"timestamp"`
	TimestampSeconds float64 `json:"timestamp_seconds"`
	Data             []byte  `json:"data"`
	MimeType         string  `json:"mime_type"`
}

// ExtractionRequest describes a frame extraction run. Zero-valued numeric
// fields are filled with configured defaults before validation.
type ExtractionRequest struct {
	Path      string   `json:"path" binding:"required"`
	Interval  float64  `json:"interval"`
	MaxFrames int      `json:"max_frames"`
	Quality   int      `json:"quality"`
	Width     int      `json:"width"`
	StartTime *float64 `json:"start_time"`
	EndTime   *float64 `json:"end_time"`
	OutputDir string   `json:"output_dir"`
}

// ExtractionInfo summarizes the parameters an extraction actually ran with
type ExtractionInfo struct {
	TotalFramesExtracted int     `json:"total_frames_extracted"`
	IntervalUsed         float64 `json:"interval_used"`
	Quality              int     `json:"quality"`
	Width                int     `json:"width"`
}

// ExtractionResult is the response to an extraction request. FramePaths and
// OutputDirectory are only set when a persistent output directory was used.
type ExtractionResult struct {
	Metadata        *VideoMetadata   `json:"metadata"`
	Frames          []ExtractedFrame `json:"frames"`
	ExtractionInfo  ExtractionInfo   `json:"extraction_info"`
	FramePaths      []string         `json:"frame_paths,omitempty"`
	OutputDirectory string           `json:"output_directory,omitempty"`
}

// FrameAtTimeRequest asks for a single frame at a timestamp
type FrameAtTimeRequest struct {
	Path      string   `json:"path" binding:"required"`
	Timestamp *float64 `json:"timestamp" binding:"required"`
	Quality   int      `json:"quality"`
	Width     int      `json:"width"`
}

// FrameAtTimeResult is the response to a single-frame request
type FrameAtTimeResult struct {
	Frame    ExtractedFrame `json:"frame"`
	Metadata *VideoMetadata `json:"metadata"`
}

// VideoFileInfo describes a video available in the base directory
type VideoFileInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	SizeStr  string    `json:"size_str"`
	Modified time.Time `json:"modified"`
}

// UploadedFile tracks uploaded videos for TTL cleanup
type UploadedFile struct {
	ID        string
	Filename  string
	FilePath  string
	Size      int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	SizeStr  string `json:"size_str"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error      string                 `json:"error"`
	Message    string                 `json:"message"`
	Code       int                    `json:"code"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Suggestion string                 `json:"suggestion,omitempty"`
}
