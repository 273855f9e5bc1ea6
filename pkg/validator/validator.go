package validator

import (
	"fmt"
	"strings"

	"videoframes/internal/model"
)

// Hard bounds guarding against degenerate subprocess invocations.
const (
	MinInterval  = 0.1
	MaxInterval  = 60.0
	MinMaxFrames = 1
	MaxMaxFrames = 500
	MinQuality   = 1
	MaxQuality   = 100
	MinWidth     = 100
	MaxWidth     = 3840
)

// ValidatePath checks the shape of a user-supplied path string
func ValidatePath(path string) *model.VideoError {
	if strings.TrimSpace(path) == "" {
		return model.NewVideoError(model.ErrInvalidPath, "path must not be empty").
			WithSuggestion("provide a filename or an absolute path to a video file")
	}
	if strings.ContainsRune(path, '\x00') {
		return model.NewVideoError(model.ErrInvalidPath, "path contains a NUL byte")
	}
	return nil
}

// ValidateExtractionParams checks every numeric parameter against its closed
// bound before any subprocess is spawned. Fail-fast: the first violation is
// returned, no aggregation.
func ValidateExtractionParams(interval float64, maxFrames, quality, width int, startTime, endTime *float64) *model.VideoError {
	if interval < MinInterval || interval > MaxInterval {
		return outOfRange("interval", interval, MinInterval, MaxInterval)
	}
	if maxFrames < MinMaxFrames || maxFrames > MaxMaxFrames {
		return outOfRange("max_frames", maxFrames, MinMaxFrames, MaxMaxFrames)
	}
	if quality < MinQuality || quality > MaxQuality {
		return outOfRange("quality", quality, MinQuality, MaxQuality)
	}
	if width < MinWidth || width > MaxWidth {
		return outOfRange("width", width, MinWidth, MaxWidth)
	}
	if startTime != nil && *startTime < 0 {
		return model.NewVideoError(model.ErrInvalidPath, "start_time must not be negative").
			WithDetail("start_time", *startTime).
			WithSuggestion("use a start_time of 0 or greater")
	}
	if startTime != nil && endTime != nil && *endTime <= *startTime {
		return model.NewVideoError(model.ErrInvalidPath, "end_time must be greater than start_time").
			WithDetail("start_time", *startTime).
			WithDetail("end_time", *endTime).
			WithSuggestion("choose an end_time after the start_time")
	}
	if endTime != nil && *endTime <= 0 {
		return model.NewVideoError(model.ErrInvalidPath, "end_time must be positive").
			WithDetail("end_time", *endTime)
	}
	return nil
}

// ValidateTimestamp checks the single-frame timestamp parameter
func ValidateTimestamp(timestamp float64) *model.VideoError {
	if timestamp < 0 {
		return model.NewVideoError(model.ErrInvalidPath, "timestamp must not be negative").
			WithDetail("timestamp", timestamp)
	}
	return nil
}

func outOfRange(field string, value, min, max interface{}) *model.VideoError {
	return model.NewVideoError(model.ErrInvalidPath,
		fmt.Sprintf("%s is out of range", field)).
		WithDetail("field", field).
		WithDetail("value", value).
		WithDetail("min", min).
		WithDetail("max", max).
		WithSuggestion(fmt.Sprintf("use a %s between %v and %v", field, min, max))
}

// SanitizeFilename removes characters that are unsafe in stored filenames
func SanitizeFilename(filename string) string {
	unsafe := []string{"<", ">", ":", "\"", "/", "\\", "|", "?", "*", "\x00"}
	result := filename
	for _, ch := range unsafe {
		result = strings.ReplaceAll(result, ch, "_")
	}
	return result
}
