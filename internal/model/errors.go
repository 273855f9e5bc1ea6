package model

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrorKind is the closed set of failure classifications the pipeline
// can surface. Every expected failure maps to exactly one kind.
type ErrorKind string

const (
	ErrFileNotFound      ErrorKind = "FILE_NOT_FOUND"
	ErrInvalidPath       ErrorKind = "INVALID_PATH" // malformed paths and all parameter validation failures
	ErrUnsupportedFormat ErrorKind = "UNSUPPORTED_FORMAT"
	ErrToolchainNotFound ErrorKind = "TOOLCHAIN_NOT_FOUND"
	ErrToolchainError    ErrorKind = "TOOLCHAIN_ERROR"
	ErrTimeout           ErrorKind = "TIMEOUT" // reserved, not currently triggered
	ErrUnknown           ErrorKind = "UNKNOWN_ERROR"
)

// VideoError is the typed error returned across the pipeline boundary.
// The pipeline never panics for expected failure modes; callers receive
// either a fully populated result or exactly one of these.
type VideoError struct {
	Kind       ErrorKind              `json:"kind"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Suggestion string                 `json:"suggestion,omitempty"`
}

func (e *VideoError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewVideoError creates a classified error
func NewVideoError(kind ErrorKind, message string) *VideoError {
	return &VideoError{Kind: kind, Message: message}
}

// WithDetail attaches a structured detail and returns the error for chaining
func (e *VideoError) WithDetail(key string, value interface{}) *VideoError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithSuggestion attaches an actionable suggestion
func (e *VideoError) WithSuggestion(s string) *VideoError {
	e.Suggestion = s
	return e
}

// AsVideoError extracts a *VideoError from an error chain, wrapping
// anything else as UNKNOWN_ERROR so the taxonomy stays closed.
func AsVideoError(err error) *VideoError {
	var verr *VideoError
	if errors.As(err, &verr) {
		return verr
	}
	return NewVideoError(ErrUnknown, err.Error())
}

// ClassifyToolchainError maps a failed subprocess invocation into the
// taxonomy. A missing executable outranks a failed run: exec reports it
// directly, and some shells only surface it through diagnostic text.
func ClassifyToolchainError(tool string, err error, stderr string) *VideoError {
	if errors.Is(err, exec.ErrNotFound) || isNotFoundText(err.Error()) || isNotFoundText(stderr) {
		return NewVideoError(ErrToolchainNotFound,
			fmt.Sprintf("%s executable not found", tool)).
			WithSuggestion(fmt.Sprintf("install ffmpeg or set the %s path in configuration", tool))
	}

	msg := fmt.Sprintf("%s failed: %v", tool, err)
	verr := NewVideoError(ErrToolchainError, msg)
	if s := strings.TrimSpace(stderr); s != "" {
		verr.WithDetail("stderr", s)
	}
	return verr
}

func isNotFoundText(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "not found") || strings.Contains(s, "no such file")
}
