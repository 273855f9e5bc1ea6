package model

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMissingExecutable(t *testing.T) {
	err := &exec.Error{Name: "ffprobe", Err: exec.ErrNotFound}

	verr := ClassifyToolchainError("ffprobe", err, "")
	assert.Equal(t, ErrToolchainNotFound, verr.Kind)
	assert.NotEmpty(t, verr.Suggestion)
}

func TestClassifyNotFoundInStderr(t *testing.T) {
	err := errors.New("exit status 127")

	verr := ClassifyToolchainError("ffmpeg", err, "sh: ffmpeg: not found")
	assert.Equal(t, ErrToolchainNotFound, verr.Kind)

	verr = ClassifyToolchainError("ffmpeg", err, "exec: no such file or directory")
	assert.Equal(t, ErrToolchainNotFound, verr.Kind)
}

func TestClassifyFailedRun(t *testing.T) {
	err := errors.New("exit status 1")

	verr := ClassifyToolchainError("ffmpeg", err, "Invalid data found when processing input")
	require.Equal(t, ErrToolchainError, verr.Kind)
	assert.Equal(t, "Invalid data found when processing input", verr.Details["stderr"])
}

func TestClassifyFailedRunEmptyStderr(t *testing.T) {
	verr := ClassifyToolchainError("ffmpeg", errors.New("exit status 1"), "  \n")
	assert.Equal(t, ErrToolchainError, verr.Kind)
	assert.NotContains(t, verr.Details, "stderr")
}

func TestAsVideoError(t *testing.T) {
	orig := NewVideoError(ErrFileNotFound, "gone")
	assert.Same(t, orig, AsVideoError(orig))

	wrapped := fmt.Errorf("context: %w", orig)
	assert.Same(t, orig, AsVideoError(wrapped))

	plain := AsVideoError(errors.New("boom"))
	assert.Equal(t, ErrUnknown, plain.Kind)
	assert.Equal(t, "boom", plain.Message)
}

func TestVideoErrorMessage(t *testing.T) {
	verr := NewVideoError(ErrInvalidPath, "width is out of range").
		WithDetail("field", "width").
		WithSuggestion("use a width between 100 and 3840")

	assert.Equal(t, "INVALID_PATH: width is out of range", verr.Error())
	assert.Equal(t, "width", verr.Details["field"])
}
