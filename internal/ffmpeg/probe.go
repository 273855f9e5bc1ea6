package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"

	"videoframes/internal/model"
	"videoframes/pkg/logger"

	"go.uber.org/zap"
)

// ProbeResult is the structured document ffprobe emits for
// -print_format json -show_format -show_streams
type ProbeResult struct {
	Format  ProbeFormat   `json:"format"`
	Streams []ProbeStream `json:"streams"`
}

// ProbeFormat holds container-level fields. ffprobe reports numerics as
// strings here; normalization parses them.
type ProbeFormat struct {
	Filename string            `json:"filename"`
	Duration string            `json:"duration"`
	Size     string            `json:"size"`
	BitRate  string            `json:"bit_rate"`
	Tags     map[string]string `json:"tags"`
}

// ProbeStream holds per-stream fields
type ProbeStream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
}

// FFprobe invokes the external probing executable. A single invocation
// either succeeds or the whole operation fails; no retries.
type FFprobe struct {
	bin string
}

// NewFFprobe creates a probe client. bin may be empty to use PATH lookup.
func NewFFprobe(bin string) *FFprobe {
	if bin == "" {
		bin = "ffprobe"
	}
	return &FFprobe{bin: bin}
}

// Probe inspects the container and stream structure of the file at path
func (p *FFprobe) Probe(ctx context.Context, path string) (*ProbeResult, error) {
	cmd := exec.CommandContext(ctx, p.bin,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Logger.Debug("Running probe", zap.String("bin", p.bin), zap.String("path", path))

	if err := cmd.Run(); err != nil {
		return nil, model.ClassifyToolchainError("ffprobe", err, stderr.String())
	}

	var result ProbeResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		// Unparsable output is a protocol error, not a file error
		return nil, model.NewVideoError(model.ErrToolchainError,
			"ffprobe produced unparsable output").
			WithDetail("parse_error", err.Error())
	}

	return &result, nil
}
