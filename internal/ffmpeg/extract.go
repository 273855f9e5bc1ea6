package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"videoframes/internal/model"
	"videoframes/pkg/format"
	"videoframes/pkg/logger"

	"go.uber.org/zap"
)

// FramePattern is the zero-padded output filename pattern. The padding is
// what makes lexicographic collection match numeric sequence order.
const FramePattern = "frame_%04d.jpg"

// ExtractOptions are the decoder-facing extraction parameters
type ExtractOptions struct {
	Interval  float64 // seconds between sampled frames
	MaxFrames int     // hard cap passed to the decoder
	Quality   int     // user-facing 1-100 scale
	Width     int     // target width, height auto-derived
	StartTime *float64
	EndTime   *float64
}

// FFmpeg invokes the external decoding executable
type FFmpeg struct {
	bin string
}

// NewFFmpeg creates a decoder client. bin may be empty to use PATH lookup.
func NewFFmpeg(bin string) *FFmpeg {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpeg{bin: bin}
}

// NativeQuality maps the user-facing 1-100 scale onto the encoder's inverse
// quality scale, where lower means better. The linear transform and its
// constants are fixed; changing them changes output quality for the same
// request. The result is clamped to the encoder's usable 2-32 range.
func NativeQuality(quality int) int {
	native := int(math.Round(float64(100-quality)/3.2 + 2))
	if native < 2 {
		native = 2
	}
	if native > 32 {
		native = 32
	}
	return native
}

// ExtractFrames runs the decoder, sampling one frame per interval into
// outDir using the zero-padded pattern. The caller owns outDir.
func (f *FFmpeg) ExtractFrames(ctx context.Context, path, outDir string, opts ExtractOptions) error {
	return f.run(ctx, buildFrameArgs(path, outDir, opts))
}

// ExtractFrameAtTime runs the decoder for a single frame at timestamp,
// written to outPath
func (f *FFmpeg) ExtractFrameAtTime(ctx context.Context, path, outPath string, timestamp float64, quality, width int) error {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-ss", format.Seconds(timestamp),
		"-i", path,
		"-frames:v", "1",
		"-vf", scaleFilter(width),
		"-q:v", strconv.Itoa(NativeQuality(quality)),
		"-y", outPath,
	}
	return f.run(ctx, args)
}

func buildFrameArgs(path, outDir string, o ExtractOptions) []string {
	args := []string{"-hide_banner", "-loglevel", "error"}

	// Input-side seek: applied before opening the stream for fast
	// approximate seeking
	if o.StartTime != nil {
		args = append(args, "-ss", format.Seconds(*o.StartTime))
	}

	args = append(args, "-i", path)
	args = append(args,
		"-vf", fmt.Sprintf("fps=%s,%s", format.Seconds(1/o.Interval), scaleFilter(o.Width)),
		"-q:v", strconv.Itoa(NativeQuality(o.Quality)),
		"-frames:v", strconv.Itoa(o.MaxFrames),
	)

	// With both bounds the output-side limit is the window length; an end
	// time alone limits duration from the start of the file. The two
	// branches are intentionally distinct.
	if o.EndTime != nil {
		if o.StartTime != nil {
			args = append(args, "-t", format.Seconds(*o.EndTime-*o.StartTime))
		} else {
			args = append(args, "-t", format.Seconds(*o.EndTime))
		}
	}

	args = append(args, "-y", filepath.Join(outDir, FramePattern))
	return args
}

// scaleFilter constrains width and derives height from the source aspect
// ratio, never hard-coding it
func scaleFilter(width int) string {
	return fmt.Sprintf("scale=%d:-1", width)
}

func (f *FFmpeg) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, f.bin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Logger.Debug("Running decoder",
		zap.String("bin", f.bin),
		zap.String("args", strings.Join(args, " ")))

	if err := cmd.Run(); err != nil {
		return model.ClassifyToolchainError("ffmpeg", err, stderr.String())
	}
	return nil
}
