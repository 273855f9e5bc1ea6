package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"videoframes/internal/ffmpeg"
	"videoframes/internal/model"
	"videoframes/internal/resolver"
	"videoframes/internal/storage"
	"videoframes/pkg/format"
	"videoframes/pkg/logger"
	"videoframes/pkg/validator"

	"go.uber.org/zap"
)

// Prober inspects a media file's container and stream structure without
// decoding frame content
type Prober interface {
	Probe(ctx context.Context, path string) (*ffmpeg.ProbeResult, error)
}

// Decoder produces image files from a video
type Decoder interface {
	ExtractFrames(ctx context.Context, path, outDir string, opts ffmpeg.ExtractOptions) error
	ExtractFrameAtTime(ctx context.Context, path, outPath string, timestamp float64, quality, width int) error
}

// imageExtensions are the output formats recognized when collecting
// produced or cached frames from an output directory
var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// VideoService orchestrates probe and extraction: path resolution,
// metadata normalization, the scratch-vs-persistent output lifecycle, and
// frame collection. Each call is a single synchronous unit of work with at
// most two sequential subprocess invocations.
type VideoService struct {
	resolver *resolver.Resolver
	prober   Prober
	decoder  Decoder
	storage  *storage.Manager
	defaults model.ExtractionConfig
}

// NewVideoService creates a new video service
func NewVideoService(res *resolver.Resolver, prober Prober, decoder Decoder, sm *storage.Manager, defaults model.ExtractionConfig) *VideoService {
	return &VideoService{
		resolver: res,
		prober:   prober,
		decoder:  decoder,
		storage:  sm,
		defaults: defaults,
	}
}

// GetVideoInfo probes a video and returns its normalized metadata
func (s *VideoService) GetVideoInfo(ctx context.Context, path string) (*model.VideoMetadata, error) {
	resolved, verr := s.resolveVideo(path)
	if verr != nil {
		return nil, verr
	}

	doc, err := s.prober.Probe(ctx, resolved)
	if err != nil {
		return nil, err
	}

	meta := ffmpeg.Normalize(doc, resolved)
	logger.Logger.Info("Video probed",
		zap.String("path", resolved),
		zap.Float64("duration", meta.DurationSeconds),
		zap.String("resolution", meta.Resolution))
	return meta, nil
}

// ExtractFrames extracts an ordered frame sequence according to the
// request. With a persistent output directory whose contents are non-empty,
// extraction is skipped and the existing files are reinterpreted as the
// frame sequence; the directory is a cache keyed only by its identity, so
// stale frames from different parameters are served as-is.
func (s *VideoService) ExtractFrames(ctx context.Context, req *model.ExtractionRequest) (*model.ExtractionResult, error) {
	s.applyDefaults(req)

	if verr := validator.ValidatePath(req.Path); verr != nil {
		return nil, verr
	}
	if verr := validator.ValidateExtractionParams(req.Interval, req.MaxFrames, req.Quality, req.Width, req.StartTime, req.EndTime); verr != nil {
		return nil, verr
	}

	resolved, verr := s.resolveVideo(req.Path)
	if verr != nil {
		return nil, verr
	}

	doc, err := s.prober.Probe(ctx, resolved)
	if err != nil {
		return nil, err
	}
	meta := ffmpeg.Normalize(doc, resolved)

	start := 0.0
	if req.StartTime != nil {
		start = *req.StartTime
		if verr := checkStartWithinDuration(start, meta.DurationSeconds); verr != nil {
			return nil, verr
		}
	}

	info := model.ExtractionInfo{
		IntervalUsed: req.Interval,
		Quality:      req.Quality,
		Width:        req.Width,
	}

	persistent := req.OutputDir != ""
	var outDir string

	if persistent {
		// Existing frames in a caller-supplied directory are authoritative:
		// a non-empty directory is a cache hit and the decoder never runs.
		frames, paths, err := s.collectFrames(req.OutputDir, start, req.Interval)
		if err != nil {
			return nil, err
		}
		if len(frames) > 0 {
			logger.Logger.Info("Reusing existing frames",
				zap.String("output_dir", req.OutputDir),
				zap.Int("count", len(frames)))
			info.TotalFramesExtracted = len(frames)
			return &model.ExtractionResult{
				Metadata:        meta,
				Frames:          frames,
				ExtractionInfo:  info,
				FramePaths:      paths,
				OutputDirectory: req.OutputDir,
			}, nil
		}
		if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
			return nil, model.NewVideoError(model.ErrInvalidPath,
				fmt.Sprintf("cannot create output directory: %v", err)).
				WithDetail("output_dir", req.OutputDir)
		}
		outDir = req.OutputDir
	} else {
		outDir, err = s.storage.NewScratchDir()
		if err != nil {
			return nil, model.NewVideoError(model.ErrUnknown,
				fmt.Sprintf("cannot create scratch directory: %v", err))
		}
		// Scratch directories never outlive a single call, success or not
		defer s.storage.RemoveScratchDir(outDir)
	}

	opts := ffmpeg.ExtractOptions{
		Interval:  req.Interval,
		MaxFrames: req.MaxFrames,
		Quality:   req.Quality,
		Width:     req.Width,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.decoder.ExtractFrames(ctx, resolved, outDir, opts); err != nil {
		return nil, err
	}

	frames, paths, err := s.collectFrames(outDir, start, req.Interval)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, model.NewVideoError(model.ErrToolchainError, "decoder produced no frames").
			WithDetail("output_dir", outDir)
	}

	logger.Logger.Info("Frames extracted",
		zap.String("path", resolved),
		zap.Int("count", len(frames)),
		zap.Float64("interval", req.Interval))

	info.TotalFramesExtracted = len(frames)
	result := &model.ExtractionResult{
		Metadata:       meta,
		Frames:         frames,
		ExtractionInfo: info,
	}
	if persistent {
		result.FramePaths = paths
		result.OutputDirectory = req.OutputDir
	}
	return result, nil
}

// ExtractFrameAtTime extracts a single frame at the requested timestamp.
// The returned frame carries the requested timestamp verbatim.
func (s *VideoService) ExtractFrameAtTime(ctx context.Context, path string, timestamp float64, quality, width int) (*model.FrameAtTimeResult, error) {
	if quality == 0 {
		quality = s.defaults.FrameQuality
	}
	if width == 0 {
		width = s.defaults.FrameWidth
	}

	if verr := validator.ValidateTimestamp(timestamp); verr != nil {
		return nil, verr
	}
	if verr := validator.ValidateExtractionParams(s.defaults.Interval, s.defaults.MaxFrames, quality, width, nil, nil); verr != nil {
		return nil, verr
	}

	resolved, verr := s.resolveVideo(path)
	if verr != nil {
		return nil, verr
	}

	doc, err := s.prober.Probe(ctx, resolved)
	if err != nil {
		return nil, err
	}
	meta := ffmpeg.Normalize(doc, resolved)

	if verr := checkStartWithinDuration(timestamp, meta.DurationSeconds); verr != nil {
		return nil, verr
	}

	outDir, err := s.storage.NewScratchDir()
	if err != nil {
		return nil, model.NewVideoError(model.ErrUnknown,
			fmt.Sprintf("cannot create scratch directory: %v", err))
	}
	defer s.storage.RemoveScratchDir(outDir)

	outPath := filepath.Join(outDir, "frame.jpg")
	if err := s.decoder.ExtractFrameAtTime(ctx, resolved, outPath, timestamp, quality, width); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, model.NewVideoError(model.ErrToolchainError, "decoder produced no frame").
			WithDetail("timestamp", timestamp)
	}

	return &model.FrameAtTimeResult{
		Frame: model.ExtractedFrame{
			Index:            0,
			Timestamp:        format.Duration(timestamp),
			TimestampSeconds: timestamp,
			Data:             data,
			MimeType:         "image/jpeg",
		},
		Metadata: meta,
	}, nil
}

// ListVideos lists the videos available in the base directory
func (s *VideoService) ListVideos() ([]model.VideoFileInfo, error) {
	return s.storage.ListVideos()
}

// resolveVideo validates the path shape, resolves it to an existing file
// and checks its container format against the allow-list
func (s *VideoService) resolveVideo(path string) (string, *model.VideoError) {
	if verr := validator.ValidatePath(path); verr != nil {
		return "", verr
	}

	resolved, ok := s.resolver.Resolve(path)
	if !ok {
		verr := model.NewVideoError(model.ErrFileNotFound,
			fmt.Sprintf("video file not found: %s", path))
		if available := s.resolver.ListAvailable(); len(available) > 0 {
			verr.WithSuggestion("available videos: " + strings.Join(available, ", "))
		}
		return "", verr
	}

	ext := strings.ToLower(filepath.Ext(resolved))
	for _, supported := range model.SupportedExtensions {
		if ext == supported {
			return resolved, nil
		}
	}
	return "", model.NewVideoError(model.ErrUnsupportedFormat,
		fmt.Sprintf("unsupported container format: %s", ext)).
		WithDetail("extension", ext).
		WithSuggestion("supported formats: " + strings.Join(model.SupportedExtensions, " "))
}

// collectFrames lists image files in dir sorted lexicographically, which
// matches sequence order because produced filenames are zero-padded, and
// assigns timestamps computed as start + index*interval. Timestamps are
// computed, not read from the decoder, so they are only as accurate as the
// requested interval.
func (s *VideoService) collectFrames(dir string, start, interval float64) ([]model.ExtractedFrame, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, model.NewVideoError(model.ErrUnknown,
			fmt.Sprintf("cannot read output directory: %v", err))
	}

	var frames []model.ExtractedFrame
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		mime, ok := imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))]
		if !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, model.NewVideoError(model.ErrUnknown,
				fmt.Sprintf("cannot read frame file: %v", err)).
				WithDetail("path", path)
		}

		ts := start + float64(len(frames))*interval
		frames = append(frames, model.ExtractedFrame{
			Index:            len(frames),
			Timestamp:        format.Duration(ts),
			TimestampSeconds: ts,
			Data:             data,
			MimeType:         mime,
		})
		paths = append(paths, path)
	}
	return frames, paths, nil
}

// applyDefaults fills zero-valued request fields from configuration
func (s *VideoService) applyDefaults(req *model.ExtractionRequest) {
	if req.Interval == 0 {
		req.Interval = s.defaults.Interval
	}
	if req.MaxFrames == 0 {
		req.MaxFrames = s.defaults.MaxFrames
	}
	if req.Quality == 0 {
		req.Quality = s.defaults.Quality
	}
	if req.Width == 0 {
		req.Width = s.defaults.Width
	}
}

// checkStartWithinDuration rejects a seek at or past the end of the video
// before any decoder invocation
func checkStartWithinDuration(start, duration float64) *model.VideoError {
	if duration > 0 && start >= duration {
		return model.NewVideoError(model.ErrInvalidPath,
			fmt.Sprintf("start time %.2fs is beyond the video duration %.2fs", start, duration)).
			WithDetail("start_time", start).
			WithDetail("duration_seconds", duration).
			WithSuggestion(fmt.Sprintf("use a start time below %.2f", duration))
	}
	return nil
}
