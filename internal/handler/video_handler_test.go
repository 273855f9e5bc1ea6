package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"videoframes/internal/ffmpeg"
	"videoframes/internal/model"
	"videoframes/internal/resolver"
	"videoframes/internal/service"
	"videoframes/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProber struct{ doc *ffmpeg.ProbeResult }

func (p *stubProber) Probe(ctx context.Context, path string) (*ffmpeg.ProbeResult, error) {
	return p.doc, nil
}

type stubDecoder struct{ frames int }

func (d *stubDecoder) ExtractFrames(ctx context.Context, path, outDir string, opts ffmpeg.ExtractOptions) error {
	for i := 1; i <= d.frames; i++ {
		name := filepath.Join(outDir, fmt.Sprintf(ffmpeg.FramePattern, i))
		if err := os.WriteFile(name, []byte("img"), 0644); err != nil {
			return err
		}
	}
	return nil
}

func (d *stubDecoder) ExtractFrameAtTime(ctx context.Context, path, outPath string, timestamp float64, quality, width int) error {
	return os.WriteFile(outPath, []byte("img"), 0644)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	videoDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(videoDir, "sample.mp4"), []byte("vid"), 0644))

	sm := storage.NewManager(&model.MediaConfig{
		VideoDir:        videoDir,
		MaxUploadSizeMB: 10,
		CleanupInterval: 3600,
		FileTTLSeconds:  3600,
	})

	doc := &ffmpeg.ProbeResult{
		Format: ffmpeg.ProbeFormat{Duration: "30", Size: "1024", BitRate: "500000"},
		Streams: []ffmpeg.ProbeStream{
			{CodecType: "video", CodecName: "h264", Width: 640, Height: 360, RFrameRate: "25/1"},
		},
	}
	svc := service.NewVideoService(
		resolver.New(videoDir),
		&stubProber{doc: doc},
		&stubDecoder{frames: 2},
		sm,
		model.ExtractionConfig{Interval: 2, MaxFrames: 30, Quality: 75, Width: 800, FrameQuality: 85, FrameWidth: 1280},
	)

	router := gin.New()
	videoHandler := NewVideoHandler(svc)
	uploadHandler := NewUploadHandler(svc, sm)

	api := router.Group("/api")
	api.GET("/video/info", videoHandler.GetVideoInfo)
	api.POST("/video/frames", videoHandler.ExtractFrames)
	api.POST("/video/frame", videoHandler.ExtractFrameAtTime)
	api.GET("/videos", uploadHandler.ListVideos)
	api.GET("/health", videoHandler.HealthCheck)
	return router
}

func TestGetVideoInfoEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/video/info?path=sample.mp4", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var meta model.VideoMetadata
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meta))
	assert.Equal(t, "sample.mp4", meta.Filename)
	assert.Equal(t, "640x360", meta.Resolution)
	assert.Equal(t, 30.0, meta.DurationSeconds)
	assert.False(t, meta.HasAudio)
}

func TestGetVideoInfoEndpointMissingParam(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/video/info", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVideoInfoEndpointNotFound(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/video/info?path=missing.mp4", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FILE_NOT_FOUND", resp.Error)
}

func TestExtractFramesEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]interface{}{"path": "sample.mp4", "interval": 1.0})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/video/frames", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result model.ExtractionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Frames, 2)
	assert.Equal(t, 2, result.ExtractionInfo.TotalFramesExtracted)
	// []byte travels as base64 and round-trips through JSON
	assert.Equal(t, []byte("img"), result.Frames[0].Data)
}

func TestExtractFramesEndpointInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/video/frames", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractFramesEndpointInvalidInterval(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]interface{}{"path": "sample.mp4", "interval": 61.0})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/video/frames", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_PATH", resp.Error)
	assert.NotEmpty(t, resp.Suggestion)
}

func TestExtractFrameAtTimeEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]interface{}{"path": "sample.mp4", "timestamp": 7.5})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/video/frame", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result model.FrameAtTimeResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 7.5, result.Frame.TimestampSeconds)
}

func TestListVideosEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sample.mp4")
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
