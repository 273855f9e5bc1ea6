package handler

import (
	"net/http"

	"videoframes/internal/model"
	"videoframes/internal/service"
	"videoframes/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoHandler handles video metadata and extraction requests
type VideoHandler struct {
	videoService *service.VideoService
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(vs *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: vs}
}

// GetVideoInfo handles GET /api/video/info
func (h *VideoHandler) GetVideoInfo(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		logger.Logger.Warn("Empty path provided")
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_path",
			Message: "Video path is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	meta, err := h.videoService.GetVideoInfo(c.Request.Context(), path)
	if err != nil {
		writeVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

// ExtractFrames handles POST /api/video/frames
func (h *VideoHandler) ExtractFrames(c *gin.Context) {
	var req model.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Logger.Warn("Invalid extraction request", zap.Error(err))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
			Code:    http.StatusBadRequest,
		})
		return
	}

	result, err := h.videoService.ExtractFrames(c.Request.Context(), &req)
	if err != nil {
		writeVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExtractFrameAtTime handles POST /api/video/frame
func (h *VideoHandler) ExtractFrameAtTime(c *gin.Context) {
	var req model.FrameAtTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Logger.Warn("Invalid frame request", zap.Error(err))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
			Code:    http.StatusBadRequest,
		})
		return
	}

	result, err := h.videoService.ExtractFrameAtTime(c.Request.Context(), req.Path, *req.Timestamp, req.Quality, req.Width)
	if err != nil {
		writeVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HealthCheck handles GET /api/health
func (h *VideoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "videoframes",
	})
}

// writeVideoError translates the closed error taxonomy into HTTP responses
func writeVideoError(c *gin.Context, err error) {
	verr := model.AsVideoError(err)

	status := http.StatusInternalServerError
	switch verr.Kind {
	case model.ErrFileNotFound:
		status = http.StatusNotFound
	case model.ErrInvalidPath:
		status = http.StatusBadRequest
	case model.ErrUnsupportedFormat:
		status = http.StatusUnsupportedMediaType
	case model.ErrToolchainNotFound:
		status = http.StatusServiceUnavailable
	case model.ErrTimeout:
		status = http.StatusGatewayTimeout
	}

	logger.Logger.Warn("Request failed",
		zap.String("kind", string(verr.Kind)),
		zap.String("message", verr.Message))

	c.JSON(status, model.ErrorResponse{
		Error:      string(verr.Kind),
		Message:    verr.Message,
		Code:       status,
		Details:    verr.Details,
		Suggestion: verr.Suggestion,
	})
}
