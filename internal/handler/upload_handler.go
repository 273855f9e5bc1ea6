package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"videoframes/internal/model"
	"videoframes/internal/service"
	"videoframes/internal/storage"
	"videoframes/pkg/format"
	"videoframes/pkg/logger"
	"videoframes/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadHandler handles video uploads and listing
type UploadHandler struct {
	videoService *service.VideoService
	storage      *storage.Manager
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(vs *service.VideoService, sm *storage.Manager) *UploadHandler {
	return &UploadHandler{videoService: vs, storage: sm}
}

// Upload handles POST /api/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Logger.Warn("Missing upload file", zap.Error(err))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_request",
			Message: "A file form field is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !isSupportedUpload(ext) {
		logger.Logger.Warn("Unsupported upload format", zap.String("filename", fileHeader.Filename))
		c.JSON(http.StatusUnsupportedMediaType, model.ErrorResponse{
			Error:   "unsupported_format",
			Message: "File extension is not a supported video format",
			Code:    http.StatusUnsupportedMediaType,
		})
		return
	}

	if !h.storage.ValidateFileSize(fileHeader.Size) {
		logger.Logger.Warn("Upload exceeds size limit",
			zap.String("filename", fileHeader.Filename),
			zap.Int64("size", fileHeader.Size))
		c.JSON(http.StatusRequestEntityTooLarge, model.ErrorResponse{
			Error:   "file_too_large",
			Message: "Uploaded file exceeds the configured size limit",
			Code:    http.StatusRequestEntityTooLarge,
		})
		return
	}

	filename := validator.SanitizeFilename(filepath.Base(fileHeader.Filename))
	destPath := h.storage.VideoPath(filename)
	if err := c.SaveUploadedFile(fileHeader, destPath); err != nil {
		logger.Logger.Error("Failed to store upload", zap.Error(err), zap.String("path", destPath))
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "upload_failed",
			Message: "Failed to store the uploaded file",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	id := h.storage.TrackUpload(&model.UploadedFile{
		Filename: filename,
		FilePath: destPath,
		Size:     fileHeader.Size,
	})

	c.JSON(http.StatusOK, model.UploadResponse{
		ID:       id,
		Filename: filename,
		Size:     fileHeader.Size,
		SizeStr:  format.Bytes(fileHeader.Size),
	})
}

// ListVideos handles GET /api/videos
func (h *UploadHandler) ListVideos(c *gin.Context) {
	videos, err := h.videoService.ListVideos()
	if err != nil {
		logger.Logger.Error("Failed to list videos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "list_failed",
			Message: "Failed to list available videos",
			Code:    http.StatusInternalServerError,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos)})
}

func isSupportedUpload(ext string) bool {
	for _, supported := range model.SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
