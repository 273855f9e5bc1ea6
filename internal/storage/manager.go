package storage

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"videoframes/internal/model"
	"videoframes/pkg/format"
	"videoframes/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns the video base directory, tracks uploaded files for TTL
// cleanup, and hands out scratch directories for ephemeral extractions.
type Manager struct {
	cfg      *model.MediaConfig
	uploads  map[string]*model.UploadedFile
	mu       sync.RWMutex
	quitChan chan bool
}

// NewManager creates a new storage manager
func NewManager(cfg *model.MediaConfig) *Manager {
	return &Manager{
		cfg:      cfg,
		uploads:  make(map[string]*model.UploadedFile),
		quitChan: make(chan bool),
	}
}

// Start starts the cleanup routine
func (m *Manager) Start() {
	go m.cleanupRoutine()
}

// Stop stops the cleanup routine
func (m *Manager) Stop() {
	select {
	case m.quitChan <- true:
	default:
		logger.Logger.Warn("Could not send stop signal to cleanup routine")
	}
}

// EnsureVideoDir ensures the base video directory exists
func (m *Manager) EnsureVideoDir() error {
	return os.MkdirAll(m.cfg.VideoDir, 0755)
}

// VideoPath returns the path a video of the given name is stored at
func (m *Manager) VideoPath(filename string) string {
	return filepath.Join(m.cfg.VideoDir, filename)
}

// ValidateFileSize checks an upload size against the configured limit
func (m *Manager) ValidateFileSize(sizeBytes int64) bool {
	return sizeBytes <= int64(m.cfg.MaxUploadSizeMB)*1024*1024
}

// TrackUpload records an uploaded file for TTL cleanup and returns its ID
func (m *Manager) TrackUpload(file *model.UploadedFile) string {
	id := uuid.NewString()
	file.ID = id
	file.CreatedAt = time.Now()
	file.ExpiresAt = time.Now().Add(time.Duration(m.cfg.FileTTLSeconds) * time.Second)

	m.mu.Lock()
	m.uploads[id] = file
	m.mu.Unlock()

	logger.Logger.Info("Upload tracked", zap.String("id", id), zap.String("filename", file.Filename))
	return id
}

// ListVideos returns the supported video files in the base directory
func (m *Manager) ListVideos() ([]model.VideoFileInfo, error) {
	entries, err := os.ReadDir(m.cfg.VideoDir)
	if err != nil {
		return nil, err
	}

	videos := []model.VideoFileInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !isSupportedVideo(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		videos = append(videos, model.VideoFileInfo{
			Name:     entry.Name(),
			Path:     filepath.Join(m.cfg.VideoDir, entry.Name()),
			Size:     info.Size(),
			SizeStr:  format.Bytes(info.Size()),
			Modified: info.ModTime(),
		})
	}
	return videos, nil
}

// NewScratchDir creates a uniquely named call-scoped directory under the
// system temp location. The pipeline owns it exclusively and must remove
// it with RemoveScratchDir on every exit path.
func (m *Manager) NewScratchDir() (string, error) {
	dir := filepath.Join(os.TempDir(), "frames-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	logger.Logger.Debug("Scratch directory created", zap.String("dir", dir))
	return dir, nil
}

// RemoveScratchDir deletes a scratch directory and everything in it
func (m *Manager) RemoveScratchDir(dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		logger.Logger.Error("Failed to remove scratch directory",
			zap.String("dir", dir), zap.Error(err))
		return
	}
	logger.Logger.Debug("Scratch directory removed", zap.String("dir", dir))
}

// cleanupRoutine periodically removes expired uploads
func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(time.Duration(m.cfg.CleanupInterval) * time.Second)
	defer ticker.Stop()

	logger.Logger.Info("Storage cleanup routine started",
		zap.Int("cleanup_interval_seconds", m.cfg.CleanupInterval),
		zap.Int("file_ttl_seconds", m.cfg.FileTTLSeconds))

	for {
		select {
		case <-m.quitChan:
			logger.Logger.Info("Storage cleanup routine stopped")
			return
		case <-ticker.C:
			m.cleanupExpired()
		}
	}
}

// cleanupExpired removes uploads whose TTL has passed
func (m *Manager) cleanupExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var expired []string

	for id, file := range m.uploads {
		if !now.After(file.ExpiresAt) {
			continue
		}
		if err := os.Remove(file.FilePath); err != nil && !os.IsNotExist(err) {
			logger.Logger.Error("Failed to remove expired upload",
				zap.String("id", id),
				zap.String("path", file.FilePath),
				zap.Error(err))
		} else {
			logger.Logger.Info("Expired upload removed",
				zap.String("id", id),
				zap.String("path", file.FilePath))
		}
		// Drop from tracking regardless of deletion outcome
		expired = append(expired, id)
	}

	for _, id := range expired {
		delete(m.uploads, id)
	}

	if len(expired) > 0 {
		logger.Logger.Info("Storage cleanup completed",
			zap.Int("removed", len(expired)),
			zap.Int("remaining_tracked", len(m.uploads)))
	}
}

// TrackedCount returns the number of uploads currently tracked
func (m *Manager) TrackedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.uploads)
}

// ManualCleanup triggers a cleanup run immediately
func (m *Manager) ManualCleanup() {
	m.cleanupExpired()
}

func isSupportedVideo(name string) bool {
	ext := filepath.Ext(name)
	for _, supported := range model.SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
