package service

import (
	"sync"
	"time"

	"videoframes/internal/model"
	"videoframes/pkg/logger"

	"go.uber.org/zap"
)

// rateWindow tracks request counts for one IP in the current minute
type rateWindow struct {
	requests int
	resetAt  time.Time
}

// RateLimitService enforces a fixed-window per-IP request limit
type RateLimitService struct {
	cfg      *model.RateLimitConfig
	windows  map[string]*rateWindow
	mu       sync.Mutex
	quitChan chan bool
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(cfg *model.RateLimitConfig) *RateLimitService {
	s := &RateLimitService{
		cfg:      cfg,
		windows:  make(map[string]*rateWindow),
		quitChan: make(chan bool),
	}
	if cfg.Enabled {
		go s.cleanupRoutine()
	}
	return s
}

// Allow reports whether the IP may make another request in its window
func (s *RateLimitService) Allow(ip string) bool {
	if !s.cfg.Enabled {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w, exists := s.windows[ip]
	if !exists || now.After(w.resetAt) {
		s.windows[ip] = &rateWindow{requests: 1, resetAt: now.Add(time.Minute)}
		return true
	}

	w.requests++
	if w.requests > s.cfg.RequestsPerMinute {
		logger.Logger.Warn("Rate limit exceeded",
			zap.String("ip", ip),
			zap.Int("requests", w.requests),
			zap.Int("limit", s.cfg.RequestsPerMinute))
		return false
	}
	return true
}

// Remaining returns the requests left for the IP in the current window,
// or -1 when limiting is disabled
func (s *RateLimitService) Remaining(ip string) int {
	if !s.cfg.Enabled {
		return -1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, exists := s.windows[ip]
	if !exists || time.Now().After(w.resetAt) {
		return s.cfg.RequestsPerMinute
	}
	remaining := s.cfg.RequestsPerMinute - w.requests
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// Stop stops the cleanup routine
func (s *RateLimitService) Stop() {
	if s.cfg.Enabled {
		s.quitChan <- true
	}
}

func (s *RateLimitService) cleanupRoutine() {
	ticker := time.NewTicker(time.Duration(s.cfg.CleanupInterval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.quitChan:
			logger.Logger.Info("Rate limit service stopped")
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup drops windows that have been stale for a while
func (s *RateLimitService) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for ip, w := range s.windows {
		if now.Sub(w.resetAt) > time.Hour {
			delete(s.windows, ip)
			removed++
		}
	}
	if removed > 0 {
		logger.Logger.Debug("Rate limit entries cleaned up",
			zap.Int("removed", removed), zap.Int("remaining", len(s.windows)))
	}
}
