package service

import (
	"testing"

	"videoframes/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitAllow(t *testing.T) {
	s := NewRateLimitService(&model.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 3,
		CleanupInterval:   3600,
	})
	defer s.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, s.Allow("10.0.0.1"), "request %d", i+1)
	}
	assert.False(t, s.Allow("10.0.0.1"))

	// other IPs are independent
	assert.True(t, s.Allow("10.0.0.2"))
}

func TestRateLimitDisabled(t *testing.T) {
	s := NewRateLimitService(&model.RateLimitConfig{Enabled: false})
	defer s.Stop()

	for i := 0; i < 100; i++ {
		assert.True(t, s.Allow("10.0.0.1"))
	}
	assert.Equal(t, -1, s.Remaining("10.0.0.1"))
}

func TestRateLimitRemaining(t *testing.T) {
	s := NewRateLimitService(&model.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 5,
		CleanupInterval:   3600,
	})
	defer s.Stop()

	assert.Equal(t, 5, s.Remaining("10.0.0.1"))
	s.Allow("10.0.0.1")
	s.Allow("10.0.0.1")
	assert.Equal(t, 3, s.Remaining("10.0.0.1"))
}
