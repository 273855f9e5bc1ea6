package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	assert.Equal(t, "00:00", Duration(0))
	assert.Equal(t, "01:05", Duration(65))
	assert.Equal(t, "01:01:01", Duration(3661))
	assert.Equal(t, "59:59", Duration(3599))
	assert.Equal(t, "01:00:00", Duration(3600))
}

func TestDurationTruncatesFractions(t *testing.T) {
	// fractional seconds are truncated, not rounded
	assert.Equal(t, "01:05", Duration(65.9))
	assert.Equal(t, "00:00", Duration(0.999))
}

func TestDurationNegative(t *testing.T) {
	assert.Equal(t, "00:00", Duration(-5))
}

func TestBytes(t *testing.T) {
	assert.Equal(t, "0 Bytes", Bytes(0))
	assert.Equal(t, "512 Bytes", Bytes(512))
	assert.Equal(t, "1 KB", Bytes(1024))
	assert.Equal(t, "1.5 KB", Bytes(1536))
	assert.Equal(t, "1 MB", Bytes(1024*1024))
	assert.Equal(t, "2.5 GB", Bytes(int64(2.5*1024*1024*1024)))
}

func TestBytesRoundsToTwoDecimals(t *testing.T) {
	// 1234567 / 1024 / 1024 = 1.17737...
	assert.Equal(t, "1.18 MB", Bytes(1234567))
}

func TestBitrate(t *testing.T) {
	assert.Equal(t, "unknown", Bitrate(0))
	assert.Equal(t, "unknown", Bitrate(-1))
	assert.Equal(t, "1500 kb/s", Bitrate(1500000))
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, "5", Seconds(5))
	assert.Equal(t, "2.5", Seconds(2.5))
	assert.Equal(t, "0.5", Seconds(0.5))
}
