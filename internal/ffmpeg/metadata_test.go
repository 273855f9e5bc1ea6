package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrameRate(t *testing.T) {
	assert.Equal(t, 29.97, ParseFrameRate("30000/1001"))
	assert.Equal(t, 25.0, ParseFrameRate("25/1"))
	assert.Equal(t, 30.0, ParseFrameRate("30"))
	assert.Equal(t, 23.98, ParseFrameRate("24000/1001"))
	assert.Equal(t, 0.0, ParseFrameRate(""))
	assert.Equal(t, 0.0, ParseFrameRate("25/0"))
	assert.Equal(t, 0.0, ParseFrameRate("garbage"))
}

func sampleProbe() *ProbeResult {
	return &ProbeResult{
		Format: ProbeFormat{
			Filename: "/videos/clip.mp4",
			Duration: "125.48",
			Size:     "1536",
			BitRate:  "1500000",
			Tags:     map[string]string{"creation_time": "2024-05-01T10:00:00Z"},
		},
		Streams: []ProbeStream{
			{CodecType: "video", CodecName: "h264", Width: 1920, Height: 1080, RFrameRate: "30000/1001"},
			{CodecType: "audio", CodecName: "aac"},
		},
	}
}

func TestNormalize(t *testing.T) {
	meta := Normalize(sampleProbe(), "/videos/clip.mp4")

	assert.Equal(t, "clip.mp4", meta.Filename)
	assert.Equal(t, "/videos/clip.mp4", meta.FilePath)
	assert.Equal(t, "02:05", meta.Duration)
	assert.Equal(t, 125.48, meta.DurationSeconds)
	assert.Equal(t, "1920x1080", meta.Resolution)
	assert.Equal(t, 29.97, meta.Fps)
	assert.Equal(t, "h264", meta.VideoCodec)
	require.NotNil(t, meta.AudioCodec)
	assert.Equal(t, "aac", *meta.AudioCodec)
	assert.True(t, meta.HasAudio)
	assert.Equal(t, "1.5 KB", meta.FileSize)
	assert.Equal(t, int64(1536), meta.FileSizeBytes)
	assert.Equal(t, "1500 kb/s", meta.Bitrate)
	assert.Equal(t, "2024-05-01T10:00:00Z", meta.Created)
}

func TestNormalizeNoAudio(t *testing.T) {
	doc := sampleProbe()
	doc.Streams = doc.Streams[:1]

	meta := Normalize(doc, "/videos/clip.mp4")
	assert.Nil(t, meta.AudioCodec)
	assert.False(t, meta.HasAudio)
}

func TestNormalizeHasAudioMatchesCodec(t *testing.T) {
	meta := Normalize(sampleProbe(), "/videos/clip.mp4")
	assert.Equal(t, meta.AudioCodec != nil, meta.HasAudio)
}

func TestNormalizeFirstStreamWins(t *testing.T) {
	doc := sampleProbe()
	doc.Streams = append(doc.Streams,
		ProbeStream{CodecType: "video", CodecName: "vp9", Width: 640, Height: 360},
		ProbeStream{CodecType: "audio", CodecName: "opus"},
	)

	meta := Normalize(doc, "/videos/clip.mp4")
	assert.Equal(t, "h264", meta.VideoCodec)
	assert.Equal(t, "aac", *meta.AudioCodec)
}

func TestNormalizeNoStreams(t *testing.T) {
	doc := sampleProbe()
	doc.Streams = nil

	meta := Normalize(doc, "/videos/clip.mp4")
	assert.Equal(t, "unknown", meta.VideoCodec)
	assert.Equal(t, "unknown", meta.Resolution)
	assert.Equal(t, 0.0, meta.Fps)
	assert.Nil(t, meta.AudioCodec)
	assert.False(t, meta.HasAudio)
}

func TestNormalizeEmptyFormat(t *testing.T) {
	meta := Normalize(&ProbeResult{}, "/videos/clip.mp4")
	assert.Equal(t, "00:00", meta.Duration)
	assert.Equal(t, 0.0, meta.DurationSeconds)
	assert.Equal(t, "0 Bytes", meta.FileSize)
	assert.Equal(t, "unknown", meta.Bitrate)
	assert.Empty(t, meta.Created)
}

func TestNormalizeLongDuration(t *testing.T) {
	doc := sampleProbe()
	doc.Format.Duration = "3661.9"

	meta := Normalize(doc, "/videos/clip.mp4")
	assert.Equal(t, "01:01:01", meta.Duration)
}
