package ffmpeg

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"videoframes/internal/model"
	"videoframes/pkg/format"
)

// Normalize maps a raw probe document onto the stable metadata model.
// The first stream of type "video" is the video stream, the first of type
// "audio" the audio stream; absence of either is valid.
func Normalize(doc *ProbeResult, path string) *model.VideoMetadata {
	var video, audio *ProbeStream
	for i := range doc.Streams {
		s := &doc.Streams[i]
		switch s.CodecType {
		case "video":
			if video == nil {
				video = s
			}
		case "audio":
			if audio == nil {
				audio = s
			}
		}
	}

	durationSecs, _ := strconv.ParseFloat(doc.Format.Duration, 64)
	if durationSecs < 0 {
		durationSecs = 0
	}
	sizeBytes, _ := strconv.ParseInt(doc.Format.Size, 10, 64)
	bitrate, _ := strconv.ParseInt(doc.Format.BitRate, 10, 64)

	meta := &model.VideoMetadata{
		Filename:        filepath.Base(path),
		FilePath:        path,
		Duration:        format.Duration(durationSecs),
		DurationSeconds: durationSecs,
		Resolution:      "unknown",
		VideoCodec:      "unknown",
		FileSize:        format.Bytes(sizeBytes),
		FileSizeBytes:   sizeBytes,
		Bitrate:         format.Bitrate(bitrate),
	}

	if video != nil {
		if video.Width > 0 && video.Height > 0 {
			meta.Resolution = fmt.Sprintf("%dx%d", video.Width, video.Height)
		}
		if video.CodecName != "" {
			meta.VideoCodec = video.CodecName
		}
		meta.Fps = ParseFrameRate(video.RFrameRate)
	}

	if audio != nil {
		codec := audio.CodecName
		meta.AudioCodec = &codec
		meta.HasAudio = true
	}

	if created, ok := doc.Format.Tags["creation_time"]; ok {
		meta.Created = created
	}

	return meta
}

// ParseFrameRate parses ffprobe's rational notation ("30000/1001") into a
// decimal rounded to two places. Plain decimals are accepted as-is.
func ParseFrameRate(rate string) float64 {
	if rate == "" {
		return 0
	}

	if num, den, found := strings.Cut(rate, "/"); found {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0
		}
		return round2(n / d)
	}

	v, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return 0
	}
	return round2(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
