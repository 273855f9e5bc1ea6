package format

import (
	"fmt"
	"math"
	"strconv"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// Duration renders a second count as MM:SS under one hour and HH:MM:SS
// above, components zero-padded. Fractional seconds are truncated.
func Duration(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// Bytes renders a byte count in binary (1024-based) units with up to two
// decimal places, trailing zeros dropped. Zero renders literally.
func Bytes(n int64) string {
	if n == 0 {
		return "0 Bytes"
	}

	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[unit]
}

// Bitrate renders a bits-per-second value as kb/s
func Bitrate(bps int64) string {
	if bps <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d kb/s", bps/1000)
}

// Seconds renders a float suitable for subprocess arguments, without
// exponent notation or trailing zeros
func Seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
