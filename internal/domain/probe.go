package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// VideoMetadata is what a probe learns about the first video stream.
type VideoMetadata struct {
	TotalFrames int     `json:"total_frames"`
	FrameRate   float64 `json:"frame_rate"`
}

// Duration returns the stream length in seconds, or 0 when the rate is unknown.
func (m VideoMetadata) Duration() float64 {
	if m.FrameRate <= 0 {
		return 0
	}
	return float64(m.TotalFrames) / m.FrameRate
}

// ParseFrameCount parses ffprobe's nb_read_frames output.
func ParseFrameCount(raw string) (int, error) {
	field := firstField(raw)
	if field == "" {
		return 0, fmt.Errorf("empty frame count")
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("invalid frame count %q", field)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative frame count %d", n)
	}
	return n, nil
}

// ParseFrameRate parses a rational "num/den" rate such as "30000/1001".
// A bare integer is read as num/1. Anything else is rejected.
func ParseFrameRate(raw string) (float64, error) {
	field := firstField(raw)
	if field == "" {
		return 0, fmt.Errorf("empty frame rate")
	}

	numStr, denStr, found := strings.Cut(field, "/")
	if !found {
		denStr = "1"
	}

	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate numerator in %q", field)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate denominator in %q", field)
	}
	if num < 0 {
		return 0, fmt.Errorf("negative frame rate %q", field)
	}
	if den <= 0 {
		return 0, fmt.Errorf("non-positive frame rate denominator in %q", field)
	}

	return float64(num) / float64(den), nil
}

// FormatFrameRate renders a rate for display, e.g. "25 FPS" or "29.97 FPS".
func FormatFrameRate(fps float64) string {
	if fps <= 0 {
		return ""
	}
	if fps == math.Floor(fps) {
		return fmt.Sprintf("%.0f FPS", fps)
	}
	return fmt.Sprintf("%.2f FPS", fps)
}

// firstField returns the first comma-separated field of the first non-empty
// line. csv=p=0 output sometimes carries a trailing comma or extra lines.
func firstField(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		field, _, _ := strings.Cut(line, ",")
		return strings.TrimSpace(field)
	}
	return ""
}
