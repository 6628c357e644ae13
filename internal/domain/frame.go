package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatJPG  ImageFormat = "jpg"
	FormatBMP  ImageFormat = "bmp"
	FormatTIFF ImageFormat = "tiff"
)

func ParseImageFormat(s string) (ImageFormat, error) {
	switch f := ImageFormat(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatPNG, FormatJPG, FormatBMP, FormatTIFF:
		return f, nil
	case "jpeg":
		return FormatJPG, nil
	case "tif":
		return FormatTIFF, nil
	default:
		return "", &ValidationError{Field: "format", Message: fmt.Sprintf("unsupported image format %q", s)}
	}
}

// FrameIndexLabel zero-pads indices below 1000 to three digits.
func FrameIndexLabel(index int) string {
	return fmt.Sprintf("%03d", index)
}

// FrameFileName builds "{videoBase}_{index}.{ext}".
func FrameFileName(videoBase string, index int, format ImageFormat) string {
	return fmt.Sprintf("%s_%s.%s", videoBase, FrameIndexLabel(index), format)
}

// VideoBaseName strips directory and extension from a video path.
func VideoBaseName(videoPath string) string {
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExtractedFrame is one frame written to disk during a run.
type ExtractedFrame struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"run_id"`
	VideoPath  string    `json:"video_path"`
	FrameIndex int       `json:"frame_index"`
	OutputPath string    `json:"output_path"`
	Format     string    `json:"format"`
	Checksum   string    `json:"checksum"`
	FileSize   int64     `json:"file_size"`
	CreatedAt  time.Time `json:"created_at"`
}

// VideoResult summarises the processing of one video.
type VideoResult struct {
	VideoPath string
	Metadata  VideoMetadata
	Plan      []int
	Clamped   bool
	Frames    []ExtractedFrame
	Err       error
}

func (r VideoResult) Failed() bool { return r.Err != nil }

// BatchResult holds the results of every video processed in one run.
type BatchResult struct {
	RunID  string
	Videos []VideoResult
}

func (b BatchResult) Succeeded() int {
	n := 0
	for _, v := range b.Videos {
		if !v.Failed() {
			n++
		}
	}
	return n
}

func (b BatchResult) Failed() int {
	return len(b.Videos) - b.Succeeded()
}

func (b BatchResult) FrameCount() int {
	n := 0
	for _, v := range b.Videos {
		n += len(v.Frames)
	}
	return n
}
