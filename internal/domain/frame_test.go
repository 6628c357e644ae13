package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameIndexLabel(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "000"},
		{7, "007"},
		{42, "042"},
		{999, "999"},
		{1000, "1000"},
		{1200, "1200"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FrameIndexLabel(tt.index))
	}
}

func TestFrameFileName(t *testing.T) {
	assert.Equal(t, "clip_007.png", FrameFileName("clip", 7, FormatPNG))
	assert.Equal(t, "my video_1200.jpg", FrameFileName("my video", 1200, FormatJPG))
}

func TestVideoBaseName(t *testing.T) {
	assert.Equal(t, "clip", VideoBaseName("/videos/clip.mp4"))
	assert.Equal(t, "archive.tar", VideoBaseName("archive.tar.mkv"))
	assert.Equal(t, "noext", VideoBaseName("noext"))
}

func TestParseImageFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ImageFormat
		wantErr bool
	}{
		{in: "png", want: FormatPNG},
		{in: "PNG", want: FormatPNG},
		{in: ".jpg", want: FormatJPG},
		{in: "jpeg", want: FormatJPG},
		{in: "tif", want: FormatTIFF},
		{in: "bmp", want: FormatBMP},
		{in: "gif", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseImageFormat(tt.in)
			if tt.wantErr {
				assert.True(t, IsValidation(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBatchResult_Counters(t *testing.T) {
	b := BatchResult{Videos: []VideoResult{
		{VideoPath: "a.mp4", Frames: []ExtractedFrame{{}, {}}},
		{VideoPath: "b.mp4", Err: errors.New("boom")},
		{VideoPath: "c.mp4", Frames: []ExtractedFrame{{}}},
	}}

	assert.Equal(t, 2, b.Succeeded())
	assert.Equal(t, 1, b.Failed())
	assert.Equal(t, 3, b.FrameCount())
}

func TestErrors_Unwrap(t *testing.T) {
	pe := &ProbeError{Path: "a.mp4", Err: ErrNoFrames}
	assert.True(t, errors.Is(pe, ErrNoFrames))
	assert.Contains(t, pe.Error(), "no frames")

	ee := &ExtractionError{Path: "a.mp4", FrameIndex: 3, Output: "Invalid data", Err: errors.New("exit status 1")}
	assert.Contains(t, ee.Error(), "frame 3")
	assert.Contains(t, ee.Error(), "Invalid data")

	ve := &ValidationError{Field: "frames", Message: "must be at least 1"}
	assert.Equal(t, "frames: must be at least 1", ve.Error())
	assert.False(t, IsValidation(pe))
}
