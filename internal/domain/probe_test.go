package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrameCount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "plain integer", raw: "1234\n", want: 1234},
		{name: "zero", raw: "0", want: 0},
		{name: "trailing comma", raw: "240,\n", want: 240},
		{name: "extra lines", raw: "\n90\n91\n", want: 90},
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace only", raw: "  \n ", wantErr: true},
		{name: "not a number", raw: "N/A", wantErr: true},
		{name: "negative", raw: "-3", wantErr: true},
		{name: "float", raw: "12.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrameCount(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "integer rational", raw: "30/1", want: 30},
		{name: "ntsc", raw: "30000/1001\n", want: 30000.0 / 1001.0},
		{name: "bare integer", raw: "25", want: 25},
		{name: "spaces around parts", raw: " 24 / 1 ", want: 24},
		{name: "zero over one", raw: "0/1", want: 0},
		{name: "zero denominator", raw: "0/0", wantErr: true},
		{name: "negative denominator", raw: "30/-1", wantErr: true},
		{name: "negative numerator", raw: "-30/1", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "expression rejected", raw: "__import__('os')", wantErr: true},
		{name: "arithmetic rejected", raw: "30*2/1", wantErr: true},
		{name: "float numerator rejected", raw: "29.97/1", wantErr: true},
		{name: "three parts rejected", raw: "1/2/3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrameRate(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFormatFrameRate(t *testing.T) {
	assert.Equal(t, "25 FPS", FormatFrameRate(25))
	assert.Equal(t, "29.97 FPS", FormatFrameRate(30000.0/1001.0))
	assert.Equal(t, "", FormatFrameRate(0))
}

func TestVideoMetadata_Duration(t *testing.T) {
	assert.InDelta(t, 4.0, VideoMetadata{TotalFrames: 100, FrameRate: 25}.Duration(), 1e-9)
	assert.Equal(t, 0.0, VideoMetadata{TotalFrames: 100}.Duration())
}
