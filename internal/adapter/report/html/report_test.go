package html

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/lastframes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBatch(dir string) domain.BatchResult {
	return domain.BatchResult{
		RunID: "run-42",
		Videos: []domain.VideoResult{
			{
				VideoPath: "/videos/my clip.mp4",
				Metadata:  domain.VideoMetadata{TotalFrames: 120, FrameRate: 25},
				Frames: []domain.ExtractedFrame{
					{FrameIndex: 118, OutputPath: filepath.Join(dir, "my clip_118.png")},
					{FrameIndex: 119, OutputPath: filepath.Join(dir, "my clip_119.png")},
				},
			},
			{
				VideoPath: "/videos/<broken>.mkv",
				Err:       errors.New(`probe "<broken>.mkv": no frames`),
			},
		},
	}
}

func TestContactSheet_Render(t *testing.T) {
	dir := "/out"
	var buf bytes.Buffer

	err := ContactSheet(dir, sampleBatch(dir), time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)).Render(context.Background(), &buf)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "<h1>Run run-42</h1>")
	assert.Contains(t, out, "2 videos, 2 frames, 1 failed")
	assert.Contains(t, out, "2026-01-02T03:04:05Z")
	assert.Contains(t, out, `src="my%20clip_118.png"`)
	assert.Contains(t, out, "#119")
	assert.Contains(t, out, "120 frames, 25 FPS")
	assert.Contains(t, out, "&lt;broken&gt;.mkv")
	assert.NotContains(t, out, "<broken>")
}

func TestVideoSection_Render(t *testing.T) {
	t.Run("failed video without metadata", func(t *testing.T) {
		var buf bytes.Buffer

		err := videoSection("/out", domain.VideoResult{VideoPath: "/v/a.mp4", Err: errors.New("exit status 1")}).
			Render(context.Background(), &buf)

		require.NoError(t, err)
		assert.Equal(t, `<section><h2>a.mp4</h2><p class="error">exit status 1</p><div class="frames"></div></section>`, buf.String())
	})

	t.Run("frames", func(t *testing.T) {
		var buf bytes.Buffer
		v := domain.VideoResult{
			VideoPath: "/v/b.mp4",
			Metadata:  domain.VideoMetadata{TotalFrames: 10, FrameRate: 30000.0 / 1001.0},
			Frames:    []domain.ExtractedFrame{{FrameIndex: 9, OutputPath: "/out/sub/b_009.png"}},
		}

		err := videoSection("/out", v).Render(context.Background(), &buf)

		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "<p>10 frames, 29.97 FPS</p>")
		assert.Contains(t, out, `<img src="sub/b_009.png" alt="frame 9" loading="lazy">`)
		assert.Contains(t, out, "<figcaption>#009</figcaption>")
		assert.NotContains(t, out, `class="error"`)
	})
}

func TestFrameFigure_EscapesSource(t *testing.T) {
	var buf bytes.Buffer

	err := frameFigure(`a"b.png`, 1).Render(context.Background(), &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `src="a&#34;b.png"`)
}

func TestContactSheet_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ContactSheet("/out", sampleBatch("/out"), time.Now()).Render(ctx, &bytes.Buffer{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestReporter_Write(t *testing.T) {
	t.Run("writes index.html", func(t *testing.T) {
		dir := t.TempDir()
		r := NewReporter()

		path, err := r.Write(dir, sampleBatch(dir))

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "index.html"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "run-42")
	})

	t.Run("keeps an existing index.html", func(t *testing.T) {
		dir := t.TempDir()
		existing := filepath.Join(dir, "index.html")
		require.NoError(t, os.WriteFile(existing, []byte("mine"), 0644))
		r := NewReporter()

		path, err := r.Write(dir, sampleBatch(dir))

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "index_1.html"), path)
		data, _ := os.ReadFile(existing)
		assert.Equal(t, "mine", string(data))
	})

	t.Run("missing directory", func(t *testing.T) {
		r := NewReporter()

		_, err := r.Write(filepath.Join(t.TempDir(), "missing"), sampleBatch("/out"))

		assert.Error(t, err)
	})
}
