package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/lastframes/internal/domain"
	"github.com/bnema/lastframes/internal/infrastructure/execx"
	"github.com/bnema/lastframes/internal/port"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

func init() {
	ffmpeg.LogCompiledCommand = false
}

type Extractor struct {
	bin    string
	runner execx.Runner
}

func NewExtractor(bin string, runner execx.Runner) *Extractor {
	if bin == "" {
		bin = "ffmpeg"
	}
	if runner == nil {
		runner = execx.Exec{}
	}
	return &Extractor{bin: bin, runner: runner}
}

// Extract decodes the frame at the 0-based frameIndex of videoPath and writes
// it as a single image to outputPath. The image format follows the extension.
func (e *Extractor) Extract(ctx context.Context, videoPath string, frameIndex int, outputPath string) error {
	if err := validatePath(videoPath); err != nil {
		return &domain.ExtractionError{Path: videoPath, FrameIndex: frameIndex, Err: fmt.Errorf("invalid input path: %w", err)}
	}
	if err := validatePath(outputPath); err != nil {
		return &domain.ExtractionError{Path: videoPath, FrameIndex: frameIndex, Err: fmt.Errorf("invalid output path: %w", err)}
	}
	if frameIndex < 0 {
		return &domain.ExtractionError{Path: videoPath, FrameIndex: frameIndex, Err: fmt.Errorf("negative frame index")}
	}

	res, err := e.runner.Run(ctx, e.bin, frameArgs(videoPath, frameIndex, outputPath)...)
	if err != nil {
		return &domain.ExtractionError{
			Path:       videoPath,
			FrameIndex: frameIndex,
			Output:     lastLines(res.CombinedOutput(), 5),
			Err:        fmt.Errorf("%s failed: %w", e.bin, err),
		}
	}

	if _, err := os.Stat(outputPath); err != nil {
		return &domain.ExtractionError{
			Path:       videoPath,
			FrameIndex: frameIndex,
			Err:        fmt.Errorf("%s produced no image: %w", e.bin, err),
		}
	}
	return nil
}

// frameArgs selects exactly one frame by decode order and encodes it at the
// highest quality the image codec offers.
func frameArgs(videoPath string, frameIndex int, outputPath string) []string {
	return ffmpeg.Input(videoPath).
		Filter("select", ffmpeg.Args{fmt.Sprintf("eq(n,%d)", frameIndex)}).
		Output(outputPath, ffmpeg.KwArgs{
			"frames:v": 1,
			"q:v":      1,
		}).
		GlobalArgs("-hide_banner", "-loglevel", "error").
		OverWriteOutput().
		GetArgs()
}

func validatePath(path string) error {
	if path == "" {
		return domain.ErrEmptyPath
	}
	if strings.ContainsRune(path, 0) {
		return domain.ErrInvalidPath
	}
	return nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

var _ port.FrameExtractor = (*Extractor)(nil)
