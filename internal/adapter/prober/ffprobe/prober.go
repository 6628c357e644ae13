package ffprobe

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/lastframes/internal/domain"
	"github.com/bnema/lastframes/internal/infrastructure/execx"
	"github.com/bnema/lastframes/internal/infrastructure/logger"
	"github.com/bnema/lastframes/internal/port"
)

type Prober struct {
	bin    string
	runner execx.Runner
}

func NewProber(bin string, runner execx.Runner) *Prober {
	if bin == "" {
		bin = "ffprobe"
	}
	if runner == nil {
		runner = execx.Exec{}
	}
	return &Prober{bin: bin, runner: runner}
}

// Probe counts the decoded frames of the first video stream and reads its
// frame rate. A stream with zero frames is reported as domain.ErrNoFrames.
func (p *Prober) Probe(ctx context.Context, videoPath string) (domain.VideoMetadata, error) {
	if err := validatePath(videoPath); err != nil {
		return domain.VideoMetadata{}, &domain.ProbeError{Path: videoPath, Op: "invalid input path", Err: err}
	}

	out, err := p.run(ctx, videoPath, "-count_frames", "-show_entries", "stream=nb_read_frames")
	if err != nil {
		return domain.VideoMetadata{}, &domain.ProbeError{Path: videoPath, Op: "frame count", Err: err}
	}
	frames, err := domain.ParseFrameCount(out)
	if err != nil {
		return domain.VideoMetadata{}, &domain.ProbeError{Path: videoPath, Op: "frame count", Err: err}
	}
	if frames == 0 {
		return domain.VideoMetadata{}, &domain.ProbeError{Path: videoPath, Err: domain.ErrNoFrames}
	}

	out, err = p.run(ctx, videoPath, "-show_entries", "stream=r_frame_rate")
	if err != nil {
		return domain.VideoMetadata{}, &domain.ProbeError{Path: videoPath, Op: "frame rate", Err: err}
	}
	fps, err := domain.ParseFrameRate(out)
	if err != nil {
		return domain.VideoMetadata{}, &domain.ProbeError{Path: videoPath, Op: "frame rate", Err: err}
	}

	logger.Debug.Printf("probed %s: frames=%d fps=%.3f", logger.SanitizeForLog(videoPath), frames, fps)
	return domain.VideoMetadata{TotalFrames: frames, FrameRate: fps}, nil
}

func (p *Prober) run(ctx context.Context, videoPath string, entries ...string) (string, error) {
	args := []string{"-v", "quiet", "-select_streams", "v:0"}
	args = append(args, entries...)
	args = append(args, "-of", "csv=p=0", videoPath)

	res, err := p.runner.Run(ctx, p.bin, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(res.Stderr)); msg != "" {
			return "", fmt.Errorf("%s failed: %w: %s", p.bin, err, msg)
		}
		return "", fmt.Errorf("%s failed: %w", p.bin, err)
	}
	return string(res.Stdout), nil
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

var _ port.VideoProber = (*Prober)(nil)
