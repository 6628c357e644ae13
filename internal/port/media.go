package port

import (
	"context"

	"github.com/bnema/lastframes/internal/domain"
)

type VideoProber interface {
	Probe(ctx context.Context, videoPath string) (domain.VideoMetadata, error)
}

type FrameExtractor interface {
	Extract(ctx context.Context, videoPath string, frameIndex int, outputPath string) error
}
