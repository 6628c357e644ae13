package port

import "github.com/bnema/lastframes/internal/domain"

// Observer receives progress notifications from the extraction service.
// Implementations must not block for long; calls happen on the extraction path.
type Observer interface {
	VideoStarted(videoPath string, meta domain.VideoMetadata, plan []int)
	FrameExtracted(videoPath string, frame domain.ExtractedFrame)
	VideoFinished(result domain.VideoResult)
}

type Reporter interface {
	Write(outputDir string, batch domain.BatchResult) (string, error)
}
