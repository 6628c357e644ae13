package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/lastframes/internal/domain"
	"github.com/bnema/lastframes/internal/infrastructure/fsx"
	"github.com/bnema/lastframes/internal/infrastructure/logger"
	"github.com/bnema/lastframes/internal/port"
)

type Options struct {
	// OutputDir receives the images. Empty means next to each video.
	OutputDir string
	Format    domain.ImageFormat
	// RunID tags history records. Generated when empty.
	RunID string
	// BufferSeconds moves the selection back from the end of each video,
	// converted to frames with the probed frame rate.
	BufferSeconds float64
}

// ExtractionService pulls the last frames out of videos, one video and one
// frame at a time.
type ExtractionService struct {
	prober    port.VideoProber
	extractor port.FrameExtractor
	history   port.HistoryStore
	observer  port.Observer
	outputDir string
	format    domain.ImageFormat
	runID     string
	buffer    float64
	now       func() time.Time
}

// NewExtractionService wires the service. history may be nil to skip recording.
func NewExtractionService(prober port.VideoProber, extractor port.FrameExtractor, history port.HistoryStore, opts Options) *ExtractionService {
	if opts.Format == "" {
		opts.Format = domain.FormatPNG
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	return &ExtractionService{
		prober:    prober,
		extractor: extractor,
		history:   history,
		outputDir: opts.OutputDir,
		format:    opts.Format,
		runID:     opts.RunID,
		buffer:    opts.BufferSeconds,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *ExtractionService) SetObserver(o port.Observer) {
	s.observer = o
}

func (s *ExtractionService) RunID() string {
	return s.runID
}

// ProcessVideo probes videoPath and extracts its last requested frames in
// ascending index order. The first failing frame ends the video; frames
// already written are kept and reported.
func (s *ExtractionService) ProcessVideo(ctx context.Context, videoPath string, requested int) domain.VideoResult {
	result := domain.VideoResult{VideoPath: videoPath}
	name := logger.SanitizeForLog(videoPath)

	defer func() {
		if result.Err != nil {
			logger.Error.Printf("%s: %v", name, result.Err)
		}
		if s.observer != nil {
			s.observer.VideoFinished(result)
		}
	}()

	if requested < 1 {
		result.Err = &domain.ValidationError{Field: "frames", Message: "must be at least 1"}
		return result
	}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	meta, err := s.prober.Probe(ctx, videoPath)
	if err != nil {
		result.Err = err
		return result
	}
	result.Metadata = meta

	bufferFrames := domain.BufferFrames(meta.FrameRate, s.buffer)
	plan, clamped := domain.PlanWithBuffer(meta.TotalFrames, requested, bufferFrames)
	if len(plan) == 0 {
		result.Err = &domain.ProbeError{Path: videoPath, Err: domain.ErrNoFrames}
		return result
	}
	result.Plan = plan
	result.Clamped = clamped
	if bufferFrames > 0 {
		logger.Debug.Printf("%s: buffer of %gs is %d frames", name, s.buffer, bufferFrames)
	}
	if clamped {
		logger.Warn.Printf("%s: requested %d frames but only %d are available, extracting all of them", name, requested, len(plan))
	}

	logger.Info.Printf("%s: %d frames at %s, extracting frames %d-%d",
		name, meta.TotalFrames, domain.FormatFrameRate(meta.FrameRate), plan[0], plan[len(plan)-1])
	if s.observer != nil {
		s.observer.VideoStarted(videoPath, meta, plan)
	}

	dir := s.outputDir
	if dir == "" {
		dir = filepath.Dir(videoPath)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		result.Err = fmt.Errorf("create output directory: %w", err)
		return result
	}

	base := domain.VideoBaseName(videoPath)
	for _, index := range plan {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return result
		}

		frame, err := s.extractFrame(ctx, videoPath, dir, base, index)
		if err != nil {
			result.Err = err
			return result
		}
		result.Frames = append(result.Frames, frame)
		if s.observer != nil {
			s.observer.FrameExtracted(videoPath, frame)
		}
	}

	return result
}

func (s *ExtractionService) extractFrame(ctx context.Context, videoPath, dir, base string, index int) (domain.ExtractedFrame, error) {
	outputPath, err := fsx.ResolveUniquePath(filepath.Join(dir, domain.FrameFileName(base, index, s.format)))
	if err != nil {
		return domain.ExtractedFrame{}, fmt.Errorf("resolve output path: %w", err)
	}

	if err := s.extractor.Extract(ctx, videoPath, index, outputPath); err != nil {
		return domain.ExtractedFrame{}, err
	}

	frame := domain.ExtractedFrame{
		RunID:      s.runID,
		VideoPath:  videoPath,
		FrameIndex: index,
		OutputPath: outputPath,
		Format:     string(s.format),
		CreatedAt:  s.now(),
	}

	sum, size, err := fsx.Checksum(outputPath)
	if err != nil {
		logger.Warn.Printf("checksum %s: %v", logger.SanitizeForLog(outputPath), err)
	} else {
		frame.Checksum = sum
		frame.FileSize = size
	}

	if s.history != nil {
		if err := s.history.Record(&frame); err != nil {
			logger.Warn.Printf("record frame %d of %s: %v", index, logger.SanitizeForLog(videoPath), err)
		}
	}

	logger.Debug.Printf("frame %d -> %s", index, logger.SanitizeForLog(outputPath))
	return frame, nil
}

// ProcessBatch handles videos strictly in order. A failing video is logged and
// recorded in the result; the remaining videos are still processed. Only
// cancellation of ctx stops the batch early.
func (s *ExtractionService) ProcessBatch(ctx context.Context, videos []string, requested int) domain.BatchResult {
	batch := domain.BatchResult{RunID: s.runID}

	for i, v := range videos {
		if ctx.Err() != nil {
			logger.Warn.Printf("interrupted, %d of %d videos not processed", len(videos)-i, len(videos))
			break
		}
		batch.Videos = append(batch.Videos, s.ProcessVideo(ctx, v, requested))
	}

	logger.Info.Printf("run %s: %d videos ok, %d failed, %d frames written",
		s.runID, batch.Succeeded(), batch.Failed(), batch.FrameCount())
	return batch
}
