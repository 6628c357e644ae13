package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/bnema/lastframes/internal/domain"
	"github.com/bnema/lastframes/internal/infrastructure/logger"
)

// progressObserver draws one bar per video on an interactive terminal.
type progressObserver struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newProgressObserver(w io.Writer) *progressObserver {
	return &progressObserver{w: w}
}

func (p *progressObserver) VideoStarted(videoPath string, meta domain.VideoMetadata, plan []int) {
	p.bar = progressbar.NewOptions(len(plan),
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(fmt.Sprintf("%s (%s)",
			logger.SanitizeForLog(displayName(videoPath)), domain.FormatFrameRate(meta.FrameRate))),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.w) }),
	)
}

func (p *progressObserver) FrameExtracted(string, domain.ExtractedFrame) {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *progressObserver) VideoFinished(result domain.VideoResult) {
	if p.bar == nil {
		return
	}
	if result.Failed() {
		fmt.Fprintln(p.w)
	} else {
		_ = p.bar.Finish()
	}
	p.bar = nil
}
