package html

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/lastframes/internal/domain"
	"github.com/bnema/lastframes/internal/infrastructure/fsx"
	"github.com/bnema/lastframes/internal/port"
)

const reportName = "index.html"

// Reporter writes a contact sheet of the frames extracted in a run.
type Reporter struct {
	now func() time.Time
}

func NewReporter() *Reporter {
	return &Reporter{now: time.Now}
}

// Write renders the sheet into outputDir and returns its path. An existing
// index.html is never overwritten; a numbered name is picked instead.
func (r *Reporter) Write(outputDir string, batch domain.BatchResult) (string, error) {
	path, err := fsx.ResolveUniquePath(filepath.Join(outputDir, reportName))
	if err != nil {
		return "", fmt.Errorf("resolve report path: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}

	if err := ContactSheet(outputDir, batch, r.now()).Render(context.Background(), f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}

// summary is the one-line header of the sheet.
func summary(batch domain.BatchResult, generated time.Time) string {
	return fmt.Sprintf("%d videos, %d frames, %d failed. Generated %s.",
		len(batch.Videos), batch.FrameCount(), batch.Failed(), generated.UTC().Format(time.RFC3339))
}

func relativeURL(baseDir, path string) string {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		rel = path
	}
	u := url.URL{Path: filepath.ToSlash(rel)}
	return u.String()
}

var _ port.Reporter = (*Reporter)(nil)
