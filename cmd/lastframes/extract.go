package main

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bnema/lastframes/internal/domain"
	"github.com/bnema/lastframes/internal/port"
	"github.com/bnema/lastframes/internal/scan"
	"github.com/bnema/lastframes/internal/service"
)

func newService(a *app, ea extractArgs, history port.HistoryStore) *service.ExtractionService {
	return service.NewExtractionService(
		a.newProber(a.cfg),
		a.newExtractor(a.cfg),
		history,
		service.Options{
			OutputDir:     ea.folder,
			Format:        ea.format,
			BufferSeconds: ea.buffer,
		},
	)
}

func discoverVideos(dir string) ([]string, error) {
	videos, err := scan.Discover(dir)
	if err != nil {
		return nil, &domain.ValidationError{Field: "dir", Message: err.Error()}
	}
	return videos, nil
}

// confirm asks a yes/no question on w and reads the answer from r.
// Anything but y or yes, including EOF, counts as no.
func confirm(r io.Reader, w io.Writer, question string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N] ", question)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func displayName(path string) string {
	return filepath.Base(path)
}
