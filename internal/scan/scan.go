package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// VideoExtensions lists the extensions Discover accepts. Matching is
// case-sensitive: "clip.MP4" is not picked up.
var VideoExtensions = []string{".mp4", ".mov", ".mkv", ".avi", ".webm", ".m4v"}

// Discover lists the video files directly inside dir, sorted by name.
// Subdirectories are not descended into.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read video directory: %w", err)
	}

	videos := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !isVideoExt(filepath.Ext(entry.Name())) {
			continue
		}
		videos = append(videos, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(videos)
	return videos, nil
}

func isVideoExt(ext string) bool {
	for _, v := range VideoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}
