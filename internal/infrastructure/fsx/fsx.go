package fsx

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// maxSuffix bounds ResolveUniquePath so a pathological directory cannot spin forever.
const maxSuffix = 100000

// statFunc is swapped out in tests.
var statFunc = os.Lstat

// ResolveUniquePath returns candidate when nothing exists there, otherwise the
// first free "<base>_<n><ext>" for n = 1, 2, ...
//
// This is check-then-act and only safe with a single writer to the directory.
func ResolveUniquePath(candidate string) (string, error) {
	free, err := isFree(candidate)
	if err != nil {
		return "", err
	}
	if free {
		return candidate, nil
	}

	ext := filepath.Ext(candidate)
	base := strings.TrimSuffix(candidate, ext)
	for n := 1; n <= maxSuffix; n++ {
		p := fmt.Sprintf("%s_%d%s", base, n, ext)
		free, err := isFree(p)
		if err != nil {
			return "", err
		}
		if free {
			return p, nil
		}
	}
	return "", fmt.Errorf("no free name for %s after %d attempts", candidate, maxSuffix)
}

func isFree(p string) (bool, error) {
	_, err := statFunc(p)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	return false, fmt.Errorf("stat %s: %w", p, err)
}

// Checksum returns the hex BLAKE2b-256 digest and size of the file at path.
func Checksum(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = f.Close() }()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// WriteFileAtomic writes data to path through a temp file in the same directory.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
