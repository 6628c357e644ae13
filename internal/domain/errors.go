package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("resource not found")
	ErrNoFrames    = errors.New("no frames")
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains invalid characters")
)

// ValidationError reports a bad command line argument or option value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ProbeError reports a failure to read or parse video metadata.
type ProbeError struct {
	Path string
	Op   string
	Err  error
}

func (e *ProbeError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("probe %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// ExtractionError reports a failed transcoder invocation for one frame.
type ExtractionError struct {
	Path       string
	FrameIndex int
	Output     string
	Err        error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("extract frame %d from %s: %v", e.FrameIndex, e.Path, e.Err)
	if e.Output != "" {
		msg += ", output: " + e.Output
	}
	return msg
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
