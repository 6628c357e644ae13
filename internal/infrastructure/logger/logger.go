package logger

import (
	"io"
	"log"
	"os"
)

var (
	Info  *log.Logger
	Error *log.Logger
	Debug *log.Logger
	Warn  *log.Logger
)

const logFlags = log.Ldate | log.Ltime | log.LUTC | log.Lshortfile

func init() {
	// stdout carries command results, so logs go to stderr.
	Info = log.New(os.Stderr, "INFO: ", logFlags)
	Error = log.New(os.Stderr, "ERROR: ", logFlags)
	Debug = log.New(io.Discard, "DEBUG: ", logFlags)
	Warn = log.New(os.Stderr, "WARN: ", logFlags)
}

// SetOutput redirects Info, Warn and Error to w. Debug follows only when
// debug is true and is discarded otherwise.
func SetOutput(w io.Writer, debug bool) {
	Info.SetOutput(w)
	Warn.SetOutput(w)
	Error.SetOutput(w)
	if debug {
		Debug.SetOutput(w)
	} else {
		Debug.SetOutput(io.Discard)
	}
}
