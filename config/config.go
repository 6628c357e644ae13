package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bnema/lastframes/internal/domain"
)

const (
	HistorySQLite = "sqlite"
	HistoryJSON   = "json"
)

type Config struct {
	FFprobeBin       string
	FFmpegBin        string
	Format           domain.ImageFormat
	ConfirmThreshold int
	DataDir          string
	HistoryBackend   string
	Debug            bool
}

func Load() (*Config, error) {
	format, err := domain.ParseImageFormat(getEnv("LASTFRAMES_FORMAT", "png"))
	if err != nil {
		return nil, fmt.Errorf("invalid LASTFRAMES_FORMAT: %w", err)
	}

	threshold, err := strconv.Atoi(getEnv("LASTFRAMES_CONFIRM_THRESHOLD", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid LASTFRAMES_CONFIRM_THRESHOLD: %w", err)
	}
	if threshold < 0 {
		return nil, fmt.Errorf("invalid LASTFRAMES_CONFIRM_THRESHOLD: must not be negative")
	}

	backend := getEnv("LASTFRAMES_HISTORY", HistorySQLite)
	switch backend {
	case HistorySQLite, HistoryJSON:
	default:
		return nil, fmt.Errorf("invalid LASTFRAMES_HISTORY: %q (want %s or %s)", backend, HistorySQLite, HistoryJSON)
	}

	debug, err := strconv.ParseBool(getEnv("LASTFRAMES_DEBUG", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid LASTFRAMES_DEBUG: %w", err)
	}

	return &Config{
		FFprobeBin:       getEnv("FFPROBE_BIN", "ffprobe"),
		FFmpegBin:        getEnv("FFMPEG_BIN", "ffmpeg"),
		Format:           format,
		ConfirmThreshold: threshold,
		DataDir:          getEnv("LASTFRAMES_DATA_DIR", defaultDataDir()),
		HistoryBackend:   backend,
		Debug:            debug,
	}, nil
}

func defaultDataDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".lastframes"
	}
	return filepath.Join(dir, "lastframes")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
