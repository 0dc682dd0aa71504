package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for the JSON log file.
const (
	defaultMaxSizeMB = 10
	defaultMaxFiles  = 5
)

// Config contains logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// FilePath is the JSON log file. Empty means no file logging.
	FilePath string
	// MaxSizeMB is the maximum size in MB before rotation (default: 10).
	MaxSizeMB int
	// MaxFiles is the number of rotated files kept beside FilePath (default: 5).
	MaxFiles int
	// WriteToStderr adds a text handler on stderr.
	WriteToStderr bool
	// Stderr overrides os.Stderr, for tests.
	Stderr io.Writer
}

// ConsoleConfig logs to stderr only.
func ConsoleConfig(level string) Config {
	return Config{
		Level:         level,
		WriteToStderr: true,
	}
}

// DebugConfig logs debug and above to stderr and the default log file.
func DebugConfig() Config {
	return Config{
		Level:         "debug",
		FilePath:      DefaultLogPath(),
		MaxSizeMB:     defaultMaxSizeMB,
		MaxFiles:      defaultMaxFiles,
		WriteToStderr: true,
	}
}

// MCPConfig logs to the default log file only.
func MCPConfig(level string) Config {
	return Config{
		Level:     level,
		FilePath:  DefaultLogPath(),
		MaxSizeMB: defaultMaxSizeMB,
		MaxFiles:  defaultMaxFiles,
	}
}

// Setup builds a logger for cfg and returns a cleanup function that
// flushes and closes the log file, if any.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	level := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	cleanup := func() {}

	if cfg.FilePath != "" {
		writer, err := newFileWriter(cfg)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewJSONHandler(writer, opts))
		cleanup = func() { _ = writer.Close() }
	}

	if cfg.WriteToStderr {
		var stderr io.Writer = os.Stderr
		if cfg.Stderr != nil {
			stderr = cfg.Stderr
		}
		handlers = append(handlers, slog.NewTextHandler(stderr, opts))
	}

	switch len(handlers) {
	case 0:
		return slog.New(slog.NewTextHandler(io.Discard, opts)), cleanup, nil
	case 1:
		return slog.New(handlers[0]), cleanup, nil
	default:
		return slog.New(slogmulti.Fanout(handlers...)), cleanup, nil
	}
}

// newFileWriter returns a size-rotating writer for cfg.FilePath. Rotated
// files are named with a timestamp; the oldest beyond MaxFiles are removed.
// The directory is created up front so an unwritable location fails Setup
// instead of the first log call.
func newFileWriter(cfg Config) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	maxFiles := cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = defaultMaxFiles
	}

	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    maxSize,
		MaxBackups: maxFiles,
	}, nil
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromString converts string level to slog.Level.
func LevelFromString(level string) slog.Level {
	return parseLevel(level)
}
