package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rana718/Tasksim/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps the configured level name onto slog. Unknown names log
// at INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR", "CRITICAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a text logger writing to stderr and, when enabled, to a
// rotated log file. The returned closer releases the file.
func New(cfg config.Logging, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	var out io.Writer = stderr
	var closer io.Closer = nopCloser{}

	if cfg.ToFile && cfg.FilePath != "" {
		if dir := filepath.Dir(cfg.FilePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, nil, err
			}
		}
		file := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		out = io.MultiWriter(stderr, file)
		closer = file
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: ParseLevel(cfg.Level)})
	return slog.New(handler), closer, nil
}

// Setup installs the logger as the process default.
func Setup(cfg config.Logging) (io.Closer, error) {
	log, closer, err := New(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(log)
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
