// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the structured logger shared by all commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/lumberjack"

	"github.com/pdiddy/quote-detection/pkg/types"
)

// Levels lists the accepted level names, most severe first.
var Levels = []string{"ERROR", "WARNING", "INFO", "DEBUG"}

// ParseLevel maps a level name to a slog level. WARN is accepted as an
// alias of WARNING and names are case-insensitive.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(name) {
	case "ERROR":
		return slog.LevelError, nil
	case "WARNING", "WARN", "":
		return slog.LevelWarn, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("unknown logging level %q: use one of %s", name, strings.Join(Levels, ", "))
}

// New returns a text logger writing to stderr, or to a rotating file when
// cfg.File is set. The returned closer releases the file.
func New(cfg types.LogConfig, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = stderr
	var closer io.Closer = io.NopCloser(nil)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		fileLogger := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 5),
			MaxAge:     28,
		}
		w, closer = fileLogger, fileLogger
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
