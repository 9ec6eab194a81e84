// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quote-detection/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{"ERROR", slog.LevelError, false},
		{"WARNING", slog.LevelWarn, false},
		{"warn", slog.LevelWarn, false},
		{"", slog.LevelWarn, false},
		{"INFO", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"TRACE", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewStderr(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(types.LogConfig{Level: "WARNING"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "articleId", "a1")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "articleId=a1")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quotes.log")
	var stderr bytes.Buffer
	logger, closer, err := New(types.LogConfig{Level: "DEBUG", File: path}, &stderr)
	require.NoError(t, err)

	logger.Debug("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Empty(t, stderr.String())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New(types.LogConfig{Level: "LOUD"}, &bytes.Buffer{})
	assert.Error(t, err)
}
