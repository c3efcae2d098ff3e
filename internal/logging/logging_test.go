package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ppiankov/policylens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(model.LogConfig{Level: "info", Format: "json"}, false, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("section summarized", zap.String("section", "coverage"))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "section summarized", entry["msg"])
	assert.Equal(t, "coverage", entry["section"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewWithWriter_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(model.LogConfig{Level: "error", Format: "console"}, true, &buf)
	require.NoError(t, err)

	logger.Debug("cache hit")
	require.NoError(t, logger.Sync())

	assert.Contains(t, buf.String(), "cache hit")
	assert.Contains(t, buf.String(), "DEBUG")
}

func TestNewWithWriter_InvalidConfig(t *testing.T) {
	var buf bytes.Buffer

	_, err := NewWithWriter(model.LogConfig{Format: "xml"}, false, &buf)
	assert.Error(t, err)

	_, err = NewWithWriter(model.LogConfig{Level: "loud"}, false, &buf)
	assert.Error(t, err)
}
