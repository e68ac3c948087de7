package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, int(slog.LevelInfo), FormatText)

	l.Debug("hidden")
	l.Info("Server: started", "address", ":5000")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="Server: started"`)
	assert.Contains(t, out, "address=:5000")
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, int(slog.LevelDebug), FormatJSON).With("component", "test")

	l.Debug("Server: debug line", "n", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "Server: debug line", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "test", rec["component"])
	assert.EqualValues(t, 1, rec["n"])
}
