package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, slog.LevelInfo, FormatJSON))

	logger.Error("boom", "error", errors.New("disk full"), "user_id", "alice")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "disk full", record["err"])
	assert.NotContains(t, record, "error")
	assert.Equal(t, "alice", record["user_id"])
}

func TestHandler_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, slog.LevelWarn, FormatText))

	logger.Info("hidden")
	logger.Warn("shown", "node_id", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "node_id=3")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}
