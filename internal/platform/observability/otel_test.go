package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNewLogger_WritesJSONAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Info("dropped")
	logger.Warn("kept", slog.String("book.isbn", "0123456789"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "0123456789", entry["book.isbn"])
}

func TestInstruments_NilSafe(t *testing.T) {
	var instruments *Instruments
	assert.NotNil(t, instruments.Tracer("test"))
	assert.NotNil(t, instruments.Meter("test"))
}

func TestInit_ReturnsShutdown(t *testing.T) {
	var buf bytes.Buffer
	instruments, shutdown, err := Init(context.Background(), Settings{
		ServiceName:  "recordkeeper-test",
		OTLPEndpoint: "127.0.0.1:4318",
		OTLPInsecure: true,
		LogOutput:    &buf,
	})
	require.NoError(t, err)
	require.NotNil(t, instruments.Logger)
	assert.NotNil(t, instruments.Tracer("test"))
	assert.NoError(t, shutdown(context.Background()))
}
