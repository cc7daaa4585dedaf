package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_RejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "   ")
	require.Error(t, err)
}

func TestConnectOrFallback_WithoutDSN(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	db, cleanup := ConnectOrFallback(context.Background(), "", logger)
	assert.Nil(t, db)
	assert.NotPanics(t, cleanup)
	assert.Contains(t, buf.String(), "POSTGRES_DSN not set")
}

func TestClose_NilDB(t *testing.T) {
	assert.NoError(t, Close(nil))
}
