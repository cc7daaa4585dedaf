package recordserver

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit_RejectsBeyondBurst(t *testing.T) {
	router := newTestRouter(t, RateLimit(0.001, 2))

	for i := 0; i < 2; i++ {
		rec := do(t, router, http.MethodGet, "/healthz", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, router, http.MethodGet, "/healthz", nil)
	requireProblem(t, rec, http.StatusTooManyRequests)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimit_DisabledWhenNoRate(t *testing.T) {
	router := newTestRouter(t, RateLimit(0, 0))
	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/healthz", nil).Code)
	}
}

func TestRequestLogger_RecordsRoute(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	router := newTestRouter(t, RequestLogger(logger))

	do(t, router, http.MethodGet, "/v1/books/12", nil)
	assert.Contains(t, buf.String(), `"http.route":"/v1/books/:bookId"`)
	assert.Contains(t, buf.String(), `"http.status":404`)
}
