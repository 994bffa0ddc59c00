package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorencia/portal/internal/logger"
)

func runTraceID(t *testing.T, incoming string) *httptest.ResponseRecorder {
	t.Helper()

	h := &Handler{logger: logger.Nop()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotNil(t, logger.FromRequest(r), "child logger must be in the request context")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	if incoming != "" {
		req.Header.Set(traceIDHeader, incoming)
	}

	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, req)
	return rec
}

func TestWithTraceID_ReusesIncomingID(t *testing.T) {
	rec := runTraceID(t, "trace-from-upstream")
	assert.Equal(t, "trace-from-upstream", rec.Header().Get(traceIDHeader))
}

func TestWithTraceID_GeneratesUUIDWhenMissing(t *testing.T) {
	rec := runTraceID(t, "")

	id := rec.Header().Get(traceIDHeader)
	require.NotEmpty(t, id)

	_, err := uuid.Parse(id)
	assert.NoError(t, err, "generated trace id should be a valid UUID, got %q", id)
}

func TestWithTraceID_UniquePerRequest(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		id := runTraceID(t, "").Header().Get(traceIDHeader)
		_, duplicate := seen[id]
		require.False(t, duplicate, "duplicate trace id generated: %s", id)
		seen[id] = struct{}{}
	}
}
