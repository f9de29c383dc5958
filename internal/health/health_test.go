package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := Handler(nil)
	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReady(t *testing.T) {
	ok := Handler(pingFunc(func(context.Context) error { return nil }))
	rec := get(t, ok, "/ready")
	require.Equal(t, http.StatusOK, rec.Code)

	down := Handler(pingFunc(func(context.Context) error { return errors.New("conn refused") }))
	rec = get(t, down, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
