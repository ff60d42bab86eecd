package adminserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dbkit/pagepool/pkg/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	name := filepath.Join(t.TempDir(), "admin.pagefile")
	require.NoError(t, storage.CreatePageFile(name))
	pf, err := storage.OpenPageFile(name)
	require.NoError(t, err)
	pool, err := storage.Init(pf, 4, storage.LRU, nil)
	require.NoError(t, err)

	return New(DefaultConfig(), pool, nil)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, err := s.pool.PinPage(0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload statsPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, 4, payload.Capacity)
	require.Equal(t, 1, payload.ReadIO)
	require.Equal(t, "LRU", payload.Strategy)
}

func TestFramesEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, err := s.pool.PinPage(0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/frames", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var payload []framePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload, 4)
	require.Equal(t, 0, payload[0].PageNumber)
	require.Equal(t, 1, payload[0].PinCount)
}
