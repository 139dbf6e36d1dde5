package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/policy-extract/internal/extract"
	"github.com/sells-group/policy-extract/internal/registry"
	"github.com/sells-group/policy-extract/internal/store"
)

func newTestEnv(t *testing.T) *engineEnv {
	t.Helper()

	fields := registry.Production()
	engine, err := extract.New(fields, extract.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))

	return &engineEnv{Engine: engine, Store: st, Fields: fields}
}

func newTestMux(t *testing.T, limit rate.Limit, burst int) *http.ServeMux {
	t.Helper()
	return newServeMux(newTestEnv(t), rate.NewLimiter(limit, burst))
}

func TestServeMux_HealthEndpoint(t *testing.T) {
	mux := newTestMux(t, rate.Inf, 1)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestServeMux_Extract(t *testing.T) {
	mux := newTestMux(t, rate.Inf, 1)

	payload := map[string]string{
		"text":     "Policy Number: ABC123/2024/001\nTotal Premium: Rs. 17,500.00",
		"filename": "certificate.txt",
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		ID         string `json:"id"`
		Extraction struct {
			Filename string `json:"filename"`
			Quality  struct {
				FoundFields int `json:"found_fields"`
			} `json:"quality"`
		} `json:"extraction"`
	}
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "certificate.txt", resp.Extraction.Filename)
	assert.GreaterOrEqual(t, resp.Extraction.Quality.FoundFields, 2)
}

func TestServeMux_Extract_InvalidBody(t *testing.T) {
	mux := newTestMux(t, rate.Inf, 1)

	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader([]byte("not json")))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestServeMux_Extract_RateLimited(t *testing.T) {
	// Zero-rate limiter rejects every request.
	mux := newTestMux(t, 0, 0)

	body, _ := json.Marshal(map[string]string{"text": "x"})
	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestServeMux_ListExtractions(t *testing.T) {
	env := newTestEnv(t)
	mux := newServeMux(env, rate.NewLimiter(rate.Inf, 1))

	doc := env.Engine.Extract("Policy Number: ABC123/2024/001", "a.txt")
	_, err := env.Store.SaveExtraction(context.Background(), doc)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/extractions", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var records []store.Record
	err = json.Unmarshal(rr.Body.Bytes(), &records)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a.txt", records[0].Filename)
}
