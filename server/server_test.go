package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Sanandrew123/AICommerce/config"
	"github.com/Sanandrew123/AICommerce/dataset"
	"github.com/Sanandrew123/AICommerce/engine"
	"github.com/Sanandrew123/AICommerce/store"
)

func buildSampleEngine(t *testing.T) *engine.Engine {
	t.Helper()
	snap := dataset.Sample()
	eng, err := engine.Build(snap.Products, snap.Events)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return eng
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cache := store.NewMemoryStore()
	t.Cleanup(func() { _ = cache.Close() })
	return New(zap.NewNop(), cache, engine.NewProvider(buildSampleEngine(t)),
		config.Default().Cache, nil)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "ok" {
		t.Errorf("status = %q", body["status"])
	}
}

func TestPopularEndpointAndCache(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recommendations/popular?limit=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body)
	}
	first := decodeResponse(t, rec)
	if !first.Success || first.Cached {
		t.Errorf("first hit: success=%v cached=%v", first.Success, first.Cached)
	}
	if len(first.Recommendations) != 2 {
		t.Fatalf("len = %d, want 2", len(first.Recommendations))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recommendations/popular?limit=2", nil))
	second := decodeResponse(t, rec)
	if !second.Cached {
		t.Error("second hit must come from cache")
	}
	ja, _ := json.Marshal(first.Recommendations)
	jb, _ := json.Marshal(second.Recommendations)
	if string(ja) != string(jb) {
		t.Error("cached payload differs from computed payload")
	}
}

func TestSimilarUnknownProduct(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recommendations/similar/99999", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, unknown product is empty, not an error", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success || len(resp.Recommendations) != 0 {
		t.Errorf("success=%v len=%d", resp.Success, len(resp.Recommendations))
	}
}

func TestSimilarBadProductID(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recommendations/similar/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", rec.Code)
	}
}

func TestUserEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/recommendations/user/1?limit=3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success || resp.Strategy != "hybrid" {
		t.Errorf("success=%v strategy=%q", resp.Success, resp.Strategy)
	}
	if len(resp.Recommendations) == 0 {
		t.Error("expected recommendations")
	}
}

func TestUserEndpointCollaborativeDegrades(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/recommendations/user/99999?strategy=collaborative", nil))

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("body = %s", rec.Body)
	}
	if !resp.Degraded {
		t.Error("unknown user on collaborative must report degraded")
	}
}

func TestContextEndpoint(t *testing.T) {
	srv := newTestServer(t)
	body := `{"user_id": 1, "context": {"current_product_id": 1}, "limit": 3}`
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/recommendations/context", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success || resp.Strategy != "hybrid" {
		t.Errorf("success=%v strategy=%q", resp.Success, resp.Strategy)
	}
}

func TestContextEndpointBadBody(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/recommendations/context", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", rec.Code)
	}
}

func TestEngineNotReady(t *testing.T) {
	srv := New(zap.NewNop(), nil, engine.NewProvider(nil), config.Default().Cache, nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recommendations/popular", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("code = %d, want 503", rec.Code)
	}
}

func TestRebuild(t *testing.T) {
	eng := buildSampleEngine(t)
	provider := engine.NewProvider(nil)
	srv := New(zap.NewNop(), nil, provider, config.Default().Cache,
		func(context.Context) (*engine.Engine, error) { return eng, nil })

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recommendations/rebuild", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body)
	}
	if provider.Current() != eng {
		t.Error("rebuild must swap in the new engine")
	}
}

func TestRebuildFailureKeepsOldEngine(t *testing.T) {
	eng := buildSampleEngine(t)
	provider := engine.NewProvider(eng)
	srv := New(zap.NewNop(), nil, provider, config.Default().Cache,
		func(context.Context) (*engine.Engine, error) { return nil, errors.New("snapshot unavailable") })

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recommendations/rebuild", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", rec.Code)
	}
	if provider.Current() != eng {
		t.Error("failed rebuild must keep the old engine serving")
	}
	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("failed rebuild must not report success")
	}
}

func TestRebuildNotConfigured(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recommendations/rebuild", nil))
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("code = %d, want 501", rec.Code)
	}
}
