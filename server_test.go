package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/molekadoces/dashboard_backend/config"
	"github.com/molekadoces/dashboard_backend/ingestion"
	"github.com/molekadoces/dashboard_backend/utils"
)

func testRouter(t *testing.T) (*gin.Engine, *datasetHolder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	settings := &config.Settings{
		Port:                  "8080",
		WorkbookPath:          "unused.xlsx",
		CorsOrigins:           []string{"http://localhost:5173"},
		ReportCacheTTLSeconds: 120,
		ReportSlowMs:          500,
	}
	holder := &datasetHolder{}
	return newRouter(settings, holder), holder
}

func do(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReadinessGate(t *testing.T) {
	r, holder := testRouter(t)

	w := do(r, http.MethodGet, "/api/filters", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("before load: status %d, want 503", w.Code)
	}
	if !strings.Contains(w.Body.String(), utils.ErrorDataNotReady.Error()) {
		t.Fatalf("before load: body %q", w.Body.String())
	}

	// Health stays up regardless of load state.
	if w := do(r, http.MethodGet, "/healthz", nil); w.Code != http.StatusNoContent {
		t.Fatalf("/healthz: status %d, want 204", w.Code)
	}

	holder.set(&ingestion.Dataset{}, nil)
	if w := do(r, http.MethodGet, "/api/filters", nil); w.Code != http.StatusOK {
		t.Fatalf("after load: status %d, want 200", w.Code)
	}

	holder.set(nil, errors.New("workbook exploded"))
	w = do(r, http.MethodGet, "/api/filters", nil)
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "workbook exploded") {
		t.Fatalf("after failed load: status %d body %q", w.Code, w.Body.String())
	}
}

func TestCorrelationHeader(t *testing.T) {
	r, holder := testRouter(t)
	holder.set(&ingestion.Dataset{}, nil)

	w := do(r, http.MethodGet, "/api/filters", nil)
	if w.Header().Get("x-correlation-id") == "" {
		t.Fatal("no correlation id generated")
	}

	h := http.Header{}
	h.Set("x-correlation-id", "cid-from-client")
	w = do(r, http.MethodGet, "/api/filters", h)
	if got := w.Header().Get("x-correlation-id"); got != "cid-from-client" {
		t.Fatalf("client correlation id not propagated: %q", got)
	}
}
