package reports_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/molekadoces/dashboard_backend/appctx"
	"github.com/molekadoces/dashboard_backend/config"
	"github.com/molekadoces/dashboard_backend/models"
	"github.com/molekadoces/dashboard_backend/models/reports"
)

func loadCacheSettings(t *testing.T, enabled string) {
	t.Helper()
	t.Setenv("ENABLE_REPORT_CACHE", enabled)
	if _, err := config.LoadSettings(); err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	t.Cleanup(func() {
		// Leave the global settings with the cache off so other tests in the
		// package see the default behavior. t.Setenv restores the env after.
		os.Setenv("ENABLE_REPORT_CACHE", "0")
		config.LoadSettings()
	})
}

func TestCacheKeyDiscriminates(t *testing.T) {
	start := time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC)
	f := &models.FilterState{StartDate: &start}

	base := reports.CacheKey(1, f, "sales-over-time", "month")
	if base == reports.CacheKey(2, f, "sales-over-time", "month") {
		t.Error("dataset version not in key")
	}
	if base == reports.CacheKey(1, f, "sales-over-time", "week") {
		t.Error("params not in key")
	}
	if base == reports.CacheKey(1, &models.FilterState{}, "sales-over-time", "month") {
		t.Error("filter state not in key")
	}
	if base != reports.CacheKey(1, f, "sales-over-time", "month") {
		t.Error("key not stable for identical inputs")
	}
}

func TestCachedMemoizes(t *testing.T) {
	loadCacheSettings(t, "1")

	calls := 0
	compute := func() int {
		calls++
		return 42
	}

	key := reports.CacheKey(time.Now().UnixNano(), &models.FilterState{}, "memoize-test")
	if got := reports.Cached(key, compute); got != 42 {
		t.Fatalf("first call = %d", got)
	}
	if got := reports.Cached(key, compute); got != 42 {
		t.Fatalf("second call = %d", got)
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

func TestLogSlowReportCarriesCorrelationId(t *testing.T) {
	logger := config.GetLogger()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stdout)

	ctx := appctx.Set(context.Background(), appctx.ContextKeyCorrelationId, "cid-slow-test")
	reports.LogSlowReport(ctx, "kpis", time.Now().Add(-time.Minute), nil)

	if !strings.Contains(buf.String(), "cid-slow-test") {
		t.Fatalf("slow-report line missing correlation id: %q", buf.String())
	}

	// Under the threshold nothing is logged at all.
	buf.Reset()
	reports.LogSlowReport(ctx, "kpis", time.Now(), nil)
	if buf.Len() != 0 {
		t.Fatalf("fast report logged: %q", buf.String())
	}
}

func TestCachedDisabledAlwaysComputes(t *testing.T) {
	loadCacheSettings(t, "0")

	calls := 0
	key := reports.CacheKey(time.Now().UnixNano(), &models.FilterState{}, "disabled-test")
	reports.Cached(key, func() int { calls++; return 1 })
	reports.Cached(key, func() int { calls++; return 1 })
	if calls != 2 {
		t.Errorf("compute ran %d times with cache disabled, want 2", calls)
	}
}
