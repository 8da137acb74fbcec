package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/molekadoces/dashboard_backend/appctx"
	"github.com/molekadoces/dashboard_backend/config"
	"github.com/molekadoces/dashboard_backend/models"
)

// Opt-in memoization for derived reports. Aggregates are pure functions of
// (dataset version, filter state, report params), so a cache entry is valid
// for as long as the same dataset is loaded; the TTL only bounds memory.
// Keys embed the dataset version, which changes on every load, so stale
// entries can never be served against new data.

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

var (
	cacheMu    sync.RWMutex
	cacheStore = map[string]cacheEntry{}
)

func cacheEnabled() bool {
	s := config.GetSettings()
	return s != nil && s.ReportCacheEnabled
}

func cacheTTL() time.Duration {
	if s := config.GetSettings(); s != nil {
		return time.Duration(s.ReportCacheTTLSeconds) * time.Second
	}
	return 120 * time.Second
}

func slowThreshold() time.Duration {
	if s := config.GetSettings(); s != nil {
		return time.Duration(s.ReportSlowMs) * time.Millisecond
	}
	return 500 * time.Millisecond
}

// CacheKey builds the memoization key from the dataset version, the filter
// fingerprint and the report name/params.
func CacheKey(version int64, f *models.FilterState, name string, params ...string) string {
	fp, _ := json.Marshal(f)
	return fmt.Sprintf("report:%d:%s:%s:%s", version, name, strings.Join(params, ","), fp)
}

// Cached returns the memoized value for key, computing and storing it on a
// miss. With the cache disabled it just computes. Expired entries are
// dropped on every store, so the TTL bounds memory even for keys that are
// never requested again.
func Cached[T any](key string, compute func() T) T {
	if !cacheEnabled() {
		return compute()
	}

	cacheMu.RLock()
	entry, ok := cacheStore[key]
	cacheMu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		if v, ok := entry.value.(T); ok {
			return v
		}
	}

	v := compute()
	cacheMu.Lock()
	purgeExpiredLocked(time.Now())
	cacheStore[key] = cacheEntry{value: v, expiresAt: time.Now().Add(cacheTTL())}
	cacheMu.Unlock()
	return v
}

// purgeExpiredLocked drops every entry past its deadline. Caller holds the
// write lock.
func purgeExpiredLocked(now time.Time) {
	for k, e := range cacheStore {
		if !now.Before(e.expiresAt) {
			delete(cacheStore, k)
		}
	}
}

// LogSlowReport records reports that took longer than the configured
// threshold, for spotting aggregations that would benefit from the cache.
// The request's correlation id is stamped on the line when present.
func LogSlowReport(ctx context.Context, name string, started time.Time, extra map[string]any) {
	d := time.Since(started)
	if d < slowThreshold() {
		return
	}
	fields := logrus.Fields{
		"module": "reports",
		"report": name,
		"ms":     d.Milliseconds(),
		"extra":  extra,
	}
	if cid, ok := appctx.GetString(ctx, appctx.ContextKeyCorrelationId); ok {
		fields["correlationId"] = cid
	}
	config.GetLogger().WithFields(fields).Warn("slow report")
}
