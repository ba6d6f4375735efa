package report

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "centsible_report_cache_requests_total",
	Help: "Number of report cache lookups, partitioned by result.",
}, []string{"result"})

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// reportCache holds computed reports for a short while so that
// repeated dashboard loads do not hit the database every time.
type reportCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

var cache = &reportCache{}

// ConfigureCache sets the lifetime of cached reports and drops
// everything currently cached. A duration of zero or less disables
// caching entirely.
func ConfigureCache(ttl time.Duration) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.ttl = ttl
	cache.entries = make(map[string]cacheEntry)
}

// InvalidateOwner drops all cached reports of one user. Called after
// every write to their transactions or budgets since any of them can
// change any report.
func InvalidateOwner(ownerID uuid.UUID) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	marker := "/" + ownerID.String() + "/"
	for key := range cache.entries {
		if strings.Contains(key, marker) {
			delete(cache.entries, key)
		}
	}
}

func cacheGet[T any](key string) (T, bool) {
	var zero T

	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.ttl <= 0 {
		return zero, false
	}

	entry, ok := cache.entries[key]
	if !ok || now().After(entry.expiresAt) {
		delete(cache.entries, key)
		cacheRequests.WithLabelValues("miss").Inc()
		return zero, false
	}

	value, ok := entry.value.(T)
	if !ok {
		return zero, false
	}

	cacheRequests.WithLabelValues("hit").Inc()
	return value, true
}

func cachePut(key string, value any) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.ttl <= 0 {
		return
	}

	cache.entries[key] = cacheEntry{
		value:     value,
		expiresAt: now().Add(cache.ttl),
	}
}
