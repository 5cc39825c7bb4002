package metrics

import (
	"sync"
	"time"
)

type resourceStats struct {
	fetches         int
	errors          int
	cacheHits       int
	cacheMisses     int
	lastFetchLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about fetch and cache activity.
// It is intentionally simple so it can be swapped for a real backend later.
type Recorder struct {
	mu       sync.Mutex
	stats    map[string]*resourceStats
	requests map[string]int
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:    make(map[string]*resourceStats),
		requests: make(map[string]int),
		otel:     otel,
	}
}

// RecordFetch increments counters for an upstream fetch and stores the last observed latency.
func (r *Recorder) RecordFetch(resource string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(resource)
	stats.fetches++
	stats.lastFetchLatency = duration
	if err != nil {
		stats.errors++
	}
	if r.otel != nil {
		r.otel.recordFetch(resource, duration, err)
	}
}

// RecordCacheLookup tracks a cache hit or miss for a resource class.
func (r *Recorder) RecordCacheLookup(resource string, hit bool) {
	if r == nil {
		return
	}

	stats := r.ensureStats(resource)
	if hit {
		stats.cacheHits++
	} else {
		stats.cacheMisses++
	}
	if r.otel != nil {
		r.otel.recordCacheLookup(resource, hit)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics per normalized path.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.requests[path]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// HTTPRequests returns the request count recorded for a normalized path.
func (r *Recorder) HTTPRequests(path string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[path]
}

// Fetches returns the total fetch attempts recorded for a resource.
func (r *Recorder) Fetches(resource string) int {
	return r.Snapshot(resource).Fetches
}

// FetchErrors returns the total failed fetches recorded for a resource.
func (r *Recorder) FetchErrors(resource string) int {
	return r.Snapshot(resource).Errors
}

// CacheHits returns the cache hits recorded for a resource.
func (r *Recorder) CacheHits(resource string) int {
	return r.Snapshot(resource).CacheHits
}

// CacheMisses returns the cache misses recorded for a resource.
func (r *Recorder) CacheMisses(resource string) int {
	return r.Snapshot(resource).CacheMisses
}

// Snapshot is a copy of the current stats for one resource class.
type Snapshot struct {
	Fetches          int
	Errors           int
	CacheHits        int
	CacheMisses      int
	LastFetchLatency time.Duration
}

func (r *Recorder) Snapshot(resource string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(resource)
	return Snapshot{
		Fetches:          stats.fetches,
		Errors:           stats.errors,
		CacheHits:        stats.cacheHits,
		CacheMisses:      stats.cacheMisses,
		LastFetchLatency: stats.lastFetchLatency,
	}
}

func (r *Recorder) ensureStats(resource string) *resourceStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[resource]
	if !ok {
		stats = &resourceStats{}
		r.stats[resource] = stats
	}
	return stats
}

func (r *Recorder) snapshot(resource string) resourceStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[resource]; ok && stats != nil {
		return *stats
	}
	return resourceStats{}
}
