package metrics

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecorderCountsFetches(t *testing.T) {
	rec := NewRecorder()

	rec.RecordFetch("season", 10*time.Millisecond, nil)
	rec.RecordFetch("season", 20*time.Millisecond, errors.New("boom"))

	if got := rec.Fetches("season"); got != 2 {
		t.Fatalf("expected 2 fetches, got %d", got)
	}
	if got := rec.FetchErrors("season"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.Snapshot("season").LastFetchLatency; got != 20*time.Millisecond {
		t.Fatalf("expected last latency 20ms, got %v", got)
	}
}

func TestRecorderCountsCacheLookups(t *testing.T) {
	rec := NewRecorder()

	rec.RecordCacheLookup("season", true)
	rec.RecordCacheLookup("season", true)
	rec.RecordCacheLookup("season", false)

	if got := rec.CacheHits("season"); got != 2 {
		t.Fatalf("expected 2 hits, got %d", got)
	}
	if got := rec.CacheMisses("season"); got != 1 {
		t.Fatalf("expected 1 miss, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder

	rec.RecordFetch("season", time.Millisecond, nil)
	rec.RecordCacheLookup("season", true)
	rec.RecordHTTPRequest("GET", "/seasons", 200, time.Millisecond)

	if got := rec.Fetches("season"); got != 0 {
		t.Fatalf("expected 0 fetches from nil recorder, got %d", got)
	}
}

func TestSetupDisabledReturnsRecorder(t *testing.T) {
	ctx := context.Background()
	rec, handler, shutdown, err := Setup(ctx, TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatal("expected recorder")
	}
	if handler != nil {
		t.Fatal("expected nil handler when disabled")
	}
	if err := shutdown(ctx); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}
