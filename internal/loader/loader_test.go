package loader

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"

	"league-history-service/internal/cache"
	"league-history-service/internal/domain"
	"league-history-service/internal/fetch"
	"league-history-service/internal/manifest"
	"league-history-service/internal/schema"
)

// routeTransport serves canned JSON bodies by request path and counts hits.
type routeTransport struct {
	mu     sync.Mutex
	routes map[string]string
	hits   map[string]int
}

func newRouteTransport(routes map[string]string) *routeTransport {
	return &routeTransport{routes: routes, hits: make(map[string]int)}
}

func (rt *routeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.mu.Lock()
	rt.hits[req.URL.Path]++
	body, ok := rt.routes[req.URL.Path]
	rt.mu.Unlock()

	if !ok {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"error":"not found"}`)),
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func (rt *routeTransport) hitCount(path string) int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.hits[path]
}

const manifestBody = `{
	"years": [2023, 2024],
	"generatedAt": "rev-1",
	"paths": {"season": "data/{year}.json", "trades": "data/trades/{year}.json"}
}`

const season2023 = `{
	"year": 2023,
	"teams": [{"team_name": "Dynasty", "owner": "Pat"}],
	"matchups": [{"week": 1, "home_team": "Dynasty", "home_score": 100, "away_team": "Legacy", "away_score": 90}]
}`

const season2024 = `{
	"year": 2024,
	"teams": [{"team_name": "Legacy", "owner": "Sam"}],
	"matchups": []
}`

func newTestService(t *testing.T, rt *routeTransport) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := fetch.NewClient(fetch.Config{
		BaseURL:    "https://data.example.test",
		HTTPClient: &http.Client{Transport: rt},
		Logger:     logger,
	})
	c := cache.New(nil)
	return New(Config{
		Client:   client,
		Resolver: manifest.NewResolver(client, c, logger, "data/manifest.json"),
		Cache:    c,
		Logger:   logger,
		Schema:   schema.Config{LineupFloorYear: 2020},
	})
}

func TestSeasonLoadsAndNormalizes(t *testing.T) {
	rt := newRouteTransport(map[string]string{
		"/data/manifest.json": manifestBody,
		"/data/2023.json":     season2023,
	})
	svc := newTestService(t, rt)

	rec, err := svc.Season(context.Background(), 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Year != 2023 {
		t.Fatalf("unexpected year %d", rec.Year)
	}
	if len(rec.Teams) != 1 || rec.Teams[0].TeamName != "Dynasty" {
		t.Fatalf("unexpected teams %+v", rec.Teams)
	}
	if len(rec.Matchups) != 1 || rec.Matchups[0].HomeScore == nil || *rec.Matchups[0].HomeScore != 100 {
		t.Fatalf("unexpected matchups %+v", rec.Matchups)
	}
}

func TestSeasonCachedByIdentity(t *testing.T) {
	rt := newRouteTransport(map[string]string{
		"/data/manifest.json": manifestBody,
		"/data/2023.json":     season2023,
	})
	svc := newTestService(t, rt)

	first, err := svc.Season(context.Background(), 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Season(context.Background(), 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected the cached record pointer on the second load")
	}
	if got := rt.hitCount("/data/2023.json"); got != 1 {
		t.Fatalf("expected 1 season fetch, got %d", got)
	}
}

func TestManifestRevisionDropsSupersededSeasons(t *testing.T) {
	rt := newRouteTransport(map[string]string{
		"/data/manifest.json": manifestBody,
		"/data/2023.json":     season2023,
	})
	svc := newTestService(t, rt)
	ctx := context.Background()

	// A season set cached under an earlier manifest revision. Its key never
	// matches again, so without eviction it would sit in the map for the
	// process lifetime.
	_, _ = svc.cache.GetOrSet(ctx, "season:2023:rev-0", 0, func(ctx context.Context) (any, error) {
		return &domain.SeasonRecord{Year: 2023}, nil
	})

	if _, err := svc.Season(ctx, 2023); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Manifest entry plus the current revision's season; the rev-0 entry
	// must be gone.
	if got := svc.cache.Len(); got != 2 {
		t.Fatalf("expected superseded season to be dropped, cache has %d entries", got)
	}
}

func TestSeasonUnknownYear(t *testing.T) {
	rt := newRouteTransport(map[string]string{
		"/data/manifest.json": manifestBody,
	})
	svc := newTestService(t, rt)

	if _, err := svc.Season(context.Background(), 1999); !errors.Is(err, ErrUnknownSeason) {
		t.Fatalf("expected ErrUnknownSeason, got %v", err)
	}
}

func TestSeasonsPreservesOrder(t *testing.T) {
	rt := newRouteTransport(map[string]string{
		"/data/manifest.json": manifestBody,
		"/data/2023.json":     season2023,
		"/data/2024.json":     season2024,
	})
	svc := newTestService(t, rt)

	records, err := svc.Seasons(context.Background(), 2024, 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || records[0].Year != 2024 || records[1].Year != 2023 {
		t.Fatalf("expected [2024 2023], got %+v", records)
	}
}

func TestSeasonsFailsOnUnknownYear(t *testing.T) {
	rt := newRouteTransport(map[string]string{
		"/data/manifest.json": manifestBody,
		"/data/2023.json":     season2023,
	})
	svc := newTestService(t, rt)

	if _, err := svc.Seasons(context.Background(), 2023, 1999); !errors.Is(err, ErrUnknownSeason) {
		t.Fatalf("expected ErrUnknownSeason, got %v", err)
	}
}

func TestAllSeasons(t *testing.T) {
	rt := newRouteTransport(map[string]string{
		"/data/manifest.json": manifestBody,
		"/data/2023.json":     season2023,
		"/data/2024.json":     season2024,
	})
	svc := newTestService(t, rt)

	records, err := svc.AllSeasons(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || records[0].Year != 2023 || records[1].Year != 2024 {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestYears(t *testing.T) {
	rt := newRouteTransport(map[string]string{
		"/data/manifest.json": manifestBody,
	})
	svc := newTestService(t, rt)

	resp, err := svc.Years(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Years) != 2 || resp.GeneratedAt != "rev-1" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSeasonAttachesTradesSupplement(t *testing.T) {
	rt := newRouteTransport(map[string]string{
		"/data/manifest.json":    manifestBody,
		"/data/2023.json":        season2023,
		"/data/trades/2023.json": `[{"id": "t1", "date": "2023-10-01"}]`,
	})
	svc := newTestService(t, rt)

	rec, err := svc.Season(context.Background(), 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	trades, ok := rec.Supplemental["trades"].([]any)
	if !ok || len(trades) != 1 {
		t.Fatalf("expected attached trades list, got %+v", rec.Supplemental)
	}
}

func TestSeasonEmbeddedSupplementWins(t *testing.T) {
	embedded := `{
		"year": 2023,
		"teams": [{"team_name": "Dynasty"}],
		"matchups": [],
		"trades": [{"id": "embedded"}]
	}`
	rt := newRouteTransport(map[string]string{
		"/data/manifest.json":    manifestBody,
		"/data/2023.json":        embedded,
		"/data/trades/2023.json": `[{"id": "fetched"}]`,
	})
	svc := newTestService(t, rt)

	rec, err := svc.Season(context.Background(), 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	trades := rec.Supplemental["trades"].([]any)
	entry := trades[0].(map[string]any)
	if entry["id"] != "embedded" {
		t.Fatalf("expected embedded trades to win, got %+v", entry)
	}
	if got := rt.hitCount("/data/trades/2023.json"); got != 0 {
		t.Fatalf("expected no fetch for embedded supplement, got %d", got)
	}
}

func TestSeasonMissingSupplementIsNotFatal(t *testing.T) {
	rt := newRouteTransport(map[string]string{
		"/data/manifest.json": manifestBody,
		"/data/2023.json":     season2023,
	})
	svc := newTestService(t, rt)

	rec, err := svc.Season(context.Background(), 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := rec.Supplemental["trades"]; ok {
		t.Fatal("expected no trades supplement")
	}
}
