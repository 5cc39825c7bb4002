package config

import "time"

const (
	envPort            = "PORT"
	envDataBaseURL     = "LEAGUE_DATA_BASE_URL"
	envManifestPath    = "LEAGUE_MANIFEST_PATH"
	envLineupFloorYear = "LEAGUE_LINEUP_FLOOR_YEAR"
	envFetchRetries    = "FETCH_RETRIES"
	envFetchRetryDelay = "FETCH_RETRY_DELAY"
	envFetchTimeout    = "FETCH_TIMEOUT"
	envSeasonTTL       = "SEASON_CACHE_TTL"
	envProviderTTL     = "PROVIDER_CACHE_TTL"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort         = "4000"
	defaultManifestPath = "data/manifest.json"
	// Seasons are pre-generated and immutable once published; cache entries
	// live for the process lifetime and only roll over on a manifest change.
	defaultSeasonTTL = 0 * time.Second
	// Short-lived provider extras (trade evals, player metrics) refresh hourly.
	defaultProviderTTL     = time.Hour
	defaultFetchRetries    = 3
	defaultFetchRetryDelay = 500 * time.Millisecond
	defaultFetchTimeout    = 15 * time.Second
	// First season with per-week lineup exports from the upstream generator.
	defaultLineupFloorYear = 2020
	defaultMetricsPort     = "9090"
)
