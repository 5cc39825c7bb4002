package config

import "time"

// DataConfig locates the pre-generated league data and its manifest.
type DataConfig struct {
	BaseURL         string
	ManifestPath    string
	LineupFloorYear int
}

// FetchConfig controls retry behavior for upstream fetches.
type FetchConfig struct {
	Retries    int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// CacheConfig controls TTLs for the shared cache.
type CacheConfig struct {
	SeasonTTL   time.Duration
	ProviderTTL time.Duration
}

func loadData() DataConfig {
	return DataConfig{
		BaseURL:         envOrDefault(envDataBaseURL, ""),
		ManifestPath:    envOrDefault(envManifestPath, defaultManifestPath),
		LineupFloorYear: intEnvOrDefault(envLineupFloorYear, defaultLineupFloorYear),
	}
}

func loadFetch() FetchConfig {
	return FetchConfig{
		Retries:    intEnvOrDefault(envFetchRetries, defaultFetchRetries),
		RetryDelay: durationEnvOrDefault(envFetchRetryDelay, defaultFetchRetryDelay),
		Timeout:    durationEnvOrDefault(envFetchTimeout, defaultFetchTimeout),
	}
}

func loadCache() CacheConfig {
	return CacheConfig{
		SeasonTTL:   durationEnvOrDefault(envSeasonTTL, defaultSeasonTTL),
		ProviderTTL: durationEnvOrDefault(envProviderTTL, defaultProviderTTL),
	}
}
