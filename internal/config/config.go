package config

// Config holds runtime configuration for the server.
type Config struct {
	Port    string
	Data    DataConfig
	Fetch   FetchConfig
	Cache   CacheConfig
	Metrics MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:    envOrDefault(envPort, defaultPort),
		Data:    loadData(),
		Fetch:   loadFetch(),
		Cache:   loadCache(),
		Metrics: loadMetrics(),
	}
}
