package manifest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"league-history-service/internal/cache"
	"league-history-service/internal/fetch"
	"league-history-service/internal/logging"
)

// ErrMissingPath indicates a required path key is absent from the manifest.
// It is a deployment/config error, so callers must not retry it.
var ErrMissingPath = errors.New("missing required manifest path")

// Resource keys resolvable through the manifest.
const (
	KeySeason        = "season"
	KeyTrades        = "trades"
	KeyTradeEvals    = "trade_evals"
	KeyPlayerIndex   = "player_index"
	KeyCurrentRoster = "current_roster"
)

// Fallbacks for manifests generated before path templates were added.
var defaultTemplates = map[string]string{
	KeySeason:        "data/{year}.json",
	KeyTrades:        "data/trades/{year}.json",
	KeyTradeEvals:    "data/trade_evals/{year}.json",
	KeyPlayerIndex:   "data/player_index.json",
	KeyCurrentRoster: "data/current_roster.json",
}

// Resolver loads the root manifest once per session and resolves resource
// keys into concrete paths.
type Resolver struct {
	client       *fetch.Client
	cache        *cache.Cache
	logger       *slog.Logger
	manifestPath string
}

// NewResolver constructs a Resolver. The manifest is fetched lazily on the
// first Load and memoized through the shared cache.
func NewResolver(client *fetch.Client, c *cache.Cache, logger *slog.Logger, manifestPath string) *Resolver {
	return &Resolver{
		client:       client,
		cache:        c,
		logger:       logger,
		manifestPath: manifestPath,
	}
}

// Load fetches the manifest, memoized for the session. The manifest's
// version token is installed on the fetch client as the cache-busting
// parameter for every subsequent request.
func (r *Resolver) Load(ctx context.Context) (*Manifest, error) {
	return cache.GetOrSet(ctx, r.cache, "manifest:"+r.manifestPath, 0, func(ctx context.Context) (*Manifest, error) {
		var m Manifest
		ok, err := r.client.GetJSON(ctx, r.manifestPath, fetch.Options{Resource: "manifest"}, &m)
		if err != nil {
			return nil, fmt.Errorf("load manifest: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("load manifest: empty document at %s", r.manifestPath)
		}
		r.client.SetVersionToken(m.VersionToken())
		logging.Info(r.logger, "manifest loaded",
			logging.FieldCount, len(m.Years),
			"schema_version", m.SchemaVersion,
		)
		return &m, nil
	})
}

// PathFor resolves a resource key into a concrete path. Required keys that
// resolve empty return ErrMissingPath; optional keys resolve to "" and log
// the key for diagnostics.
func (r *Resolver) PathFor(ctx context.Context, key string, params map[string]string, required bool) (string, error) {
	m, err := r.Load(ctx)
	if err != nil {
		return "", err
	}

	template := m.Paths[key]
	if template == "" {
		template = defaultTemplates[key]
	}

	path := ResolvePath(template, params)
	if path == "" {
		if required {
			return "", fmt.Errorf("%w: %s", ErrMissingPath, key)
		}
		logging.Debug(r.logger, "optional manifest path unresolved", logging.FieldResource, key)
		return "", nil
	}
	return path, nil
}
