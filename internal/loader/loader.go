// Package loader orchestrates the read path: manifest resolution, document
// fetch, normalization, and structural validation, with every season cached
// behind the shared singleflight cache.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"league-history-service/internal/cache"
	"league-history-service/internal/domain"
	"league-history-service/internal/fetch"
	"league-history-service/internal/logging"
	"league-history-service/internal/manifest"
	"league-history-service/internal/normalize"
	"league-history-service/internal/schema"
)

// ErrUnknownSeason indicates a requested year the manifest does not list.
var ErrUnknownSeason = errors.New("unknown season")

// seasonConcurrency bounds the multi-season fan-out so a cold cache does not
// hammer the data host.
const seasonConcurrency = 4

// seasonKeyPrefix namespaces season entries in the shared cache so a manifest
// revision can drop the superseded set wholesale.
const seasonKeyPrefix = "season:"

// Supplemental documents attached to each season when present. The season
// document itself may embed them; fetched copies never overwrite embedded
// ones.
var seasonSupplements = []struct {
	key         string
	manifestKey string
	perYear     bool
}{
	{key: "trades", manifestKey: manifest.KeyTrades, perYear: true},
	{key: "trade_evals", manifestKey: manifest.KeyTradeEvals, perYear: true},
	{key: "player_index", manifestKey: manifest.KeyPlayerIndex},
	{key: "current_roster", manifestKey: manifest.KeyCurrentRoster},
}

// Config wires a Service.
type Config struct {
	Client    *fetch.Client
	Resolver  *manifest.Resolver
	Cache     *cache.Cache
	Logger    *slog.Logger
	Schema    schema.Config
	SeasonTTL time.Duration
}

// Service loads canonical season records. Records are immutable once
// loaded; a manifest revision changes the cache key and refetches.
type Service struct {
	client    *fetch.Client
	resolver  *manifest.Resolver
	cache     *cache.Cache
	logger    *slog.Logger
	schemaCfg schema.Config
	seasonTTL time.Duration

	tokenMu     sync.Mutex
	seasonToken string
}

// New constructs a Service from its wired dependencies.
func New(cfg Config) *Service {
	return &Service{
		client:    cfg.Client,
		resolver:  cfg.Resolver,
		cache:     cfg.Cache,
		logger:    cfg.Logger,
		schemaCfg: cfg.Schema,
		seasonTTL: cfg.SeasonTTL,
	}
}

// Manifest returns the session manifest.
func (s *Service) Manifest(ctx context.Context) (*manifest.Manifest, error) {
	return s.resolver.Load(ctx)
}

// Years lists the seasons available from the manifest.
func (s *Service) Years(ctx context.Context) (domain.SeasonsResponse, error) {
	m, err := s.resolver.Load(ctx)
	if err != nil {
		return domain.SeasonsResponse{}, err
	}
	return domain.SeasonsResponse{
		Years:         m.Years,
		SchemaVersion: m.SchemaVersion,
		GeneratedAt:   m.GeneratedAt,
	}, nil
}

// Season loads one canonical season record. Concurrent callers for the same
// year share a single fetch; the cached record is returned by pointer and
// must not be mutated.
func (s *Service) Season(ctx context.Context, year int) (*domain.SeasonRecord, error) {
	m, err := s.resolver.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !m.HasYear(year) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeason, year)
	}

	s.trackToken(m.VersionToken())

	key := fmt.Sprintf("%s%d:%s", seasonKeyPrefix, year, m.VersionToken())
	return cache.GetOrSet(ctx, s.cache, key, s.seasonTTL, func(ctx context.Context) (*domain.SeasonRecord, error) {
		return s.loadSeason(ctx, year)
	})
}

// trackToken drops the cached season set when the manifest's version token
// changes. Season keys embed the token, so without the drop a revision would
// strand the previous set in the cache until process exit.
func (s *Service) trackToken(token string) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()
	if s.seasonToken == token {
		return
	}
	if dropped := s.cache.DropPrefix(seasonKeyPrefix); dropped > 0 {
		logging.Info(s.logger, "dropped superseded seasons",
			logging.FieldCount, dropped,
		)
	}
	s.seasonToken = token
}

// Seasons loads multiple years concurrently, preserving input order. The
// first failure cancels the remaining fetches.
func (s *Service) Seasons(ctx context.Context, years ...int) ([]*domain.SeasonRecord, error) {
	records := make([]*domain.SeasonRecord, len(years))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(seasonConcurrency)
	for i, year := range years {
		i, year := i, year
		g.Go(func() error {
			rec, err := s.Season(ctx, year)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// AllSeasons loads every season the manifest lists, oldest first.
func (s *Service) AllSeasons(ctx context.Context) ([]*domain.SeasonRecord, error) {
	m, err := s.resolver.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.Seasons(ctx, m.Years...)
}

func (s *Service) loadSeason(ctx context.Context, year int) (*domain.SeasonRecord, error) {
	yearParam := map[string]string{"year": fmt.Sprintf("%d", year)}

	path, err := s.resolver.PathFor(ctx, manifest.KeySeason, yearParam, true)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := s.client.Get(ctx, path, fetch.Options{Resource: "season"})
	if err != nil {
		return nil, fmt.Errorf("load season %d: %w", year, err)
	}

	doc, err := normalize.ParseObject(body)
	if err != nil {
		return nil, fmt.Errorf("parse season %d: %w", year, err)
	}

	rec := normalize.Season(doc)
	if rec.Year == 0 {
		rec.Year = year
	}

	s.attachSupplements(ctx, rec, yearParam)
	schema.Validate(doc, rec, s.schemaCfg, s.logger)

	logging.Info(s.logger, "season loaded",
		logging.FieldYear, rec.Year,
		logging.FieldCount, len(rec.Teams),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return rec, nil
}

// attachSupplements fetches the season's optional auxiliary documents. Every
// supplement is best-effort: missing files and fetch failures leave the
// record usable.
func (s *Service) attachSupplements(ctx context.Context, rec *domain.SeasonRecord, yearParam map[string]string) {
	for _, sup := range seasonSupplements {
		if rec.Supplemental != nil {
			if _, embedded := rec.Supplemental[sup.key]; embedded {
				continue
			}
		}

		params := map[string]string(nil)
		if sup.perYear {
			params = yearParam
		}
		path, err := s.resolver.PathFor(ctx, sup.manifestKey, params, false)
		if err != nil || path == "" {
			continue
		}

		body, err := s.client.Get(ctx, path, fetch.Options{Optional: true, Resource: sup.key})
		if err != nil || body == nil {
			continue
		}
		parsed, err := normalize.Parse(body)
		if err != nil {
			logging.Warn(s.logger, "supplement is not valid JSON",
				logging.FieldResource, sup.key,
				logging.FieldYear, rec.Year,
			)
			continue
		}
		value := normalize.Plain(parsed)

		// Some supplement files wrap their payload under a key matching the
		// resource name; unwrap so consumers see one shape.
		if doc, ok := value.(map[string]any); ok {
			if inner, wrapped := doc[sup.key]; wrapped && len(doc) <= 2 {
				value = inner
			}
		}

		if rec.Supplemental == nil {
			rec.Supplemental = make(domain.Supplemental)
		}
		rec.Supplemental[sup.key] = value
	}
}
