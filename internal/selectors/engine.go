// Package selectors derives UI-consumable view models from canonical season
// records. Every selector is a pure function of its inputs, memoized per
// input identity: a season record is immutable once loaded, so its pointer
// is the cache key, and a refetched season recomputes naturally.
package selectors

import (
	"fmt"
	"strings"

	"league-history-service/internal/cache"
	"league-history-service/internal/domain"
)

// Engine holds the per-derivation memo caches. Construct one per process;
// tests build fresh instances for isolation.
type Engine struct {
	standings *cache.Memo
	kpis      *cache.Memo
	matchups  *cache.Memo
	rivalries *cache.Memo
	trades    *cache.Memo
	awards    *cache.Memo
	profiles  *cache.Memo
}

// NewEngine constructs an Engine with default memo capacities.
func NewEngine() *Engine {
	return &Engine{
		standings: cache.NewMemo(0),
		kpis:      cache.NewMemo(0),
		matchups:  cache.NewMemo(0),
		rivalries: cache.NewMemo(0),
		trades:    cache.NewMemo(0),
		awards:    cache.NewMemo(0),
		profiles:  cache.NewMemo(0),
	}
}

// profileKey builds an identity-based memo key for multi-season selectors:
// the normalized player key plus every season record's pointer.
func profileKey(playerKey string, seasons []*domain.SeasonRecord) string {
	var b strings.Builder
	b.WriteString(playerKey)
	for _, s := range seasons {
		fmt.Fprintf(&b, "|%p", s)
	}
	return b.String()
}

// profileEntry pairs a memoized profile with the season records it was
// derived from. Retaining the pointers keeps those records live for the
// entry's lifetime, so an address in the key cannot be recycled into a
// different record while the entry can still be hit; matches guards the
// identity on every hit regardless.
type profileEntry struct {
	seasons []*domain.SeasonRecord
	profile *domain.PlayerProfile
}

func (p *profileEntry) matches(seasons []*domain.SeasonRecord) bool {
	if len(p.seasons) != len(seasons) {
		return false
	}
	for i := range seasons {
		if p.seasons[i] != seasons[i] {
			return false
		}
	}
	return true
}
