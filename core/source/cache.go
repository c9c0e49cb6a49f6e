package source

import (
	"context"
	"sync"
	"time"

	"card-manager/core/card"
	"card-manager/core/event"

	"golang.org/x/sync/singleflight"
)

// cacheEntry is one fetched payload and when it was fetched.
type cacheEntry struct {
	payload event.Payload
	built   time.Time
}

// CachedSource wraps a Source with a per-(symbol, type) TTL cache.
// Concurrent misses for the same slot share one backend fetch.
type CachedSource struct {
	next Source
	ttl  func(t card.Type) time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	entries map[card.Key]cacheEntry
	sf      singleflight.Group
}

// NewCachedSource wraps next. ttl returns the freshness window of a card type;
// a zero window disables caching for that type.
func NewCachedSource(next Source, ttl func(t card.Type) time.Duration) *CachedSource {
	if ttl == nil {
		ttl = func(card.Type) time.Duration { return 0 }
	}
	return &CachedSource{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[card.Key]cacheEntry),
	}
}

func (s *CachedSource) fresh(key card.Key) (event.Payload, bool) {
	window := s.ttl(key.Type)
	if window <= 0 {
		return nil, false
	}
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || s.now().Sub(entry.built) > window {
		return nil, false
	}
	return entry.payload.Clone(), true
}

// Fetch implements Source. Errors, including ErrNotFound, are never cached.
func (s *CachedSource) Fetch(ctx context.Context, symbol string, t card.Type) (event.Payload, error) {
	key := card.Key{Symbol: card.NormalizeSymbol(symbol), Type: t}

	// Fast path
	if p, ok := s.fresh(key); ok {
		return p, nil
	}

	result, err, _ := s.sf.Do(key.String(), func() (any, error) {
		// Double-check, another caller may have just filled it.
		if p, ok := s.fresh(key); ok {
			return p, nil
		}
		p, err := s.next.Fetch(ctx, key.Symbol, key.Type)
		if err != nil {
			return nil, err
		}
		if s.ttl(key.Type) > 0 {
			s.mu.Lock()
			s.entries[key] = cacheEntry{payload: p.Clone(), built: s.now()}
			s.mu.Unlock()
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(event.Payload).Clone(), nil
}

// Invalidate drops the cached payload for (symbol, t).
func (s *CachedSource) Invalidate(symbol string, t card.Type) {
	s.mu.Lock()
	delete(s.entries, card.Key{Symbol: card.NormalizeSymbol(symbol), Type: t})
	s.mu.Unlock()
}

// DefaultFreshness is how long a fetched payload stays current per card type.
// Quotes move during the session; statements and grades change a few times a year.
func DefaultFreshness(t card.Type) time.Duration {
	switch t {
	case card.TypePrice:
		return 10 * time.Second
	case card.TypeProfile:
		return 24 * time.Hour
	case card.TypeRevenue, card.TypeSolvency:
		return 45 * 24 * time.Hour
	case card.TypeDividends, card.TypeGrades:
		return 7 * 24 * time.Hour
	default:
		return 0
	}
}
