package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"card-manager/core/card"
	"card-manager/core/event"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when the backend has no data for a (symbol, type) pair.
var ErrNotFound = errors.New("no data for symbol")

// Source fetches the current payload for a symbol and card type.
type Source interface {
	Fetch(ctx context.Context, symbol string, t card.Type) (event.Payload, error)
}

// MapSource serves payloads from memory. It is safe for concurrent use.
type MapSource struct {
	mu   sync.RWMutex
	data map[card.Key]event.Payload
}

// NewMapSource creates an empty MapSource.
func NewMapSource() *MapSource {
	return &MapSource{data: make(map[card.Key]event.Payload)}
}

// Set stores the payload returned for (symbol, t).
func (s *MapSource) Set(symbol string, t card.Type, p event.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[card.Key{Symbol: card.NormalizeSymbol(symbol), Type: t}] = p.Clone()
}

// Fetch implements Source.
func (s *MapSource) Fetch(ctx context.Context, symbol string, t card.Type) (event.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data[card.Key{Symbol: card.NormalizeSymbol(symbol), Type: t}]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", card.NormalizeSymbol(symbol), t, ErrNotFound)
	}
	return p.Clone(), nil
}

// LoadFixtures reads a YAML document of the form
//
//	AAPL:
//	  price:
//	    price: 150.25
//	    changePercent: 1.2
//
// into a MapSource. Unknown card types are rejected.
func LoadFixtures(path string) (*MapSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	var doc map[string]map[string]map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}

	s := NewMapSource()
	for symbol, byType := range doc {
		for typ, payload := range byType {
			t := card.Type(strings.ToLower(typ))
			if !t.Valid() {
				return nil, fmt.Errorf("fixtures %s: %w", symbol, &card.UnknownTypeError{Type: t})
			}
			s.Set(symbol, t, payload)
		}
	}
	return s, nil
}
