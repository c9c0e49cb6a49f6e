package source

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"card-manager/core/card"
	"card-manager/core/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (s *countingSource) Fetch(ctx context.Context, symbol string, t card.Type) (event.Payload, error) {
	s.calls.Add(1)
	time.Sleep(s.delay)
	if s.err != nil {
		return nil, s.err
	}
	return event.Payload{"symbol": symbol, "n": int(s.calls.Load())}, nil
}

func TestCachedSource_ServesFreshEntries(t *testing.T) {
	next := &countingSource{}
	src := NewCachedSource(next, func(card.Type) time.Duration { return time.Minute })
	now := time.Unix(1_700_000_000, 0)
	src.now = func() time.Time { return now }

	first, err := src.Fetch(context.Background(), "aapl", card.TypePrice)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", first["symbol"])

	first["n"] = 99
	second, err := src.Fetch(context.Background(), "AAPL", card.TypePrice)
	require.NoError(t, err)
	assert.Equal(t, 1, second["n"], "cached payloads are copies")
	assert.Equal(t, int32(1), next.calls.Load())

	now = now.Add(2 * time.Minute)
	_, err = src.Fetch(context.Background(), "AAPL", card.TypePrice)
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.calls.Load(), "expired entries are refetched")

	src.Invalidate("aapl", card.TypePrice)
	_, err = src.Fetch(context.Background(), "AAPL", card.TypePrice)
	require.NoError(t, err)
	assert.Equal(t, int32(3), next.calls.Load())
}

func TestCachedSource_ZeroTTLDisablesCaching(t *testing.T) {
	next := &countingSource{}
	src := NewCachedSource(next, nil)

	for i := 0; i < 3; i++ {
		_, err := src.Fetch(context.Background(), "AAPL", card.TypePrice)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), next.calls.Load())
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	next := &countingSource{err: ErrNotFound}
	src := NewCachedSource(next, DefaultFreshness)

	_, err := src.Fetch(context.Background(), "ZZZZ", card.TypeGrades)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = src.Fetch(context.Background(), "ZZZZ", card.TypeGrades)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestCachedSource_CollapsesConcurrentMisses(t *testing.T) {
	next := &countingSource{delay: 50 * time.Millisecond}
	src := NewCachedSource(next, DefaultFreshness)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := src.Fetch(context.Background(), "MSFT", card.TypeRevenue)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), next.calls.Load())
}

func TestDefaultFreshness(t *testing.T) {
	for _, typ := range card.AllTypes() {
		assert.Positive(t, DefaultFreshness(typ), typ)
	}
	assert.Zero(t, DefaultFreshness("weather"))
}
