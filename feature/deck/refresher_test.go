package deck

import (
	"context"
	"testing"
	"time"

	"card-manager/core/card"
	"card-manager/core/event"
	"card-manager/core/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRefresher_RefreshOnce(t *testing.T) {
	ctx := context.Background()
	src := source.NewMapSource()
	src.Set("AAPL", card.TypePrice, event.Payload{"price": 150})
	svc := newTestService(Config{}, src, nil)

	_, _, err := svc.Add(ctx, "AAPL", card.TypePrice, "")
	require.NoError(t, err)
	_, _, err = svc.Add(ctx, "GONE", card.TypePrice, "")
	require.NoError(t, err)

	r := NewRefresher(svc, src, Config{RefreshIntervalSeconds: 60, RefreshPerSecond: 1000}, zap.NewNop())

	changed, err := r.RefreshOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, changed, "unchanged backend data is a no-op")

	src.Set("AAPL", card.TypePrice, event.Payload{"price": 155})
	changed, err = r.RefreshOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, "155.00", svc.Cards()[0].Data.Headline())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = r.RefreshOnce(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRefresher_Run(t *testing.T) {
	svc := newTestService(Config{}, nil, nil)

	disabled := NewRefresher(svc, source.NewMapSource(), Config{}, nil)
	assert.NoError(t, disabled.Run(context.Background()))

	r := NewRefresher(svc, source.NewMapSource(), Config{RefreshIntervalSeconds: 1}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Run(ctx), context.DeadlineExceeded)
}
