package deck

import (
	"context"
	"errors"
	"time"

	"card-manager/core/event"
	"card-manager/core/source"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Refresher periodically re-fetches every tracked card and feeds the results to the
// deck as fetch events.
type Refresher struct {
	svc      *Service
	src      source.Source
	interval time.Duration
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewRefresher creates a refresher for svc.
func NewRefresher(svc *Service, src source.Source, cfg Config, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	rps := cfg.RefreshPerSecond
	if rps <= 0 {
		rps = 5
	}
	return &Refresher{
		svc:      svc,
		src:      src,
		interval: cfg.RefreshInterval(),
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		logger:   logger.With(zap.String("component", "refresher")),
	}
}

// Run refreshes on every interval until ctx is done. It returns immediately when the
// interval is not positive.
func (r *Refresher) Run(ctx context.Context) error {
	if r.interval <= 0 || r.src == nil {
		r.logger.Info("Background refresh disabled")
		return nil
	}
	r.logger.Info("Background refresh started", zap.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.RefreshOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				r.logger.Warn("Refresh round aborted", zap.Error(err))
			}
		}
	}
}

// RefreshOnce fetches every tracked card once and returns how many events changed the deck.
// Per-card fetch failures are logged and skipped.
func (r *Refresher) RefreshOnce(ctx context.Context) (int, error) {
	changed := 0
	for _, key := range r.svc.Tracked() {
		if err := r.limiter.Wait(ctx); err != nil {
			return changed, err
		}
		p, err := r.src.Fetch(ctx, key.Symbol, key.Type)
		if errors.Is(err, source.ErrNotFound) {
			continue
		}
		if err != nil {
			r.logger.Warn("Refresh fetch failed", zap.String("key", key.String()), zap.Error(err))
			continue
		}
		out, err := r.svc.Handle(ctx, event.Event{
			Symbol:    key.Symbol,
			Type:      key.Type,
			Reason:    event.ReasonFetch,
			Payload:   p,
			Timestamp: time.Now().UnixMilli(),
		})
		if err != nil {
			r.logger.Warn("Refresh event rejected", zap.String("key", key.String()), zap.Error(err))
			continue
		}
		if out.Changed {
			changed++
		}
	}
	r.logger.Debug("Refresh round finished", zap.Int("changed", changed))
	return changed, nil
}
