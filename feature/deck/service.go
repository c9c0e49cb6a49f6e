package deck

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"card-manager/core/card"
	"card-manager/core/event"
	"card-manager/core/reconcile"
	"card-manager/core/snapshot"
	"card-manager/core/source"
	"card-manager/feature/cards"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrCardNotFound is returned when no card has the requested id.
	ErrCardNotFound = errors.New("card not found")
	// ErrSymbolLimit is returned when a new card would exceed the tier's symbol limit.
	ErrSymbolLimit = errors.New("symbol limit reached")
	// ErrInvalidSymbol is returned for blank symbols.
	ErrInvalidSymbol = errors.New("invalid symbol")
)

// Service owns the ordered card collection of one workspace.
// Every mutation runs to completion under the service lock.
type Service struct {
	engine *reconcile.Engine
	src    source.Source
	store  snapshot.Store
	cfg    Config
	logger *zap.Logger
	inbox  *Inbox
	now    func() time.Time

	inflight singleflight.Group

	mu    sync.Mutex
	cards []card.Card
}

// NewService creates a deck service. src and store may be nil, in which case cards
// cannot be added on request and changes are not persisted.
func NewService(engine *reconcile.Engine, src source.Source, store snapshot.Store, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		engine: engine,
		src:    src,
		store:  store,
		cfg:    cfg,
		logger: logger.With(zap.String("workspace", cfg.Workspace)),
		inbox:  NewInbox(cfg.NotificationLimit),
		now:    time.Now,
	}
}

// Engine returns the reconciliation engine of the deck.
func (s *Service) Engine() *reconcile.Engine {
	return s.engine
}

// Load replaces the collection with the stored snapshot of the workspace.
func (s *Service) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	records, err := s.store.Load(ctx, s.cfg.Workspace)
	if err != nil {
		return fmt.Errorf("failed to load workspace %s: %w", s.cfg.Workspace, err)
	}
	loaded := s.engine.RehydrateAll(records)

	s.mu.Lock()
	s.cards = loaded
	s.mu.Unlock()

	s.logger.Info("Workspace loaded",
		zap.Int("records", len(records)),
		zap.Int("cards", len(loaded)))
	return nil
}

// Cards returns a copy of the collection in display order.
func (s *Service) Cards() []card.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]card.Card{}, s.cards...)
}

// Tracked returns the slot of every card in display order.
func (s *Service) Tracked() []card.Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]card.Key, 0, len(s.cards))
	for _, c := range s.cards {
		keys = append(keys, c.Key())
	}
	return keys
}

// Symbols returns the distinct tracked symbols in display order.
func (s *Service) Symbols() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reconcile.Symbols(s.cards)
}

// Notifications returns the notification inbox, oldest first.
func (s *Service) Notifications() []Notification {
	return s.inbox.List()
}

// ClearNotifications empties the inbox.
func (s *Service) ClearNotifications() int {
	return s.inbox.Clear()
}

// allowsSymbol reports whether cards may gain a card for symbol under the tier limit.
func (s *Service) allowsSymbol(cards []card.Card, symbol string) bool {
	limit := s.cfg.SymbolLimit()
	if limit <= 0 {
		return true
	}
	symbols := reconcile.Symbols(cards)
	for _, sym := range symbols {
		if sym == symbol {
			return true
		}
	}
	return len(symbols) < limit
}

// Handle applies an external event. Only fetch events may create cards, and only
// within the tier's symbol limit.
func (s *Service) Handle(ctx context.Context, ev event.Event) (reconcile.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var create reconcile.CreatorFunc
	if ev.Reason == event.ReasonFetch {
		if s.allowsSymbol(s.cards, card.NormalizeSymbol(ev.Symbol)) {
			create = cards.Create
		} else {
			s.logger.Info("Symbol limit reached, fetch will not create cards",
				zap.String("symbol", ev.Symbol),
				zap.String("tier", s.cfg.Tier))
		}
	}

	out, err := s.engine.Apply(s.cards, ev, create)
	if err != nil {
		return out, err
	}
	if !out.Changed {
		return out, nil
	}

	s.cards = out.Cards
	now := s.now()
	for _, res := range out.Results {
		s.notify(notificationsFor(res, ev.Reason, now)...)
	}
	s.persist(ctx)
	return out, nil
}

// Add creates the card for (symbol, t) on user request. The existing card is returned
// with created false when the slot is already taken. Concurrent requests for the same
// slot share one initializer run.
func (s *Service) Add(ctx context.Context, symbol string, t card.Type, after string) (card.Card, bool, error) {
	symbol = card.NormalizeSymbol(symbol)
	if symbol == "" {
		return card.Card{}, false, ErrInvalidSymbol
	}
	if _, ok := s.engine.Registry().Lookup(t); !ok {
		return card.Card{}, false, &card.UnknownTypeError{Type: t}
	}
	key := card.Key{Symbol: symbol, Type: t}

	if c, ok, err := s.precheck(key); ok || err != nil {
		return c, false, err
	}

	// The shared run outlives any single caller; each caller stops waiting on its own ctx.
	ch := s.inflight.DoChan(key.String(), func() (any, error) {
		return s.engine.Initialize(context.WithoutCancel(ctx), key, s.src)
	})
	var r singleflight.Result
	select {
	case <-ctx.Done():
		return card.Card{}, false, ctx.Err()
	case r = <-ch:
	}
	if r.Err != nil {
		s.logger.Warn("Card initialization failed", zap.String("key", key.String()), zap.Error(r.Err))
		return card.Card{}, false, r.Err
	}
	fresh := r.Val.(reconcile.Initialized)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.allowsSymbol(s.cards, symbol) {
		return card.Card{}, false, ErrSymbolLimit
	}
	var opts []reconcile.Option
	if after != "" {
		opts = append(opts, reconcile.After(after))
	}
	res := s.engine.Adopt(s.cards, fresh.Card, opts...)
	if !res.Created {
		if res.Card == nil {
			return card.Card{}, false, fmt.Errorf("failed to add %s", key)
		}
		return *res.Card, false, nil
	}

	s.cards = res.Cards
	if fresh.Empty {
		s.notify(Notification{
			Kind:    KindNoData,
			CardID:  res.Card.ID,
			Symbol:  symbol,
			Type:    t,
			Rarity:  res.Card.Rarity,
			Message: fmt.Sprintf("No %s data available for %s yet", t, symbol),
			At:      s.now(),
		})
	}
	s.persist(ctx)
	return *res.Card, true, nil
}

func (s *Service) precheck(key card.Key) (card.Card, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := reconcile.IndexOf(s.cards, key); idx >= 0 {
		return s.cards[idx], true, nil
	}
	if !s.allowsSymbol(s.cards, key.Symbol) {
		return card.Card{}, false, ErrSymbolLimit
	}
	return card.Card{}, false, nil
}

// Delete removes the card with id.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, ok := reconcile.Remove(s.cards, id)
	if !ok {
		return ErrCardNotFound
	}
	s.cards = out
	s.persist(ctx)
	return nil
}

// Clear removes every card and returns how many were removed.
func (s *Service) Clear(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.cards)
	if n == 0 {
		return 0
	}
	s.cards = nil
	s.persist(ctx)
	return n
}

// Move places the card with id at index, clamped to the collection bounds.
func (s *Service) Move(ctx context.Context, id string, index int) ([]card.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, ok := reconcile.Move(s.cards, id, index)
	if !ok {
		return nil, ErrCardNotFound
	}
	s.cards = out
	s.persist(ctx)
	return append([]card.Card{}, out...), nil
}

// Flip turns the card with id over.
func (s *Service) Flip(ctx context.Context, id string) (card.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := reconcile.FindByID(s.cards, id)
	if idx < 0 {
		return card.Card{}, ErrCardNotFound
	}
	out := append([]card.Card{}, s.cards...)
	out[idx].Flipped = !out[idx].Flipped
	s.cards = out
	s.persist(ctx)
	return out[idx], nil
}

func (s *Service) notify(ns ...Notification) {
	for _, n := range ns {
		s.logger.Info("Card notification",
			zap.String("kind", string(n.Kind)),
			zap.String("symbol", n.Symbol),
			zap.String("type", string(n.Type)),
			zap.String("message", n.Message))
	}
	s.inbox.Push(ns...)
}

// persist writes the collection back to the store. Callers hold s.mu.
// Failures are logged; the in-memory collection stays authoritative.
func (s *Service) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.cfg.Workspace, s.cards); err != nil {
		s.logger.Error("Failed to persist workspace", zap.Error(err))
	}
}
