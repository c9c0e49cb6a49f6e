package reconcile

import (
	"context"
	"fmt"
	"time"

	"card-manager/core/card"
	"card-manager/core/event"
	"card-manager/core/source"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine applies events to card collections using a registry of type handlers.
// Engine methods never mutate the slice they are given.
type Engine struct {
	registry *Registry
	rarity   RarityFunc
	logger   *zap.Logger
	newID    func() string
	now      func() time.Time
}

// NewEngine creates an engine over reg. A nil logger discards output.
func NewEngine(reg *Registry, rarity RarityFunc, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		registry: reg,
		rarity:   rarity,
		logger:   logger,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Registry returns the registry the engine dispatches through.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Stamp recomputes the rarity of c from its current data.
func (e *Engine) Stamp(c *card.Card) {
	c.Rarity, c.RarityReason = e.rarity(*c)
}

// Reconcile applies payload to the (key.Symbol, key.Type) slot of cards.
//
// An existing card is updated in place when the candidate differs from it; an empty
// slot is only filled when create is non-nil. In every other case the input slice is
// returned with Changed set to false.
func (e *Engine) Reconcile(cards []card.Card, key card.Key, payload event.Payload, update UpdateFunc, create CreatorFunc, opts ...Option) Result {
	res := Result{Cards: cards, Key: key}

	idx := IndexOf(cards, key)
	var (
		current  card.Data
		existing *card.Card
	)
	if idx >= 0 {
		c := cards[idx]
		existing = &c
		current = c.Data
		res.Previous = existing
		res.Card = existing
	}

	cand, ok := e.callUpdate(update, key, current, payload, existing)
	if !ok || cand.Data == nil {
		return res
	}
	if cand.Data.CardType() != key.Type {
		e.logger.Warn("Update handler returned data of another type",
			zap.String("key", key.String()),
			zap.String("got", string(cand.Data.CardType())))
		return res
	}

	if existing != nil {
		next := *existing
		next.Data = cand.Data
		next.Display = next.Display.Merge(cand.Display)
		if cand.Description != "" {
			next.Back.Description = cand.Description
		}
		e.Stamp(&next)

		if card.SameContent(*existing, next) {
			return res
		}

		out := make([]card.Card, len(cards))
		copy(out, cards)
		out[idx] = next
		res.Cards = out
		res.Changed = true
		res.Card = &out[idx]
		return res
	}

	if create == nil {
		return res
	}
	created, err := e.callCreate(create, key, cand)
	if err != nil {
		e.logger.Warn("Card creator failed", zap.String("key", key.String()), zap.Error(err))
		return res
	}
	if created.Data == nil {
		created.Data = cand.Data
	}
	return e.insert(cards, key, created, opts)
}

// Adopt places an initialized card into cards unless its slot is already taken.
// The slot is checked at call time, so late initializer results never duplicate a card.
func (e *Engine) Adopt(cards []card.Card, c card.Card, opts ...Option) Result {
	c.Symbol = card.NormalizeSymbol(c.Symbol)
	key := c.Key()
	if idx := IndexOf(cards, key); idx >= 0 {
		existing := cards[idx]
		return Result{Cards: cards, Key: key, Card: &existing, Previous: &existing}
	}
	if c.Data == nil {
		data, err := card.NewData(c.Type)
		if err != nil {
			return Result{Cards: cards, Key: key}
		}
		c.Data = data
	}
	return e.insert(cards, key, c, opts)
}

func (e *Engine) insert(cards []card.Card, key card.Key, c card.Card, opts []Option) Result {
	res := Result{Cards: cards, Key: key}
	if c.Data == nil || c.Data.CardType() != key.Type {
		e.logger.Warn("Refusing card with mismatched data", zap.String("key", key.String()))
		return res
	}
	// The slot is re-checked here in case it was filled after the caller looked.
	if idx := IndexOf(cards, key); idx >= 0 {
		existing := cards[idx]
		res.Card = &existing
		res.Previous = &existing
		return res
	}

	c.Symbol = key.Symbol
	c.Type = key.Type
	if c.ID == "" || FindByID(cards, c.ID) >= 0 {
		c.ID = e.newID()
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = e.now().UnixMilli()
	}
	e.Stamp(&c)

	o := buildOptions(opts)
	pos := len(cards)
	if o.after != "" {
		if i := FindByID(cards, o.after); i >= 0 {
			pos = i + 1
		}
	}

	out := make([]card.Card, 0, len(cards)+1)
	out = append(out, cards[:pos]...)
	out = append(out, c)
	out = append(out, cards[pos:]...)

	res.Cards = out
	res.Changed = true
	res.Created = true
	res.Card = &out[pos]
	return res
}

// Updater returns the handler for (t, reason), falling back to a display-field merge.
func (e *Engine) Updater(t card.Type, reason event.Reason) UpdateFunc {
	if fn, ok := e.registry.Handler(t, reason); ok {
		return fn
	}
	return mergeDisplay
}

// mergeDisplay applies the common display fields of a payload to an existing card.
func mergeDisplay(current card.Data, payload event.Payload, existing *card.Card) Candidate {
	if existing == nil {
		return Candidate{Data: current}
	}
	return Candidate{Data: current, Display: DisplayFrom(payload)}
}

// Dispatch applies payload to c with the handler for (c.Type, reason) and returns the
// resulting card, which is c itself when nothing changed or no handler applies.
func (e *Engine) Dispatch(c card.Card, reason event.Reason, payload event.Payload) card.Card {
	res := e.Reconcile([]card.Card{c}, c.Key(), payload, e.Updater(c.Type, reason), nil)
	if !res.Changed || res.Card == nil {
		return c
	}
	return *res.Card
}

// Apply validates ev and reconciles it against every targeted card type.
// An event without a type is offered to every registered type handling its reason.
// create may be nil, in which case no card is created.
func (e *Engine) Apply(cards []card.Card, ev event.Event, create CreatorFunc, opts ...Option) (Outcome, error) {
	out := Outcome{Cards: cards}
	if err := ev.Validate(); err != nil {
		return out, err
	}
	ev = ev.Normalize()

	var types []card.Type
	if ev.Type != "" {
		if _, ok := e.registry.Lookup(ev.Type); !ok {
			e.logger.Debug("Ignoring event for unregistered type",
				zap.String("symbol", ev.Symbol),
				zap.String("type", string(ev.Type)))
			return out, nil
		}
		types = []card.Type{ev.Type}
	} else {
		for _, t := range e.registry.Types() {
			if _, ok := e.registry.Handler(t, ev.Reason); ok {
				types = append(types, t)
			}
		}
	}

	for _, t := range types {
		key := card.Key{Symbol: ev.Symbol, Type: t}
		res := e.Reconcile(out.Cards, key, ev.Payload, e.Updater(t, ev.Reason), create, opts...)
		out.Cards = res.Cards
		out.Changed = out.Changed || res.Changed
		out.Results = append(out.Results, res)
	}
	return out, nil
}

// InitContext returns the collaborators handed to initializers.
func (e *Engine) InitContext(src source.Source) InitContext {
	return InitContext{Source: src, NewID: e.newID, Now: e.now}
}

// Initialize runs the registered initializer for key.
func (e *Engine) Initialize(ctx context.Context, key card.Key, src source.Source) (res Initialized, err error) {
	entry, ok := e.registry.Lookup(key.Type)
	if !ok {
		return Initialized{}, &card.UnknownTypeError{Type: key.Type}
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("initialize %s: panic: %v", key, r)
		}
	}()

	res, err = entry.Initialize(ctx, card.NormalizeSymbol(key.Symbol), e.InitContext(src))
	if err != nil {
		return Initialized{}, fmt.Errorf("initialize %s: %w", key, err)
	}
	if res.Card.Data == nil || res.Card.Data.CardType() != key.Type {
		return Initialized{}, fmt.Errorf("initialize %s: initializer returned %w", key, &card.UnknownTypeError{Type: res.Card.Type})
	}
	e.Stamp(&res.Card)
	return res, nil
}

func (e *Engine) callUpdate(fn UpdateFunc, key card.Key, current card.Data, payload event.Payload, existing *card.Card) (cand Candidate, ok bool) {
	if fn == nil {
		return Candidate{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Update handler panicked", zap.String("key", key.String()), zap.Any("panic", r))
			cand, ok = Candidate{}, false
		}
	}()
	return fn(current, payload, existing), true
}

func (e *Engine) callCreate(fn CreatorFunc, key card.Key, cand Candidate) (c card.Card, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("creator panic: %v", r)
		}
	}()
	return fn(key, cand)
}
