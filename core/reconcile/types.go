package reconcile

import (
	"context"
	"time"

	"card-manager/core/card"
	"card-manager/core/event"
	"card-manager/core/source"
)

// Record is one stored card as a plain object, as read back from a snapshot.
type Record map[string]any

// Payload returns r with the fail-soft payload accessors.
func (r Record) Payload() event.Payload {
	return event.Payload(r)
}

// Candidate is the result of an update handler.
type Candidate struct {
	// Data is the proposed variant data. Nil means "no-op".
	Data card.Data

	// Display fields that are non-empty are merged over the card's display metadata.
	Display card.Display

	// Description replaces the back-face text when non-empty.
	Description string
}

// UpdateFunc computes a candidate from the current data of a slot and a payload.
// current and existing are nil when the slot is empty. Implementations must not mutate
// their inputs; returning Candidate{Data: current} signals that nothing changed.
type UpdateFunc func(current card.Data, payload event.Payload, existing *card.Card) Candidate

// CreatorFunc builds a new card for an empty slot. Returning an error drops the event.
type CreatorFunc func(key card.Key, candidate Candidate) (card.Card, error)

// RarityFunc scores a card. It must be pure.
type RarityFunc func(c card.Card) (card.Rarity, string)

// Rehydrator rebuilds a typed card from a stored record.
// It must default every optional field so older stored schemas still load.
type Rehydrator func(rec Record) (card.Card, error)

// InitContext carries the collaborators an initializer may use.
type InitContext struct {
	Source source.Source
	NewID  func() string
	Now    func() time.Time
}

// Initialized is the outcome of a successful initializer.
type Initialized struct {
	Card card.Card
	// Empty is true when the backend knows the symbol but has no data for the card type.
	// The card is valid with every live field null.
	Empty bool
}

// Initializer creates a card for a symbol on explicit user request.
// Transport failures are returned as errors; a missing backend row is not an error.
type Initializer func(ctx context.Context, symbol string, ic InitContext) (Initialized, error)

// Entry is the registration of one card type.
type Entry struct {
	Type       card.Type
	Rehydrate  Rehydrator
	Initialize Initializer
	Updates    map[event.Reason]UpdateFunc
}

// Result is the outcome of reconciling one (symbol, type) slot.
type Result struct {
	// Cards is the resulting collection. It is the input slice when Changed is false.
	Cards []card.Card

	// Key is the slot that was reconciled.
	Key card.Key

	// Changed reports whether anything observable changed.
	Changed bool

	// Created reports whether a new card was appended or inserted.
	Created bool

	// Card is the resulting card, nil when the event was dropped.
	Card *card.Card

	// Previous is the card before the update, nil when the slot was empty.
	Previous *card.Card
}

// Outcome aggregates the per-type results of applying one event.
type Outcome struct {
	Cards   []card.Card
	Changed bool
	Results []Result
}

// Option tunes placement of created cards.
type Option func(*options)

type options struct {
	after string
}

// After inserts a created card directly after the card with the given id.
// Unknown ids fall back to appending.
func After(id string) Option {
	return func(o *options) {
		o.after = id
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
