// Package reconcile merges external card data into an ordered card collection.
//
// The reconcile system enforces one card per (symbol, type) slot, updates cards in place
// without disturbing their position or identity, and reports whether anything observably
// changed so callers can skip redundant renders and write-backs.
//
// # Architecture
//
// The reconcile system consists of three main components:
//
// 1. Registry: the per-type plug-in table. Every card type registers a Rehydrator
// (stored record -> card), an Initializer (symbol -> card, asynchronous, may fail) and
// update handlers keyed by event reason. The registry is built once at start-up and
// passed to the engine explicitly.
//
// 2. Engine: the reconciliation core. Reconcile locates the slot, asks the update handler
// for a candidate, stamps rarity, compares the canonical fingerprint of the candidate with
// the current card and then updates in place, creates, or returns the collection untouched.
//
// 3. Rehydration: RehydrateAll rebuilds typed cards from a stored snapshot, dropping
// records whose type is unregistered or whose rehydrator fails, without aborting the rest.
//
// # Purity
//
// Reconcile never mutates its input slice. A changed result is a new slice; an unchanged
// result is the input slice itself. Handlers, creators and rehydrators that panic are
// recovered and treated as no-ops or dropped records.
//
// # Usage Example
//
//	registry := reconcile.NewRegistry()
//	_ = cards.Register(registry)
//	engine := reconcile.NewEngine(registry, rarity.Evaluate, logger)
//
//	deck := engine.RehydrateAll(records)
//	out := engine.Apply(deck, ev, creator)
//	if out.Changed {
//	    deck = out.Cards
//	}
package reconcile
