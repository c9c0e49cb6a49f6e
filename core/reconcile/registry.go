package reconcile

import (
	"fmt"
	"sort"
	"sync"

	"card-manager/core/card"
	"card-manager/core/event"
)

// Registry maps card types to their rehydrator, initializer and update handlers.
// It is populated once at start-up and only read afterwards; it is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[card.Type]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[card.Type]Entry)}
}

// Register adds or replaces the entry for e.Type.
// Registering the same type twice is idempotent: the last entry wins.
func (r *Registry) Register(e Entry) error {
	if !e.Type.Valid() {
		return &card.UnknownTypeError{Type: e.Type}
	}
	if e.Rehydrate == nil {
		return fmt.Errorf("register %s: missing rehydrator", e.Type)
	}
	if e.Initialize == nil {
		return fmt.Errorf("register %s: missing initializer", e.Type)
	}
	for reason, fn := range e.Updates {
		if !reason.Valid() {
			return fmt.Errorf("register %s: unknown reason %q", e.Type, reason)
		}
		if fn == nil {
			return fmt.Errorf("register %s: nil handler for %s", e.Type, reason)
		}
	}

	updates := make(map[event.Reason]UpdateFunc, len(e.Updates))
	for reason, fn := range e.Updates {
		updates[reason] = fn
	}
	e.Updates = updates

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.Type] = e
	return nil
}

// Lookup returns the entry for t.
func (r *Registry) Lookup(t card.Type) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[t]
	return e, ok
}

// Handler returns the update handler registered for (t, reason).
func (r *Registry) Handler(t card.Type, reason event.Reason) (UpdateFunc, bool) {
	e, ok := r.Lookup(t)
	if !ok {
		return nil, false
	}
	fn, ok := e.Updates[reason]
	return fn, ok
}

// Types returns the registered types in display order.
func (r *Registry) Types() []card.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order := make(map[card.Type]int)
	for i, t := range card.AllTypes() {
		order[t] = i
	}
	types := make([]card.Type, 0, len(r.entries))
	for t := range r.entries {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return order[types[i]] < order[types[j]]
	})
	return types
}
