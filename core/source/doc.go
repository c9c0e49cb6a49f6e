// Package source provides the backends card initializers and refreshers fetch from.
//
// A Source answers one question: what does the backend currently know about a
// symbol for a given card type. The answer is a loosely typed payload; the card
// handlers in feature/cards turn it into variant data.
//
// # Outcomes
//
// Fetch distinguishes three outcomes. A payload means data is available. ErrNotFound
// means the backend has no row for this card type, which initializers turn into an
// empty card. Any other error is a transport failure and is surfaced to the caller.
//
// # Backends
//
//   - DBSource reads one table per card type through GORM.
//   - MapSource serves fixed payloads, loaded from YAML or built in tests.
package source
