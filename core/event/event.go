package event

import (
	"errors"
	"fmt"

	"card-manager/core/card"
	"card-manager/core/utils"
)

// Reason tags why an event was emitted.
type Reason string

const (
	// ReasonFetch is an initial or periodic fetch result. Only fetches may create cards.
	ReasonFetch Reason = "fetch"
	// ReasonRealtime is a live push. It updates existing cards and never creates one.
	ReasonRealtime Reason = "realtime"
	// ReasonStaticPatch pushes rarely-changing descriptive fields.
	ReasonStaticPatch Reason = "static-patch"
)

// Reasons returns every known reason.
func Reasons() []Reason {
	return []Reason{ReasonFetch, ReasonRealtime, ReasonStaticPatch}
}

// Valid reports whether r is a known reason.
func (r Reason) Valid() bool {
	switch r {
	case ReasonFetch, ReasonRealtime, ReasonStaticPatch:
		return true
	default:
		return false
	}
}

// KeyTimestamp is the payload key carrying the observation time.
const KeyTimestamp = "timestamp"

// Event is one unit of external data.
type Event struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Reason Reason `json:"reason" yaml:"reason"`
	// Type restricts the event to one card type. Empty fans out to every type
	// that handles Reason.
	Type      card.Type `json:"type,omitempty" yaml:"type,omitempty"`
	Payload   Payload   `json:"payload" yaml:"payload"`
	Timestamp int64     `json:"timestamp" yaml:"timestamp"`
}

// ErrInvalidEvent is wrapped by Validate failures.
var ErrInvalidEvent = errors.New("invalid event")

// Validate checks the fields every event needs.
func (e Event) Validate() error {
	if card.NormalizeSymbol(e.Symbol) == "" {
		return fmt.Errorf("%w: missing symbol", ErrInvalidEvent)
	}
	if !e.Reason.Valid() {
		return fmt.Errorf("%w: unknown reason %q", ErrInvalidEvent, e.Reason)
	}
	if e.Type != "" && !e.Type.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, &card.UnknownTypeError{Type: e.Type})
	}
	return nil
}

// Normalize returns a copy with a canonical symbol and the event timestamp copied
// into the payload when the payload does not carry a readable one of its own.
func (e Event) Normalize() Event {
	e.Symbol = card.NormalizeSymbol(e.Symbol)
	p := e.Payload.Clone()
	if p == nil {
		p = Payload{}
	}
	if e.Timestamp > 0 && (!p.Has(KeyTimestamp) || utils.ToMillis(p[KeyTimestamp]) == nil) {
		p[KeyTimestamp] = e.Timestamp
	}
	e.Payload = p
	return e
}
