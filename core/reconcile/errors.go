package reconcile

import (
	"errors"
	"fmt"

	"card-manager/core/card"
)

var (
	// ErrMissingSymbol is returned for stored records without a symbol.
	ErrMissingSymbol = errors.New("record has no symbol")
	// ErrNotRegistered is returned for stored records whose type has no rehydrator.
	ErrNotRegistered = errors.New("card type not registered")
)

// RecordError describes why a stored record was dropped during rehydration.
type RecordError struct {
	Index int
	Type  card.Type
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %v", e.Index, e.Type, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
