package cards

import (
	"fmt"

	"card-manager/core/card"
	"card-manager/core/reconcile"
)

// Entries returns the registry entries of every card type in display order.
func Entries() []reconcile.Entry {
	return []reconcile.Entry{
		priceVariant.entry(),
		profileVariant.entry(),
		revenueVariant.entry(),
		solvencyVariant.entry(),
		dividendsVariant.entry(),
		gradesVariant.entry(),
	}
}

// Register adds every card type to reg.
func Register(reg *reconcile.Registry) error {
	for _, e := range Entries() {
		if err := reg.Register(e); err != nil {
			return fmt.Errorf("failed to register %s cards: %w", e.Type, err)
		}
	}
	return nil
}

// NewRegistry returns a registry with every card type registered.
func NewRegistry() *reconcile.Registry {
	reg := reconcile.NewRegistry()
	if err := Register(reg); err != nil {
		// Entries are static, so this only fails on a programming error.
		panic(err)
	}
	return reg
}

// DefaultDescription is the back-face text of a fresh card of type t.
func DefaultDescription(t card.Type) string {
	switch t {
	case card.TypePrice:
		return priceVariant.description
	case card.TypeProfile:
		return profileVariant.description
	case card.TypeRevenue:
		return revenueVariant.description
	case card.TypeSolvency:
		return solvencyVariant.description
	case card.TypeDividends:
		return dividendsVariant.description
	case card.TypeGrades:
		return gradesVariant.description
	default:
		return ""
	}
}

// Create is the reconcile.CreatorFunc used for fetch events: it builds a card for an
// empty slot from the fetch candidate. Identity and creation time are assigned by the engine.
func Create(key card.Key, cand reconcile.Candidate) (card.Card, error) {
	if cand.Data == nil {
		return card.Card{}, fmt.Errorf("create %s: no data", key)
	}
	c := card.Card{
		Type:    key.Type,
		Symbol:  key.Symbol,
		Display: cand.Display,
		Back:    card.Back{Description: cand.Description},
		Data:    cand.Data,
	}
	if c.Back.Description == "" {
		c.Back.Description = DefaultDescription(key.Type)
	}
	return c, nil
}
