package reconcile

import (
	"fmt"

	"card-manager/core/card"
	"card-manager/core/event"
	"card-manager/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RehydrateAll rebuilds cards from stored records, keeping their order.
// Records of unregistered types, records the rehydrator rejects and later duplicates of
// an already loaded (symbol, type) slot are dropped and logged. It never fails.
func (e *Engine) RehydrateAll(records []Record) []card.Card {
	cards, dropped := e.rehydrate(records)
	for _, err := range dropped {
		e.logger.Warn("Dropped stored card", zap.Error(err))
	}
	if len(dropped) > 0 {
		e.logger.Info("Rehydration finished",
			zap.Int("loaded", len(cards)),
			zap.Int("dropped", len(dropped)))
	}
	return cards
}

func (e *Engine) rehydrate(records []Record) ([]card.Card, []*RecordError) {
	cards := make([]card.Card, 0, len(records))
	var dropped []*RecordError

	for i, rec := range records {
		typ := card.Type(utils.CleanString(rec["type"]))
		entry, ok := e.registry.Lookup(typ)
		if !ok {
			dropped = append(dropped, &RecordError{Index: i, Type: typ, Err: ErrNotRegistered})
			continue
		}

		c, err := callRehydrate(entry.Rehydrate, rec)
		if err != nil {
			dropped = append(dropped, &RecordError{Index: i, Type: typ, Err: err})
			continue
		}
		if c.Data == nil || c.Data.CardType() != typ || c.Type != typ {
			dropped = append(dropped, &RecordError{Index: i, Type: typ, Err: &card.UnknownTypeError{Type: c.Type}})
			continue
		}
		if IndexOf(cards, c.Key()) >= 0 {
			dropped = append(dropped, &RecordError{Index: i, Type: typ, Err: fmt.Errorf("duplicate slot %s", c.Key())})
			continue
		}
		if c.ID == "" || FindByID(cards, c.ID) >= 0 {
			c.ID = e.newID()
		}
		e.Stamp(&c)
		cards = append(cards, c)
	}
	return cards, dropped
}

func callRehydrate(fn Rehydrator, rec Record) (c card.Card, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rehydrator panic: %v", r)
		}
	}()
	return fn(rec)
}

// Base reads the fields shared by every card type from a stored record.
// Missing ids are regenerated; only the symbol is required.
func Base(rec Record) (card.Card, error) {
	p := rec.Payload()
	symbol := card.NormalizeSymbol(p.StringOr("", "symbol"))
	if symbol == "" {
		return card.Card{}, ErrMissingSymbol
	}

	c := card.Card{
		ID:      p.StringOr("", "id"),
		Type:    card.Type(p.StringOr("", "type")),
		Symbol:  symbol,
		Display: DisplayFrom(p),
		Back:    card.Back{Description: p.Object("backData", "back_data").StringOr("", "description")},
		Flipped: utils.ToBool(rec["isFlipped"]),
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if ms := p.MillisOr(nil, "createdAt", "created_at"); ms != nil {
		c.CreatedAt = *ms
	}
	return c, nil
}

// DisplayFrom reads display metadata, accepting camelCase and snake_case keys.
func DisplayFrom(p event.Payload) card.Display {
	return card.Display{
		CompanyName: p.StringOr("", "companyName", "company_name"),
		LogoURL:     p.StringOr("", "logoUrl", "logo_url", "image"),
		WebsiteURL:  p.StringOr("", "websiteUrl", "website_url", "website"),
	}
}
