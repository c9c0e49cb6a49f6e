package cards

import (
	"context"
	"errors"
	"fmt"

	"card-manager/core/card"
	"card-manager/core/event"
	"card-manager/core/reconcile"
	"card-manager/core/source"
	"card-manager/core/utils"
)

// Keys that are never evidence that a payload concerns a given card type.
var timestampKeys = []string{event.KeyTimestamp, "updatedAt", "updated_at"}

// variant describes one card type in terms of its static part S and live part L.
type variant[S, L any] struct {
	typ         card.Type
	description string

	staticKeys []string
	liveKeys   []string

	readStatic func(cur S, p event.Payload) S
	readLive   func(cur L, p event.Payload) L
	pack       func(s S, l L) card.Data
	unpack     func(d card.Data) (S, L, bool)
}

func (v variant[S, L]) parts(d card.Data) (S, L) {
	if d != nil {
		if s, l, ok := v.unpack(d); ok {
			return s, l
		}
	}
	var s S
	var l L
	return s, l
}

// stale reports whether the payload was observed before the data currently shown.
func stale(current card.Data, p event.Payload) bool {
	if current == nil {
		return false
	}
	shown := current.LiveTimestamp()
	if shown == nil {
		return false
	}
	v, ok := p.Lookup(timestampKeys...)
	if !ok {
		return false
	}
	incoming := utils.ToMillis(v)
	return incoming != nil && *incoming < *shown
}

func backDescription(p event.Payload) string {
	return p.StringOr("", "backDescription", "back_description")
}

// fetch replaces static and live fields. It is the only handler that proposes data for
// an empty slot, and only when the payload carries live fields of this type.
func (v variant[S, L]) fetch(current card.Data, p event.Payload, existing *card.Card) reconcile.Candidate {
	if !p.Has(v.liveKeys...) && (current == nil || !p.Has(v.staticKeys...)) {
		// Descriptive fields alone are shared by several types and never create a card.
		return reconcile.Candidate{Data: current}
	}
	s, l := v.parts(current)
	s = v.readStatic(s, p)
	if !stale(current, p) {
		l = v.readLive(l, p)
	}
	return reconcile.Candidate{
		Data:        v.pack(s, l),
		Display:     reconcile.DisplayFrom(p),
		Description: backDescription(p),
	}
}

// realtime applies a live push to an existing card.
func (v variant[S, L]) realtime(current card.Data, p event.Payload, existing *card.Card) reconcile.Candidate {
	if current == nil || !p.Has(v.liveKeys...) || stale(current, p) {
		return reconcile.Candidate{Data: current}
	}
	s, l := v.parts(current)
	return reconcile.Candidate{Data: v.pack(s, v.readLive(l, p))}
}

// staticPatch applies descriptive fields to an existing card.
func (v variant[S, L]) staticPatch(current card.Data, p event.Payload, existing *card.Card) reconcile.Candidate {
	if current == nil {
		return reconcile.Candidate{Data: current}
	}
	s, l := v.parts(current)
	if p.Has(v.staticKeys...) {
		s = v.readStatic(s, p)
	}
	return reconcile.Candidate{
		Data:        v.pack(s, l),
		Display:     reconcile.DisplayFrom(p),
		Description: backDescription(p),
	}
}

func (v variant[S, L]) rehydrate(rec reconcile.Record) (card.Card, error) {
	c, err := reconcile.Base(rec)
	if err != nil {
		return card.Card{}, err
	}
	p := rec.Payload()
	staticPart := p.Object("staticData", "static_data")
	livePart := p.Object("liveData", "live_data")
	if len(livePart) == 0 {
		livePart = p.Object("faceData", "face_data")
	}

	var s S
	var l L
	c.Type = v.typ
	c.Data = v.pack(v.readStatic(s, staticPart), v.readLive(l, livePart))
	if c.Back.Description == "" {
		c.Back.Description = v.description
	}
	return c, nil
}

func (v variant[S, L]) initialize(ctx context.Context, symbol string, ic reconcile.InitContext) (reconcile.Initialized, error) {
	if ic.Source == nil {
		return reconcile.Initialized{}, errors.New("no data source configured")
	}
	c := card.Card{
		Type:   v.typ,
		Symbol: symbol,
		Back:   card.Back{Description: v.description},
	}
	if ic.NewID != nil {
		c.ID = ic.NewID()
	}
	if ic.Now != nil {
		c.CreatedAt = ic.Now().UnixMilli()
	}

	p, err := ic.Source.Fetch(ctx, symbol, v.typ)
	if errors.Is(err, source.ErrNotFound) {
		var s S
		var l L
		c.Data = v.pack(s, l)
		return reconcile.Initialized{Card: c, Empty: true}, nil
	}
	if err != nil {
		return reconcile.Initialized{}, fmt.Errorf("fetch %s: %w", v.typ, err)
	}

	cand := v.fetch(nil, p, nil)
	if cand.Data == nil {
		var s S
		var l L
		c.Data = v.pack(s, l)
		return reconcile.Initialized{Card: c, Empty: true}, nil
	}
	c.Data = cand.Data
	c.Display = cand.Display
	if cand.Description != "" {
		c.Back.Description = cand.Description
	}
	return reconcile.Initialized{Card: c}, nil
}

func (v variant[S, L]) entry() reconcile.Entry {
	return reconcile.Entry{
		Type:       v.typ,
		Rehydrate:  v.rehydrate,
		Initialize: v.initialize,
		Updates: map[event.Reason]reconcile.UpdateFunc{
			event.ReasonFetch:       v.fetch,
			event.ReasonRealtime:    v.realtime,
			event.ReasonStaticPatch: v.staticPatch,
		},
	}
}
