package event

import (
	"card-manager/core/utils"

	"github.com/shopspring/decimal"
)

// Payload is a loosely typed event or stored-record body.
type Payload map[string]any

// Lookup returns the value of the first key present.
func (p Payload) Lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := p[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether any of keys is present.
func (p Payload) Has(keys ...string) bool {
	_, ok := p.Lookup(keys...)
	return ok
}

// Clone returns a shallow copy.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Object returns the nested object under the first key present, or an empty payload.
func (p Payload) Object(keys ...string) Payload {
	v, ok := p.Lookup(keys...)
	if !ok {
		return Payload{}
	}
	switch m := v.(type) {
	case Payload:
		return m
	case map[string]any:
		return Payload(m)
	default:
		return Payload{}
	}
}

// DecimalOr returns cur when no key is present, otherwise the parsed value, which
// is null when malformed.
func (p Payload) DecimalOr(cur decimal.NullDecimal, keys ...string) decimal.NullDecimal {
	v, ok := p.Lookup(keys...)
	if !ok {
		return cur
	}
	return utils.ToDecimal(v)
}

// MillisOr returns cur when no key is present, otherwise the parsed unix-millisecond
// timestamp, which is nil when malformed.
func (p Payload) MillisOr(cur *int64, keys ...string) *int64 {
	v, ok := p.Lookup(keys...)
	if !ok {
		return cur
	}
	return utils.ToMillis(v)
}

// TimestampOr is MillisOr for freshness timestamps: a malformed value keeps cur, so
// an unreadable timestamp never clears the ordering guard.
func (p Payload) TimestampOr(cur *int64, keys ...string) *int64 {
	v, ok := p.Lookup(keys...)
	if !ok {
		return cur
	}
	if ms := utils.ToMillis(v); ms != nil {
		return ms
	}
	return cur
}

// Int64Or returns cur when no key is present, otherwise the parsed integer, which
// is nil when malformed.
func (p Payload) Int64Or(cur *int64, keys ...string) *int64 {
	v, ok := p.Lookup(keys...)
	if !ok {
		return cur
	}
	n, ok := utils.ParseInt64(v)
	if !ok {
		return nil
	}
	return &n
}

// IntOr returns cur when no key is present, otherwise the parsed integer or 0.
func (p Payload) IntOr(cur int, keys ...string) int {
	v, ok := p.Lookup(keys...)
	if !ok {
		return cur
	}
	return utils.ToInt(v)
}

// StringOr returns cur when no key is present, otherwise the cleaned string value.
func (p Payload) StringOr(cur string, keys ...string) string {
	v, ok := p.Lookup(keys...)
	if !ok {
		return cur
	}
	return utils.CleanString(v)
}
