// Package card defines the displayable card model.
//
// A Card is one typed unit of financial data for one instrument symbol. The set of card
// types is closed (see AllTypes) and each type has exactly one Data variant carrying a
// rarely-changing static part and a frequently-updated live part.
//
// # Variants
//
// Data is a sealed interface: only the variants declared in this package implement it.
// NewData is the exhaustive constructor and returns an *UnknownTypeError for any tag
// outside the closed set, so callers never proceed on a silently mis-narrowed card.
//
// # Wire Form
//
// Cards marshal to the stored snapshot shape:
//
//	{"id": "...", "type": "price", "symbol": "AAPL", "createdAt": 1700000000000,
//	 "staticData": {...}, "liveData": {...}, "backData": {"description": "..."},
//	 "isFlipped": false, "rarity": "Rare", "rarityReason": "..."}
//
// Decoding is not symmetric: stored records are rebuilt by the per-type rehydrators
// registered in core/reconcile, which absorb schema drift.
//
// # Fingerprint
//
// Fingerprint produces the canonical bytes used for change detection. Live timestamps are
// freshness bookkeeping and are excluded, so a push that only advances the clock is not a change.
package card
