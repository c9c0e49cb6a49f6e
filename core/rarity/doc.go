// Package rarity scores how notable a card's current data is.
//
// Evaluate is pure and deterministic: the same card content always yields the same
// (rarity, reason) pair. The reconciliation engine relies on this to treat rarity as part
// of its change detection.
package rarity
