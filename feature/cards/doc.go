// Package cards registers the card types shown by the deck.
//
// Every type contributes one reconcile.Entry built from the same pattern:
//
//   - Rehydrate reads a stored record, taking static and live fields from the nested
//     staticData/liveData objects and defaulting anything missing. Records written before
//     the live/static split kept live values under faceData; those still load.
//   - Initialize fetches the symbol from a source.Source. A missing backend row yields an
//     empty card rather than an error.
//   - fetch updates replace static and live fields and may create a card.
//   - realtime updates touch live fields of an existing card only, and reject payloads
//     older than the displayed data.
//   - static-patch updates touch static fields and display metadata of an existing card.
//
// Payload keys are read through alias lists, so camelCase wire names and snake_case
// backend columns map to the same field. A present but malformed value becomes null.
//
// # Usage
//
//	registry := reconcile.NewRegistry()
//	if err := cards.Register(registry); err != nil {
//	    log.Fatal(err)
//	}
package cards
