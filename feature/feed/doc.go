// Package feed consumes the realtime push channel of the data backend.
//
// A Consumer keeps one websocket connection open, subscribes to the symbols the deck
// currently tracks, and turns every pushed message into an event.Event handed to the
// deck. Messages use the inbound event shape, one object or an array per frame:
//
//	{"symbol": "AAPL", "reason": "realtime", "type": "price",
//	 "payload": {"price": 151.2}, "timestamp": 1700000000123}
//
// The reason defaults to "realtime" and the type may be omitted to fan out to every
// card type. Frames that fail to decode are logged and skipped; a dropped connection
// is re-dialed after a fixed delay until the context is cancelled.
package feed
