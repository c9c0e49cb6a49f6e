// Package event defines the inbound data events consumed by the reconciliation engine.
//
// An Event names a symbol, a Reason (initial fetch, realtime push or static-metadata push)
// and a loosely typed Payload. The Payload accessors never fail: a missing key keeps the
// caller's current value, a present but malformed value becomes null or zero. Every
// accessor takes a list of alias keys so camelCase wire names, snake_case backend columns
// and renamed fields from older stored schemas resolve to the same field.
package event
