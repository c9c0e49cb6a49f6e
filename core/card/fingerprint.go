package card

import (
	"bytes"
	"encoding/json"

	"golang.org/x/text/unicode/norm"
)

type fingerprint struct {
	Display
	Description string `json:"description"`
	Static      any    `json:"staticData"`
	Live        any    `json:"liveData"`
}

// Fingerprint returns the canonical serialized form of the displayed content of c:
// display metadata, back description and data without the live timestamp.
// Transient UI state and rarity are not part of it.
func Fingerprint(c Card) ([]byte, error) {
	fp := fingerprint{Display: c.Display, Description: c.Back.Description}
	if c.Data != nil {
		fp.Static, fp.Live = c.Data.unclocked().Parts()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fp); err != nil {
		return nil, err
	}
	return norm.NFC.Bytes(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// SameContent reports whether a and b have identical fingerprints and rarity.
// Cards that cannot be fingerprinted are never considered the same.
func SameContent(a, b Card) bool {
	if a.Rarity != b.Rarity || a.RarityReason != b.RarityReason {
		return false
	}
	fa, err := Fingerprint(a)
	if err != nil {
		return false
	}
	fb, err := Fingerprint(b)
	if err != nil {
		return false
	}
	return bytes.Equal(fa, fb)
}
