package card

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Rarity is an ordered tier summarizing how notable a card's data is.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = [...]string{"Common", "Uncommon", "Rare", "Epic", "Legendary"}

// String returns the tier name.
func (r Rarity) String() string {
	if r < RarityCommon || r > RarityLegendary {
		return fmt.Sprintf("Rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// ParseRarity parses a tier name case-insensitively.
func ParseRarity(s string) (Rarity, error) {
	for i, name := range rarityNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Rarity(i), nil
		}
	}
	return RarityCommon, fmt.Errorf("unknown rarity %q", s)
}

// MarshalJSON writes the tier name.
func (r Rarity) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts a tier name.
func (r *Rarity) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRarity(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
