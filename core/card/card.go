package card

import (
	"encoding/json"
	"strings"
)

// Type is the card type tag.
type Type string

const (
	TypePrice     Type = "price"
	TypeProfile   Type = "profile"
	TypeRevenue   Type = "revenue"
	TypeSolvency  Type = "solvency"
	TypeDividends Type = "dividends"
	TypeGrades    Type = "grades"
)

// AllTypes returns every card type in display order.
func AllTypes() []Type {
	return []Type{TypePrice, TypeProfile, TypeRevenue, TypeSolvency, TypeDividends, TypeGrades}
}

// Valid reports whether t belongs to the closed set of card types.
func (t Type) Valid() bool {
	for _, known := range AllTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Display holds optional metadata shown on the card face.
type Display struct {
	CompanyName string `json:"companyName,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
	WebsiteURL  string `json:"websiteUrl,omitempty"`
}

// Merge returns d with every non-empty field of patch applied.
func (d Display) Merge(patch Display) Display {
	if patch.CompanyName != "" {
		d.CompanyName = patch.CompanyName
	}
	if patch.LogoURL != "" {
		d.LogoURL = patch.LogoURL
	}
	if patch.WebsiteURL != "" {
		d.WebsiteURL = patch.WebsiteURL
	}
	return d
}

// IsZero reports whether no display field is set.
func (d Display) IsZero() bool {
	return d == Display{}
}

// Back is the content of the card's back face.
type Back struct {
	Description string `json:"description"`
}

// Card is a displayable unit of financial data for one symbol.
type Card struct {
	// ID never changes for the lifetime of the (Symbol, Type) slot.
	ID        string
	Type      Type
	Symbol    string
	CreatedAt int64 // unix milliseconds
	Display
	Back Back

	// Data is the type-specific variant. Its CardType always equals Type.
	Data Data

	// Flipped is transient UI state.
	Flipped bool

	Rarity       Rarity
	RarityReason string
}

// Key identifies a (symbol, type) slot.
type Key struct {
	Symbol string
	Type   Type
}

// String returns "SYMBOL/type".
func (k Key) String() string {
	return k.Symbol + "/" + string(k.Type)
}

// Key returns the (symbol, type) slot of c.
func (c Card) Key() Key {
	return Key{Symbol: c.Symbol, Type: c.Type}
}

// NormalizeSymbol upper-cases and trims an instrument symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

type wireCard struct {
	ID           string `json:"id"`
	Type         Type   `json:"type"`
	Symbol       string `json:"symbol"`
	CreatedAt    int64  `json:"createdAt"`
	CompanyName  string `json:"companyName,omitempty"`
	LogoURL      string `json:"logoUrl,omitempty"`
	WebsiteURL   string `json:"websiteUrl,omitempty"`
	StaticData   any    `json:"staticData"`
	LiveData     any    `json:"liveData"`
	BackData     Back   `json:"backData"`
	IsFlipped    bool   `json:"isFlipped"`
	Rarity       Rarity `json:"rarity"`
	RarityReason string `json:"rarityReason"`
}

// MarshalJSON writes the stored snapshot shape.
func (c Card) MarshalJSON() ([]byte, error) {
	w := wireCard{
		ID:           c.ID,
		Type:         c.Type,
		Symbol:       c.Symbol,
		CreatedAt:    c.CreatedAt,
		CompanyName:  c.CompanyName,
		LogoURL:      c.LogoURL,
		WebsiteURL:   c.WebsiteURL,
		StaticData:   struct{}{},
		LiveData:     struct{}{},
		BackData:     c.Back,
		IsFlipped:    c.Flipped,
		Rarity:       c.Rarity,
		RarityReason: c.RarityReason,
	}
	if c.Data != nil {
		w.StaticData, w.LiveData = c.Data.Parts()
	}
	return json.Marshal(w)
}
