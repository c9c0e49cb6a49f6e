package reconcile

import (
	"testing"

	"card-manager/core/card"

	"github.com/stretchr/testify/assert"
)

func deckOf(ids ...string) []card.Card {
	out := make([]card.Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, card.Card{ID: id, Symbol: id, Type: card.TypePrice})
	}
	return out
}

func ids(cards []card.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestIndexOf(t *testing.T) {
	deck := deckOf("A", "B")
	assert.Equal(t, 1, IndexOf(deck, card.Key{Symbol: "B", Type: card.TypePrice}))
	assert.Equal(t, -1, IndexOf(deck, card.Key{Symbol: "B", Type: card.TypeGrades}))
	assert.Equal(t, -1, FindByID(deck, "C"))
}

func TestRemove(t *testing.T) {
	deck := deckOf("A", "B", "C")
	out, ok := Remove(deck, "B")
	assert.True(t, ok)
	assert.Equal(t, []string{"A", "C"}, ids(out))
	assert.Equal(t, []string{"A", "B", "C"}, ids(deck))

	same, ok := Remove(deck, "Z")
	assert.False(t, ok)
	assert.Equal(t, deck, same)
}

func TestMove(t *testing.T) {
	tests := []struct {
		name string
		id   string
		to   int
		want []string
	}{
		{"to front", "C", 0, []string{"C", "A", "B", "D"}},
		{"to back", "A", 3, []string{"B", "C", "D", "A"}},
		{"middle", "B", 2, []string{"A", "C", "B", "D"}},
		{"clamped high", "A", 99, []string{"B", "C", "D", "A"}},
		{"clamped low", "D", -4, []string{"D", "A", "B", "C"}},
		{"in place", "B", 1, []string{"A", "B", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := deckOf("A", "B", "C", "D")
			out, ok := Move(deck, tt.id, tt.to)
			assert.True(t, ok)
			assert.Equal(t, tt.want, ids(out))
			assert.Equal(t, []string{"A", "B", "C", "D"}, ids(deck))
		})
	}

	_, ok := Move(deckOf("A"), "Z", 0)
	assert.False(t, ok)
}

func TestSymbols(t *testing.T) {
	deck := []card.Card{
		{Symbol: "AAPL", Type: card.TypePrice},
		{Symbol: "MSFT", Type: card.TypePrice},
		{Symbol: "AAPL", Type: card.TypeGrades},
	}
	assert.Equal(t, []string{"AAPL", "MSFT"}, Symbols(deck))
	assert.Empty(t, Symbols(nil))
}
