package reconcile

import "card-manager/core/card"

// IndexOf returns the position of the card occupying key, or -1.
func IndexOf(cards []card.Card, key card.Key) int {
	for i := range cards {
		if cards[i].Symbol == key.Symbol && cards[i].Type == key.Type {
			return i
		}
	}
	return -1
}

// FindByID returns the position of the card with the given id, or -1.
func FindByID(cards []card.Card, id string) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}

// Remove returns a copy of cards without the card with the given id.
func Remove(cards []card.Card, id string) ([]card.Card, bool) {
	i := FindByID(cards, id)
	if i < 0 {
		return cards, false
	}
	out := make([]card.Card, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	out = append(out, cards[i+1:]...)
	return out, true
}

// Move returns a copy of cards with the card with the given id at position to.
// to is clamped to the collection bounds.
func Move(cards []card.Card, id string, to int) ([]card.Card, bool) {
	from := FindByID(cards, id)
	if from < 0 {
		return cards, false
	}
	if to < 0 {
		to = 0
	}
	if to > len(cards)-1 {
		to = len(cards) - 1
	}

	moving := cards[from]
	rest := make([]card.Card, 0, len(cards))
	rest = append(rest, cards[:from]...)
	rest = append(rest, cards[from+1:]...)

	out := make([]card.Card, 0, len(cards))
	out = append(out, rest[:to]...)
	out = append(out, moving)
	out = append(out, rest[to:]...)
	return out, true
}

// Symbols returns the distinct symbols of cards in first-seen order.
func Symbols(cards []card.Card) []string {
	seen := make(map[string]struct{}, len(cards))
	var out []string
	for _, c := range cards {
		if _, ok := seen[c.Symbol]; ok {
			continue
		}
		seen[c.Symbol] = struct{}{}
		out = append(out, c.Symbol)
	}
	return out
}
