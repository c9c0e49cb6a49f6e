package deck

import (
	"fmt"
	"sync"
	"time"

	"card-manager/core/card"
	"card-manager/core/event"
	"card-manager/core/reconcile"
)

// Kind classifies a notification.
type Kind string

const (
	KindNewCard       Kind = "new_card"
	KindRarityUpgrade Kind = "rarity_upgrade"
	KindValueChange   Kind = "value_change"
	KindNoData        Kind = "no_data"
)

// Notification tells the user about a noteworthy change of a card.
type Notification struct {
	Kind    Kind        `json:"kind"`
	CardID  string      `json:"cardId"`
	Symbol  string      `json:"symbol"`
	Type    card.Type   `json:"type"`
	Rarity  card.Rarity `json:"rarity"`
	Message string      `json:"message"`
	At      time.Time   `json:"at"`
}

// notificationsFor derives the notifications of one reconcile result.
func notificationsFor(res reconcile.Result, reason event.Reason, at time.Time) []Notification {
	if !res.Changed || res.Card == nil {
		return nil
	}
	c := res.Card
	base := Notification{CardID: c.ID, Symbol: c.Symbol, Type: c.Type, Rarity: c.Rarity, At: at}

	if res.Created {
		if reason != event.ReasonFetch {
			return nil
		}
		n := base
		n.Kind = KindNewCard
		n.Message = fmt.Sprintf("New %s card for %s", c.Type, c.Symbol)
		return []Notification{n}
	}
	if res.Previous == nil {
		return nil
	}

	var out []Notification
	if c.Rarity > res.Previous.Rarity {
		n := base
		n.Kind = KindRarityUpgrade
		n.Message = fmt.Sprintf("%s %s is now %s", c.Symbol, c.Type, c.Rarity)
		out = append(out, n)
	}
	before, after := headline(*res.Previous), headline(*c)
	if before != "" && after != "" && before != after {
		n := base
		n.Kind = KindValueChange
		n.Message = fmt.Sprintf("%s %s changed from %s to %s", c.Symbol, c.Type, before, after)
		out = append(out, n)
	}
	return out
}

func headline(c card.Card) string {
	if c.Data == nil {
		return ""
	}
	return c.Data.Headline()
}

// Inbox keeps the most recent notifications, dropping the oldest once full.
type Inbox struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

// NewInbox creates an inbox holding at most limit notifications.
func NewInbox(limit int) *Inbox {
	if limit <= 0 {
		limit = 100
	}
	return &Inbox{limit: limit}
}

// Push appends notifications.
func (b *Inbox) Push(ns ...Notification) {
	if len(ns) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, ns...)
	if over := len(b.items) - b.limit; over > 0 {
		b.items = append([]Notification(nil), b.items[over:]...)
	}
}

// List returns the notifications oldest first.
func (b *Inbox) List() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Notification{}, b.items...)
}

// Clear empties the inbox and returns how many notifications it held.
func (b *Inbox) Clear() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.items)
	b.items = nil
	return n
}
