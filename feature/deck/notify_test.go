package deck

import (
	"testing"
	"time"

	"card-manager/core/card"
	"card-manager/core/event"
	"card-manager/core/reconcile"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func priceCard(price string, r card.Rarity) *card.Card {
	return &card.Card{
		ID: "p1", Symbol: "AAPL", Type: card.TypePrice, Rarity: r,
		Data: card.PriceData{Live: card.PriceLive{Price: decimal.NewNullDecimal(decimal.RequireFromString(price))}},
	}
}

func TestNotificationsFor(t *testing.T) {
	at := time.Unix(1700000000, 0)

	tests := []struct {
		name   string
		res    reconcile.Result
		reason event.Reason
		want   []Kind
	}{
		{"unchanged", reconcile.Result{Card: priceCard("1", card.RarityCommon)}, event.ReasonFetch, nil},
		{"created by fetch", reconcile.Result{Changed: true, Created: true, Card: priceCard("1", card.RarityCommon)}, event.ReasonFetch, []Kind{KindNewCard}},
		{"created otherwise", reconcile.Result{Changed: true, Created: true, Card: priceCard("1", card.RarityCommon)}, event.ReasonRealtime, nil},
		{"rarity upgrade", reconcile.Result{Changed: true, Card: priceCard("1", card.RarityRare), Previous: priceCard("1", card.RarityCommon)}, event.ReasonRealtime, []Kind{KindRarityUpgrade}},
		{"rarity downgrade", reconcile.Result{Changed: true, Card: priceCard("1", card.RarityCommon), Previous: priceCard("1", card.RarityRare)}, event.ReasonRealtime, nil},
		{"value change", reconcile.Result{Changed: true, Card: priceCard("2", card.RarityCommon), Previous: priceCard("1", card.RarityCommon)}, event.ReasonRealtime, []Kind{KindValueChange}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Kind
			for _, n := range notificationsFor(tt.res, tt.reason, at) {
				got = append(got, n.Kind)
				assert.Equal(t, at, n.At)
				assert.NotEmpty(t, n.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInbox(t *testing.T) {
	b := NewInbox(2)
	b.Push()
	assert.Empty(t, b.List())

	b.Push(Notification{Message: "a"}, Notification{Message: "b"}, Notification{Message: "c"})
	got := b.List()
	assert.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Message)
	assert.Equal(t, "c", got[1].Message)

	assert.Equal(t, 2, b.Clear())
	assert.Empty(t, b.List())
	assert.Equal(t, 100, NewInbox(0).limit)
}
