package cards

import (
	"card-manager/core/card"
	"card-manager/core/event"
)

var priceVariant = variant[card.PriceStatic, card.PriceLive]{
	typ:         card.TypePrice,
	description: "Latest traded price with the day's range and volume.",
	staticKeys:  []string{"exchange", "exchangeShortName", "exchange_short_name", "currency"},
	liveKeys: []string{
		"price", "change", "changes", "changePercent", "changesPercentage", "change_percent",
		"dayHigh", "day_high", "dayLow", "day_low", "previousClose", "previous_close", "volume",
	},
	readStatic: func(cur card.PriceStatic, p event.Payload) card.PriceStatic {
		cur.Exchange = p.StringOr(cur.Exchange, "exchange", "exchangeShortName", "exchange_short_name")
		cur.Currency = p.StringOr(cur.Currency, "currency")
		return cur
	},
	readLive: func(cur card.PriceLive, p event.Payload) card.PriceLive {
		cur.Price = p.DecimalOr(cur.Price, "price")
		cur.Change = p.DecimalOr(cur.Change, "change", "changes")
		cur.ChangePercent = p.DecimalOr(cur.ChangePercent, "changePercent", "changesPercentage", "change_percent")
		cur.DayHigh = p.DecimalOr(cur.DayHigh, "dayHigh", "day_high")
		cur.DayLow = p.DecimalOr(cur.DayLow, "dayLow", "day_low")
		cur.PreviousClose = p.DecimalOr(cur.PreviousClose, "previousClose", "previous_close")
		cur.Volume = p.Int64Or(cur.Volume, "volume")
		cur.Timestamp = p.TimestampOr(cur.Timestamp, timestampKeys...)
		return cur
	},
	pack: func(s card.PriceStatic, l card.PriceLive) card.Data {
		return card.PriceData{Static: s, Live: l}
	},
	unpack: func(d card.Data) (card.PriceStatic, card.PriceLive, bool) {
		v, ok := d.(card.PriceData)
		return v.Static, v.Live, ok
	},
}
