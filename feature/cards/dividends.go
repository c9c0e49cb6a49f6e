package cards

import (
	"card-manager/core/card"
	"card-manager/core/event"
)

var dividendsVariant = variant[card.DividendsStatic, card.DividendsLive]{
	typ:         card.TypeDividends,
	description: "Most recent dividend, its dates and the trailing yield.",
	staticKeys:  []string{"currency", "frequency"},
	liveKeys: []string{
		"lastDividend", "last_dividend", "dividend", "yield", "dividendYield", "dividend_yield",
		"exDividendDate", "ex_dividend_date", "paymentDate", "payment_date",
	},
	readStatic: func(cur card.DividendsStatic, p event.Payload) card.DividendsStatic {
		cur.Currency = p.StringOr(cur.Currency, "currency")
		cur.Frequency = p.StringOr(cur.Frequency, "frequency")
		return cur
	},
	readLive: func(cur card.DividendsLive, p event.Payload) card.DividendsLive {
		cur.LastDividend = p.DecimalOr(cur.LastDividend, "lastDividend", "last_dividend", "dividend")
		cur.Yield = p.DecimalOr(cur.Yield, "yield", "dividendYield", "dividend_yield")
		cur.ExDividendDate = p.StringOr(cur.ExDividendDate, "exDividendDate", "ex_dividend_date")
		cur.PaymentDate = p.StringOr(cur.PaymentDate, "paymentDate", "payment_date")
		cur.Timestamp = p.TimestampOr(cur.Timestamp, timestampKeys...)
		return cur
	},
	pack: func(s card.DividendsStatic, l card.DividendsLive) card.Data {
		return card.DividendsData{Static: s, Live: l}
	},
	unpack: func(d card.Data) (card.DividendsStatic, card.DividendsLive, bool) {
		v, ok := d.(card.DividendsData)
		return v.Static, v.Live, ok
	},
}
