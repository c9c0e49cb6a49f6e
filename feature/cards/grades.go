package cards

import (
	"card-manager/core/card"
	"card-manager/core/event"
)

var gradesVariant = variant[card.GradesStatic, card.GradesLive]{
	typ:         card.TypeGrades,
	description: "How analysts currently rate the stock, from strong buy to strong sell.",
	staticKeys:  []string{"source", "gradingCompany", "grading_company"},
	liveKeys: []string{
		"strongBuy", "strong_buy", "buy", "hold", "sell", "strongSell", "strong_sell", "consensus",
	},
	readStatic: func(cur card.GradesStatic, p event.Payload) card.GradesStatic {
		cur.Source = p.StringOr(cur.Source, "source", "gradingCompany", "grading_company")
		return cur
	},
	readLive: func(cur card.GradesLive, p event.Payload) card.GradesLive {
		cur.StrongBuy = p.IntOr(cur.StrongBuy, "strongBuy", "strong_buy")
		cur.Buy = p.IntOr(cur.Buy, "buy")
		cur.Hold = p.IntOr(cur.Hold, "hold")
		cur.Sell = p.IntOr(cur.Sell, "sell")
		cur.StrongSell = p.IntOr(cur.StrongSell, "strongSell", "strong_sell")
		cur.Consensus = p.StringOr(cur.Consensus, "consensus")
		cur.Timestamp = p.TimestampOr(cur.Timestamp, timestampKeys...)
		return cur
	},
	pack: func(s card.GradesStatic, l card.GradesLive) card.Data {
		return card.GradesData{Static: s, Live: l}
	},
	unpack: func(d card.Data) (card.GradesStatic, card.GradesLive, bool) {
		v, ok := d.(card.GradesData)
		return v.Static, v.Live, ok
	},
}
