package cards

import (
	"card-manager/core/card"
	"card-manager/core/event"
)

var solvencyVariant = variant[card.SolvencyStatic, card.SolvencyLive]{
	typ:         card.TypeSolvency,
	description: "Balance sheet strength: assets against liabilities, cash and debt.",
	staticKeys:  []string{"reportedCurrency", "reported_currency", "currency"},
	liveKeys: []string{
		"totalAssets", "total_assets", "totalLiabilities", "total_liabilities",
		"cash", "cashAndCashEquivalents", "cash_and_cash_equivalents", "totalDebt", "total_debt",
		"freeCashFlow", "free_cash_flow",
	},
	readStatic: func(cur card.SolvencyStatic, p event.Payload) card.SolvencyStatic {
		cur.Currency = p.StringOr(cur.Currency, "reportedCurrency", "reported_currency", "currency")
		return cur
	},
	readLive: func(cur card.SolvencyLive, p event.Payload) card.SolvencyLive {
		cur.TotalAssets = p.DecimalOr(cur.TotalAssets, "totalAssets", "total_assets")
		cur.TotalLiabilities = p.DecimalOr(cur.TotalLiabilities, "totalLiabilities", "total_liabilities")
		cur.Cash = p.DecimalOr(cur.Cash, "cash", "cashAndCashEquivalents", "cash_and_cash_equivalents")
		cur.TotalDebt = p.DecimalOr(cur.TotalDebt, "totalDebt", "total_debt")
		cur.FreeCashFlow = p.DecimalOr(cur.FreeCashFlow, "freeCashFlow", "free_cash_flow")
		cur.PeriodEnd = p.StringOr(cur.PeriodEnd, "periodEnd", "period_end", "date")
		cur.Timestamp = p.TimestampOr(cur.Timestamp, timestampKeys...)
		return cur
	},
	pack: func(s card.SolvencyStatic, l card.SolvencyLive) card.Data {
		return card.SolvencyData{Static: s, Live: l}
	},
	unpack: func(d card.Data) (card.SolvencyStatic, card.SolvencyLive, bool) {
		v, ok := d.(card.SolvencyData)
		return v.Static, v.Live, ok
	},
}
