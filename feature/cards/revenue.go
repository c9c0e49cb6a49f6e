package cards

import (
	"card-manager/core/card"
	"card-manager/core/event"
)

var revenueVariant = variant[card.RevenueStatic, card.RevenueLive]{
	typ:         card.TypeRevenue,
	description: "Income statement highlights for the latest reported period.",
	staticKeys:  []string{"reportedCurrency", "reported_currency", "currency", "fiscalPeriod", "fiscal_period", "period"},
	liveKeys: []string{
		"revenue", "grossProfit", "gross_profit", "operatingIncome", "operating_income",
		"netIncome", "net_income", "eps",
	},
	readStatic: func(cur card.RevenueStatic, p event.Payload) card.RevenueStatic {
		cur.Currency = p.StringOr(cur.Currency, "reportedCurrency", "reported_currency", "currency")
		cur.FiscalPeriod = p.StringOr(cur.FiscalPeriod, "fiscalPeriod", "fiscal_period", "period")
		return cur
	},
	readLive: func(cur card.RevenueLive, p event.Payload) card.RevenueLive {
		cur.Revenue = p.DecimalOr(cur.Revenue, "revenue")
		cur.GrossProfit = p.DecimalOr(cur.GrossProfit, "grossProfit", "gross_profit")
		cur.OperatingIncome = p.DecimalOr(cur.OperatingIncome, "operatingIncome", "operating_income")
		cur.NetIncome = p.DecimalOr(cur.NetIncome, "netIncome", "net_income")
		cur.EPS = p.DecimalOr(cur.EPS, "eps")
		cur.PeriodEnd = p.StringOr(cur.PeriodEnd, "periodEnd", "period_end", "date")
		cur.Timestamp = p.TimestampOr(cur.Timestamp, timestampKeys...)
		return cur
	},
	pack: func(s card.RevenueStatic, l card.RevenueLive) card.Data {
		return card.RevenueData{Static: s, Live: l}
	},
	unpack: func(d card.Data) (card.RevenueStatic, card.RevenueLive, bool) {
		v, ok := d.(card.RevenueData)
		return v.Static, v.Live, ok
	},
}
