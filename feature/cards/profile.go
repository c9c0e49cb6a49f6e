package cards

import (
	"card-manager/core/card"
	"card-manager/core/event"
)

var profileVariant = variant[card.ProfileStatic, card.ProfileLive]{
	typ:         card.TypeProfile,
	description: "Company profile: what it does, where it trades and how large it is.",
	staticKeys: []string{
		"industry", "sector", "country", "exchange", "description", "ceo",
		"fullTimeEmployees", "full_time_employees", "employees", "ipoDate", "ipo_date",
	},
	liveKeys: []string{"marketCap", "mktCap", "market_cap", "beta"},
	readStatic: func(cur card.ProfileStatic, p event.Payload) card.ProfileStatic {
		cur.Industry = p.StringOr(cur.Industry, "industry")
		cur.Sector = p.StringOr(cur.Sector, "sector")
		cur.Country = p.StringOr(cur.Country, "country")
		cur.Exchange = p.StringOr(cur.Exchange, "exchange", "exchangeShortName", "exchange_short_name")
		cur.Description = p.StringOr(cur.Description, "description")
		cur.CEO = p.StringOr(cur.CEO, "ceo")
		cur.Employees = p.Int64Or(cur.Employees, "fullTimeEmployees", "full_time_employees", "employees")
		cur.IPODate = p.StringOr(cur.IPODate, "ipoDate", "ipo_date")
		return cur
	},
	readLive: func(cur card.ProfileLive, p event.Payload) card.ProfileLive {
		cur.MarketCap = p.DecimalOr(cur.MarketCap, "marketCap", "mktCap", "market_cap")
		cur.Beta = p.DecimalOr(cur.Beta, "beta")
		cur.Timestamp = p.TimestampOr(cur.Timestamp, timestampKeys...)
		return cur
	},
	pack: func(s card.ProfileStatic, l card.ProfileLive) card.Data {
		return card.ProfileData{Static: s, Live: l}
	},
	unpack: func(d card.Data) (card.ProfileStatic, card.ProfileLive, bool) {
		v, ok := d.(card.ProfileData)
		return v.Static, v.Live, ok
	},
}
