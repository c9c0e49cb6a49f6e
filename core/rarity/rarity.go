package rarity

import (
	"fmt"

	"card-manager/core/card"

	"github.com/shopspring/decimal"
)

// tier maps a lower bound to a rarity. Tiers are checked from the highest bound down.
type tier struct {
	min    decimal.Decimal
	rarity card.Rarity
	label  string
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	moveTiers = []tier{
		{d("10"), card.RarityLegendary, "Historic move"},
		{d("5"), card.RarityEpic, "Big move"},
		{d("3"), card.RarityRare, "Strong move"},
		{d("1.5"), card.RarityUncommon, "Active session"},
	}
	capTiers = []tier{
		{d("1000000000000"), card.RarityLegendary, "Trillion-dollar company"},
		{d("200000000000"), card.RarityEpic, "Mega cap"},
		{d("10000000000"), card.RarityRare, "Large cap"},
		{d("2000000000"), card.RarityUncommon, "Mid cap"},
	}
	marginTiers = []tier{
		{d("0.40"), card.RarityLegendary, "Exceptional net margin"},
		{d("0.25"), card.RarityEpic, "High net margin"},
		{d("0.15"), card.RarityRare, "Healthy net margin"},
		{d("0.0001"), card.RarityUncommon, "Profitable"},
	}
	yieldTiers = []tier{
		{d("8"), card.RarityLegendary, "Exceptional yield"},
		{d("5"), card.RarityEpic, "High yield"},
		{d("3"), card.RarityRare, "Solid yield"},
		{d("0.0001"), card.RarityUncommon, "Pays a dividend"},
	}
	buyTiers = []tier{
		{d("0.90"), card.RarityLegendary, "Near-unanimous buy"},
		{d("0.75"), card.RarityEpic, "Strong buy consensus"},
		{d("0.60"), card.RarityRare, "Buy consensus"},
		{d("0.40"), card.RarityUncommon, "Mixed with buy tilt"},
	}
	// Solvency tiers are upper bounds on liabilities/assets, lower is better.
	leverageTiers = []tier{
		{d("0.20"), card.RarityLegendary, "Fortress balance sheet"},
		{d("0.40"), card.RarityEpic, "Very low leverage"},
		{d("0.60"), card.RarityRare, "Moderate leverage"},
		{d("0.80"), card.RarityUncommon, "Elevated leverage"},
	}
)

func atLeast(v decimal.Decimal, tiers []tier, detail string) (card.Rarity, string) {
	for _, t := range tiers {
		if v.GreaterThanOrEqual(t.min) {
			return t.rarity, fmt.Sprintf("%s (%s)", t.label, detail)
		}
	}
	return card.RarityCommon, ""
}

func percent(v decimal.Decimal) string {
	return v.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// Evaluate returns the rarity tier and a short reason for c's current data.
func Evaluate(c card.Card) (card.Rarity, string) {
	switch data := c.Data.(type) {
	case card.PriceData:
		return price(data)
	case card.ProfileData:
		return profile(data)
	case card.RevenueData:
		return revenue(data)
	case card.SolvencyData:
		return solvency(data)
	case card.DividendsData:
		return dividends(data)
	case card.GradesData:
		return grades(data)
	case nil:
		return card.RarityCommon, "No data yet"
	default:
		return card.RarityCommon, fmt.Sprintf("Unrated card type %q", string(c.Type))
	}
}

func price(data card.PriceData) (card.Rarity, string) {
	move := data.Live.ChangePercent
	if !move.Valid {
		if !data.Live.Price.Valid {
			return card.RarityCommon, "No price data yet"
		}
		return card.RarityCommon, "No change data"
	}
	abs := move.Decimal.Abs()
	r, reason := atLeast(abs, moveTiers, move.Decimal.StringFixed(2)+"% today")
	if r == card.RarityCommon {
		return r, "Quiet session"
	}
	return r, reason
}

func profile(data card.ProfileData) (card.Rarity, string) {
	if !data.Live.MarketCap.Valid {
		return card.RarityCommon, "Market cap unknown"
	}
	r, reason := atLeast(data.Live.MarketCap.Decimal, capTiers, "market cap "+data.Live.MarketCap.Decimal.StringFixed(0))
	if r == card.RarityCommon {
		return r, "Small cap"
	}
	return r, reason
}

func revenue(data card.RevenueData) (card.Rarity, string) {
	rev, net := data.Live.Revenue, data.Live.NetIncome
	if !rev.Valid || !net.Valid || !rev.Decimal.IsPositive() {
		return card.RarityCommon, "Revenue data incomplete"
	}
	margin := net.Decimal.Div(rev.Decimal)
	r, reason := atLeast(margin, marginTiers, percent(margin))
	if r == card.RarityCommon {
		return r, "Unprofitable"
	}
	return r, reason
}

func solvency(data card.SolvencyData) (card.Rarity, string) {
	assets, liabilities := data.Live.TotalAssets, data.Live.TotalLiabilities
	if !assets.Valid || !liabilities.Valid || !assets.Decimal.IsPositive() {
		return card.RarityCommon, "Balance sheet incomplete"
	}
	ratio := liabilities.Decimal.Div(assets.Decimal)
	for _, t := range leverageTiers {
		if ratio.LessThan(t.min) {
			return t.rarity, fmt.Sprintf("%s (%s liabilities/assets)", t.label, percent(ratio))
		}
	}
	return card.RarityCommon, "Highly leveraged"
}

func dividends(data card.DividendsData) (card.Rarity, string) {
	if !data.Live.Yield.Valid {
		if data.Live.LastDividend.Valid && data.Live.LastDividend.Decimal.IsPositive() {
			return card.RarityUncommon, "Pays a dividend"
		}
		return card.RarityCommon, "No dividend"
	}
	y := data.Live.Yield.Decimal
	r, reason := atLeast(y, yieldTiers, y.StringFixed(2)+"% yield")
	if r == card.RarityCommon {
		return r, "No dividend"
	}
	return r, reason
}

func grades(data card.GradesData) (card.Rarity, string) {
	total := data.Live.Total()
	if total == 0 {
		return card.RarityCommon, "No analyst coverage"
	}
	buys := decimal.NewFromInt(int64(data.Live.StrongBuy + data.Live.Buy))
	share := buys.Div(decimal.NewFromInt(int64(total)))
	r, reason := atLeast(share, buyTiers, fmt.Sprintf("%s of %d analysts", percent(share), total))
	if r == card.RarityCommon {
		return r, "Analysts lean cautious"
	}
	return r, reason
}
