package cards

import (
	"context"
	"errors"
	"testing"
	"time"

	"card-manager/core/card"
	"card-manager/core/event"
	"card-manager/core/reconcile"
	"card-manager/core/source"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(v int64) *int64 { return &v }

func TestEntries_CoverAllTypes(t *testing.T) {
	var types []card.Type
	for _, e := range Entries() {
		types = append(types, e.Type)
		assert.NotEmpty(t, DefaultDescription(e.Type))
	}
	assert.Equal(t, card.AllTypes(), types)
	assert.Empty(t, DefaultDescription("weather"))
	assert.NotPanics(t, func() { NewRegistry() })
}

func TestStale(t *testing.T) {
	current := card.PriceData{Live: card.PriceLive{Timestamp: ms(2_000_000_000_000)}}
	assert.True(t, stale(current, event.Payload{"timestamp": int64(1_999_999_999_999)}))
	assert.False(t, stale(current, event.Payload{"timestamp": int64(2_000_000_000_000)}))
	assert.False(t, stale(current, event.Payload{"timestamp": "garbage"}))
	assert.False(t, stale(current, event.Payload{}))
	assert.False(t, stale(card.PriceData{}, event.Payload{"timestamp": 1}))
	assert.False(t, stale(nil, event.Payload{"timestamp": 1}))
	assert.True(t, stale(current, event.Payload{"updated_at": "2020-01-01T00:00:00Z"}))
}

func TestPriceHandlers(t *testing.T) {
	current := card.PriceData{
		Static: card.PriceStatic{Exchange: "NASDAQ"},
		Live:   card.PriceLive{Price: dec("150"), DayHigh: dec("151"), Timestamp: ms(1_700_000_000_000)},
	}

	t.Run("realtime merges live fields", func(t *testing.T) {
		cand := priceVariant.realtime(current, event.Payload{"price": "152.5", "timestamp": int64(1_700_000_001_000)}, nil)
		got := cand.Data.(card.PriceData)
		assert.Equal(t, "152.5", got.Live.Price.Decimal.String())
		assert.Equal(t, "151", got.Live.DayHigh.Decimal.String(), "absent fields keep their value")
		assert.Equal(t, "NASDAQ", got.Static.Exchange)
		assert.Equal(t, int64(1_700_000_001_000), *got.Live.Timestamp)
		assert.Equal(t, "150", current.Live.Price.Decimal.String(), "input must not be mutated")
	})

	t.Run("realtime rejects stale", func(t *testing.T) {
		cand := priceVariant.realtime(current, event.Payload{"price": 1, "timestamp": int64(1_600_000_000_000)}, nil)
		assert.Equal(t, current, cand.Data)
	})

	t.Run("realtime ignores foreign payloads", func(t *testing.T) {
		cand := priceVariant.realtime(current, event.Payload{"beta": 1}, nil)
		assert.Equal(t, current, cand.Data)
	})

	t.Run("realtime never proposes for empty slot", func(t *testing.T) {
		cand := priceVariant.realtime(nil, event.Payload{"price": 1}, nil)
		assert.Nil(t, cand.Data)
	})

	t.Run("static patch", func(t *testing.T) {
		cand := priceVariant.staticPatch(current, event.Payload{"exchange_short_name": "NYSE", "companyName": "Apple", "backDescription": "custom"}, nil)
		got := cand.Data.(card.PriceData)
		assert.Equal(t, "NYSE", got.Static.Exchange)
		assert.Equal(t, current.Live, got.Live)
		assert.Equal(t, "Apple", cand.Display.CompanyName)
		assert.Equal(t, "custom", cand.Description)

		assert.Nil(t, priceVariant.staticPatch(nil, event.Payload{"exchange": "X"}, nil).Data)
	})

	t.Run("fetch from backend row", func(t *testing.T) {
		row := event.Payload{"symbol": "AAPL", "price": []byte("189.9"), "changes_percentage": "x", "change_percent": "1.1", "volume": "1200", "updated_at": time.UnixMilli(1_700_000_000_000)}
		cand := priceVariant.fetch(nil, row, nil)
		got := cand.Data.(card.PriceData)
		assert.Equal(t, "189.9", got.Live.Price.Decimal.String())
		assert.Equal(t, "1.1", got.Live.ChangePercent.Decimal.String())
		assert.Equal(t, int64(1200), *got.Live.Volume)
		assert.Equal(t, int64(1_700_000_000_000), *got.Live.Timestamp)
	})

	t.Run("fetch needs live fields to create", func(t *testing.T) {
		assert.Nil(t, priceVariant.fetch(nil, event.Payload{"currency": "USD"}, nil).Data)
		cand := priceVariant.fetch(current, event.Payload{"currency": "USD"}, nil)
		assert.Equal(t, "USD", cand.Data.(card.PriceData).Static.Currency)
	})
}

func TestGradesAndDividendsReaders(t *testing.T) {
	cand := gradesVariant.fetch(nil, event.Payload{"strong_buy": "4", "buy": 3.0, "hold": "bad", "grading_company": "Street"}, nil)
	g := cand.Data.(card.GradesData)
	assert.Equal(t, 4, g.Live.StrongBuy)
	assert.Equal(t, 3, g.Live.Buy)
	assert.Equal(t, 0, g.Live.Hold)
	assert.Equal(t, "Street", g.Static.Source)

	cand = dividendsVariant.fetch(nil, event.Payload{"dividend": "0.24", "ex_dividend_date": "2024-05-10", "frequency": "Quarterly"}, nil)
	d := cand.Data.(card.DividendsData)
	assert.Equal(t, "0.24", d.Live.LastDividend.Decimal.String())
	assert.Equal(t, "2024-05-10", d.Live.ExDividendDate)
	assert.Equal(t, "Quarterly", d.Static.Frequency)
	assert.False(t, d.Live.Yield.Valid)
}

func TestStatementReaders(t *testing.T) {
	rev := revenueVariant.fetch(nil, event.Payload{"revenue": 100, "net_income": 20, "reported_currency": "EUR", "date": "2024-03-31"}, nil).Data.(card.RevenueData)
	assert.Equal(t, "EUR", rev.Static.Currency)
	assert.Equal(t, "2024-03-31", rev.Live.PeriodEnd)
	assert.Equal(t, "20", rev.Live.NetIncome.Decimal.String())

	sol := solvencyVariant.fetch(nil, event.Payload{"total_assets": "500", "cash_and_cash_equivalents": "50"}, nil).Data.(card.SolvencyData)
	assert.Equal(t, "500", sol.Live.TotalAssets.Decimal.String())
	assert.Equal(t, "50", sol.Live.Cash.Decimal.String())
	assert.False(t, sol.Live.TotalLiabilities.Valid)

	prof := profileVariant.fetch(nil, event.Payload{"mktCap": 1e9, "full_time_employees": "164000", "ceo": "Tim Cook"}, nil).Data.(card.ProfileData)
	assert.Equal(t, "1000000000", prof.Live.MarketCap.Decimal.String())
	assert.Equal(t, int64(164000), *prof.Static.Employees)
	assert.Equal(t, "Tim Cook", prof.Static.CEO)
}

func TestInitialize(t *testing.T) {
	src := source.NewMapSource()
	src.Set("AAPL", card.TypePrice, event.Payload{"price": 150, "companyName": "Apple Inc."})
	src.Set("AAPL", card.TypeProfile, event.Payload{"sector": "Technology"})
	now := time.UnixMilli(1_700_000_000_000)
	ic := reconcile.InitContext{Source: src, NewID: func() string { return "fixed" }, Now: func() time.Time { return now }}

	got, err := priceVariant.initialize(context.Background(), "AAPL", ic)
	require.NoError(t, err)
	assert.False(t, got.Empty)
	assert.Equal(t, "fixed", got.Card.ID)
	assert.Equal(t, now.UnixMilli(), got.Card.CreatedAt)
	assert.Equal(t, "Apple Inc.", got.Card.CompanyName)
	assert.Equal(t, priceVariant.description, got.Card.Back.Description)

	shell, err := profileVariant.initialize(context.Background(), "AAPL", ic)
	require.NoError(t, err)
	assert.True(t, shell.Empty, "a row without live fields renders a blank card")

	missing, err := gradesVariant.initialize(context.Background(), "AAPL", ic)
	require.NoError(t, err)
	assert.True(t, missing.Empty)
	assert.Equal(t, card.GradesData{}, missing.Card.Data)

	_, err = priceVariant.initialize(context.Background(), "AAPL", reconcile.InitContext{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = priceVariant.initialize(ctx, "AAPL", ic)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCreate(t *testing.T) {
	key := card.Key{Symbol: "AAPL", Type: card.TypeGrades}
	_, err := Create(key, reconcile.Candidate{})
	assert.Error(t, err)

	c, err := Create(key, reconcile.Candidate{Data: card.GradesData{}, Display: card.Display{CompanyName: "Apple"}})
	require.NoError(t, err)
	assert.Equal(t, key, c.Key())
	assert.Equal(t, "Apple", c.CompanyName)
	assert.Equal(t, gradesVariant.description, c.Back.Description)
}

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}
