package reconcile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"card-manager/core/card"
	"card-manager/core/event"
	"card-manager/core/rarity"
	"card-manager/core/reconcile"
	"card-manager/core/source"
	"card-manager/feature/cards"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aaplPrice = card.Key{Symbol: "AAPL", Type: card.TypePrice}

func newEngine(t *testing.T) *reconcile.Engine {
	t.Helper()
	return reconcile.NewEngine(cards.NewRegistry(), rarity.Evaluate, nil)
}

func priceOf(t *testing.T, c *card.Card) string {
	t.Helper()
	require.NotNil(t, c)
	data, ok := c.Data.(card.PriceData)
	require.True(t, ok, "expected price data, got %T", c.Data)
	require.True(t, data.Live.Price.Valid)
	return data.Live.Price.Decimal.String()
}

func apply(t *testing.T, e *reconcile.Engine, deck []card.Card, ev event.Event, create reconcile.CreatorFunc) reconcile.Outcome {
	t.Helper()
	out, err := e.Apply(deck, ev, create)
	require.NoError(t, err)
	return out
}

func assertUnique(t *testing.T, deck []card.Card) {
	t.Helper()
	seen := map[card.Key]bool{}
	for _, c := range deck {
		assert.False(t, seen[c.Key()], "duplicate slot %s", c.Key())
		seen[c.Key()] = true
	}
}

func assertRaritySynced(t *testing.T, deck []card.Card) {
	t.Helper()
	for _, c := range deck {
		r, reason := rarity.Evaluate(c)
		assert.Equal(t, r, c.Rarity, c.Key().String())
		assert.Equal(t, reason, c.RarityReason, c.Key().String())
	}
}

func TestApply_PriceScenario(t *testing.T) {
	e := newEngine(t)
	var deck []card.Card

	// Fetch with a creator fills the empty slot.
	out := apply(t, e, deck, event.Event{
		Symbol: "AAPL", Reason: event.ReasonFetch, Type: card.TypePrice,
		Payload: event.Payload{"price": 150}, Timestamp: 1000,
	}, cards.Create)
	require.True(t, out.Changed)
	require.Len(t, out.Cards, 1)
	deck = out.Cards
	id := deck[0].ID
	assert.NotEmpty(t, id)
	assert.Equal(t, "150", priceOf(t, &deck[0]))

	// Same value, newer timestamp: nothing observable changed.
	out = apply(t, e, deck, event.Event{
		Symbol: "AAPL", Reason: event.ReasonRealtime, Type: card.TypePrice,
		Payload: event.Payload{"price": 150}, Timestamp: 2000,
	}, nil)
	assert.False(t, out.Changed)
	assert.Equal(t, deck, out.Cards)

	// New value, newer timestamp: updated in place.
	out = apply(t, e, deck, event.Event{
		Symbol: "AAPL", Reason: event.ReasonRealtime, Type: card.TypePrice,
		Payload: event.Payload{"price": 155}, Timestamp: 3000,
	}, nil)
	require.True(t, out.Changed)
	deck = out.Cards
	require.Len(t, deck, 1)
	assert.Equal(t, id, deck[0].ID)
	assert.Equal(t, "155", priceOf(t, &deck[0]))

	// Older than the displayed data: rejected.
	out = apply(t, e, deck, event.Event{
		Symbol: "AAPL", Reason: event.ReasonRealtime, Type: card.TypePrice,
		Payload: event.Payload{"price": 140}, Timestamp: 2500,
	}, nil)
	assert.False(t, out.Changed)
	assert.Equal(t, "155", priceOf(t, &out.Cards[0]))
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	e := newEngine(t)
	deck := apply(t, e, nil, event.Event{
		Symbol: "AAPL", Reason: event.ReasonFetch, Type: card.TypePrice,
		Payload: event.Payload{"price": 150}, Timestamp: 1,
	}, cards.Create).Cards

	before := deck[0]
	res := e.Reconcile(deck, aaplPrice, event.Payload{"price": 160, "timestamp": 2},
		e.Updater(card.TypePrice, event.ReasonRealtime), nil)
	require.True(t, res.Changed)
	assert.Equal(t, before, deck[0], "input slice must be left untouched")
	assert.Equal(t, "160", priceOf(t, res.Card))
	assert.Equal(t, "150", priceOf(t, res.Previous))
}

func TestReconcile_RealtimeNeverCreates(t *testing.T) {
	e := newEngine(t)
	out := apply(t, e, nil, event.Event{
		Symbol: "AAPL", Reason: event.ReasonRealtime, Type: card.TypePrice,
		Payload: event.Payload{"price": 150},
	}, cards.Create)
	assert.False(t, out.Changed)
	assert.Empty(t, out.Cards)
}

func TestReconcile_NoCreatorDropsEvent(t *testing.T) {
	e := newEngine(t)
	out := apply(t, e, nil, event.Event{
		Symbol: "AAPL", Reason: event.ReasonFetch, Type: card.TypePrice,
		Payload: event.Payload{"price": 150},
	}, nil)
	assert.False(t, out.Changed)
	assert.Empty(t, out.Cards)
}

func TestReconcile_Idempotent(t *testing.T) {
	e := newEngine(t)
	ev := event.Event{
		Symbol: "MSFT", Reason: event.ReasonFetch, Type: card.TypeRevenue,
		Payload: event.Payload{"revenue": "1000", "net_income": "300", "period_end": "2024-06-30"},
	}
	first := apply(t, e, nil, ev, cards.Create)
	require.True(t, first.Changed)

	second := apply(t, e, first.Cards, ev, cards.Create)
	assert.False(t, second.Changed)
	assert.Equal(t, first.Cards, second.Cards)
}

func TestReconcile_OrderPreservedAndAfter(t *testing.T) {
	e := newEngine(t)
	var deck []card.Card
	for _, sym := range []string{"AAPL", "MSFT", "NVDA"} {
		deck = apply(t, e, deck, event.Event{
			Symbol: sym, Reason: event.ReasonFetch, Type: card.TypePrice,
			Payload: event.Payload{"price": 10},
		}, cards.Create).Cards
	}
	require.Len(t, deck, 3)

	out := apply(t, e, deck, event.Event{
		Symbol: "MSFT", Reason: event.ReasonRealtime, Type: card.TypePrice,
		Payload: event.Payload{"price": 11},
	}, nil)
	require.True(t, out.Changed)
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, reconcile.Symbols(out.Cards))

	msft := out.Cards[1].ID
	res, err := e.Apply(out.Cards, event.Event{
		Symbol: "MSFT", Reason: event.ReasonFetch, Type: card.TypeGrades,
		Payload: event.Payload{"buy": 3, "hold": 1},
	}, cards.Create, reconcile.After(msft))
	require.NoError(t, err)
	require.Len(t, res.Cards, 4)
	assert.Equal(t, card.TypeGrades, res.Cards[2].Type)
	assert.Equal(t, "MSFT", res.Cards[2].Symbol)
	assert.Equal(t, "NVDA", res.Cards[3].Symbol)
}

func TestReconcile_RarityIsPartOfChange(t *testing.T) {
	e := newEngine(t)
	deck := apply(t, e, nil, event.Event{
		Symbol: "AAPL", Reason: event.ReasonFetch, Type: card.TypePrice,
		Payload: event.Payload{"price": 100, "changePercent": 0.5},
	}, cards.Create).Cards
	assert.Equal(t, card.RarityCommon, deck[0].Rarity)

	out := apply(t, e, deck, event.Event{
		Symbol: "AAPL", Reason: event.ReasonRealtime, Type: card.TypePrice,
		Payload: event.Payload{"changePercent": 6},
	}, nil)
	require.True(t, out.Changed)
	assert.Equal(t, card.RarityEpic, out.Cards[0].Rarity)
	assertRaritySynced(t, out.Cards)
}

func TestReconcile_MalformedPayloadDegrades(t *testing.T) {
	e := newEngine(t)
	deck := apply(t, e, nil, event.Event{
		Symbol: "AAPL", Reason: event.ReasonFetch, Type: card.TypePrice,
		Payload: event.Payload{"price": 100, "dayHigh": 101, "timestamp": int64(1_700_000_005_000)},
	}, cards.Create).Cards

	out := apply(t, e, deck, event.Event{
		Symbol: "AAPL", Reason: event.ReasonRealtime, Type: card.TypePrice,
		Payload: event.Payload{"price": "n/a", "dayHigh": 102, "timestamp": "not a time"},
	}, nil)
	require.True(t, out.Changed)
	data := out.Cards[0].Data.(card.PriceData)
	assert.False(t, data.Live.Price.Valid)
	assert.Equal(t, "102", data.Live.DayHigh.Decimal.String())
	require.NotNil(t, data.Live.Timestamp, "unreadable timestamp keeps the shown one")
	assert.Equal(t, int64(1_700_000_005_000), *data.Live.Timestamp)

	older := apply(t, e, out.Cards, event.Event{
		Symbol: "AAPL", Reason: event.ReasonRealtime, Type: card.TypePrice,
		Payload: event.Payload{"price": 90, "timestamp": int64(1_700_000_001_000)},
	}, nil)
	assert.False(t, older.Changed)
	assert.Equal(t, out.Cards, older.Cards)
}

func TestReconcile_PanickingHandlerIsNoop(t *testing.T) {
	e := newEngine(t)
	deck := apply(t, e, nil, event.Event{
		Symbol: "AAPL", Reason: event.ReasonFetch, Type: card.TypePrice,
		Payload: event.Payload{"price": 100},
	}, cards.Create).Cards

	boom := func(card.Data, event.Payload, *card.Card) reconcile.Candidate { panic("boom") }
	res := e.Reconcile(deck, aaplPrice, event.Payload{}, boom, cards.Create)
	assert.False(t, res.Changed)
	assert.Equal(t, deck, res.Cards)
}

func TestReconcile_RejectsForeignVariant(t *testing.T) {
	e := newEngine(t)
	wrong := func(card.Data, event.Payload, *card.Card) reconcile.Candidate {
		return reconcile.Candidate{Data: card.GradesData{}}
	}
	res := e.Reconcile(nil, aaplPrice, event.Payload{}, wrong, cards.Create)
	assert.False(t, res.Changed)
	assert.Empty(t, res.Cards)
}

func TestReconcile_CreatorErrorDropsEvent(t *testing.T) {
	e := newEngine(t)
	failing := func(card.Key, reconcile.Candidate) (card.Card, error) { return card.Card{}, errors.New("nope") }
	res := e.Reconcile(nil, aaplPrice, event.Payload{"price": 1}, e.Updater(card.TypePrice, event.ReasonFetch), failing)
	assert.False(t, res.Changed)
	assert.Empty(t, res.Cards)
}

func TestApply_FanOutAndUniqueness(t *testing.T) {
	e := newEngine(t)
	events := []event.Event{
		{Symbol: "aapl", Reason: event.ReasonFetch, Payload: event.Payload{"price": 150, "marketCap": "3000000000000"}},
		{Symbol: "AAPL", Reason: event.ReasonFetch, Payload: event.Payload{"price": 151}},
		{Symbol: "AAPL ", Reason: event.ReasonFetch, Type: card.TypePrice, Payload: event.Payload{"price": 152}},
		{Symbol: "AAPL", Reason: event.ReasonRealtime, Payload: event.Payload{"beta": 1.2}},
		{Symbol: "MSFT", Reason: event.ReasonFetch, Payload: event.Payload{"currency": "USD"}},
	}

	var deck []card.Card
	for _, ev := range events {
		deck = apply(t, e, deck, ev, cards.Create).Cards
		assertUnique(t, deck)
		assertRaritySynced(t, deck)
	}

	require.Len(t, deck, 2, "descriptive-only fetches never create cards")
	assert.Equal(t, card.TypePrice, deck[0].Type)
	assert.Equal(t, card.TypeProfile, deck[1].Type)
	assert.Equal(t, "152", priceOf(t, &deck[0]))
	assert.Equal(t, card.RarityLegendary, deck[1].Rarity)
}

func TestApply_FanOutSharedPeriodKey(t *testing.T) {
	e := newEngine(t)
	out := apply(t, e, nil, event.Event{
		Symbol: "AAPL", Reason: event.ReasonFetch,
		Payload: event.Payload{"totalAssets": 100, "totalLiabilities": 50, "periodEnd": "2024-12-31"},
	}, cards.Create)

	require.Len(t, out.Cards, 1, "a balance sheet payload only creates the solvency card")
	assert.Equal(t, card.TypeSolvency, out.Cards[0].Type)
	assert.Equal(t, "2024-12-31", out.Cards[0].Data.(card.SolvencyData).Live.PeriodEnd)

	dated := apply(t, e, out.Cards, event.Event{
		Symbol: "AAPL", Reason: event.ReasonRealtime,
		Payload: event.Payload{"periodEnd": "2025-03-31"},
	}, cards.Create)
	assert.False(t, dated.Changed, "a period alone is not a live update")
}

func TestApply_InvalidAndUnregistered(t *testing.T) {
	reg := reconcile.NewRegistry()
	e := reconcile.NewEngine(reg, rarity.Evaluate, nil)

	_, err := e.Apply(nil, event.Event{Symbol: "", Reason: event.ReasonFetch}, nil)
	assert.ErrorIs(t, err, event.ErrInvalidEvent)

	out, err := e.Apply(nil, event.Event{Symbol: "AAPL", Reason: event.ReasonFetch, Type: card.TypePrice,
		Payload: event.Payload{"price": 1}}, cards.Create)
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Empty(t, out.Cards)
}

func TestDispatch(t *testing.T) {
	e := newEngine(t)
	deck := apply(t, e, nil, event.Event{
		Symbol: "AAPL", Reason: event.ReasonFetch, Type: card.TypePrice,
		Payload: event.Payload{"price": 150, "timestamp": 10},
	}, cards.Create).Cards
	c := deck[0]

	updated := e.Dispatch(c, event.ReasonRealtime, event.Payload{"price": 151, "timestamp": 11})
	assert.Equal(t, c.ID, updated.ID)
	assert.Equal(t, "151", priceOf(t, &updated))

	patched := e.Dispatch(c, event.ReasonStaticPatch, event.Payload{"companyName": "Apple Inc.", "currency": "USD"})
	assert.Equal(t, "Apple Inc.", patched.CompanyName)
	assert.Equal(t, "USD", patched.Data.(card.PriceData).Static.Currency)

	same := e.Dispatch(c, event.ReasonRealtime, event.Payload{"unrelated": true})
	assert.Equal(t, c, same)
}

func TestUpdater_FallsBackToDisplayMerge(t *testing.T) {
	reg := reconcile.NewRegistry()
	entry := cards.Entries()[0]
	entry.Updates = nil
	require.NoError(t, reg.Register(entry))
	e := reconcile.NewEngine(reg, rarity.Evaluate, nil)

	c := card.Card{ID: "x", Type: card.TypePrice, Symbol: "AAPL", Data: card.PriceData{}}
	e.Stamp(&c)

	merged := e.Dispatch(c, event.ReasonStaticPatch, event.Payload{"logo_url": "https://logo", "website": "https://apple.com"})
	assert.Equal(t, "https://logo", merged.LogoURL)
	assert.Equal(t, "https://apple.com", merged.WebsiteURL)
	assert.Equal(t, "x", merged.ID)

	unchanged := e.Dispatch(c, event.ReasonRealtime, event.Payload{"price": 1})
	assert.Equal(t, c, unchanged)
}

func TestAdopt_RechecksSlot(t *testing.T) {
	e := newEngine(t)
	src := source.NewMapSource()
	src.Set("AAPL", card.TypePrice, event.Payload{"price": 150})

	init1, err := e.Initialize(context.Background(), aaplPrice, src)
	require.NoError(t, err)
	init2, err := e.Initialize(context.Background(), aaplPrice, src)
	require.NoError(t, err)

	first := e.Adopt(nil, init1.Card)
	require.True(t, first.Changed)
	require.True(t, first.Created)

	late := e.Adopt(first.Cards, init2.Card)
	assert.False(t, late.Changed)
	assert.Len(t, late.Cards, 1)
	assert.Equal(t, init1.Card.ID, late.Card.ID)
}

func TestInitialize_Outcomes(t *testing.T) {
	e := newEngine(t)
	src := source.NewMapSource()
	src.Set("AAPL", card.TypeDividends, event.Payload{"dividend_yield": "0.5", "last_dividend": "0.25"})

	full, err := e.Initialize(context.Background(), card.Key{Symbol: "aapl", Type: card.TypeDividends}, src)
	require.NoError(t, err)
	assert.False(t, full.Empty)
	assert.Equal(t, "AAPL", full.Card.Symbol)
	assert.Equal(t, card.RarityUncommon, full.Card.Rarity)

	empty, err := e.Initialize(context.Background(), card.Key{Symbol: "AAPL", Type: card.TypeGrades}, src)
	require.NoError(t, err)
	assert.True(t, empty.Empty)
	assert.Equal(t, card.GradesData{}, empty.Card.Data)

	_, err = e.Initialize(context.Background(), aaplPrice, failingSource{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, source.ErrNotFound))

	_, err = e.Initialize(context.Background(), card.Key{Symbol: "AAPL", Type: "weather"}, src)
	var unknown *card.UnknownTypeError
	assert.ErrorAs(t, err, &unknown)
}

type failingSource struct{}

func (failingSource) Fetch(context.Context, string, card.Type) (event.Payload, error) {
	return nil, errors.New("backend unreachable")
}

func TestEngine_CreatedCardsGetIdentity(t *testing.T) {
	e := newEngine(t)
	start := time.Now().UnixMilli()
	out := apply(t, e, nil, event.Event{
		Symbol: "AAPL", Reason: event.ReasonFetch, Type: card.TypeProfile,
		Payload: event.Payload{"mktCap": decimal.NewFromInt(5).String(), "companyName": "Apple Inc."},
	}, cards.Create)
	require.Len(t, out.Cards, 1)
	c := out.Cards[0]
	assert.NotEmpty(t, c.ID)
	assert.GreaterOrEqual(t, c.CreatedAt, start)
	assert.Equal(t, "Apple Inc.", c.CompanyName)
	assert.Equal(t, cards.DefaultDescription(card.TypeProfile), c.Back.Description)
}
