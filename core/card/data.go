package card

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Data is the sealed set of type-specific card payloads.
type Data interface {
	// CardType returns the tag this variant belongs to.
	CardType() Type
	// Parts returns the static and live halves as written to storage.
	Parts() (static any, live any)
	// LiveTimestamp returns the time the live half was observed, in unix milliseconds.
	LiveTimestamp() *int64
	// Headline is the main displayed value, empty when unknown.
	Headline() string

	unclocked() Data
}

// UnknownTypeError reports a type tag outside the closed set.
type UnknownTypeError struct {
	Type Type
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown card type %q", string(e.Type))
}

// NewData returns the empty variant for t.
func NewData(t Type) (Data, error) {
	switch t {
	case TypePrice:
		return PriceData{}, nil
	case TypeProfile:
		return ProfileData{}, nil
	case TypeRevenue:
		return RevenueData{}, nil
	case TypeSolvency:
		return SolvencyData{}, nil
	case TypeDividends:
		return DividendsData{}, nil
	case TypeGrades:
		return GradesData{}, nil
	default:
		return nil, &UnknownTypeError{Type: t}
	}
}

func money(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}

// Price

type PriceStatic struct {
	Exchange string `json:"exchange"`
	Currency string `json:"currency"`
}

type PriceLive struct {
	Price         decimal.NullDecimal `json:"price"`
	Change        decimal.NullDecimal `json:"change"`
	ChangePercent decimal.NullDecimal `json:"changePercent"`
	DayHigh       decimal.NullDecimal `json:"dayHigh"`
	DayLow        decimal.NullDecimal `json:"dayLow"`
	PreviousClose decimal.NullDecimal `json:"previousClose"`
	Volume        *int64              `json:"volume"`
	Timestamp     *int64              `json:"timestamp"`
}

type PriceData struct {
	Static PriceStatic
	Live   PriceLive
}

func (PriceData) CardType() Type { return TypePrice }
func (d PriceData) Parts() (any, any) { return d.Static, d.Live }
func (d PriceData) LiveTimestamp() *int64 { return d.Live.Timestamp }
func (d PriceData) Headline() string { return money(d.Live.Price) }
func (d PriceData) unclocked() Data {
	d.Live.Timestamp = nil
	return d
}

// Profile

type ProfileStatic struct {
	Industry    string `json:"industry"`
	Sector      string `json:"sector"`
	Country     string `json:"country"`
	Exchange    string `json:"exchange"`
	Description string `json:"description"`
	CEO         string `json:"ceo"`
	Employees   *int64 `json:"employees"`
	IPODate     string `json:"ipoDate"`
}

type ProfileLive struct {
	MarketCap decimal.NullDecimal `json:"marketCap"`
	Beta      decimal.NullDecimal `json:"beta"`
	Timestamp *int64              `json:"timestamp"`
}

type ProfileData struct {
	Static ProfileStatic
	Live   ProfileLive
}

func (ProfileData) CardType() Type { return TypeProfile }
func (d ProfileData) Parts() (any, any) { return d.Static, d.Live }
func (d ProfileData) LiveTimestamp() *int64 { return d.Live.Timestamp }
func (d ProfileData) Headline() string { return money(d.Live.MarketCap) }
func (d ProfileData) unclocked() Data {
	d.Live.Timestamp = nil
	return d
}

// Revenue

type RevenueStatic struct {
	Currency     string `json:"currency"`
	FiscalPeriod string `json:"fiscalPeriod"`
}

type RevenueLive struct {
	Revenue         decimal.NullDecimal `json:"revenue"`
	GrossProfit     decimal.NullDecimal `json:"grossProfit"`
	OperatingIncome decimal.NullDecimal `json:"operatingIncome"`
	NetIncome       decimal.NullDecimal `json:"netIncome"`
	EPS             decimal.NullDecimal `json:"eps"`
	PeriodEnd       string              `json:"periodEnd"`
	Timestamp       *int64              `json:"timestamp"`
}

type RevenueData struct {
	Static RevenueStatic
	Live   RevenueLive
}

func (RevenueData) CardType() Type { return TypeRevenue }
func (d RevenueData) Parts() (any, any) { return d.Static, d.Live }
func (d RevenueData) LiveTimestamp() *int64 { return d.Live.Timestamp }
func (d RevenueData) Headline() string { return money(d.Live.Revenue) }
func (d RevenueData) unclocked() Data {
	d.Live.Timestamp = nil
	return d
}

// Solvency

type SolvencyStatic struct {
	Currency string `json:"currency"`
}

type SolvencyLive struct {
	TotalAssets      decimal.NullDecimal `json:"totalAssets"`
	TotalLiabilities decimal.NullDecimal `json:"totalLiabilities"`
	Cash             decimal.NullDecimal `json:"cash"`
	TotalDebt        decimal.NullDecimal `json:"totalDebt"`
	FreeCashFlow     decimal.NullDecimal `json:"freeCashFlow"`
	PeriodEnd        string              `json:"periodEnd"`
	Timestamp        *int64              `json:"timestamp"`
}

type SolvencyData struct {
	Static SolvencyStatic
	Live   SolvencyLive
}

func (SolvencyData) CardType() Type { return TypeSolvency }
func (d SolvencyData) Parts() (any, any) { return d.Static, d.Live }
func (d SolvencyData) LiveTimestamp() *int64 { return d.Live.Timestamp }
func (d SolvencyData) Headline() string { return money(d.Live.TotalLiabilities) }
func (d SolvencyData) unclocked() Data {
	d.Live.Timestamp = nil
	return d
}

// Dividends

type DividendsStatic struct {
	Currency  string `json:"currency"`
	Frequency string `json:"frequency"`
}

type DividendsLive struct {
	LastDividend   decimal.NullDecimal `json:"lastDividend"`
	Yield          decimal.NullDecimal `json:"yield"`
	ExDividendDate string              `json:"exDividendDate"`
	PaymentDate    string              `json:"paymentDate"`
	Timestamp      *int64              `json:"timestamp"`
}

type DividendsData struct {
	Static DividendsStatic
	Live   DividendsLive
}

func (DividendsData) CardType() Type { return TypeDividends }
func (d DividendsData) Parts() (any, any) { return d.Static, d.Live }
func (d DividendsData) LiveTimestamp() *int64 { return d.Live.Timestamp }
func (d DividendsData) Headline() string { return money(d.Live.LastDividend) }
func (d DividendsData) unclocked() Data {
	d.Live.Timestamp = nil
	return d
}

// Grades

type GradesStatic struct {
	Source string `json:"source"`
}

type GradesLive struct {
	StrongBuy  int    `json:"strongBuy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strongSell"`
	Consensus  string `json:"consensus"`
	Timestamp  *int64 `json:"timestamp"`
}

// Total returns the number of analyst ratings.
func (l GradesLive) Total() int {
	return l.StrongBuy + l.Buy + l.Hold + l.Sell + l.StrongSell
}

type GradesData struct {
	Static GradesStatic
	Live   GradesLive
}

func (GradesData) CardType() Type { return TypeGrades }
func (d GradesData) Parts() (any, any) { return d.Static, d.Live }
func (d GradesData) LiveTimestamp() *int64 { return d.Live.Timestamp }
func (d GradesData) unclocked() Data {
	d.Live.Timestamp = nil
	return d
}

func (d GradesData) Headline() string {
	if d.Live.Consensus != "" {
		return d.Live.Consensus
	}
	if total := d.Live.Total(); total > 0 {
		return strconv.Itoa(total) + " ratings"
	}
	return ""
}
