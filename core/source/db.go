package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"card-manager/core/card"
	"card-manager/core/database"
	"card-manager/core/event"

	"gorm.io/gorm"
)

// Table describes where one card type is stored in the backend.
type Table struct {
	Name string
	// Order picks the newest row when a symbol has several, e.g. one per fiscal period.
	Order string
}

// DefaultTables maps every card type to its backend table.
func DefaultTables() map[card.Type]Table {
	return map[card.Type]Table{
		card.TypePrice:     {Name: "quotes"},
		card.TypeProfile:   {Name: "profiles"},
		card.TypeRevenue:   {Name: "income_statements", Order: "period_end DESC"},
		card.TypeSolvency:  {Name: "balance_sheets", Order: "period_end DESC"},
		card.TypeDividends: {Name: "dividends", Order: "ex_dividend_date DESC"},
		card.TypeGrades:    {Name: "analyst_grades"},
	}
}

// DBSource reads card payloads from relational tables keyed by symbol.
type DBSource struct {
	db      *gorm.DB
	tables  map[card.Type]Table
	timeout time.Duration
}

// NewDBSource creates a DBSource over db using the default tables.
func NewDBSource(db *gorm.DB, cfg Config) *DBSource {
	tables := DefaultTables()
	for t, tbl := range tables {
		tbl.Name = cfg.TablePrefix + tbl.Name
		tables[t] = tbl
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DBSource{db: db, tables: tables, timeout: timeout}
}

// Fetch implements Source.
func (s *DBSource) Fetch(ctx context.Context, symbol string, t card.Type) (event.Payload, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database source not connected")
	}
	tbl, ok := s.tables[t]
	if !ok {
		return nil, &card.UnknownTypeError{Type: t}
	}
	symbol = card.NormalizeSymbol(symbol)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	q := s.db.WithContext(ctx).Table(tbl.Name).Where("symbol = ?", symbol)
	if tbl.Order != "" {
		q = q.Order(tbl.Order)
	}

	row := map[string]any{}
	if err := q.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s/%s: %w", symbol, t, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch %s/%s from %s: %w", symbol, t, tbl.Name, err)
	}
	return event.Payload(row), nil
}

// Verify checks that every backend table exists and has a symbol column.
// It returns the names of the tables that failed the check.
func (s *DBSource) Verify() ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database source not connected")
	}
	var broken []string
	for _, t := range card.AllTypes() {
		tbl := s.tables[t]
		cols, err := database.GetTableColumns(s.db, tbl.Name)
		if err != nil {
			return nil, err
		}
		if !database.HasColumn(cols, "symbol") {
			broken = append(broken, tbl.Name)
		}
	}
	return broken, nil
}
