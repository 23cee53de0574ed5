// Package portfolio implements the valuation engine behind the
// scheduled portfolio performance report: point-in-time pricing, a
// two-date valuation pass, winners/losers analytics and the valuation
// history ledger.
package portfolio

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spelloconsulting/portfolioperf/logging"
)

// CashSymbol is the pseudo symbol that always prices at 1.0.
const CashSymbol = "cash"

// UnknownName is returned by NameOf for symbols absent from the table.
const UnknownName = "Unknown"

// PriceRecord is one imported price point. Immutable once loaded.
type PriceRecord struct {
	Symbol   string
	On       Date
	Name     string
	Currency string
	Price    decimal.Decimal
}

// PriceTable answers "what was the price of symbol S as of date D"
// using the most recent record on or before D.
type PriceTable struct {
	records []PriceRecord
	log     *logging.Logger
}

func NewPriceTable(log *logging.Logger) *PriceTable {
	return &PriceTable{log: log}
}

// Load appends records to the table and restores the descending
// (date, symbol) order the as-of scan relies on.
func (t *PriceTable) Load(records []PriceRecord) {
	t.records = append(t.records, records...)
	sort.SliceStable(t.records, func(i, j int) bool {
		a, b := t.records[i], t.records[j]
		if a.On != b.On {
			return a.On.After(b.On)
		}
		return a.Symbol > b.Symbol
	})
}

// Len returns the number of loaded price records.
func (t *PriceTable) Len() int { return len(t.records) }

// PriceOnDate returns the price and currency of a symbol as of the
// given date: the most recent record on or before it. The cash pseudo
// symbol always prices at 1.0 with no currency. A miss is logged as a
// warning and reported through ok=false.
func (t *PriceTable) PriceOnDate(symbol string, on Date) (price decimal.Decimal, currency string, ok bool) {
	if strings.EqualFold(symbol, CashSymbol) {
		return decimal.NewFromInt(1), "", true
	}

	// Records are sorted by descending date, so the first match is the
	// most recent one at or before the requested date.
	for _, rec := range t.records {
		if rec.Symbol == symbol && !rec.On.After(on) {
			return rec.Price, rec.Currency, true
		}
	}
	t.log.Warnf("No price found for symbol [%s] effective date %s", symbol, on)
	return decimal.Decimal{}, "", false
}

// NameOf returns the display name of a symbol from its first price
// record, the symbol itself when the record has no name, or "Unknown"
// when the symbol never appears. Absence is not an error.
func (t *PriceTable) NameOf(symbol string) string {
	for _, rec := range t.records {
		if rec.Symbol == symbol {
			if rec.Name == "" {
				return symbol
			}
			return rec.Name
		}
	}
	return UnknownName
}
