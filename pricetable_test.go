package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spelloconsulting/portfolioperf/date"
)

func testPrices(t *testing.T) *PriceTable {
	t.Helper()
	table := NewPriceTable(newTestLogger(t))
	table.Load([]PriceRecord{
		{Symbol: "AAPL", On: date.New(2026, 8, 10), Name: "Apple Inc", Currency: "USD", Price: decimal.NewFromInt(148)},
		{Symbol: "AAPL", On: date.New(2026, 8, 14), Name: "Apple Inc", Currency: "USD", Price: decimal.NewFromInt(150)},
		{Symbol: "AUD=X", On: date.New(2026, 8, 14), Currency: "", Price: decimal.NewFromFloat(1.52)},
	})
	return table
}

func TestPriceOnDate(t *testing.T) {
	table := testPrices(t)

	tests := []struct {
		symbol string
		on     date.Date
		want   string
		ok     bool
	}{
		// exact date match
		{"AAPL", date.New(2026, 8, 14), "150", true},
		// as-of: most recent record on or before the date
		{"AAPL", date.New(2026, 8, 12), "148", true},
		{"AAPL", date.New(2026, 8, 20), "150", true},
		// before the first record is a miss
		{"AAPL", date.New(2026, 8, 1), "", false},
		// unknown symbol is a miss
		{"MSFT", date.New(2026, 8, 14), "", false},
		// the cash pseudo symbol always prices at 1, case-insensitively
		{"cash", date.New(2026, 8, 14), "1", true},
		{"Cash", date.New(2026, 8, 1), "1", true},
	}
	for _, tt := range tests {
		price, _, ok := table.PriceOnDate(tt.symbol, tt.on)
		if ok != tt.ok {
			t.Errorf("PriceOnDate(%q, %s) ok = %v, want %v", tt.symbol, tt.on, ok, tt.ok)
			continue
		}
		if ok && price.String() != tt.want {
			t.Errorf("PriceOnDate(%q, %s) = %s, want %s", tt.symbol, tt.on, price, tt.want)
		}
	}
}

func TestPriceOnDateCurrency(t *testing.T) {
	table := testPrices(t)
	_, currency, ok := table.PriceOnDate("AAPL", date.New(2026, 8, 14))
	if !ok || currency != "USD" {
		t.Errorf("PriceOnDate currency = %q ok=%v, want USD true", currency, ok)
	}
}

func TestNameOf(t *testing.T) {
	table := testPrices(t)

	tests := []struct {
		symbol string
		want   string
	}{
		{"AAPL", "Apple Inc"},
		{"AUD=X", "AUD=X"}, // record without a name falls back to the symbol
		{"MSFT", UnknownName},
	}
	for _, tt := range tests {
		if got := table.NameOf(tt.symbol); got != tt.want {
			t.Errorf("NameOf(%q) = %q, want %q", tt.symbol, got, tt.want)
		}
	}
}
