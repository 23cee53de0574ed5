package portfolio

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeHoldingsWorkbook builds a small spreadsheet with a Portfolio
// sheet of holdings rows.
func writeHoldingsWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Portfolio"
	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatal(err)
	}
	rows := [][]interface{}{
		{"Symbol", "Name", "Class", "Currency", "Units Held", "Cost Basis"},
		{"AAPL", "Apple Inc", "Equity", "USD", 10.0, 1200.50},
		{"VAS", "", "Equity", "AUD", 25.0, ""},
		{"SCRIP", "Residual Scrip", "Equity", "AUD", 0.001, ""},
		{"NOCUR", "No Currency Fund", "", "", 5.0, ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "holdings.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func testImporter(t *testing.T) (*HoldingsImporter, *HoldingSet) {
	t.Helper()
	log := newTestLogger(t)
	prices := NewPriceTable(log)
	prices.Load([]PriceRecord{
		{Symbol: "VAS", On: Today(), Name: "Vanguard Australian Shares", Currency: "AUD"},
	})
	imp := NewHoldingsImporter(prices, ImportOptions{
		MinUnitsHeld:    0.01,
		DisplayMode:     DisplayBoth,
		DefaultCurrency: "AUD",
	}, log)
	return imp, NewHoldingSet(log)
}

func TestImportSheet(t *testing.T) {
	path := writeHoldingsWorkbook(t)
	imp, set := testImporter(t)

	err := imp.Import(set, ImportSource{Path: path, Location: "Portfolio", Type: "sheet"})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	// The sub-threshold scrip position is left out.
	if set.Len() != 3 {
		t.Fatalf("imported %d holdings, want 3", set.Len())
	}

	byName := map[string]*Holding{}
	for _, h := range set.Holdings() {
		byName[h.Symbol] = h
	}

	aapl := byName["AAPL"]
	if aapl == nil {
		t.Fatal("AAPL not imported")
	}
	if !aapl.Units.Equal(Q(10.0)) {
		t.Errorf("AAPL units = %s, want 10", aapl.Units)
	}
	if !aapl.CostBasis.Equal(M(1200.50, "AUD")) {
		t.Errorf("AAPL cost basis = %s %s, want 1200.50 AUD", aapl.CostBasis.Amount(), aapl.CostBasis.Currency())
	}
	if aapl.ShortDisplayName != "AAPL: Apple Inc" {
		t.Errorf("AAPL display name = %q, want AAPL: Apple Inc", aapl.ShortDisplayName)
	}

	// A row without a name resolves it from the price table.
	if vas := byName["VAS"]; vas == nil || vas.Name != "Vanguard Australian Shares" {
		t.Errorf("VAS name not resolved from prices: %+v", vas)
	}

	// Missing class and currency fall back to the defaults.
	nocur := byName["NOCUR"]
	if nocur == nil {
		t.Fatal("NOCUR not imported")
	}
	if nocur.Class != UnknownName {
		t.Errorf("NOCUR class = %q, want %q", nocur.Class, UnknownName)
	}
	if nocur.Currency != "AUD" {
		t.Errorf("NOCUR currency = %q, want AUD", nocur.Currency)
	}
}

func TestImportRange(t *testing.T) {
	path := writeHoldingsWorkbook(t)
	imp, set := testImporter(t)

	err := imp.Import(set, ImportSource{Path: path, Location: "Portfolio!A1:F3", Type: "range"})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if set.Len() != 2 {
		t.Errorf("imported %d holdings, want 2", set.Len())
	}
}

func TestImportShortRow(t *testing.T) {
	// With Symbol as the rightmost column, a row that leaves it blank
	// comes back shorter than the header because trailing empty cells
	// are trimmed. Such a row is skipped, not a crash.
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Name", "Currency", "Units Held", "Symbol"},
		{"Ghost Fund", "USD", 5.0},
		{"Real Fund", "AUD", 2.0, "REAL"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "short.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	imp, set := testImporter(t)
	err := imp.Import(set, ImportSource{Path: path, Location: sheet, Type: "sheet"})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("imported %d holdings, want 1", set.Len())
	}
	if set.Holdings()[0].Symbol != "REAL" {
		t.Errorf("imported symbol = %q, want REAL", set.Holdings()[0].Symbol)
	}
}

func TestImportMissingColumns(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	row := []interface{}{"Ticker", "Amount"}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		t.Fatal(err)
	}
	row = []interface{}{"AAPL", 10}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	imp, set := testImporter(t)
	err := imp.Import(set, ImportSource{Path: path, Location: sheet, Type: "sheet"})
	if err == nil {
		t.Fatal("Import accepted a sheet without the expected columns")
	}
}

func TestImportUnknownLocationType(t *testing.T) {
	path := writeHoldingsWorkbook(t)
	imp, set := testImporter(t)

	err := imp.Import(set, ImportSource{Path: path, Location: "Portfolio", Type: "column"})
	if err == nil {
		t.Fatal("Import accepted an unknown location type")
	}
}
