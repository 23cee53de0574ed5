package portfolio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spelloconsulting/portfolioperf/date"
)

const samplePriceCSV = `Symbol,Date,Name,Currency,Price
AAPL,2026-08-14,Apple Inc,USD,150.25
AAPL,14/08/2026,Apple Inc,USD,150.25
AAPL,2026-08-15,Apple Inc,USD,-3
VAS,2026-08-14,Vanguard Australian Shares,AUD,100
VAS,2026-08-14,Vanguard Australian Shares,AUD,abc
`

func writePriceFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadPriceCSV(t *testing.T) {
	log := newTestLogger(t)
	records, err := ReadPriceCSV(writePriceFile(t, samplePriceCSV), log)
	if err != nil {
		t.Fatalf("ReadPriceCSV: %v", err)
	}

	// The malformed date, the negative price and the unparseable price
	// are dropped; the two good rows survive.
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Symbol != "AAPL" || records[0].Price.String() != "150.25" {
		t.Errorf("records[0] = %+v, want AAPL at 150.25", records[0])
	}
	if records[0].On != date.New(2026, 8, 14) {
		t.Errorf("records[0].On = %s, want 2026-08-14", records[0].On)
	}
}

func TestReadPriceCSVMissingColumn(t *testing.T) {
	log := newTestLogger(t)
	_, err := ReadPriceCSV(writePriceFile(t, "Symbol,Name\nAAPL,Apple\n"), log)
	if err == nil {
		t.Fatal("ReadPriceCSV accepted a file without Date and Price columns")
	}
}

func TestLoadPriceFilesMissingFile(t *testing.T) {
	log := newTestLogger(t)
	table := LoadPriceFiles([]PriceFileSource{
		{Path: filepath.Join(t.TempDir(), "absent.csv")},
	}, log)

	if table.Len() != 0 {
		t.Errorf("table has %d records, want 0", table.Len())
	}
	if log.FatalsThisRun() != 1 {
		t.Errorf("FatalsThisRun = %d, want 1", log.FatalsThisRun())
	}
}

func TestLoadPriceFilesStaleFile(t *testing.T) {
	log := newTestLogger(t)
	path := writePriceFile(t, samplePriceCSV)
	old := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	table := LoadPriceFiles([]PriceFileSource{{Path: path, MaxAge: 5}}, log)
	if table.Len() != 0 {
		t.Errorf("stale file loaded %d records, want 0", table.Len())
	}
	if log.FatalsThisRun() != 1 {
		t.Errorf("FatalsThisRun = %d, want 1", log.FatalsThisRun())
	}
}

func TestLoadPriceFilesFreshnessDisabled(t *testing.T) {
	log := newTestLogger(t)
	path := writePriceFile(t, samplePriceCSV)
	old := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	// MaxAge 0 disables the freshness check.
	table := LoadPriceFiles([]PriceFileSource{{Path: path}}, log)
	if table.Len() != 2 {
		t.Errorf("table has %d records, want 2", table.Len())
	}
}
