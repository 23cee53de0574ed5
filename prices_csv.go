package portfolio

import (
	"encoding/csv"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spelloconsulting/portfolioperf/date"
	"github.com/spelloconsulting/portfolioperf/logging"
)

// PriceFileSource is one price CSV file with its freshness limit.
type PriceFileSource struct {
	Path   string
	MaxAge int // days; 0 disables the freshness check
}

// LoadPriceFiles builds the price table from the configured CSV files.
// A missing or stale file is a fatal error for that file only: it is
// skipped and the remaining files still load.
func LoadPriceFiles(sources []PriceFileSource, log *logging.Logger) *PriceTable {
	table := NewPriceTable(log)
	for _, src := range sources {
		info, err := os.Stat(src.Path)
		if err != nil {
			log.Fatalf("Price data file %s does not exist.", src.Path)
			continue
		}
		if src.MaxAge > 0 {
			fileDate := date.New(info.ModTime().Date())
			if fileDate.Before(Today().Add(-src.MaxAge)) {
				log.Fatalf("Price data file %s is older than %d days.", src.Path, src.MaxAge)
				continue
			}
		}

		records, err := ReadPriceCSV(src.Path, log)
		if err != nil {
			log.Fatalf("Failed to read price data from %s: %v", src.Path, err)
			continue
		}
		table.Load(records)
		log.Infof("Imported price data from %s", src.Path)
	}
	return table
}

// priceCSVDateFormat is the strict date format of price files.
const priceCSVDateFormat = "2006-01-02"

// ReadPriceCSV parses one price file. The header row names the columns
// (Symbol, Date, Name, Currency, Price in any order). A row whose date
// or price fails to parse is dropped with a warning, not an error.
func ReadPriceCSV(path string, log *logging.Logger) ([]PriceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening price file %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "reading price file header %s", path)
	}
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"Symbol", "Date", "Price"} {
		if _, ok := col[required]; !ok {
			return nil, errors.Errorf("price file %s is missing column %q", path, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []PriceRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading price file %s", path)
		}

		symbol := field(row, "Symbol")

		t, err := time.Parse(priceCSVDateFormat, field(row, "Date"))
		if err != nil {
			log.Warnf("Invalid date value for %s: %q", symbol, field(row, "Date"))
			continue
		}
		price, err := decimal.NewFromString(field(row, "Price"))
		if err != nil || price.IsNegative() {
			log.Warnf("Invalid price value for %s on %s: %q", symbol, field(row, "Date"), field(row, "Price"))
			continue
		}

		records = append(records, PriceRecord{
			Symbol:   symbol,
			On:       date.New(t.Date()),
			Name:     field(row, "Name"),
			Currency: field(row, "Currency"),
			Price:    price,
		})
	}
	return records, nil
}
