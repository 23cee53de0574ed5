package portfolio

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"

	"github.com/spelloconsulting/portfolioperf/date"
	"github.com/spelloconsulting/portfolioperf/logging"
)

// ledgerHeader is the header row written to a fresh valuation ledger.
var ledgerHeader = []string{"Date", "Valuation"}

// Ledger is the durable one-row-per-date record of the total portfolio
// valuation. An empty path disables persistence.
type Ledger struct {
	path string
	log  *logging.Logger
}

func NewLedger(path string, log *logging.Logger) *Ledger {
	return &Ledger{path: path, log: log}
}

// ledgerRow is one parsed ledger line kept through a rewrite.
type ledgerRow struct {
	on    Date
	value string
}

// Upsert records the valuation for a date, replacing any existing row
// for that exact date, and rewrites the ledger sorted ascending by
// date. The value is stored rounded to whole units. Rows whose date
// fails to parse are dropped, not fatal.
func (l *Ledger) Upsert(on Date, value Money) bool {
	if l.path == "" {
		l.log.Detailf("Portfolio valuation file is not configured. Skipping save.")
		return false
	}

	header := ledgerHeader
	var rows []ledgerRow

	if f, err := os.Open(l.path); err == nil {
		r := csv.NewReader(f)
		records, err := r.ReadAll()
		f.Close()
		if err != nil {
			l.log.Errorf("Could not read valuation file %s: %v", l.path, err)
			return false
		}
		if len(records) > 0 {
			header = records[0]
			for _, rec := range records[1:] {
				if len(rec) < 2 {
					continue
				}
				rowDate, err := ParseDate(rec[0])
				if err != nil {
					l.log.Detailf("Skipping valuation row with invalid date %q", rec[0])
					continue
				}
				if rowDate == on {
					continue // replaced by the new record below
				}
				rows = append(rows, ledgerRow{on: rowDate, value: rec[1]})
			}
		}
	}

	rows = append(rows, ledgerRow{on: on, value: value.Round().String()})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].on.Before(rows[j].on) })

	f, err := os.Create(l.path)
	if err != nil {
		l.log.Errorf("Could not write valuation file %s: %v", l.path, err)
		return false
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		l.log.Errorf("Could not write valuation file %s: %v", l.path, err)
		return false
	}
	for _, row := range rows {
		if err := w.Write([]string{row.on.String(), row.value}); err != nil {
			l.log.Errorf("Could not write valuation file %s: %v", l.path, err)
			return false
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		l.log.Errorf("Could not write valuation file %s: %v", l.path, err)
		return false
	}

	l.log.Detailf("Wrote valuation at %s to %s", on, l.path)
	return true
}

// History loads the trailing lastDays days of the ledger for charting.
func (l *Ledger) History(lastDays int) (*date.History[float64], bool) {
	if l.path == "" {
		l.log.Debugf("Portfolio valuation file is not configured. Skipping value history retrieval.")
		return nil, false
	}
	f, err := os.Open(l.path)
	if err != nil {
		l.log.Debugf("Portfolio valuation file not yet available. Skipping value history retrieval.")
		return nil, false
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil || len(records) < 2 {
		l.log.Fatalf("Portfolio valuation file %s is empty or unreadable.", l.path)
		return nil, false
	}

	cutoff := Today().Add(-lastDays)
	history := new(date.History[float64])
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		on, err := ParseDate(rec[0])
		if err != nil {
			l.log.Detailf("Skipping valuation row with invalid date %q", rec[0])
			continue
		}
		if on.Before(cutoff) {
			continue
		}
		value, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			l.log.Detailf("Skipping valuation row with invalid value %q", rec[1])
			continue
		}
		history.Append(on, value)
	}
	return history, true
}
