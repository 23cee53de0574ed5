package portfolio

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spelloconsulting/portfolioperf/logging"
	"github.com/xuri/excelize/v2"
)

// ImportSource names a holdings location inside a spreadsheet file.
type ImportSource struct {
	Path     string
	Location string // sheet name, table name or cell range
	Type     string // "sheet", "table" or "range"
}

// ImportOptions controls how spreadsheet rows become holdings.
type ImportOptions struct {
	MinUnitsHeld    float64
	DisplayMode     DisplayMode
	DefaultCurrency string // reporting currency, used when a row has none
}

// HoldingsImporter reads holdings from spreadsheet files into a
// HoldingSet.
type HoldingsImporter struct {
	prices *PriceTable
	log    *logging.Logger
	opts   ImportOptions
}

func NewHoldingsImporter(prices *PriceTable, opts ImportOptions, log *logging.Logger) *HoldingsImporter {
	return &HoldingsImporter{prices: prices, log: log, opts: opts}
}

// Import loads one source into the set. An error invalidates this
// source only; the caller decides whether other sources still load.
func (imp *HoldingsImporter) Import(set *HoldingSet, src ImportSource) error {
	imp.log.Detailf("Importing portfolio data from %s %s in %s", src.Type, src.Location, src.Path)

	f, err := excelize.OpenFile(src.Path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", src.Path)
	}
	defer f.Close()

	rows, err := imp.extract(f, src)
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return errors.Errorf("no holdings rows found at %s %s in %s", src.Type, src.Location, src.Path)
	}

	header := rows[0]
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	symbolCol, hasSymbol := col["Symbol"]
	if !hasSymbol {
		symbolCol, hasSymbol = col["Code"]
	}
	if !hasSymbol {
		return errors.Errorf("portfolio data in %s does not have the expected structure: missing Symbol/Code column", src.Path)
	}
	for _, required := range []string{"Name", "Currency", "Units Held"} {
		if _, ok := col[required]; !ok {
			return errors.Errorf("portfolio data in %s does not have the expected structure: missing %q column", src.Path, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for _, row := range rows[1:] {
		// Rows can be shorter than the header: trailing empty cells are
		// trimmed by the reader.
		var symbol string
		if symbolCol < len(row) {
			symbol = strings.TrimSpace(row[symbolCol])
		}
		if symbol == "" {
			continue
		}

		units, err := strconv.ParseFloat(field(row, "Units Held"), 64)
		if err != nil {
			imp.log.Warnf("Invalid units held for %s in %s: %q", symbol, src.Path, field(row, "Units Held"))
			continue
		}
		// Positions below the threshold are residual scrip; leave them out.
		if units < imp.opts.MinUnitsHeld {
			continue
		}

		costBasis := decimal.Zero
		if raw := field(row, "Cost Basis"); raw != "" {
			costBasis, err = decimal.NewFromString(raw)
			if err != nil {
				imp.log.Warnf("Invalid cost basis for %s in %s: %q", symbol, src.Path, raw)
				costBasis = decimal.Zero
			}
		}

		name := field(row, "Name")
		if name == "" {
			name = imp.prices.NameOf(symbol)
		}
		class := field(row, "Class")
		if class == "" {
			class = UnknownName
		}
		currency := field(row, "Currency")
		if currency == "" {
			currency = imp.opts.DefaultCurrency
		}

		set.Add(&Holding{
			Symbol:           symbol,
			Name:             name,
			ShortDisplayName: AbbreviateDisplayName(imp.opts.DisplayMode, symbol, name),
			Class:            class,
			Currency:         currency,
			Units:            Q(units),
			CostBasis:        M(costBasis, imp.opts.DefaultCurrency),
		})
	}

	imp.log.Infof("Imported portfolio data from %s", src.Path)
	return nil
}

// extract returns the raw cell rows of the configured location.
func (imp *HoldingsImporter) extract(f *excelize.File, src ImportSource) ([][]string, error) {
	switch src.Type {
	case "sheet":
		rows, err := f.GetRows(src.Location)
		return rows, errors.Wrapf(err, "reading sheet %q", src.Location)

	case "table":
		for _, sheet := range f.GetSheetList() {
			tables, err := f.GetTables(sheet)
			if err != nil {
				return nil, errors.Wrapf(err, "listing tables on sheet %q", sheet)
			}
			for _, table := range tables {
				if table.Name == src.Location {
					return rangeRows(f, sheet, table.Range)
				}
			}
		}
		return nil, errors.Errorf("table %q not found", src.Location)

	case "range":
		sheet, ref, found := strings.Cut(src.Location, "!")
		if !found {
			return nil, errors.Errorf("range %q must be of the form Sheet!A1:G20", src.Location)
		}
		return rangeRows(f, sheet, ref)

	default:
		return nil, errors.Errorf("unknown location type %q", src.Type)
	}
}

// rangeRows reads the cells of a rectangular range like "A1:G20".
func rangeRows(f *excelize.File, sheet, ref string) ([][]string, error) {
	first, last, found := strings.Cut(ref, ":")
	if !found {
		return nil, errors.Errorf("range reference %q must be of the form A1:G20", ref)
	}
	x1, y1, err := excelize.CellNameToCoordinates(first)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing range reference %q", ref)
	}
	x2, y2, err := excelize.CellNameToCoordinates(last)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing range reference %q", ref)
	}

	var rows [][]string
	for y := y1; y <= y2; y++ {
		var row []string
		for x := x1; x <= x2; x++ {
			cell, err := excelize.CoordinatesToCellName(x, y)
			if err != nil {
				return nil, err
			}
			value, err := f.GetCellValue(sheet, cell)
			if err != nil {
				return nil, errors.Wrapf(err, "reading cell %s!%s", sheet, cell)
			}
			row = append(row, value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
