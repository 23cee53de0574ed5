package portfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spelloconsulting/portfolioperf/logging"
)

// Mode selects which of the two valuation snapshots a pass writes.
type Mode string

const (
	ModeCurrent Mode = "Current"
	ModePrior   Mode = "Prior"
)

// ValuationSnapshot is the per-holding outcome of one valuation pass.
// Price and FXRate stay nil when the holding could not be priced.
type ValuationSnapshot struct {
	Price    *decimal.Decimal
	FXRate   *decimal.Decimal
	Value    Money
	ValueStr string
}

// Holding is one position of the portfolio, created once at import and
// mutated in place by the valuation passes.
type Holding struct {
	Symbol           string
	Name             string
	ShortDisplayName string
	Class            string
	Currency         string
	Units            Quantity
	CostBasis        Money

	Current ValuationSnapshot
	Prior   ValuationSnapshot

	PcntChange    Percent
	PcntChangeStr string
}

// snapshot returns the snapshot a valuation mode writes into.
func (h *Holding) snapshot(mode Mode) *ValuationSnapshot {
	if mode == ModePrior {
		return &h.Prior
	}
	return &h.Current
}

// HoldingSet owns the imported holdings.
type HoldingSet struct {
	holdings []*Holding
	log      *logging.Logger
}

func NewHoldingSet(log *logging.Logger) *HoldingSet {
	return &HoldingSet{log: log}
}

// Add appends a holding to the set.
func (s *HoldingSet) Add(h *Holding) {
	s.holdings = append(s.holdings, h)
	s.log.Debugf("Added holding: %s with %s units", h.Symbol, h.Units)
}

// Len returns the number of holdings.
func (s *HoldingSet) Len() int { return len(s.holdings) }

// Holdings returns the holdings in their current order.
func (s *HoldingSet) Holdings() []*Holding { return s.holdings }

// DisplayMode controls how a holding is labelled in reports.
type DisplayMode string

const (
	DisplaySymbol DisplayMode = "symbol"
	DisplayBoth   DisplayMode = "both"
	DisplayName   DisplayMode = "name"
)

// Reports budget about 200px per holding label at roughly 7px a
// character.
const (
	displayNameMaxPx = 200
	displayPxPerChar = 7
)

// AbbreviateDisplayName produces the short label shown in reports for
// one holding, truncated with an ellipsis when over the length budget.
func AbbreviateDisplayName(mode DisplayMode, symbol, name string) string {
	if mode == DisplaySymbol {
		return symbol
	}

	maxLength := displayNameMaxPx / displayPxPerChar
	label := name
	if mode == DisplayBoth {
		label = fmt.Sprintf("%s: %s", symbol, name)
	}
	if len(label) > maxLength {
		label = label[:maxLength] + "..."
	}
	return label
}
