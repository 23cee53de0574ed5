package portfolio

import (
	"github.com/shopspring/decimal"
	"github.com/spelloconsulting/portfolioperf/logging"
)

// Settings are the valuation parameters from the Portfolio config
// section.
type Settings struct {
	ReportName         string
	ReportingCurrency  string
	PriorValuationDays int
	WinnersAndLosers   int
	MaxPriceMisses     int
}

// EffectiveDates are the two dates a run values the portfolio on.
type EffectiveDates struct {
	Current        Date
	Prior          Date
	DaysDifference int
}

// PortfolioValue is the portfolio-level total per mode with all derived
// deltas and their display strings.
type PortfolioValue struct {
	Current           Money
	CurrentStr        string
	Prior             Money
	PriorStr          string
	ValueChange       Money
	ValueChangeStr    string
	ValueChangeAbsStr string
	PcntChange        Percent
	PcntChangeStr     string
	PcntChangeAbsStr  string
}

// CostBasis tracks the portfolio cost basis and the return against it.
type CostBasis struct {
	Current    Money
	CurrentStr string
	Return     Percent
	ReturnStr  string
}

// AssetClass aggregates holding values per asset class across both
// passes. The set is keyed by class label and never reset within a run.
type AssetClass struct {
	Class          string
	Current        Money
	Prior          Money
	ValueChange    Money
	ValueChangeStr string
	PcntChange     Percent
	PcntChangeStr  string
}

// Valuation orchestrates the two valuation passes and carries every
// derived figure the report needs.
type Valuation struct {
	settings Settings
	holdings *HoldingSet
	prices   *PriceTable
	ledger   *Ledger
	log      *logging.Logger

	Dates        EffectiveDates
	Value        PortfolioValue
	Cost         CostBasis
	AssetClasses []*AssetClass
	Winners      []*Holding
	Losers       []*Holding
	PriceMisses  int
}

func NewValuation(settings Settings, holdings *HoldingSet, prices *PriceTable, ledger *Ledger, log *logging.Logger) *Valuation {
	zero := M(0, settings.ReportingCurrency)
	v := &Valuation{
		settings: settings,
		holdings: holdings,
		prices:   prices,
		ledger:   ledger,
		log:      log,
	}
	v.Value.Current, v.Value.Prior = zero, zero
	v.Cost.Current = zero
	return v
}

// fxSymbol builds the market-data ticker for a currency pair. The data
// vendor quotes USD crosses without the USD prefix.
func fxSymbol(currency, reporting string) string {
	if currency == "USD" {
		return reporting + "=X"
	}
	return currency + reporting + "=X"
}

// total returns the portfolio total a mode accumulates into.
func (v *Valuation) total(mode Mode) *Money {
	if mode == ModePrior {
		return &v.Value.Prior
	}
	return &v.Value.Current
}

// effectiveDate returns the date a mode was valued on.
func (v *Valuation) effectiveDate(mode Mode) Date {
	if mode == ModePrior {
		return v.Dates.Prior
	}
	return v.Dates.Current
}

// Valuate computes the total portfolio value as of one mode's effective
// date. It reports false when the mode is invalid or the price-miss
// threshold is exceeded; every fatal condition is also recorded through
// the logger.
func (v *Valuation) Valuate(mode Mode) bool {
	switch mode {
	case ModeCurrent:
		v.Dates.Current = Today()
	case ModePrior:
		v.Dates.Prior = Today().Add(-v.settings.PriorValuationDays)
	default:
		v.log.Fatalf("Invalid mode '%s' specified for portfolio valuation.", mode)
		return false
	}

	on := v.effectiveDate(mode)
	reporting := v.settings.ReportingCurrency

	// The pass recomputes its totals from scratch.
	v.PriceMisses = 0
	*v.total(mode) = M(0, reporting)
	if mode == ModeCurrent {
		v.Cost.Current = M(0, reporting)
	}

	for _, h := range v.holdings.Holdings() {
		value := M(0, reporting)

		fxRate := decimal.NewFromInt(1)
		fxResolved := true
		if h.Currency != reporting {
			ticker := fxSymbol(h.Currency, reporting)
			rate, _, ok := v.prices.PriceOnDate(ticker, on)
			if !ok {
				v.log.Fatalf("Failed to get %s FX rate on %s.", ticker, on)
				fxResolved = false
			} else {
				fxRate = rate
			}
		}

		price, priceCurrency, ok := v.prices.PriceOnDate(h.Symbol, on)
		switch {
		case !ok:
			v.PriceMisses++
		case priceCurrency != "" && priceCurrency != h.Currency:
			v.log.Warnf("Price currency mismatch for %s on %s: expected %s, got %s. Using price as is.",
				h.Symbol, on, h.Currency, priceCurrency)
			v.PriceMisses++
		case !fxResolved:
			// The fatal FX miss is already recorded; the holding
			// contributes nothing for this pass.
		default:
			snap := h.snapshot(mode)
			snap.Price = &price
			snap.FXRate = &fxRate
			value = M(price.Mul(fxRate), reporting).Mul(h.Units)
			snap.Value = value
			*v.total(mode) = v.total(mode).Add(value)
			if mode == ModeCurrent {
				v.Cost.Current = v.Cost.Current.Add(h.CostBasis)
			}
			v.log.Debugf("%s: %s units * %s * FX %s = %s", h.Symbol, h.Units, price, fxRate, value)
		}

		// The class entry is touched even on a miss so every class of the
		// portfolio appears in the report.
		v.addAssetClassValue(h.Class, mode, value)
	}

	if v.PriceMisses > v.settings.MaxPriceMisses {
		v.log.Fatalf("Exceeded maximum price misses (%d) for %s valuation. Only %d holdings were successfully valued.",
			v.settings.MaxPriceMisses, mode, v.holdings.Len()-v.PriceMisses)
		return false
	}

	v.log.Detailf("Valuing portfolio as at %s at %s", on, v.total(mode).String())

	v.ledger.Upsert(on, *v.total(mode))
	return true
}

// addAssetClassValue accumulates a holding's value into its class
// aggregate, creating the aggregate on first touch.
func (v *Valuation) addAssetClassValue(class string, mode Mode, value Money) {
	entry := v.assetClass(class)
	if entry == nil {
		zero := M(0, v.settings.ReportingCurrency)
		entry = &AssetClass{Class: class, Current: zero, Prior: zero, ValueChange: zero}
		v.AssetClasses = append(v.AssetClasses, entry)
	}
	if mode == ModePrior {
		entry.Prior = entry.Prior.Add(value)
	} else {
		entry.Current = entry.Current.Add(value)
	}
}

// assetClass returns the aggregate for a class label, or nil.
func (v *Valuation) assetClass(class string) *AssetClass {
	for _, entry := range v.AssetClasses {
		if entry.Class == class {
			return entry
		}
	}
	return nil
}
