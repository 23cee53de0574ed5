package portfolio

import "fmt"

// Report is the complete, display-ready state handed to the renderer
// and the report templates.
type Report struct {
	Name         string
	Dates        EffectiveDates
	Value        PortfolioValue
	Cost         CostBasis
	AssetClasses []*AssetClass
	Winners      []*Holding
	Losers       []*Holding
	Holdings     []*Holding
	PriceMisses  int
	ChartURL     string
	ChartBrand   string
}

// Report assembles the report model once both passes and the analytics
// have run.
func (v *Valuation) Report(chartURL, chartBrand string) *Report {
	return &Report{
		Name:         v.settings.ReportName,
		Dates:        v.Dates,
		Value:        v.Value,
		Cost:         v.Cost,
		AssetClasses: v.AssetClasses,
		Winners:      v.Winners,
		Losers:       v.Losers,
		Holdings:     v.holdings.Holdings(),
		PriceMisses:  v.PriceMisses,
		ChartURL:     chartURL,
		ChartBrand:   chartBrand,
	}
}

// Summary is the one-line move summary logged and used as the report
// lead.
func (r *Report) Summary() string {
	s := fmt.Sprintf("Portfolio %d day move: %s (%s). Current valuation: %s.",
		r.Dates.DaysDifference, r.Value.ValueChangeStr, r.Value.PcntChangeStr, r.Value.CurrentStr)
	if r.Cost.Current.IsPositive() {
		s += fmt.Sprintf(" Cost basis: %s (%s).", r.Cost.CurrentStr, r.Cost.ReturnStr)
	}
	return s
}
