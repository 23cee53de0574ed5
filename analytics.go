package portfolio

import "sort"

// ValuationChange derives the portfolio-level move between the two
// completed passes. It reports false when no usable prior valuation
// exists; that is an error for the report, not a fatal condition.
func (v *Valuation) ValuationChange() bool {
	v.Dates.DaysDifference = v.Dates.Current.Sub(v.Dates.Prior)

	if !v.Value.Prior.IsPositive() {
		v.log.Errorf("No prior valuation available. Cannot calculate valuation change.")
		return false
	}

	v.Value.CurrentStr = v.Value.Current.String()
	v.Value.PriorStr = v.Value.Prior.String()

	v.Value.ValueChange = v.Value.Current.Sub(v.Value.Prior)
	v.Value.ValueChangeStr = v.Value.ValueChange.DeltaString()
	v.Value.ValueChangeAbsStr = v.Value.ValueChange.String()
	v.Value.PcntChange = v.Value.ValueChange.Percent(v.Value.Prior)
	v.Value.PcntChangeStr = v.Value.PcntChange.DeltaString()
	v.Value.PcntChangeAbsStr = v.Value.PcntChange.AbsString()

	if v.Cost.Current.IsPositive() {
		v.Cost.CurrentStr = v.Cost.Current.String()
		v.Cost.Return = v.Value.Current.Sub(v.Cost.Current).Percent(v.Cost.Current)
		v.Cost.ReturnStr = v.Cost.Return.DeltaString()
	}

	v.log.Detailf("Valuation change: %s (%s)", v.Value.ValueChangeStr, v.Value.PcntChangeStr)
	return true
}

// WinnersAndLosers ranks holdings by percentage change between the two
// passes and selects the top and bottom of the ranking. The holding
// list itself ends up sorted by symbol for stable display; only the
// winners/losers slices retain ranking order.
func (v *Valuation) WinnersAndLosers() bool {
	v.Winners = nil
	v.Losers = nil
	holdings := v.holdings.Holdings()
	if len(holdings) == 0 {
		v.log.Warnf("No holdings to evaluate for winners and losers.")
		return false
	}

	rankSize := v.settings.WinnersAndLosers
	if rankSize > len(holdings)/2 {
		rankSize = len(holdings) / 2
	}

	for _, h := range holdings {
		if h.Prior.Value.IsPositive() {
			h.PcntChange = h.Current.Value.Sub(h.Prior.Value).Percent(h.Prior.Value)
		} else {
			h.PcntChange = 0.0
		}
		h.Current.ValueStr = h.Current.Value.String()
		h.Prior.ValueStr = h.Prior.Value.String()
		h.PcntChangeStr = h.PcntChange.DeltaString()
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].PcntChange > holdings[j].PcntChange
	})
	for i := 0; i < rankSize && i < len(holdings); i++ {
		v.Winners = append(v.Winners, holdings[i])
	}
	for i := 0; i < rankSize && i < len(holdings); i++ {
		v.Losers = append(v.Losers, holdings[len(holdings)-1-i])
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].Symbol < holdings[j].Symbol
	})

	return true
}

// AssetClassChanges derives per-class deltas and sorts the aggregates
// by class label.
func (v *Valuation) AssetClassChanges() {
	for _, entry := range v.AssetClasses {
		entry.ValueChange = entry.Current.Sub(entry.Prior)
		if entry.Prior.IsPositive() {
			entry.PcntChange = entry.ValueChange.Percent(entry.Prior)
		} else {
			entry.PcntChange = 0.0
		}
		entry.ValueChangeStr = entry.ValueChange.DeltaString()
		entry.PcntChangeStr = entry.PcntChange.DeltaString()
	}

	sort.SliceStable(v.AssetClasses, func(i, j int) bool {
		return v.AssetClasses[i].Class < v.AssetClasses[j].Class
	})
}
