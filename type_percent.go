package portfolio

import "fmt"

// Percent is a percentage value, e.g. Percent(2.5) renders as "2.5%".
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String formats the value with its sign, one decimal.
func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", p)
}

// AbsString formats the magnitude only.
func (p Percent) AbsString() string {
	if p < 0 {
		return fmt.Sprintf("%.1f%%", -p)
	}
	return fmt.Sprintf("%.1f%%", p)
}

// DeltaString formats a change: "+1.2%", "-0.4%" or "No change".
func (p Percent) DeltaString() string {
	switch {
	case p > 0:
		return fmt.Sprintf("+%.1f%%", p)
	case p < 0:
		return fmt.Sprintf("%.1f%%", p)
	default:
		return "No change"
	}
}
