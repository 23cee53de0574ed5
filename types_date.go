package portfolio

import "github.com/spelloconsulting/portfolioperf/date"

// Date is re-exported so the rest of the package reads naturally.
type Date = date.Date

// Today returns the current date.
func Today() Date { return date.Today() }

// ParseDate parses a Date in the package's standard format.
func ParseDate(str string) (Date, error) { return date.Parse(str) }
