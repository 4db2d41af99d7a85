package shared

import "fmt"

const monthsPerYear = 12

// Period is a simulated calendar month
type Period struct {
	Month int
	Year  int
}

// NewPeriod creates a period, validating the month range
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > monthsPerYear {
		return Period{}, NewValidationError("month", fmt.Sprintf("must be between 1 and 12, got %d", month))
	}
	if year < 1 {
		return Period{}, NewValidationError("year", fmt.Sprintf("must be positive, got %d", year))
	}
	return Period{Month: month, Year: year}, nil
}

// MustPeriod creates a period and panics on invalid input (for tests and constants)
func MustPeriod(month, year int) Period {
	p, err := NewPeriod(month, year)
	if err != nil {
		panic(err)
	}
	return p
}

// Next returns the following month, rolling December over into January of the next year
func (p Period) Next() Period {
	if p.Month >= monthsPerYear {
		return Period{Month: 1, Year: p.Year + 1}
	}
	return Period{Month: p.Month + 1, Year: p.Year}
}

// Minus returns the period the given number of months earlier
func (p Period) Minus(months int) Period {
	index := p.Year*monthsPerYear + (p.Month - 1) - months
	return Period{Month: index%monthsPerYear + 1, Year: index / monthsPerYear}
}

// MonthsSince returns the number of whole months elapsed since earlier.
// Never negative: a period before earlier yields 0.
func (p Period) MonthsSince(earlier Period) int {
	delta := (p.Year-earlier.Year)*monthsPerYear + (p.Month - earlier.Month)
	if delta < 0 {
		return 0
	}
	return delta
}

// Before reports whether p is strictly earlier than other
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// IsSalesMonth reports whether the sales cycle runs in this period.
// With a cycle of 3 the sales months are March, June, September and December.
func (p Period) IsSalesMonth(cycleMonths int) bool {
	if cycleMonths <= 1 {
		return true
	}
	return p.Month%cycleMonths == 0
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
