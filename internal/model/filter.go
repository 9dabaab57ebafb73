package model

import "time"

// IncomeFilter selects the time window applied to payment sums on the
// dashboard.
type IncomeFilter string

const (
	FilterAll    IncomeFilter = "all"
	FilterWeek   IncomeFilter = "week"   // date >= now - 7 days
	FilterMonth  IncomeFilter = "month"  // date >= now - 30 days, not a calendar month
	FilterCustom IncomeFilter = "custom" // inclusive start..end
)

func (f IncomeFilter) Valid() bool {
	switch f {
	case FilterAll, FilterWeek, FilterMonth, FilterCustom:
		return true
	}
	return false
}

// DateRange is the user-picked window for FilterCustom. A custom filter
// with either bound missing matches nothing.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (r DateRange) Complete() bool {
	return r.Start != nil && r.End != nil
}
