package incentive

import (
	"fmt"
	"time"
)

// Period is an inclusive [Start, End] award bucket. Boundaries are
// calendar-local: business operators reason about cutoffs in their own
// wall-clock calendar, so the reference instant's location is preserved.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains returns true if the instant falls within the period
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Label returns a compact human-readable description of the window,
// used as the source reference on target-based awards.
func (p Period) Label() string {
	return fmt.Sprintf("%s..%s", p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
}

// ResolvePeriod maps a granularity and a reference instant to the award
// bucket containing that instant. Weeks start on Monday; a Sunday reference
// is day 7 of the week whose Monday is six days earlier. ONE_TIME resolves
// to a fixed all-time sentinel window so per-transaction rules are never
// period-capped unless a maximum cap makes it a lifetime cap.
func ResolvePeriod(granularity PeriodGranularity, ref time.Time) (Period, error) {
	loc := ref.Location()
	year, month, day := ref.Date()

	switch granularity {
	case PeriodDaily:
		start := time.Date(year, month, day, 0, 0, 0, 0, loc)
		return Period{Start: start, End: endOfDay(start)}, nil

	case PeriodWeekly:
		weekday := int(ref.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		monday := time.Date(year, month, day, 0, 0, 0, 0, loc).AddDate(0, 0, -(weekday - 1))
		return Period{Start: monday, End: endOfDay(monday.AddDate(0, 0, 6))}, nil

	case PeriodMonthly:
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		return Period{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Second)}, nil

	case PeriodQuarterly:
		quarterStart := time.Month(((int(month)-1)/3)*3 + 1)
		start := time.Date(year, quarterStart, 1, 0, 0, 0, 0, loc)
		return Period{Start: start, End: start.AddDate(0, 3, 0).Add(-time.Second)}, nil

	case PeriodYearly:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return Period{Start: start, End: time.Date(year, time.December, 31, 23, 59, 59, 0, loc)}, nil

	case PeriodOneTime:
		return Period{
			Start: time.Date(1970, time.January, 1, 0, 0, 0, 0, loc),
			End:   time.Date(9999, time.December, 31, 23, 59, 59, 0, loc),
		}, nil
	}

	return Period{}, fmt.Errorf("unknown period granularity: %s", granularity)
}

func endOfDay(start time.Time) time.Time {
	return start.AddDate(0, 0, 1).Add(-time.Second)
}
