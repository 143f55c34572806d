package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar dates. A zero Start or End leaves
// that side unbounded.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: DateOf(start), End: DateOf(end)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

func (r DateRange) Validate() error {
	if !r.Start.IsZero() && !r.End.IsZero() && DateOf(r.Start).After(DateOf(r.End)) {
		return fmt.Errorf("%w: range start %s is after end %s",
			ErrValidation, r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r DateRange) String() string {
	switch {
	case r.IsZero():
		return "all dates"
	case r.End.IsZero():
		return "from " + r.Start.Format(DateLayout)
	case r.Start.IsZero():
		return "until " + r.End.Format(DateLayout)
	default:
		return fmt.Sprintf("%s to %s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
