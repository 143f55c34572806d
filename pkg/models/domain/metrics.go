package domain

import "time"

// MonthBucket counts the records scheduled in one calendar month.
type MonthBucket struct {
	Year  int
	Month time.Month
	Count int
	Cost  Money
}

func (b MonthBucket) Label() string {
	return time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// SummaryMetrics is derived from a record set for a single report request.
type SummaryMetrics struct {
	AsOf         time.Time
	Total        int
	KindTotals   map[Kind]int
	StatusCounts map[Kind]map[Status]int
	CostTotal    Money
	Overdue      int
	Upcoming     int
	Histogram    []MonthBucket
}

func (m SummaryMetrics) StatusCount(k Kind, s Status) int {
	return m.StatusCounts[k][s]
}

// PresentKinds returns the kinds that have at least one record, in report order.
func (m SummaryMetrics) PresentKinds() []Kind {
	var kinds []Kind
	for _, k := range Kinds {
		if m.KindTotals[k] > 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
