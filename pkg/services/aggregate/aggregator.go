package aggregate

import (
	"cmp"
	"slices"
	"time"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
)

// UpcomingWindow is how far ahead of the as-of date an open record counts as upcoming.
const UpcomingWindow = 14 * 24 * time.Hour

type monthKey struct {
	year  int
	month time.Month
}

// Summarize derives the summary metrics of records as of the given date.
// It keeps no state between calls.
func Summarize(records []domain.Record, asOf time.Time) domain.SummaryMetrics {
	asOf = domain.DateOf(asOf)
	metrics := domain.SummaryMetrics{
		AsOf:         asOf,
		KindTotals:   make(map[domain.Kind]int, len(domain.Kinds)),
		StatusCounts: make(map[domain.Kind]map[domain.Status]int, len(domain.Kinds)),
	}
	for _, k := range domain.Kinds {
		metrics.KindTotals[k] = 0
		counts := make(map[domain.Status]int)
		for _, s := range k.Statuses() {
			counts[s] = 0
		}
		metrics.StatusCounts[k] = counts
	}

	upcomingLimit := asOf.Add(UpcomingWindow)
	buckets := make(map[monthKey]*domain.MonthBucket)

	for _, r := range records {
		base := r.Common()
		metrics.Total++
		metrics.KindTotals[r.Kind()]++
		metrics.StatusCounts[r.Kind()][r.Status()]++

		if base.Cost != nil {
			metrics.CostTotal += *base.Cost
		}

		scheduled := domain.DateOf(base.ScheduledDate)
		switch {
		case domain.IsOverdue(r, asOf):
			metrics.Overdue++
		case !r.Kind().IsTerminal(r.Status()) && scheduled.Before(upcomingLimit):
			metrics.Upcoming++
		}

		key := monthKey{year: scheduled.Year(), month: scheduled.Month()}
		b, ok := buckets[key]
		if !ok {
			b = &domain.MonthBucket{Year: key.year, Month: key.month}
			buckets[key] = b
		}
		b.Count++
		if base.Cost != nil {
			b.Cost += *base.Cost
		}
	}

	for _, b := range buckets {
		metrics.Histogram = append(metrics.Histogram, *b)
	}
	slices.SortFunc(metrics.Histogram, func(a, b domain.MonthBucket) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})

	return metrics
}
