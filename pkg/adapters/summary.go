package adapters

import (
	"fmt"

	"github.com/de-tools/facility-atlas/pkg/models/api"
	"github.com/de-tools/facility-atlas/pkg/models/domain"
)

// MapSummaryToAPI lists every kind with every status, zero counts included.
func MapSummaryToAPI(m domain.SummaryMetrics) api.Summary {
	out := api.Summary{
		AsOf:      m.AsOf.Format(domain.DateLayout),
		Total:     m.Total,
		Overdue:   m.Overdue,
		Upcoming:  m.Upcoming,
		CostTotal: m.CostTotal.Float(),
		Kinds:     make([]api.KindSummary, 0, len(domain.Kinds)),
		Histogram: make([]api.MonthBucket, 0, len(m.Histogram)),
	}
	for _, k := range domain.Kinds {
		ks := api.KindSummary{
			Kind:     string(k),
			Label:    k.Label(),
			Total:    m.KindTotals[k],
			Statuses: make(map[string]int),
		}
		for _, s := range k.Statuses() {
			ks.Statuses[string(s)] = m.StatusCount(k, s)
		}
		out.Kinds = append(out.Kinds, ks)
	}
	for _, b := range m.Histogram {
		out.Histogram = append(out.Histogram, api.MonthBucket{
			Month: fmt.Sprintf("%04d-%02d", b.Year, int(b.Month)),
			Label: b.Label(),
			Count: b.Count,
			Cost:  b.Cost.Float(),
		})
	}
	return out
}
