package export

import (
	"strconv"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
)

type Row struct {
	Name  string
	Value string
}

type Section struct {
	Title string
	Rows  []Row
}

// SummaryView is the printable form of summary metrics shared by the
// terminal reporters.
type SummaryView struct {
	Title     string
	Period    string
	AsOf      string
	Totals    []Row
	Sections  []Section
	Histogram []Row
}

func NewSummaryView(title string, period domain.DateRange, m domain.SummaryMetrics, currencySymbol string) SummaryView {
	v := SummaryView{
		Title:  title,
		Period: period.String(),
		AsOf:   m.AsOf.Format(domain.DateLayout),
		Totals: []Row{
			{Name: "Total records", Value: strconv.Itoa(m.Total)},
			{Name: "Overdue", Value: strconv.Itoa(m.Overdue)},
			{Name: "Upcoming (next 14 days)", Value: strconv.Itoa(m.Upcoming)},
			{Name: "Total cost", Value: m.CostTotal.Format(currencySymbol)},
		},
	}
	for _, k := range domain.Kinds {
		s := Section{Title: k.Label()}
		s.Rows = append(s.Rows, Row{Name: "Total", Value: strconv.Itoa(m.KindTotals[k])})
		for _, status := range k.Statuses() {
			s.Rows = append(s.Rows, Row{Name: string(status), Value: strconv.Itoa(m.StatusCount(k, status))})
		}
		v.Sections = append(v.Sections, s)
	}
	for _, b := range m.Histogram {
		v.Histogram = append(v.Histogram, Row{
			Name:  b.Label(),
			Value: strconv.Itoa(b.Count) + " (" + b.Cost.Format(currencySymbol) + ")",
		})
	}
	return v
}
