package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
)

const (
	DefaultCurrencySymbol = "$"
	NoRecordsNotice       = "No records match the selected filters."
	HistogramChartName    = "histogram"
	generatedAtLayout     = "2006-01-02 15:04:05 UTC"
)

type Options struct {
	Layout         Layout
	CurrencySymbol string
	Facility       string
}

func DefaultOptions() Options {
	return Options{
		Layout:         DefaultLayout(),
		CurrencySymbol: DefaultCurrencySymbol,
	}
}

// Input carries everything a composition depends on. GeneratedAt is taken as
// given so callers can pin it.
type Input struct {
	Title       string
	Period      domain.DateRange
	GeneratedAt time.Time
	Metrics     domain.SummaryMetrics
	Records     []domain.Record
}

// Composer lays out summary metrics and records into a paginated document.
type Composer struct {
	opts Options
}

func NewComposer(opts Options) (*Composer, error) {
	if err := opts.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return &Composer{opts: opts}, nil
}

func (c *Composer) Layout() Layout {
	return c.opts.Layout
}

func (c *Composer) Compose(in Input) *domain.Document {
	doc := &domain.Document{
		Title:       in.Title,
		Facility:    c.opts.Facility,
		GeneratedAt: in.GeneratedAt.UTC(),
		Period:      in.Period,
	}
	p := newPager(c.opts.Layout)

	c.composeCover(p, doc)

	if len(in.Records) == 0 {
		first := p.pageNo()
		p.add(domain.Block{Type: domain.BlockNotice, Text: NoRecordsNotice, Height: 2 * c.opts.Layout.LineHeight})
		doc.Sections = append(doc.Sections, p.section(domain.SectionNotice, "No records", "", first))
		doc.Pages = p.pages
		return doc
	}

	c.composeSummary(p, doc, in.Metrics)

	groups := domain.GroupByKind(in.Records)
	for _, kind := range domain.Kinds {
		if rows := groups[kind]; len(rows) > 0 {
			c.composeTable(p, doc, kind, rows, in.Metrics.AsOf)
		}
	}

	doc.Pages = p.pages
	return doc
}

func (c *Composer) composeCover(p *pager, doc *domain.Document) {
	l := c.opts.Layout
	p.newPage()
	first := p.pageNo()

	p.add(domain.Block{Type: domain.BlockHeading, Text: doc.Title, Height: l.TitleHeight})

	pairs := []domain.KeyValue{
		{Key: "Generated", Value: doc.GeneratedAt.Format(generatedAtLayout)},
		{Key: "Period", Value: doc.Period.String()},
	}
	if doc.Facility != "" {
		pairs = append([]domain.KeyValue{{Key: "Facility", Value: doc.Facility}}, pairs...)
	}
	p.add(domain.Block{Type: domain.BlockKeyValues, Pairs: pairs, Height: float64(len(pairs)) * l.LineHeight})

	doc.Sections = append(doc.Sections, p.section(domain.SectionCover, doc.Title, "", first))
}

func (c *Composer) composeSummary(p *pager, doc *domain.Document, m domain.SummaryMetrics) {
	l := c.opts.Layout
	p.newPage()
	first := p.pageNo()

	p.add(domain.Block{Type: domain.BlockHeading, Text: "Summary", Height: l.HeadingHeight})
	p.add(domain.Block{Type: domain.BlockParagraph, Text: narrative(m), Height: 2 * l.LineHeight})

	pairs := c.metricPairs(m)
	p.add(domain.Block{Type: domain.BlockKeyValues, Pairs: pairs, Height: float64(len(pairs)) * l.LineHeight})

	if len(m.Histogram) > 0 {
		chartHeight := l.ChartHeight - l.LineHeight
		width, height := l.ContentWidth(), chartHeight
		img := RenderHistogram(m.Histogram, int(width)*l.PixelsPerMM, int(height)*l.PixelsPerMM)
		p.add(domain.Block{
			Type: domain.BlockChart,
			Chart: &domain.ChartImage{
				Name:    HistogramChartName,
				Image:   img,
				Width:   width,
				Height:  height,
				Caption: "Records scheduled per month",
			},
			Height: l.ChartHeight,
		})
	}

	doc.Sections = append(doc.Sections, p.section(domain.SectionSummary, "Summary", "", first))
}

func (c *Composer) metricPairs(m domain.SummaryMetrics) []domain.KeyValue {
	pairs := []domain.KeyValue{
		{Key: "Total records", Value: strconv.Itoa(m.Total)},
		{Key: "Overdue", Value: strconv.Itoa(m.Overdue)},
		{Key: "Upcoming (next 14 days)", Value: strconv.Itoa(m.Upcoming)},
		{Key: "Total cost", Value: m.CostTotal.Format(c.opts.CurrencySymbol)},
	}
	for _, kind := range m.PresentKinds() {
		pairs = append(pairs, domain.KeyValue{Key: kind.Label(), Value: strconv.Itoa(m.KindTotals[kind])})
		for _, status := range kind.Statuses() {
			pairs = append(pairs, domain.KeyValue{
				Key:   fmt.Sprintf("  %s", status),
				Value: strconv.Itoa(m.StatusCount(kind, status)),
			})
		}
	}
	return pairs
}

func narrative(m domain.SummaryMetrics) string {
	noun := "records"
	if m.Total == 1 {
		noun = "record"
	}
	return fmt.Sprintf("%d %s in this report. As of %s, %d overdue and %d due within the next 14 days.",
		m.Total, noun, m.AsOf.Format(domain.DateLayout), m.Overdue, m.Upcoming)
}

// composeTable places rows RowsPerPage at a time. Every page of the table
// starts with the header row; a row is never split.
func (c *Composer) composeTable(p *pager, doc *domain.Document, kind domain.Kind, records []domain.Record, asOf time.Time) {
	l := c.opts.Layout
	header, widths := columnsFor(kind)

	rows := make([]domain.TableRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, domain.TableRow{
			Cells:   c.cells(r),
			Overdue: domain.IsOverdue(r, asOf),
		})
	}

	first := -1
	for start := 0; start < len(rows); start += l.RowsPerPage {
		end := min(start+l.RowsPerPage, len(rows))
		continued := start > 0

		p.newPage()
		if first < 0 {
			first = p.pageNo()
		}

		heading := kind.Label()
		if continued {
			heading += " (continued)"
		}
		p.add(domain.Block{Type: domain.BlockHeading, Text: heading, Height: l.HeadingHeight})
		p.add(domain.Block{
			Type: domain.BlockTable,
			Table: &domain.TableFragment{
				Kind:      kind,
				Header:    header,
				Widths:    widths,
				Rows:      rows[start:end],
				Continued: continued,
			},
			Height: float64(end-start+1) * l.RowHeight,
		})
	}

	doc.Sections = append(doc.Sections, p.section(domain.SectionTable, kind.Label(), kind, first))
}

func columnsFor(kind domain.Kind) ([]string, []float64) {
	switch kind {
	case domain.KindMaintenance:
		return []string{"ID", "Title", "Asset", "Category", "Scheduled", "Completed", "Status", "Cost", "Assignee"},
			[]float64{1.2, 2.6, 1.6, 1.3, 1.3, 1.3, 1.2, 1.3, 1.4}
	case domain.KindBooking:
		return []string{"ID", "Title", "Resource", "Category", "Scheduled", "Attendees", "Status", "Cost", "Owner"},
			[]float64{1.2, 2.6, 1.6, 1.3, 1.3, 1.1, 1.2, 1.3, 1.4}
	default:
		return []string{"ID", "Title", "Area", "Category", "Scheduled", "Completed", "Findings", "Status", "Inspector"},
			[]float64{1.2, 2.6, 1.6, 1.3, 1.3, 1.3, 1.0, 1.5, 1.4}
	}
}

func (c *Composer) cells(r domain.Record) []string {
	base := r.Common()
	scheduled := base.ScheduledDate.Format(domain.DateLayout)
	completed := "-"
	if base.CompletedDate != nil {
		completed = base.CompletedDate.Format(domain.DateLayout)
	}
	cost := "-"
	if base.Cost != nil {
		cost = base.Cost.Format(c.opts.CurrencySymbol)
	}

	switch v := r.(type) {
	case domain.MaintenanceTask:
		return []string{v.ID, v.Title, v.Asset, v.Category, scheduled, completed, string(v.Status()), cost, v.Owner}
	case domain.Booking:
		return []string{v.ID, v.Title, v.Resource, v.Category, scheduled, strconv.Itoa(v.Attendees), string(v.Status()), cost, v.Owner}
	case domain.HSEInspection:
		return []string{v.ID, v.Title, v.Area, v.Category, scheduled, completed, strconv.Itoa(v.Findings), string(v.Status()), v.Owner}
	default:
		return []string{base.ID, base.Title}
	}
}
