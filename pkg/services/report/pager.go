package report

import "github.com/de-tools/facility-atlas/pkg/models/domain"

type pager struct {
	layout Layout
	pages  []domain.Page
	used   float64
}

func newPager(layout Layout) *pager {
	return &pager{layout: layout}
}

func (p *pager) newPage() {
	p.pages = append(p.pages, domain.Page{Number: len(p.pages) + 1})
	p.used = 0
}

func (p *pager) pageNo() int {
	return len(p.pages)
}

func (p *pager) remaining() float64 {
	return p.layout.ContentHeight() - p.used
}

// add appends b to the current page, moving to a fresh page first when b
// would overflow it. A block taller than a whole page still gets its own page.
func (p *pager) add(b domain.Block) {
	if len(p.pages) == 0 {
		p.newPage()
	}
	current := &p.pages[len(p.pages)-1]
	if b.Height > p.remaining() && len(current.Blocks) > 0 {
		p.newPage()
		current = &p.pages[len(p.pages)-1]
	}
	current.Blocks = append(current.Blocks, b)
	p.used += b.Height
}

func (p *pager) section(t domain.SectionType, heading string, kind domain.Kind, first int) domain.ReportSection {
	return domain.ReportSection{
		Type:      t,
		Heading:   heading,
		Kind:      kind,
		FirstPage: first,
		PageCount: p.pageNo() - first + 1,
	}
}
