package report

import "fmt"

// DefaultRowsPerPage is the number of table rows placed on one page. The
// value leaves room for the section heading and the repeated header row on
// an A4 page with the default margins.
const DefaultRowsPerPage = 25

// Layout describes page geometry in millimetres. Pagination is decided from
// these fixed values, never from font metrics.
type Layout struct {
	PageWidth     float64
	PageHeight    float64
	Margin        float64
	HeaderHeight  float64
	FooterHeight  float64
	TitleHeight   float64
	HeadingHeight float64
	LineHeight    float64
	RowHeight     float64
	RowsPerPage   int
	ChartHeight   float64
	// PixelsPerMM sets the raster resolution of embedded charts.
	PixelsPerMM int
}

func DefaultLayout() Layout {
	return Layout{
		PageWidth:     210,
		PageHeight:    297,
		Margin:        15,
		HeaderHeight:  12,
		FooterHeight:  10,
		TitleHeight:   20,
		HeadingHeight: 10,
		LineHeight:    6,
		RowHeight:     7,
		RowsPerPage:   DefaultRowsPerPage,
		ChartHeight:   70,
		PixelsPerMM:   4,
	}
}

func (l Layout) ContentWidth() float64 {
	return l.PageWidth - 2*l.Margin
}

// ContentHeight is the vertical space available to blocks on a single page.
func (l Layout) ContentHeight() float64 {
	return l.PageHeight - 2*l.Margin - l.HeaderHeight - l.FooterHeight
}

// ContentTop is the y coordinate of the first block on a page.
func (l Layout) ContentTop() float64 {
	return l.Margin + l.HeaderHeight
}

func (l Layout) Validate() error {
	if l.PageWidth <= 2*l.Margin || l.ContentHeight() <= 0 {
		return fmt.Errorf("page %.0fx%.0fmm leaves no content area", l.PageWidth, l.PageHeight)
	}
	if l.RowsPerPage <= 0 {
		return fmt.Errorf("rows per page must be positive, got %d", l.RowsPerPage)
	}
	if l.RowHeight <= 0 || l.LineHeight <= 0 || l.HeadingHeight <= 0 || l.TitleHeight <= 0 {
		return fmt.Errorf("row, line, heading and title heights must be positive")
	}
	if need := l.HeadingHeight + float64(l.RowsPerPage+1)*l.RowHeight; need > l.ContentHeight() {
		return fmt.Errorf("%d rows per page need %.1fmm but the page has %.1fmm",
			l.RowsPerPage, need, l.ContentHeight())
	}
	if l.ChartHeight <= l.LineHeight || l.ChartHeight > l.ContentHeight() {
		return fmt.Errorf("chart height %.1fmm does not fit a page", l.ChartHeight)
	}
	if l.PixelsPerMM <= 0 {
		return fmt.Errorf("pixels per mm must be positive")
	}
	return nil
}
