package pdf

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"github.com/de-tools/facility-atlas/pkg/services/report"
	"github.com/go-pdf/fpdf"
)

const (
	fontFamily = "Helvetica"
	creator    = "facility-atlas"
)

// Serializer renders composed documents to PDF. It draws blocks exactly where
// the composer placed them and never breaks pages on its own.
type Serializer struct {
	layout report.Layout
}

func NewSerializer(layout report.Layout) *Serializer {
	return &Serializer{layout: layout}
}

func (s *Serializer) Format() domain.ReportFormat {
	return domain.ReportFormatPDF
}

// Serialize returns the PDF bytes of doc. Output is identical for identical
// documents, GeneratedAt included.
func (s *Serializer) Serialize(doc *domain.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrSerialization)
	}
	l := s.layout

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	pdf.SetMargins(l.Margin, l.Margin, l.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetModificationDate(doc.GeneratedAt)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator(creator, false)
	pdf.AliasNbPages("{nb}")

	r := &renderer{pdf: pdf, layout: l, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	for _, page := range doc.Pages {
		if err := r.page(doc, page); err != nil {
			return nil, err
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %w", domain.ErrSerialization, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: write pdf: %w", domain.ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf    *fpdf.Fpdf
	layout report.Layout
	tr     func(string) string
}

func (r *renderer) page(doc *domain.Document, page domain.Page) error {
	l := r.layout
	r.pdf.AddPage()
	r.header(doc)

	y := l.ContentTop()
	for i, b := range page.Blocks {
		if err := r.block(b, y, fmt.Sprintf("p%d-b%d", page.Number, i)); err != nil {
			return err
		}
		y += b.Height
	}

	r.footer()
	return nil
}

func (r *renderer) header(doc *domain.Document) {
	l := r.layout
	r.pdf.SetFont(fontFamily, "", 8)
	r.pdf.SetTextColor(110, 110, 110)
	r.pdf.SetXY(l.Margin, l.Margin)

	left := doc.Title
	if doc.Facility != "" {
		left = doc.Facility + " - " + doc.Title
	}
	half := l.ContentWidth() / 2
	r.pdf.CellFormat(half, l.HeaderHeight/2, r.fit(r.tr(left), half), "", 0, "L", false, 0, "")
	r.pdf.CellFormat(half, l.HeaderHeight/2, r.tr(doc.Period.String()), "", 0, "R", false, 0, "")

	r.pdf.SetDrawColor(200, 200, 200)
	lineY := l.Margin + l.HeaderHeight*0.6
	r.pdf.Line(l.Margin, lineY, l.PageWidth-l.Margin, lineY)
	r.pdf.SetTextColor(0, 0, 0)
}

func (r *renderer) footer() {
	l := r.layout
	r.pdf.SetFont(fontFamily, "", 8)
	r.pdf.SetTextColor(110, 110, 110)
	r.pdf.SetXY(l.Margin, l.PageHeight-l.Margin-l.FooterHeight/2)
	r.pdf.CellFormat(l.ContentWidth(), l.FooterHeight/2,
		fmt.Sprintf("Page %d of {nb}", r.pdf.PageNo()), "", 0, "C", false, 0, "")
	r.pdf.SetTextColor(0, 0, 0)
}

func (r *renderer) block(b domain.Block, y float64, name string) error {
	l := r.layout
	x := l.Margin
	width := l.ContentWidth()

	switch b.Type {
	case domain.BlockHeading:
		size := 14.0
		if b.Height >= l.TitleHeight {
			size = 22
		}
		r.pdf.SetFont(fontFamily, "B", size)
		r.pdf.SetXY(x, y)
		r.pdf.CellFormat(width, b.Height, r.fit(r.tr(b.Text), width), "", 0, "L", false, 0, "")

	case domain.BlockParagraph:
		r.pdf.SetFont(fontFamily, "", 10)
		r.pdf.SetXY(x, y)
		r.pdf.MultiCell(width, l.LineHeight, r.tr(b.Text), "", "L", false)

	case domain.BlockKeyValues:
		keyWidth := width * 0.45
		for i, kv := range b.Pairs {
			r.pdf.SetXY(x, y+float64(i)*l.LineHeight)
			r.pdf.SetFont(fontFamily, "B", 10)
			r.pdf.CellFormat(keyWidth, l.LineHeight, r.fit(r.tr(kv.Key), keyWidth), "", 0, "L", false, 0, "")
			r.pdf.SetFont(fontFamily, "", 10)
			r.pdf.CellFormat(width-keyWidth, l.LineHeight, r.fit(r.tr(kv.Value), width-keyWidth), "", 0, "L", false, 0, "")
		}

	case domain.BlockNotice:
		r.pdf.SetFont(fontFamily, "I", 11)
		r.pdf.SetFillColor(255, 246, 214)
		r.pdf.SetXY(x, y)
		r.pdf.CellFormat(width, b.Height, r.tr(b.Text), "1", 0, "C", true, 0, "")

	case domain.BlockTable:
		if b.Table == nil {
			return fmt.Errorf("%w: table block without table", domain.ErrSerialization)
		}
		r.table(b.Table, x, y)

	case domain.BlockChart:
		return r.chart(b.Chart, x, y, name)

	default:
		return fmt.Errorf("%w: unknown block type %q", domain.ErrSerialization, b.Type)
	}
	return nil
}

func (r *renderer) table(t *domain.TableFragment, x, y float64) {
	l := r.layout
	widths := scaleWidths(t.Widths, len(t.Header), l.ContentWidth())

	r.pdf.SetFont(fontFamily, "B", 8)
	r.pdf.SetFillColor(225, 232, 240)
	r.pdf.SetXY(x, y)
	for i, h := range t.Header {
		r.pdf.CellFormat(widths[i], l.RowHeight, r.fit(r.tr(h), widths[i]), "1", 0, "L", true, 0, "")
	}

	r.pdf.SetFont(fontFamily, "", 8)
	for n, row := range t.Rows {
		r.pdf.SetXY(x, y+float64(n+1)*l.RowHeight)
		if row.Overdue {
			r.pdf.SetTextColor(176, 0, 32)
		}
		for i := range t.Header {
			cell := ""
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			r.pdf.CellFormat(widths[i], l.RowHeight, r.fit(r.tr(cell), widths[i]), "1", 0, "L", false, 0, "")
		}
		r.pdf.SetTextColor(0, 0, 0)
	}
}

func (r *renderer) chart(c *domain.ChartImage, x, y float64, name string) error {
	if c == nil || c.Image == nil {
		return fmt.Errorf("%w: chart block without image", domain.ErrSerialization)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, c.Image); err != nil {
		return fmt.Errorf("%w: encode chart %s: %w", domain.ErrSerialization, c.Name, err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	imageName := c.Name + "-" + name
	r.pdf.RegisterImageOptionsReader(imageName, opts, &buf)
	if r.pdf.Err() {
		return fmt.Errorf("%w: embed chart %s: %w", domain.ErrSerialization, c.Name, r.pdf.Error())
	}
	r.pdf.ImageOptions(imageName, x, y, c.Width, c.Height, false, opts, 0, "")

	if c.Caption != "" {
		r.pdf.SetFont(fontFamily, "I", 9)
		r.pdf.SetXY(x, y+c.Height)
		r.pdf.CellFormat(c.Width, r.layout.LineHeight, r.tr(c.Caption), "", 0, "C", false, 0, "")
	}
	return nil
}

// fit shortens an already translated string with an ellipsis so it fits into
// width millimetres of the current font. Core fonts are single byte, so
// trimming bytes keeps characters intact.
func (r *renderer) fit(s string, width float64) string {
	const padding = 2
	if r.pdf.GetStringWidth(s) <= width-padding {
		return s
	}
	for n := len(s) - 1; n > 0; n-- {
		candidate := s[:n] + "..."
		if r.pdf.GetStringWidth(candidate) <= width-padding {
			return candidate
		}
	}
	return ""
}

func scaleWidths(weights []float64, columns int, total float64) []float64 {
	widths := make([]float64, columns)
	sum := 0.0
	for i := 0; i < columns; i++ {
		w := 1.0
		if i < len(weights) && weights[i] > 0 {
			w = weights[i]
		}
		widths[i] = w
		sum += w
	}
	for i := range widths {
		widths[i] = total * widths[i] / sum
	}
	return widths
}
