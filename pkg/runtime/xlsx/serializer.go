package xlsx

import (
	"fmt"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// Serializer writes a composed document as a workbook: a Summary sheet with
// the cover and metric pairs, then one sheet per record kind.
type Serializer struct{}

func NewSerializer() *Serializer {
	return &Serializer{}
}

func (s *Serializer) Format() domain.ReportFormat {
	return domain.ReportFormatXLSX
}

func (s *Serializer) Serialize(doc *domain.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrSerialization)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("%w: rename sheet: %w", domain.ErrSerialization, err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("%w: create style: %w", domain.ErrSerialization, err)
	}

	w := &sheetWriter{f: f, bold: bold, next: map[string]int{}}
	w.row(summarySheet, true, doc.Title)

	tables := make(map[domain.Kind]*domain.TableFragment)
	var order []domain.Kind
	for _, page := range doc.Pages {
		for _, b := range page.Blocks {
			switch b.Type {
			case domain.BlockKeyValues:
				for _, kv := range b.Pairs {
					w.row(summarySheet, false, kv.Key, kv.Value)
				}
			case domain.BlockParagraph, domain.BlockNotice:
				w.row(summarySheet, false, b.Text)
			case domain.BlockTable:
				t, ok := tables[b.Table.Kind]
				if !ok {
					t = &domain.TableFragment{Kind: b.Table.Kind, Header: b.Table.Header}
					tables[b.Table.Kind] = t
					order = append(order, b.Table.Kind)
				}
				t.Rows = append(t.Rows, b.Table.Rows...)
			}
		}
	}

	for _, kind := range order {
		t := tables[kind]
		sheet := kind.Label()
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("%w: create sheet %s: %w", domain.ErrSerialization, sheet, err)
		}
		w.row(sheet, true, t.Header...)
		for _, r := range t.Rows {
			w.row(sheet, false, r.Cells...)
		}
		if err := f.SetColWidth(sheet, "A", columnName(len(t.Header)), 16); err != nil {
			return nil, fmt.Errorf("%w: size columns: %w", domain.ErrSerialization, err)
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 32); err != nil {
		return nil, fmt.Errorf("%w: size columns: %w", domain.ErrSerialization, err)
	}
	if w.err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSerialization, w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: write workbook: %w", domain.ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

// sheetWriter appends rows and keeps the first error it sees.
type sheetWriter struct {
	f    *excelize.File
	bold int
	next map[string]int
	err  error
}

func (w *sheetWriter) row(sheet string, header bool, values ...string) {
	if w.err != nil {
		return
	}
	w.next[sheet]++
	n := w.next[sheet]

	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := w.f.SetSheetRow(sheet, cell, &row); err != nil {
		w.err = fmt.Errorf("write %s row %d: %w", sheet, n, err)
		return
	}
	if header && len(values) > 0 {
		last, err := excelize.CoordinatesToCellName(len(values), n)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetCellStyle(sheet, cell, last, w.bold)
	}
}

func columnName(n int) string {
	name, err := excelize.ColumnNumberToName(max(n, 1))
	if err != nil {
		return "A"
	}
	return name
}
