package domain

import (
	"image"
	"time"
)

type SectionType string

const (
	SectionCover   SectionType = "cover"
	SectionSummary SectionType = "summary"
	SectionTable   SectionType = "table"
	SectionNotice  SectionType = "notice"
)

type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockKeyValues BlockType = "key_values"
	BlockTable     BlockType = "table"
	BlockChart     BlockType = "chart"
	BlockNotice    BlockType = "notice"
)

// Document is a fully paginated report ready for serialization.
type Document struct {
	Title       string
	Facility    string
	GeneratedAt time.Time
	Period      DateRange
	Sections    []ReportSection
	Pages       []Page
}

// ReportSection represents a logical section in the report and the pages it occupies.
type ReportSection struct {
	Type      SectionType
	Heading   string
	Kind      Kind
	FirstPage int
	PageCount int
}

func (d *Document) SectionsOf(t SectionType) []ReportSection {
	var out []ReportSection
	for _, s := range d.Sections {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

// Page holds blocks in top-to-bottom order. Block heights are in millimetres.
type Page struct {
	Number int
	Blocks []Block
}

type Block struct {
	Type   BlockType
	Text   string
	Pairs  []KeyValue
	Table  *TableFragment
	Chart  *ChartImage
	Height float64
}

type KeyValue struct {
	Key   string
	Value string
}

// TableFragment is the slice of a table that fits on one page. Header is
// repeated on every fragment.
type TableFragment struct {
	Kind      Kind
	Header    []string
	Widths    []float64
	Rows      []TableRow
	Continued bool
}

type TableRow struct {
	Cells   []string
	Overdue bool
}

type ChartImage struct {
	Name    string
	Image   image.Image
	Width   float64
	Height  float64
	Caption string
}

// Artifact is a serialized report handed to the presentation layer.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}
