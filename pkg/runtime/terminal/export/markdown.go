package export

import (
	"io"

	"github.com/nao1215/markdown"
)

// MarkdownReporter prints a summary as a GitHub flavoured markdown document.
type MarkdownReporter struct {
	writer io.Writer
}

func NewMarkdownReporter(writer io.Writer) *MarkdownReporter {
	return &MarkdownReporter{writer: writer}
}

func (r *MarkdownReporter) Handle(view SummaryView) error {
	md := markdown.NewMarkdown(r.writer)

	md.H1(view.Title)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Period", view.Period},
			{"As of", view.AsOf},
		},
	})
	md.PlainText("")

	md.H2("Totals")
	md.PlainText("")
	md.Table(markdown.TableSet{Header: []string{"Metric", "Value"}, Rows: rows(view.Totals)})
	md.PlainText("")

	for _, s := range view.Sections {
		md.H2(s.Title)
		md.PlainText("")
		md.Table(markdown.TableSet{Header: []string{"Status", "Count"}, Rows: rows(s.Rows)})
		md.PlainText("")
	}

	if len(view.Histogram) > 0 {
		md.H2("Records per month")
		md.PlainText("")
		md.Table(markdown.TableSet{Header: []string{"Month", "Records"}, Rows: rows(view.Histogram)})
	}

	return md.Build()
}

func rows(in []Row) [][]string {
	out := make([][]string, 0, len(in))
	for _, r := range in {
		out = append(out, []string{r.Name, r.Value})
	}
	return out
}
