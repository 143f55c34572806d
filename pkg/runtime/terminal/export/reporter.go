package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  32,
		ValueWidth: 24,
	}
}

// Reporter prints a summary as plain text tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(view SummaryView) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, value string) string {
			return fmt.Sprintf("| %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
	}

	tmpl := `{{.Title}}
Period: {{.Period}}
As of: {{.AsOf}}

{{separator}}
{{range .Totals}}{{formatRow .Name .Value}}
{{end}}{{separator}}
{{range .Sections}}
=== {{.Title}} ===
{{separator}}
{{range .Rows}}{{formatRow .Name .Value}}
{{end}}{{separator}}
{{end}}{{if .Histogram}}
=== Records per month ===
{{separator}}
{{range .Histogram}}{{formatRow .Name .Value}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("summary").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, view)
}
