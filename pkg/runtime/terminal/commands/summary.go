package commands

import (
	"fmt"

	"github.com/de-tools/facility-atlas/pkg/runtime/terminal/export"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	env      *Env
	filters  filterFlags
	markdown bool
}

func NewSummaryCmd(env *Env) *cobra.Command {
	sc := &SummaryCmd{env: env}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print summary metrics for the selected records",
		RunE:  sc.run,
	}

	sc.filters.register(cmd)
	cmd.Flags().BoolVar(&sc.markdown, "markdown", false, "Print the summary as markdown")

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, _ []string) error {
	req, err := sc.filters.request()
	if err != nil {
		return err
	}

	metrics, err := sc.env.Reports.Summarize(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to summarize records: %w", err)
	}

	view := export.NewSummaryView("Facility summary", req.Period, metrics, sc.env.CurrencySymbol)
	if sc.markdown {
		return export.NewMarkdownReporter(sc.env.Output).Handle(view)
	}
	if err := export.NewReporter(sc.env.Output).Handle(view); err != nil {
		return err
	}
	if metrics.Overdue > 0 {
		_, err = fmt.Fprintln(sc.env.Output,
			color.New(color.FgRed, color.Bold).Sprintf("%d overdue record(s) need attention", metrics.Overdue))
	}
	return err
}
