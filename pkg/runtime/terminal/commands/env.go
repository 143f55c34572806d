package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"github.com/de-tools/facility-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type RecordWriter interface {
	Add(ctx context.Context, records ...domain.Record) error
}

// Env carries the services a command runs against. The CLI fills it in once
// the configuration has been loaded, before any command runs.
type Env struct {
	Reports        report.Service
	Records        RecordWriter
	RunInTx        func(ctx context.Context, fn func(ctx context.Context) error) error
	CurrencySymbol string
	Output         io.Writer
}

type filterFlags struct {
	kinds    []string
	statuses []string
	from     string
	to       string
	asOf     string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.kinds, "kind", nil, "Record kinds to include: maintenance, booking, hse (default all)")
	cmd.Flags().StringSliceVar(&f.statuses, "status", nil, "Statuses to include, e.g. Due,NonCompliant")
	cmd.Flags().StringVar(&f.from, "from", "", "First scheduled date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Last scheduled date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.asOf, "as-of", "", "Date overdue and upcoming records are measured against (default today)")
}

func (f *filterFlags) request() (report.Request, error) {
	var req report.Request

	for _, k := range f.kinds {
		if strings.TrimSpace(k) == "all" {
			req.Kinds = nil
			break
		}
		kind, err := domain.ParseKind(k)
		if err != nil {
			return req, err
		}
		req.Kinds = append(req.Kinds, kind)
	}
	for _, s := range f.statuses {
		status, err := domain.ParseAnyStatus(s)
		if err != nil {
			return req, err
		}
		req.Statuses = append(req.Statuses, status)
	}

	from, err := parseDate("from", f.from)
	if err != nil {
		return req, err
	}
	to, err := parseDate("to", f.to)
	if err != nil {
		return req, err
	}
	if req.Period, err = domain.NewDateRange(from, to); err != nil {
		return req, err
	}
	if req.AsOf, err = parseDate("as-of", f.asOf); err != nil {
		return req, err
	}
	return req, nil
}

func parseDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid '--%s' date format. Expected format: YYYY-MM-DD", domain.ErrValidation, flag)
	}
	return t, nil
}
