package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	env     *Env
	filters filterFlags
	format  string
	title   string
	outDir  string
}

func NewReportCmd(env *Env) *cobra.Command {
	rc := &ReportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a PDF or XLSX facility report",
		RunE:  rc.run,
	}

	rc.filters.register(cmd)
	cmd.Flags().StringVar(&rc.format, "format", "pdf", "Output format: pdf or xlsx")
	cmd.Flags().StringVar(&rc.title, "title", "", "Report title (default from the report profile)")
	cmd.Flags().StringVarP(&rc.outDir, "out", "o", ".", "Directory to write the report to")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	req, err := rc.filters.request()
	if err != nil {
		return err
	}
	if req.Format, err = domain.ParseReportFormat(rc.format); err != nil {
		return err
	}
	req.Title = rc.title

	artifact, err := rc.env.Reports.Generate(cmd.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrDataUnavailable) {
			return fmt.Errorf("record store is unavailable, try again shortly: %w", err)
		}
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if err := os.MkdirAll(rc.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(rc.outDir, artifact.Filename)
	if err := writeReport(path, artifact.Body); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	_, err = fmt.Fprintf(rc.env.Output, "%s %s (%d bytes)\n",
		color.New(color.FgGreen).Sprint("wrote"), path, len(artifact.Body))
	return err
}

// writeReport stages body in a temporary file next to path and renames it into
// place, so path either holds the whole report or is left untouched.
func writeReport(path string, body []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(body); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
