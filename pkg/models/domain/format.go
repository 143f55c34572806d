package domain

import (
	"fmt"
	"strings"
)

// ReportFormat represents the output format of a report.
type ReportFormat string

const (
	ReportFormatPDF  ReportFormat = "pdf"
	ReportFormatXLSX ReportFormat = "xlsx"
)

func ParseReportFormat(s string) (ReportFormat, error) {
	if s == "" {
		return ReportFormatPDF, nil
	}
	f := ReportFormat(strings.ToLower(s))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: unsupported report format %q", ErrValidation, s)
	}
	return f, nil
}

func (f ReportFormat) IsValid() bool {
	switch f {
	case ReportFormatPDF, ReportFormatXLSX:
		return true
	}
	return false
}

// ContentType returns the MIME content type for the format.
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatPDF:
		return "application/pdf"
	case ReportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

func (f ReportFormat) FileExtension() string {
	return string(f)
}
