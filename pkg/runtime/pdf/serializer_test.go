package pdf

import (
	"bytes"
	"fmt"
	"image"
	"testing"
	"time"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"github.com/de-tools/facility-atlas/pkg/services/aggregate"
	"github.com/de-tools/facility-atlas/pkg/services/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)

func sampleRecords(t *testing.T) []domain.Record {
	t.Helper()
	cost := domain.MoneyFromFloat(420.75)
	var records []domain.Record
	for i := 0; i < 30; i++ {
		r, err := domain.NewMaintenanceTask(domain.Base{
			ID:            fmt.Sprintf("m%02d", i),
			Title:         "Replace air filter in the east wing plant room",
			Category:      "HVAC",
			ScheduledDate: time.Date(2025, time.Month(1+i%3), 1+i, 0, 0, 0, 0, time.UTC),
			Cost:          &cost,
			Owner:         "Zoë",
		}, domain.StatusDue, "AHU-1")
		require.NoError(t, err)
		records = append(records, r)
	}
	insp, err := domain.NewHSEInspection(domain.Base{
		ID: "h1", Title: "Fire exits", ScheduledDate: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
	}, domain.StatusNonCompliant, "Loading bay", 2)
	require.NoError(t, err)
	return append(records, insp)
}

func composeDoc(t *testing.T, records []domain.Record) (*domain.Document, report.Layout) {
	t.Helper()
	opts := report.DefaultOptions()
	opts.CurrencySymbol = "£"
	opts.Facility = "North Campus"
	c, err := report.NewComposer(opts)
	require.NoError(t, err)

	doc := c.Compose(report.Input{
		Title:       "Facility Operations Report",
		Period:      domain.DateRange{Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		GeneratedAt: generatedAt,
		Metrics:     aggregate.Summarize(records, generatedAt),
		Records:     records,
	})
	return doc, c.Layout()
}

func TestSerializer_Serialize(t *testing.T) {
	doc, layout := composeDoc(t, sampleRecords(t))
	s := NewSerializer(layout)

	out, err := s.Serialize(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, domain.ReportFormatPDF, s.Format())

	// one /Type /Page object per composed page
	pages := bytes.Count(out, []byte("/Type /Page")) - bytes.Count(out, []byte("/Type /Pages"))
	assert.Equal(t, len(doc.Pages), pages)
}

func TestSerializer_Deterministic(t *testing.T) {
	doc, layout := composeDoc(t, sampleRecords(t))
	s := NewSerializer(layout)

	first, err := s.Serialize(doc)
	require.NoError(t, err)
	second, err := s.Serialize(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSerializer_EmptyDocument(t *testing.T) {
	doc, layout := composeDoc(t, nil)

	out, err := NewSerializer(layout).Serialize(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestSerializer_Errors(t *testing.T) {
	layout := report.DefaultLayout()

	tests := []struct {
		name  string
		block domain.Block
	}{
		{
			name: "empty chart image",
			block: domain.Block{Type: domain.BlockChart, Height: 40, Chart: &domain.ChartImage{
				Name: "histogram", Image: image.NewRGBA(image.Rect(0, 0, 0, 0)), Width: 100, Height: 30,
			}},
		},
		{
			name:  "chart without image",
			block: domain.Block{Type: domain.BlockChart, Height: 40},
		},
		{
			name:  "table without rows",
			block: domain.Block{Type: domain.BlockTable, Height: 40},
		},
		{
			name:  "unknown block",
			block: domain.Block{Type: "sparkline", Height: 10},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := &domain.Document{
				Title:       "Broken",
				GeneratedAt: generatedAt,
				Pages:       []domain.Page{{Number: 1, Blocks: []domain.Block{tc.block}}},
			}

			out, err := NewSerializer(layout).Serialize(doc)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, domain.ErrSerialization)
		})
	}

	_, err := NewSerializer(layout).Serialize(nil)
	assert.ErrorIs(t, err, domain.ErrSerialization)
}

func TestScaleWidths(t *testing.T) {
	widths := scaleWidths([]float64{1, 3}, 3, 100)
	require.Len(t, widths, 3)
	assert.InDelta(t, 20, widths[0], 0.001)
	assert.InDelta(t, 60, widths[1], 0.001)
	assert.InDelta(t, 20, widths[2], 0.001)
}
