package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/facility-atlas/pkg/models/api"
	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"github.com/de-tools/facility-atlas/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Generate(ctx context.Context, req report.Request) (*domain.Artifact, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

func (m *mockService) Summarize(ctx context.Context, req report.Request) (domain.SummaryMetrics, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.SummaryMetrics), args.Error(1)
}

func (m *mockService) ListRecords(ctx context.Context, req report.Request) ([]domain.Record, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func withKind(req *http.Request, kind string) *http.Request {
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add("kind", kind)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func TestGetReport(t *testing.T) {
	tests := []struct {
		name           string
		kind           string
		query          string
		setupMock      func(*mockService)
		expectedStatus int
		expectedBody   string
		expectedHeader map[string]string
	}{
		{
			name:  "pdf download",
			kind:  "maintenance",
			query: "?from=2025-01-01&to=2025-03-31&status=Due,Upcoming",
			setupMock: func(m *mockService) {
				m.On("Generate", mock.Anything, report.Request{
					Kinds:    []domain.Kind{domain.KindMaintenance},
					Period:   domain.DateRange{Start: day(2025, 1, 1), End: day(2025, 3, 31)},
					Statuses: []domain.Status{domain.StatusDue, domain.StatusUpcoming},
					Format:   domain.ReportFormatPDF,
				}).Return(&domain.Artifact{
					Filename:    "maintenance-report-2025-01-01_2025-03-31.pdf",
					ContentType: "application/pdf",
					Body:        []byte("%PDF-1.3"),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "%PDF-1.3",
			expectedHeader: map[string]string{
				"Content-Type":        "application/pdf",
				"Content-Disposition": "attachment; filename=maintenance-report-2025-01-01_2025-03-31.pdf",
			},
		},
		{
			name:  "all kinds as xlsx with title",
			kind:  "all",
			query: "?format=xlsx&title=Board+pack",
			setupMock: func(m *mockService) {
				m.On("Generate", mock.Anything, report.Request{
					Format: domain.ReportFormatXLSX,
					Title:  "Board pack",
				}).Return(&domain.Artifact{
					Filename:    "facility-report-all.xlsx",
					ContentType: domain.ReportFormatXLSX.ContentType(),
					Body:        []byte("PK"),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "PK",
		},
		{
			name:           "invalid from date",
			kind:           "all",
			query:          "?from=invalid-date",
			setupMock:      func(m *mockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid 'from' date format. Expected format: YYYY-MM-DD\n",
		},
		{
			name:           "invalid to date",
			kind:           "all",
			query:          "?to=2025-13-01",
			setupMock:      func(m *mockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid 'to' date format. Expected format: YYYY-MM-DD\n",
		},
		{
			name:           "unknown kind",
			kind:           "assets",
			setupMock:      func(m *mockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown format",
			kind:           "all",
			query:          "?format=docx",
			setupMock:      func(m *mockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "inverted range",
			kind:           "all",
			query:          "?from=2025-02-01&to=2025-01-01",
			setupMock:      func(m *mockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "validation error: range start 2025-02-01 is after end 2025-01-01\n",
		},
		{
			name: "profile filename outside ascii",
			kind: "all",
			setupMock: func(m *mockService) {
				m.On("Generate", mock.Anything, mock.Anything).Return(&domain.Artifact{
					Filename:    "Zoë-report-all.pdf",
					ContentType: "application/pdf",
					Body:        []byte("%PDF-1.3"),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedHeader: map[string]string{
				"Content-Disposition": "attachment; filename*=utf-8''Zo%C3%AB-report-all.pdf",
			},
		},
		{
			name: "store unavailable",
			kind: "hse",
			setupMock: func(m *mockService) {
				m.On("Generate", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, errors.New("database is locked")))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedHeader: map[string]string{"Retry-After": "30"},
		},
		{
			name: "corrupt stored row",
			kind: "booking",
			setupMock: func(m *mockService) {
				m.On("Generate", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: decode booking row b1: %w", domain.ErrDataUnavailable,
						fmt.Errorf("%w: status \"Booked\" is not valid for booking record b1", domain.ErrValidation)))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "record store is unavailable, please retry shortly\n",
			expectedHeader: map[string]string{"Retry-After": "30"},
		},
		{
			name: "serialization failure",
			kind: "hse",
			setupMock: func(m *mockService) {
				m.On("Generate", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: encode chart", domain.ErrSerialization))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "failed to generate report\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			tt.setupMock(svc)
			handler := NewHandler(svc, new(mockPinger))

			req := withKind(httptest.NewRequest("GET", "/reports/"+tt.kind+tt.query, nil), tt.kind)
			rec := httptest.NewRecorder()

			handler.GetReport(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, rec.Body.String())
			}
			for k, v := range tt.expectedHeader {
				assert.Equal(t, v, rec.Header().Get(k), k)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestGetSummary(t *testing.T) {
	svc := new(mockService)
	metrics := domain.SummaryMetrics{
		AsOf:       day(2025, 3, 15),
		Total:      2,
		KindTotals: map[domain.Kind]int{domain.KindHSE: 2},
		StatusCounts: map[domain.Kind]map[domain.Status]int{
			domain.KindHSE: {domain.StatusNonCompliant: 1, domain.StatusCompliant: 1},
		},
		Overdue: 1,
	}
	svc.On("Summarize", mock.Anything, report.Request{
		Kinds: []domain.Kind{domain.KindHSE},
		AsOf:  day(2025, 3, 15),
	}).Return(metrics, nil)

	handler := NewHandler(svc, new(mockPinger))
	req := httptest.NewRequest("GET", "/summary?kind=hse&as_of=2025-03-15", nil)
	rec := httptest.NewRecorder()

	handler.GetSummary(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response api.Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "2025-03-15", response.AsOf)
	assert.Equal(t, 2, response.Total)
	assert.Equal(t, 1, response.Overdue)
	require.Len(t, response.Kinds, 3)
	assert.Equal(t, map[string]int{"NonCompliant": 1, "Compliant": 1}, response.Kinds[2].Statuses)
	assert.Equal(t, 0, response.Kinds[0].Total)
	assert.Empty(t, response.Histogram)
	svc.AssertExpectations(t)
}

func TestListRecords(t *testing.T) {
	svc := new(mockService)
	task, err := domain.NewMaintenanceTask(domain.Base{
		ID: "m1", Title: "Lift inspection", ScheduledDate: day(2025, 3, 1),
	}, domain.StatusDue, "Lift 2")
	require.NoError(t, err)

	svc.On("ListRecords", mock.Anything, report.Request{
		Kinds:    []domain.Kind{domain.KindMaintenance},
		Statuses: []domain.Status{domain.StatusDue},
	}).Return([]domain.Record{task}, nil)
	svc.On("ListRecords", mock.Anything, report.Request{}).Return([]domain.Record{}, nil)

	handler := NewHandler(svc, new(mockPinger))
	handler.now = func() time.Time { return day(2025, 3, 10) }

	req := withKind(httptest.NewRequest("GET", "/records/maintenance?status=due", nil), "maintenance")
	rec := httptest.NewRecorder()
	handler.ListRecords(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response []api.Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response, 1)
	assert.Equal(t, "m1", response[0].ID)
	assert.Equal(t, "Lift 2", response[0].Asset)
	assert.True(t, response[0].Overdue)

	req = withKind(httptest.NewRequest("GET", "/records/all", nil), "all")
	rec = httptest.NewRecorder()
	handler.ListRecords(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	req = withKind(httptest.NewRequest("GET", "/records/all?status=Lost", nil), "all")
	rec = httptest.NewRecorder()
	handler.ListRecords(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertExpectations(t)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedBody   api.Health
	}{
		{
			name:           "healthy",
			expectedStatus: http.StatusOK,
			expectedBody:   api.Health{Status: "ok"},
		},
		{
			name:           "database down",
			pingErr:        errors.New("disk I/O error"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   api.Health{Status: "unavailable", Error: "disk I/O error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinger := new(mockPinger)
			pinger.On("Ping", mock.Anything).Return(tt.pingErr)
			handler := NewHandler(new(mockService), pinger)

			rec := httptest.NewRecorder()
			handler.Health(rec, httptest.NewRequest("GET", "/healthz", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var response api.Health
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			assert.Equal(t, tt.expectedBody, response)
		})
	}
}
