package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/facility-atlas/pkg/adapters"
	"github.com/de-tools/facility-atlas/pkg/models/api"
	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"github.com/de-tools/facility-atlas/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	allKinds = "all"
	// retryAfterSeconds is sent with 503 responses when the record store is down.
	retryAfterSeconds = "30"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	svc    report.Service
	health Pinger
	now    func() time.Time
}

func NewHandler(svc report.Service, health Pinger) *Handler {
	return &Handler{svc: svc, health: health, now: time.Now}
}

// GetReport streams a generated report as a download.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	req, ok := parseRequest(w, r, chi.URLParam(r, "kind"))
	if !ok {
		return
	}
	format, err := domain.ParseReportFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Format = format
	req.Title = r.URL.Query().Get("title")

	artifact, err := h.svc.Generate(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}))
	w.Header().Set("Content-Length", fmt.Sprint(len(artifact.Body)))
	if _, err := w.Write(artifact.Body); err != nil {
		logger.Error().
			Err(err).
			Str("file", artifact.Filename).
			Msg("failed to write report")
	}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := parseRequest(w, r, r.URL.Query().Get("kind"))
	if !ok {
		return
	}

	metrics, err := h.svc.Summarize(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(ctx, w, adapters.MapSummaryToAPI(metrics))
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := parseRequest(w, r, chi.URLParam(r, "kind"))
	if !ok {
		return
	}

	records, err := h.svc.ListRecords(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = h.now()
	}
	writeJSON(ctx, w, adapters.MapDomainRecordsToAPI(records, asOf))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.health.Ping(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("health check failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(api.Health{Status: "unavailable", Error: err.Error()})
		return
	}
	writeJSON(ctx, w, api.Health{Status: "ok"})
}

// parseRequest reads the filters shared by every endpoint. It writes a 400
// response and returns false when a parameter is malformed.
func parseRequest(w http.ResponseWriter, r *http.Request, kind string) (report.Request, bool) {
	query := r.URL.Query()
	var req report.Request

	if kind != "" && kind != allKinds {
		k, err := domain.ParseKind(kind)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return req, false
		}
		req.Kinds = []domain.Kind{k}
	}

	var from, to time.Time
	for _, param := range []string{"from", "to", "as_of"} {
		value := query.Get(param)
		if value == "" {
			continue
		}
		t, err := time.Parse(domain.DateLayout, value)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid '%s' date format. Expected format: YYYY-MM-DD", param), http.StatusBadRequest)
			return req, false
		}
		switch param {
		case "from":
			from = t
		case "to":
			to = t
		case "as_of":
			req.AsOf = t
		}
	}
	period, err := domain.NewDateRange(from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return req, false
	}
	req.Period = period

	for _, value := range query["status"] {
		for _, s := range strings.Split(value, ",") {
			if strings.TrimSpace(s) == "" {
				continue
			}
			status, err := domain.ParseAnyStatus(s)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return req, false
			}
			req.Statuses = append(req.Statuses, status)
		}
	}
	return req, true
}

func writeError(w http.ResponseWriter, err error) {
	// Store errors win: a corrupt stored row wraps both sentinels.
	switch {
	case errors.Is(err, domain.ErrDataUnavailable):
		w.Header().Set("Retry-After", retryAfterSeconds)
		http.Error(w, "record store is unavailable, please retry shortly", http.StatusServiceUnavailable)
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "failed to generate report", http.StatusInternalServerError)
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
