package report

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"github.com/de-tools/facility-atlas/pkg/services/aggregate"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const DefaultTitle = "Facility Operations Report"

type RecordFetcher interface {
	Fetch(ctx context.Context, kind domain.Kind, period domain.DateRange, statuses []domain.Status) ([]domain.Record, error)
}

// Serializer turns a composed document into bytes of one format.
type Serializer interface {
	Format() domain.ReportFormat
	Serialize(doc *domain.Document) ([]byte, error)
}

// ProfileLookup resolves the configured title and file name for a report scope.
type ProfileLookup interface {
	Lookup(scope string) (title, filename string)
}

type Request struct {
	Kinds    []domain.Kind
	Period   domain.DateRange
	Statuses []domain.Status
	Title    string
	Format   domain.ReportFormat
	// AsOf overrides the date overdue and upcoming records are measured against.
	AsOf time.Time
}

type Service interface {
	Generate(ctx context.Context, req Request) (*domain.Artifact, error)
	Summarize(ctx context.Context, req Request) (domain.SummaryMetrics, error)
	ListRecords(ctx context.Context, req Request) ([]domain.Record, error)
}

type Dependencies struct {
	Records     RecordFetcher
	Composer    *Composer
	Serializers []Serializer
	Profiles    ProfileLookup
	Clock       func() time.Time
}

type service struct {
	records     RecordFetcher
	composer    *Composer
	serializers map[domain.ReportFormat]Serializer
	profiles    ProfileLookup
	clock       func() time.Time
}

func NewService(deps Dependencies) (Service, error) {
	if deps.Records == nil {
		return nil, fmt.Errorf("record store is nil")
	}
	if deps.Composer == nil {
		return nil, fmt.Errorf("composer is nil")
	}
	s := &service{
		records:     deps.Records,
		composer:    deps.Composer,
		serializers: make(map[domain.ReportFormat]Serializer, len(deps.Serializers)),
		profiles:    deps.Profiles,
		clock:       deps.Clock,
	}
	for _, ser := range deps.Serializers {
		s.serializers[ser.Format()] = ser
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s, nil
}

func (s *service) Generate(ctx context.Context, req Request) (*domain.Artifact, error) {
	logger := zerolog.Ctx(ctx).With().Str("report_id", uuid.NewString()).Logger()

	if req.Format == "" {
		req.Format = domain.ReportFormatPDF
	}
	serializer, ok := s.serializers[req.Format]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported report format %q", domain.ErrValidation, req.Format)
	}

	records, err := s.ListRecords(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	metrics := aggregate.Summarize(records, s.asOf(req, now))

	title, base := s.naming(req)
	doc := s.composer.Compose(Input{
		Title:       title,
		Period:      req.Period,
		GeneratedAt: now,
		Metrics:     metrics,
		Records:     records,
	})

	body, err := serializer.Serialize(doc)
	if err != nil {
		logger.Error().Err(err).Str("format", string(req.Format)).Msg("failed to serialize report")
		return nil, err
	}

	artifact := &domain.Artifact{
		Filename:    Filename(base, req.Period, req.Format),
		ContentType: req.Format.ContentType(),
		Body:        body,
	}
	logger.Info().
		Str("file", artifact.Filename).
		Int("records", len(records)).
		Int("pages", len(doc.Pages)).
		Int("bytes", len(body)).
		Msg("report generated")

	return artifact, nil
}

func (s *service) Summarize(ctx context.Context, req Request) (domain.SummaryMetrics, error) {
	records, err := s.ListRecords(ctx, req)
	if err != nil {
		return domain.SummaryMetrics{}, err
	}
	return aggregate.Summarize(records, s.asOf(req, s.clock())), nil
}

// ListRecords validates the request and fetches the records of every requested
// kind, kinds in report order.
func (s *service) ListRecords(ctx context.Context, req Request) ([]domain.Record, error) {
	if err := req.Period.Validate(); err != nil {
		return nil, err
	}
	kinds, err := requestedKinds(req.Kinds)
	if err != nil {
		return nil, err
	}
	plan, err := statusPlan(kinds, req.Statuses)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0)
	for _, kind := range kinds {
		statuses, ok := plan[kind]
		if !ok {
			continue
		}
		fetched, err := s.records.Fetch(ctx, kind, req.Period, statuses)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("kind", string(kind)).Msg("failed to fetch records")
			return nil, err
		}
		records = append(records, fetched...)
	}
	return records, nil
}

func (s *service) asOf(req Request, now time.Time) time.Time {
	if !req.AsOf.IsZero() {
		return req.AsOf
	}
	return now
}

func (s *service) naming(req Request) (title, base string) {
	scope := "all"
	if len(req.Kinds) == 1 {
		scope = string(req.Kinds[0])
	}
	title, base = DefaultTitle, "facility-report"
	if scope != "all" {
		title = req.Kinds[0].Label() + " Report"
		base = scope + "-report"
	}
	if s.profiles != nil {
		t, f := s.profiles.Lookup(scope)
		if t != "" {
			title = t
		}
		if f != "" {
			base = f
		}
	}
	if strings.TrimSpace(req.Title) != "" {
		title = strings.TrimSpace(req.Title)
	}
	return title, base
}

func requestedKinds(kinds []domain.Kind) ([]domain.Kind, error) {
	if len(kinds) == 0 {
		return domain.Kinds, nil
	}
	var out []domain.Kind
	for _, k := range domain.Kinds {
		if slices.Contains(kinds, k) {
			out = append(out, k)
		}
	}
	for _, k := range kinds {
		if !k.IsValid() {
			return nil, fmt.Errorf("%w: unknown record kind %q", domain.ErrValidation, k)
		}
	}
	return out, nil
}

// statusPlan assigns each status filter to the kinds it belongs to. A kind
// none of the statuses apply to is left out; a status no requested kind
// knows is a validation error.
func statusPlan(kinds []domain.Kind, statuses []domain.Status) (map[domain.Kind][]domain.Status, error) {
	plan := make(map[domain.Kind][]domain.Status, len(kinds))
	if len(statuses) == 0 {
		for _, k := range kinds {
			plan[k] = nil
		}
		return plan, nil
	}

	for _, st := range statuses {
		matched := false
		for _, k := range kinds {
			if k.HasStatus(st) {
				plan[k] = append(plan[k], st)
				matched = true
			}
		}
		if !matched {
			return nil, fmt.Errorf("%w: status %q does not apply to the requested record kinds", domain.ErrValidation, st)
		}
	}
	return plan, nil
}

// Filename builds the suggested download name for a report.
func Filename(base string, period domain.DateRange, format domain.ReportFormat) string {
	span := "all"
	switch {
	case !period.Start.IsZero() && !period.End.IsZero():
		span = period.Start.Format(domain.DateLayout) + "_" + period.End.Format(domain.DateLayout)
	case !period.Start.IsZero():
		span = "from-" + period.Start.Format(domain.DateLayout)
	case !period.End.IsZero():
		span = "until-" + period.End.Format(domain.DateLayout)
	}
	return fmt.Sprintf("%s-%s.%s", base, span, format.FileExtension())
}
