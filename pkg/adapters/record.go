package adapters

import (
	"time"

	"github.com/de-tools/facility-atlas/pkg/models/api"
	"github.com/de-tools/facility-atlas/pkg/models/domain"
)

func MapDomainRecordToAPI(r domain.Record, asOf time.Time) api.Record {
	base := r.Common()
	out := api.Record{
		ID:            base.ID,
		Kind:          string(r.Kind()),
		Title:         base.Title,
		Category:      base.Category,
		Status:        string(r.Status()),
		ScheduledDate: base.ScheduledDate.Format(domain.DateLayout),
		Owner:         base.Owner,
		Overdue:       domain.IsOverdue(r, asOf),
	}
	if base.CompletedDate != nil {
		completed := base.CompletedDate.Format(domain.DateLayout)
		out.CompletedDate = &completed
	}
	if base.Cost != nil {
		cost := base.Cost.Float()
		out.Cost = &cost
	}

	switch v := r.(type) {
	case domain.MaintenanceTask:
		out.Asset = v.Asset
	case domain.Booking:
		attendees := v.Attendees
		out.Resource = v.Resource
		out.Attendees = &attendees
	case domain.HSEInspection:
		findings := v.Findings
		out.Area = v.Area
		out.Findings = &findings
	}
	return out
}

func MapDomainRecordsToAPI(records []domain.Record, asOf time.Time) []api.Record {
	out := make([]api.Record, 0, len(records))
	for _, r := range records {
		out = append(out, MapDomainRecordToAPI(r, asOf))
	}
	return out
}
