package records

import (
	"fmt"
	"strings"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
)

type kindQuery struct {
	table   string
	columns string
	join    string
	extra   func(row *recordRow) []any
}

var queries = map[domain.Kind]kindQuery{
	domain.KindMaintenance: {
		table:   "maintenance_tasks",
		columns: "t.assignee, COALESCE(a.name, '')",
		join:    "LEFT JOIN assets a ON a.id = t.asset_id",
		extra: func(row *recordRow) []any {
			return []any{&row.detail}
		},
	},
	domain.KindBooking: {
		table:   "bookings",
		columns: "t.owner, t.resource, t.attendees",
		extra: func(row *recordRow) []any {
			return []any{&row.detail, &row.count}
		},
	},
	domain.KindHSE: {
		table:   "hse_inspections",
		columns: "t.inspector, t.area, t.findings",
		extra: func(row *recordRow) []any {
			return []any{&row.detail, &row.count}
		},
	},
}

// build renders the select for one kind. Rows come back ordered by scheduled
// date, then id, so reports are reproducible.
func (q kindQuery) build(period domain.DateRange, statuses []domain.Status) (string, []any) {
	var (
		where []string
		args  []any
	)
	if !period.Start.IsZero() {
		where = append(where, "t.scheduled_date >= ?")
		args = append(args, domain.DateOf(period.Start).Format(domain.DateLayout))
	}
	if !period.End.IsZero() {
		where = append(where, "t.scheduled_date <= ?")
		args = append(args, domain.DateOf(period.End).Format(domain.DateLayout))
	}
	if len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for _, st := range statuses {
			placeholders = append(placeholders, "?")
			args = append(args, string(st))
		}
		where = append(where, fmt.Sprintf("t.status IN (%s)", strings.Join(placeholders, ",")))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT t.id, t.title, t.category, t.status, t.scheduled_date, t.completed_date, t.cost_cents, %s FROM %s t",
		q.columns, q.table)
	if q.join != "" {
		sb.WriteString(" " + q.join)
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY t.scheduled_date ASC, t.id ASC")

	return sb.String(), args
}
