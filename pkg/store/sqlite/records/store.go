package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"github.com/de-tools/facility-atlas/pkg/store/sqlite"
	"github.com/google/uuid"
)

// Store gives typed access to the operational records tables. Fetch never
// writes; Add is used by the seed command and tests.
type Store interface {
	Fetch(ctx context.Context, kind domain.Kind, period domain.DateRange, statuses []domain.Status) ([]domain.Record, error)
	Add(ctx context.Context, records ...domain.Record) error
	Ping(ctx context.Context) error
}

type recordStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &recordStore{db: db}, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *recordStore) conn(ctx context.Context) execer {
	if tx := sqlite.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

func (s *recordStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", domain.ErrDataUnavailable, err)
	}
	return nil
}

func (s *recordStore) Fetch(
	ctx context.Context,
	kind domain.Kind,
	period domain.DateRange,
	statuses []domain.Status,
) ([]domain.Record, error) {
	q, ok := queries[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown record kind %q", domain.ErrValidation, kind)
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	for _, st := range statuses {
		if !kind.HasStatus(st) {
			return nil, fmt.Errorf("%w: status %q is not valid for %s", domain.ErrValidation, st, kind)
		}
	}

	query, args := q.build(period, statuses)
	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %w", domain.ErrDataUnavailable, kind, err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		var (
			row       recordRow
			completed sql.NullString
			cost      sql.NullInt64
		)
		dest := append([]any{
			&row.id, &row.title, &row.category, &row.status,
			&row.scheduled, &completed, &cost, &row.owner,
		}, q.extra(&row)...)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scan %s row: %w", domain.ErrDataUnavailable, kind, err)
		}
		if completed.Valid {
			row.completed = &completed.String
		}
		if cost.Valid {
			c := domain.Money(cost.Int64)
			row.cost = &c
		}

		record, err := row.toDomain(kind)
		if err != nil {
			return nil, fmt.Errorf("%w: decode %s row %s: %w", domain.ErrDataUnavailable, kind, row.id, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s rows: %w", domain.ErrDataUnavailable, kind, err)
	}

	return records, nil
}

func (s *recordStore) Add(ctx context.Context, records ...domain.Record) error {
	conn := s.conn(ctx)

	for _, record := range records {
		base := record.Common()
		var completed any
		if base.CompletedDate != nil {
			completed = base.CompletedDate.Format(domain.DateLayout)
		}
		var cost any
		if base.Cost != nil {
			cost = int64(*base.Cost)
		}
		common := []any{
			base.ID, base.Title, base.Category, string(record.Status()),
			base.ScheduledDate.Format(domain.DateLayout), completed, cost, base.Owner,
		}

		var (
			query string
			args  []any
		)
		switch r := record.(type) {
		case domain.MaintenanceTask:
			assetID, err := s.ensureAsset(ctx, conn, r.Asset)
			if err != nil {
				return err
			}
			query = `INSERT INTO maintenance_tasks (
				id, title, category, status, scheduled_date, completed_date, cost_cents, assignee, asset_id
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
			args = append(common, assetID)
		case domain.Booking:
			query = `INSERT INTO bookings (
				id, title, category, status, scheduled_date, completed_date, cost_cents, owner, resource, attendees
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
			args = append(common, r.Resource, r.Attendees)
		case domain.HSEInspection:
			query = `INSERT INTO hse_inspections (
				id, title, category, status, scheduled_date, completed_date, cost_cents, inspector, area, findings
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
			args = append(common, r.Area, r.Findings)
		default:
			return fmt.Errorf("%w: unsupported record type %T", domain.ErrValidation, record)
		}

		if _, err := conn.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s record %s: %w", record.Kind(), base.ID, err)
		}
	}

	return nil
}

// ensureAsset returns the id of the asset called name, registering it first if needed.
func (s *recordStore) ensureAsset(ctx context.Context, conn execer, name string) (any, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var id string
	err := conn.QueryRowContext(ctx, `SELECT id FROM assets WHERE name = ?`, name).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("lookup asset %q: %w", name, err)
	}

	id = uuid.NewString()
	if _, err := conn.ExecContext(ctx, `INSERT INTO assets (id, name) VALUES (?, ?)`, id, name); err != nil {
		return nil, fmt.Errorf("insert asset %q: %w", name, err)
	}
	return id, nil
}

type recordRow struct {
	id, title, category, status, scheduled, owner string
	completed                                     *string
	cost                                          *domain.Money
	detail                                        string
	count                                         int
}

func (r recordRow) toDomain(kind domain.Kind) (domain.Record, error) {
	scheduled, err := time.Parse(domain.DateLayout, r.scheduled)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduled date %q: %v", domain.ErrValidation, r.scheduled, err)
	}
	base := domain.Base{
		ID:            r.id,
		Title:         r.title,
		Category:      r.category,
		ScheduledDate: scheduled,
		Cost:          r.cost,
		Owner:         r.owner,
	}
	if r.completed != nil && *r.completed != "" {
		completed, err := time.Parse(domain.DateLayout, *r.completed)
		if err != nil {
			return nil, fmt.Errorf("%w: completed date %q: %v", domain.ErrValidation, *r.completed, err)
		}
		base.CompletedDate = &completed
	}

	status := domain.Status(r.status)
	switch kind {
	case domain.KindMaintenance:
		return domain.NewMaintenanceTask(base, status, r.detail)
	case domain.KindBooking:
		return domain.NewBooking(base, status, r.detail, r.count)
	case domain.KindHSE:
		return domain.NewHSEInspection(base, status, r.detail, r.count)
	default:
		return nil, fmt.Errorf("%w: unknown record kind %q", domain.ErrValidation, kind)
	}
}
