package records

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"github.com/de-tools/facility-atlas/pkg/store/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setupStore(t *testing.T) (Store, *sql.DB) {
	t.Helper()
	db, err := sqlite.NewDB(context.Background(), sqlite.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewStore(db)
	require.NoError(t, err)
	return s, db
}

func mustTask(t *testing.T, id string, scheduled time.Time, status domain.Status, cost *domain.Money, asset string) domain.MaintenanceTask {
	t.Helper()
	r, err := domain.NewMaintenanceTask(domain.Base{
		ID:            id,
		Title:         "Service " + id,
		Category:      "HVAC",
		ScheduledDate: scheduled,
		Cost:          cost,
		Owner:         "Sam",
	}, status, asset)
	require.NoError(t, err)
	return r
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestStore_FetchOrdersByScheduledDateThenID(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	cost := domain.MoneyFromFloat(1234.5)
	completed := day(2025, 1, 11)
	done := mustTask(t, "m-b", day(2025, 1, 10), domain.StatusCompleted, &cost, "Boiler 1")
	done.CompletedDate = &completed

	require.NoError(t, s.Add(ctx,
		mustTask(t, "m-c", day(2025, 2, 1), domain.StatusDue, nil, "Boiler 1"),
		done,
		mustTask(t, "m-a", day(2025, 1, 10), domain.StatusUpcoming, nil, ""),
	))

	records, err := s.Fetch(ctx, domain.KindMaintenance, domain.DateRange{}, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)

	var ids []string
	for _, r := range records {
		ids = append(ids, r.Common().ID)
	}
	assert.Equal(t, []string{"m-a", "m-b", "m-c"}, ids)

	got, ok := records[1].(domain.MaintenanceTask)
	require.True(t, ok)
	assert.Equal(t, "Boiler 1", got.Asset)
	assert.Equal(t, domain.StatusCompleted, got.Status())
	require.NotNil(t, got.Cost)
	assert.Equal(t, cost, *got.Cost)
	require.NotNil(t, got.CompletedDate)
	assert.Equal(t, completed, *got.CompletedDate)
	assert.Equal(t, "Sam", got.Owner)

	assert.Nil(t, records[0].Common().Cost)
	assert.Equal(t, "", records[0].(domain.MaintenanceTask).Asset)
}

func TestStore_FetchFilters(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	require.NoError(t, s.Add(ctx,
		mustTask(t, "m1", day(2025, 1, 1), domain.StatusDue, nil, ""),
		mustTask(t, "m2", day(2025, 1, 15), domain.StatusCompleted, nil, ""),
		mustTask(t, "m3", day(2025, 1, 31), domain.StatusDue, nil, ""),
		mustTask(t, "m4", day(2025, 2, 1), domain.StatusDue, nil, ""),
	))

	period, err := domain.NewDateRange(day(2025, 1, 1), day(2025, 1, 31))
	require.NoError(t, err)

	records, err := s.Fetch(ctx, domain.KindMaintenance, period, nil)
	require.NoError(t, err)
	assert.Len(t, records, 3, "range bounds are inclusive")

	records, err = s.Fetch(ctx, domain.KindMaintenance, period, []domain.Status{domain.StatusDue})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "m1", records[0].Common().ID)
	assert.Equal(t, "m3", records[1].Common().ID)
}

func TestStore_FetchNoMatchesIsEmptyNotError(t *testing.T) {
	s, _ := setupStore(t)

	records, err := s.Fetch(context.Background(), domain.KindHSE, domain.DateRange{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestStore_BookingsAndInspectionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)

	b, err := domain.NewBooking(domain.Base{ID: "b1", Title: "Board meeting", ScheduledDate: day(2025, 3, 3), Owner: "Alex"},
		domain.StatusConfirmed, "Room 4", 12)
	require.NoError(t, err)
	h, err := domain.NewHSEInspection(domain.Base{ID: "h1", Title: "Fire doors", ScheduledDate: day(2025, 3, 4), Owner: "Jo"},
		domain.StatusNonCompliant, "East wing", 3)
	require.NoError(t, err)

	require.NoError(t, sqlite.RunInTx(ctx, db, func(ctx context.Context) error {
		return s.Add(ctx, b, h)
	}))

	bookings, err := s.Fetch(ctx, domain.KindBooking, domain.DateRange{}, []domain.Status{domain.StatusConfirmed})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, b, bookings[0])

	inspections, err := s.Fetch(ctx, domain.KindHSE, domain.DateRange{}, nil)
	require.NoError(t, err)
	require.Len(t, inspections, 1)
	assert.Equal(t, h, inspections[0])
}

func TestStore_RunInTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)

	err := sqlite.RunInTx(ctx, db, func(ctx context.Context) error {
		if err := s.Add(ctx, mustTask(t, "m1", day(2025, 1, 1), domain.StatusDue, nil, "Lift")); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	records, err := s.Fetch(ctx, domain.KindMaintenance, domain.DateRange{}, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_FetchValidation(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	_, err := s.Fetch(ctx, domain.KindBooking, domain.DateRange{}, []domain.Status{domain.StatusCompleted})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.Fetch(ctx, domain.Kind("assets"), domain.DateRange{}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.Fetch(ctx, domain.KindBooking, domain.DateRange{Start: day(2025, 2, 1), End: day(2025, 1, 1)}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStore_FetchDataUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings t")).
		WillReturnError(errors.New("database is locked"))

	s, err := NewStore(db)
	require.NoError(t, err)

	records, err := s.Fetch(context.Background(), domain.KindBooking, domain.DateRange{}, nil)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FetchBuildsFilteredQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "title", "category", "status", "scheduled_date", "completed_date", "cost_cents",
		"inspector", "area", "findings"}
	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM hse_inspections t WHERE t.scheduled_date >= ? AND t.scheduled_date <= ? AND t.status IN (?) " +
			"ORDER BY t.scheduled_date ASC, t.id ASC")).
		WithArgs("2025-01-01", "2025-01-31", "Compliant").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("h1", "Gas safety", "Gas", "Compliant", "2025-01-20", "2025-01-21", int64(15000), "Kim", "Plant room", 0))

	s, err := NewStore(db)
	require.NoError(t, err)

	records, err := s.Fetch(context.Background(), domain.KindHSE,
		domain.DateRange{Start: day(2025, 1, 1), End: day(2025, 1, 31)},
		[]domain.Status{domain.StatusCompliant})
	require.NoError(t, err)
	require.Len(t, records, 1)

	h := records[0].(domain.HSEInspection)
	assert.Equal(t, "Plant room", h.Area)
	assert.Equal(t, "Kim", h.Owner)
	assert.Equal(t, domain.MoneyFromFloat(150), *h.Cost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FetchRejectsMalformedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "title", "category", "status", "scheduled_date", "completed_date", "cost_cents",
		"owner", "resource", "attendees"}
	mock.ExpectQuery("FROM bookings t").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("b1", "Hall", "", "Booked", "2025-01-20", nil, nil, "Ann", "Hall", 3))

	s, err := NewStore(db)
	require.NoError(t, err)

	_, err = s.Fetch(context.Background(), domain.KindBooking, domain.DateRange{}, nil)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.ErrorContains(t, err, "decode booking row b1")
}

func TestStore_FetchInsideTransaction(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, db := setupStore(t)

	err := sqlite.RunInTx(ctx, db, func(ctx context.Context) error {
		if err := s.Add(ctx, mustTask(t, "m-1", day(2025, 1, 5), domain.StatusDue, nil, "")); err != nil {
			return err
		}
		records, err := s.Fetch(ctx, domain.KindMaintenance, domain.DateRange{}, nil)
		if err != nil {
			return err
		}
		assert.Len(t, records, 1, "uncommitted rows are visible inside the transaction")
		return errors.New("roll back")
	})
	require.EqualError(t, err, "roll back")

	records, err := s.Fetch(ctx, domain.KindMaintenance, domain.DateRange{}, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_PingDataUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("disk I/O error"))

	s, err := NewStore(db)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Ping(context.Background()), domain.ErrDataUnavailable)
}
