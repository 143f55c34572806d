package seed

import (
	"fmt"
	"time"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"github.com/google/uuid"
)

var (
	assets     = []string{"AHU-1", "Boiler 1", "Chiller 2", "Lift A", "Generator", "Fire pump"}
	resources  = []string{"Room 1.01", "Room 2.14", "Atrium", "Training suite", "Pool car"}
	areas      = []string{"Loading bay", "Kitchen", "Plant room", "Car park", "Workshop"}
	categories = []string{"HVAC", "Electrical", "Plumbing", "Fabric", "Safety"}
	owners     = []string{"Alex", "Sam", "Robin", "Jordan", "Kim"}
)

// Options sizes the demo data set. Records are spread over Days days
// before and after Today.
type Options struct {
	Today       time.Time
	Days        int
	Maintenance int
	Bookings    int
	Inspections int
	IDGenerator func() string
}

func DefaultOptions(today time.Time) Options {
	return Options{
		Today:       today,
		Days:        90,
		Maintenance: 40,
		Bookings:    25,
		Inspections: 15,
		IDGenerator: uuid.NewString,
	}
}

// DemoRecords builds a deterministic spread of records for every kind apart
// from their IDs. Past records are mostly closed, a few stay open so the
// overdue metrics have something to show.
func DemoRecords(opts Options) ([]domain.Record, error) {
	if opts.Days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", domain.ErrValidation)
	}
	if opts.IDGenerator == nil {
		opts.IDGenerator = uuid.NewString
	}
	today := domain.DateOf(opts.Today)
	at := func(i, n int) time.Time {
		return today.AddDate(0, 0, -opts.Days+(2*opts.Days*i)/max(n, 1))
	}

	var records []domain.Record
	for i := 0; i < opts.Maintenance; i++ {
		scheduled := at(i, opts.Maintenance)
		base := demoBase(opts.IDGenerator(), fmt.Sprintf("Planned service #%d", i+1), i, scheduled)
		status := domain.StatusUpcoming
		switch {
		case scheduled.Before(today) && i%5 != 0:
			status = domain.StatusCompleted
			done := scheduled.AddDate(0, 0, 1+i%3)
			base.CompletedDate = &done
		case scheduled.Before(today.AddDate(0, 0, 7)):
			status = domain.StatusDue
		}
		cost := domain.Money(15000 + 2750*int64(i%7))
		base.Cost = &cost

		r, err := domain.NewMaintenanceTask(base, status, assets[i%len(assets)])
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	for i := 0; i < opts.Bookings; i++ {
		scheduled := at(i, opts.Bookings)
		base := demoBase(opts.IDGenerator(), fmt.Sprintf("Booking #%d", i+1), i, scheduled)
		status := domain.StatusConfirmed
		switch {
		case i%6 == 5:
			status = domain.StatusCancelled
		case !scheduled.Before(today) && i%2 == 0:
			status = domain.StatusPending
		}
		if i%3 == 0 {
			cost := domain.Money(4500 * int64(1+i%4))
			base.Cost = &cost
		}

		r, err := domain.NewBooking(base, status, resources[i%len(resources)], 4+i%20)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	for i := 0; i < opts.Inspections; i++ {
		scheduled := at(i, opts.Inspections)
		base := demoBase(opts.IDGenerator(), fmt.Sprintf("Inspection #%d", i+1), i, scheduled)
		base.Category = "Safety"
		status, findings := domain.StatusCompliant, 0
		if i%4 == 1 || !scheduled.Before(today) {
			status, findings = domain.StatusNonCompliant, 1+i%3
		}
		if status == domain.StatusCompliant {
			done := scheduled
			base.CompletedDate = &done
		}

		r, err := domain.NewHSEInspection(base, status, areas[i%len(areas)], findings)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func demoBase(id, title string, i int, scheduled time.Time) domain.Base {
	return domain.Base{
		ID:            id,
		Title:         title,
		Category:      categories[i%len(categories)],
		ScheduledDate: scheduled,
		Owner:         owners[i%len(owners)],
	}
}
