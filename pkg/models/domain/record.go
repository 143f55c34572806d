package domain

import (
	"fmt"
	"strings"
	"time"
)

// Record is one tracked operational item. The concrete types are
// MaintenanceTask, Booking and HSEInspection.
type Record interface {
	Kind() Kind
	Status() Status
	Common() Base
	record()
}

// Base holds the fields every record kind shares.
type Base struct {
	ID            string
	Title         string
	Category      string
	ScheduledDate time.Time
	CompletedDate *time.Time
	Cost          *Money
	Owner         string
}

func (b Base) validate(kind Kind, status Status) error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("%w: %s record without id", ErrValidation, kind)
	}
	if b.ScheduledDate.IsZero() {
		return fmt.Errorf("%w: %s record %s has no scheduled date", ErrValidation, kind, b.ID)
	}
	if !kind.HasStatus(status) {
		return fmt.Errorf("%w: status %q is not valid for %s record %s", ErrValidation, status, kind, b.ID)
	}
	if b.CompletedDate != nil && b.CompletedDate.IsZero() {
		return fmt.Errorf("%w: %s record %s has an empty completed date", ErrValidation, kind, b.ID)
	}
	return nil
}

func (b Base) normalized() Base {
	b.ScheduledDate = DateOf(b.ScheduledDate)
	if b.CompletedDate != nil {
		d := DateOf(*b.CompletedDate)
		b.CompletedDate = &d
	}
	if b.Cost != nil {
		c := *b.Cost
		b.Cost = &c
	}
	return b
}

type MaintenanceTask struct {
	Base
	TaskStatus Status
	Asset      string
}

func NewMaintenanceTask(base Base, status Status, asset string) (MaintenanceTask, error) {
	if err := base.validate(KindMaintenance, status); err != nil {
		return MaintenanceTask{}, err
	}
	return MaintenanceTask{Base: base.normalized(), TaskStatus: status, Asset: asset}, nil
}

func (MaintenanceTask) Kind() Kind       { return KindMaintenance }
func (t MaintenanceTask) Status() Status { return t.TaskStatus }
func (t MaintenanceTask) Common() Base   { return t.Base }
func (MaintenanceTask) record()          {}

type Booking struct {
	Base
	BookingStatus Status
	Resource      string
	Attendees     int
}

func NewBooking(base Base, status Status, resource string, attendees int) (Booking, error) {
	if err := base.validate(KindBooking, status); err != nil {
		return Booking{}, err
	}
	if attendees < 0 {
		return Booking{}, fmt.Errorf("%w: booking %s has negative attendees", ErrValidation, base.ID)
	}
	return Booking{Base: base.normalized(), BookingStatus: status, Resource: resource, Attendees: attendees}, nil
}

func (Booking) Kind() Kind       { return KindBooking }
func (b Booking) Status() Status { return b.BookingStatus }
func (b Booking) Common() Base   { return b.Base }
func (Booking) record()          {}

type HSEInspection struct {
	Base
	InspectionStatus Status
	Area             string
	Findings         int
}

func NewHSEInspection(base Base, status Status, area string, findings int) (HSEInspection, error) {
	if err := base.validate(KindHSE, status); err != nil {
		return HSEInspection{}, err
	}
	if findings < 0 {
		return HSEInspection{}, fmt.Errorf("%w: inspection %s has negative findings", ErrValidation, base.ID)
	}
	return HSEInspection{Base: base.normalized(), InspectionStatus: status, Area: area, Findings: findings}, nil
}

func (HSEInspection) Kind() Kind       { return KindHSE }
func (i HSEInspection) Status() Status { return i.InspectionStatus }
func (i HSEInspection) Common() Base   { return i.Base }
func (HSEInspection) record()          {}

// IsOverdue reports whether r was scheduled before asOf and is still open.
func IsOverdue(r Record, asOf time.Time) bool {
	return DateOf(r.Common().ScheduledDate).Before(DateOf(asOf)) && !r.Kind().IsTerminal(r.Status())
}

// GroupByKind splits records per kind, preserving input order inside a kind.
func GroupByKind(records []Record) map[Kind][]Record {
	groups := make(map[Kind][]Record)
	for _, r := range records {
		groups[r.Kind()] = append(groups[r.Kind()], r)
	}
	return groups
}
