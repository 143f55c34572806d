package domain

import (
	"fmt"
	"slices"
	"strings"
)

type Kind string

const (
	KindMaintenance Kind = "maintenance"
	KindBooking     Kind = "booking"
	KindHSE         Kind = "hse"
)

// Kinds lists every record kind in report order.
var Kinds = []Kind{KindMaintenance, KindBooking, KindHSE}

type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusDue       Status = "Due"
	StatusCompleted Status = "Completed"

	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"

	StatusNonCompliant Status = "NonCompliant"
	StatusCompliant    Status = "Compliant"
)

var kindStatuses = map[Kind][]Status{
	KindMaintenance: {StatusUpcoming, StatusDue, StatusCompleted},
	KindBooking:     {StatusPending, StatusConfirmed, StatusCancelled},
	KindHSE:         {StatusNonCompliant, StatusCompliant},
}

var terminalStatuses = map[Kind]Status{
	KindMaintenance: StatusCompleted,
	KindBooking:     StatusCancelled,
	KindHSE:         StatusCompliant,
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown record kind %q", ErrValidation, s)
	}
	return k, nil
}

func (k Kind) IsValid() bool {
	_, ok := kindStatuses[k]
	return ok
}

// Statuses returns the valid statuses of the kind in display order.
func (k Kind) Statuses() []Status {
	return slices.Clone(kindStatuses[k])
}

func (k Kind) HasStatus(s Status) bool {
	return slices.Contains(kindStatuses[k], s)
}

// IsTerminal reports whether a record of this kind with status s is closed.
func (k Kind) IsTerminal(s Status) bool {
	t, ok := terminalStatuses[k]
	return ok && t == s
}

// Label is the human readable section name used in reports.
func (k Kind) Label() string {
	switch k {
	case KindMaintenance:
		return "Maintenance Tasks"
	case KindBooking:
		return "Bookings"
	case KindHSE:
		return "HSE Inspections"
	default:
		return string(k)
	}
}

// ParseStatus matches s case-insensitively against the statuses of k.
func ParseStatus(k Kind, s string) (Status, error) {
	for _, st := range kindStatuses[k] {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: status %q is not valid for %s", ErrValidation, s, k)
}

// ParseAnyStatus matches s against the statuses of every kind.
func ParseAnyStatus(s string) (Status, error) {
	for _, k := range Kinds {
		if st, err := ParseStatus(k, s); err == nil {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}
