package domain

import "time"

type CountryISO string

const (
	CountryPE CountryISO = "PE"
	CountryCL CountryISO = "CL"
)

func (c CountryISO) Valid() bool {
	return c == CountryPE || c == CountryCL
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// CanTransition encodes the only legal move in the lifecycle:
// pending -> completed. Completing an already-completed record is
// treated as a no-op elsewhere, never as a reverse transition.
func (s Status) CanTransition(to Status) bool {
	return s == StatusPending && to == StatusCompleted
}

// Appointment is the canonical scheduling record, keyed by
// (InsuredID, ScheduleID). The country ledger holds a derived copy of
// it; this struct is the single source of truth.
type Appointment struct {
	InsuredID   string
	ScheduleID  int64
	CountryISO  CountryISO
	CenterID    *int64
	SpecialtyID *int64
	MedicID     *int64
	Date        *time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Complete drives the record to its terminal state. Applying it to a
// record that is already completed only refreshes UpdatedAt, so the
// operation is safe under message redelivery.
func (a *Appointment) Complete(at time.Time) {
	a.Status = StatusCompleted
	a.UpdatedAt = &at
}
