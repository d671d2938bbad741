package application

import (
	"time"

	"github.com/saludcore/appointment-service/internal/domain"
)

type Config struct {
	ServiceName    string
	IdempotencyTTL time.Duration
	EventDedupTTL  time.Duration
}

type CreateAppointmentRequest struct {
	InsuredID   string     `json:"insuredId"`
	ScheduleID  *int64     `json:"scheduleId"`
	CountryISO  string     `json:"countryISO"`
	CenterID    *int64     `json:"centerId,omitempty"`
	SpecialtyID *int64     `json:"specialtyId,omitempty"`
	MedicID     *int64     `json:"medicId,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

type AppointmentSummary struct {
	InsuredID  string    `json:"insuredId"`
	ScheduleID int64     `json:"scheduleId"`
	CountryISO string    `json:"countryISO"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateAppointmentResponse struct {
	Message     string             `json:"message"`
	Appointment AppointmentSummary `json:"appointment"`
}

type AppointmentView struct {
	ScheduleID  int64      `json:"scheduleId"`
	CountryISO  string     `json:"countryISO"`
	Status      string     `json:"status"`
	CenterID    *int64     `json:"centerId"`
	SpecialtyID *int64     `json:"specialtyId"`
	MedicID     *int64     `json:"medicId"`
	Date        *time.Time `json:"date"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type AppointmentsResponse struct {
	InsuredID    string            `json:"insuredId"`
	Appointments []AppointmentView `json:"appointments"`
}

// requestedEventPayload is the wire shape of the "requested"
// notification. Optional fields are emitted as explicit nulls so
// country consumers see a stable schema.
type requestedEventPayload struct {
	InsuredID   string     `json:"insuredId"`
	ScheduleID  int64      `json:"scheduleId"`
	CountryISO  string     `json:"countryISO"`
	CenterID    *int64     `json:"centerId"`
	SpecialtyID *int64     `json:"specialtyId"`
	MedicID     *int64     `json:"medicId"`
	Date        *time.Time `json:"date"`
}

type confirmedEventPayload struct {
	InsuredID  string `json:"insuredId"`
	ScheduleID int64  `json:"scheduleId"`
	CountryISO string `json:"countryISO"`
}

func toAppointmentView(a domain.Appointment) AppointmentView {
	return AppointmentView{
		ScheduleID:  a.ScheduleID,
		CountryISO:  string(a.CountryISO),
		Status:      string(a.Status),
		CenterID:    a.CenterID,
		SpecialtyID: a.SpecialtyID,
		MedicID:     a.MedicID,
		Date:        a.Date,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
