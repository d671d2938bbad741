package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/saludcore/appointment-service/internal/domain"
)

// CreateAppointment is the synchronous intake path: validate, persist
// the canonical record with status pending, then publish the
// "requested" notification for the matching country. The store write
// always precedes the publish; a publish failure after a durable write
// surfaces to the caller and is not compensated.
func (s *Service) CreateAppointment(ctx context.Context, req CreateAppointmentRequest, idempotencyKey string) (CreateAppointmentResponse, error) {
	if req.InsuredID == "" || req.ScheduleID == nil || req.CountryISO == "" {
		return CreateAppointmentResponse{}, fmt.Errorf("%w: insuredId, scheduleId and countryISO are required", domain.ErrInvalidInput)
	}
	if err := domain.ValidateInsuredID(req.InsuredID); err != nil {
		return CreateAppointmentResponse{}, err
	}
	country, err := domain.ParseCountryISO(req.CountryISO)
	if err != nil {
		return CreateAppointmentResponse{}, err
	}
	if err := s.reserveIdempotency(ctx, idempotencyKey, req); err != nil {
		return CreateAppointmentResponse{}, err
	}

	appointment := domain.Appointment{
		InsuredID:   req.InsuredID,
		ScheduleID:  *req.ScheduleID,
		CountryISO:  country,
		CenterID:    req.CenterID,
		SpecialtyID: req.SpecialtyID,
		MedicID:     req.MedicID,
		Date:        req.Date,
		Status:      domain.StatusPending,
		CreatedAt:   s.nowFn(),
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return CreateAppointmentResponse{}, err
	}

	payload, _ := json.Marshal(requestedEventPayload{
		InsuredID:   appointment.InsuredID,
		ScheduleID:  appointment.ScheduleID,
		CountryISO:  string(appointment.CountryISO),
		CenterID:    appointment.CenterID,
		SpecialtyID: appointment.SpecialtyID,
		MedicID:     appointment.MedicID,
		Date:        appointment.Date,
	})
	eventType := eventTypeRequested(country)
	if err := s.publisher.Publish(ctx, eventType, payload, partitionKey(appointment.InsuredID, appointment.ScheduleID)); err != nil {
		return CreateAppointmentResponse{}, fmt.Errorf("%w: publish %s: %v", domain.ErrTransport, eventType, err)
	}

	return CreateAppointmentResponse{
		Message: "appointment request accepted",
		Appointment: AppointmentSummary{
			InsuredID:  appointment.InsuredID,
			ScheduleID: appointment.ScheduleID,
			CountryISO: string(appointment.CountryISO),
			Status:     string(appointment.Status),
			CreatedAt:  appointment.CreatedAt,
		},
	}, nil
}

// GetAppointmentsByInsuredID returns the insured party's full history
// in store-natural order. Read-only.
func (s *Service) GetAppointmentsByInsuredID(ctx context.Context, insuredID string) (AppointmentsResponse, error) {
	if err := domain.ValidateInsuredID(insuredID); err != nil {
		return AppointmentsResponse{}, err
	}
	records, err := s.appointments.FindByInsuredID(ctx, insuredID)
	if err != nil {
		return AppointmentsResponse{}, err
	}
	views := make([]AppointmentView, 0, len(records))
	for _, rec := range records {
		views = append(views, toAppointmentView(rec))
	}
	return AppointmentsResponse{InsuredID: insuredID, Appointments: views}, nil
}
