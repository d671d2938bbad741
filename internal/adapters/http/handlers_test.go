package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saludcore/appointment-service/internal/application"
	"github.com/saludcore/appointment-service/internal/domain"
	"github.com/saludcore/appointment-service/internal/ports"
)

type stubAppointments struct {
	records map[string]domain.Appointment
}

func stubKey(insuredID string, scheduleID int64) string {
	return fmt.Sprintf("%s:%d", insuredID, scheduleID)
}

func (s *stubAppointments) Create(_ context.Context, appointment domain.Appointment) error {
	key := stubKey(appointment.InsuredID, appointment.ScheduleID)
	if _, exists := s.records[key]; exists {
		return fmt.Errorf("%w: appointment already exists", domain.ErrConflict)
	}
	s.records[key] = appointment
	return nil
}

func (s *stubAppointments) FindByKey(_ context.Context, insuredID string, scheduleID int64) (domain.Appointment, error) {
	appt, ok := s.records[stubKey(insuredID, scheduleID)]
	if !ok {
		return domain.Appointment{}, fmt.Errorf("%w: appointment", domain.ErrNotFound)
	}
	return appt, nil
}

func (s *stubAppointments) FindByInsuredID(_ context.Context, insuredID string) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, appt := range s.records {
		if appt.InsuredID == insuredID {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (s *stubAppointments) UpdateStatus(_ context.Context, insuredID string, scheduleID int64, status domain.Status, at time.Time) error {
	key := stubKey(insuredID, scheduleID)
	appt, ok := s.records[key]
	if !ok {
		return fmt.Errorf("%w: appointment", domain.ErrNotFound)
	}
	appt.Status = status
	appt.UpdatedAt = &at
	s.records[key] = appt
	return nil
}

type stubLedger struct{}

func (stubLedger) Insert(context.Context, domain.Appointment) error { return nil }

type stubOutbox struct{}

func (stubOutbox) Enqueue(context.Context, ports.OutboxEvent) error { return nil }

func (stubOutbox) FetchUnpublished(context.Context, int) ([]ports.OutboxRecord, error) {
	return nil, nil
}

func (stubOutbox) MarkPublished(context.Context, uuid.UUID, time.Time) error { return nil }

func (stubOutbox) MarkFailed(context.Context, uuid.UUID, string, time.Time) error { return nil }

type stubDedup struct{}

func (stubDedup) IsDuplicate(context.Context, string, time.Time) (bool, error) { return false, nil }

func (stubDedup) MarkProcessed(context.Context, string, string, time.Time) error { return nil }

type stubIdempotency struct{}

func (stubIdempotency) Reserve(context.Context, string, string, time.Time) error { return nil }

type stubPublisher struct{}

func (stubPublisher) Publish(context.Context, string, []byte, string) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *stubAppointments) {
	t.Helper()
	appointments := &stubAppointments{records: map[string]domain.Appointment{}}
	service := application.NewService(application.Dependencies{
		Appointments: appointments,
		Ledger:       stubLedger{},
		Outbox:       stubOutbox{},
		EventDedup:   stubDedup{},
		Idempotency:  stubIdempotency{},
		Publisher:    stubPublisher{},
	})
	router := NewRouter(NewHandler(service), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return router, appointments
}

func TestCreateAppointmentAccepted(t *testing.T) {
	t.Parallel()
	router, appointments := newTestRouter(t)

	body := `{"insuredId":"00001","scheduleId":100,"countryISO":"PE"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/appointments/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp application.CreateAppointmentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Appointment.Status != string(domain.StatusPending) {
		t.Fatalf("expected pending status, got %s", resp.Appointment.Status)
	}
	if _, ok := appointments.records["00001:100"]; !ok {
		t.Fatalf("expected record stored for 00001:100")
	}
}

func TestCreateAppointmentValidationFailures(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	cases := []string{
		`{"insuredId":"123","scheduleId":100,"countryISO":"PE"}`,
		`{"insuredId":"00001","countryISO":"PE"}`,
		`{"insuredId":"00001","scheduleId":100,"countryISO":"BR"}`,
		`not json`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/v1/appointments/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, rec.Code)
		}
		var errResp errorBody
		if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
			t.Fatalf("decode error body: %v", err)
		}
		if errResp.Error.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %s", errResp.Error.Code)
		}
	}
}

func TestCreateAppointmentDuplicateConflicts(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	body := `{"insuredId":"00001","scheduleId":100,"countryISO":"PE"}`
	for i, want := range []int{http.StatusAccepted, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/v1/appointments/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: expected %d, got %d", i+1, want, rec.Code)
		}
	}
}

func TestGetAppointments(t *testing.T) {
	t.Parallel()
	router, appointments := newTestRouter(t)

	appointments.records["00042:7"] = domain.Appointment{
		InsuredID:  "00042",
		ScheduleID: 7,
		CountryISO: domain.CountryCL,
		Status:     domain.StatusPending,
		CreatedAt:  time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/appointments/00042", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp application.AppointmentsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.InsuredID != "00042" || len(resp.Appointments) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Appointments[0].ScheduleID != 7 {
		t.Fatalf("unexpected appointment: %+v", resp.Appointments[0])
	}
}

func TestGetAppointmentsMalformedInsuredID(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/appointments/not-an-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
}
