package domain

import (
	"testing"
	"time"
)

func TestStatusCanTransition(t *testing.T) {
	t.Parallel()

	if !StatusPending.CanTransition(StatusCompleted) {
		t.Fatalf("expected pending -> completed to be legal")
	}
	if StatusCompleted.CanTransition(StatusPending) {
		t.Fatalf("expected completed -> pending to be illegal")
	}
	if StatusCompleted.CanTransition(StatusCompleted) {
		t.Fatalf("expected completed -> completed to be a non-transition")
	}
}

func TestAppointmentCompleteIsIdempotent(t *testing.T) {
	t.Parallel()

	appt := Appointment{
		InsuredID:  "00042",
		ScheduleID: 7,
		CountryISO: CountryPE,
		Status:     StatusPending,
		CreatedAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	first := time.Date(2025, 3, 1, 10, 5, 0, 0, time.UTC)
	appt.Complete(first)
	if appt.Status != StatusCompleted {
		t.Fatalf("expected completed status, got %s", appt.Status)
	}
	if appt.UpdatedAt == nil || !appt.UpdatedAt.Equal(first) {
		t.Fatalf("expected updatedAt %v, got %v", first, appt.UpdatedAt)
	}

	second := first.Add(time.Minute)
	appt.Complete(second)
	if appt.Status != StatusCompleted {
		t.Fatalf("expected status to remain completed, got %s", appt.Status)
	}
	if !appt.UpdatedAt.Equal(second) {
		t.Fatalf("expected updatedAt refreshed to %v, got %v", second, appt.UpdatedAt)
	}
}
