package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/saludcore/appointment-service/internal/domain"
	"github.com/saludcore/appointment-service/internal/ports"
)

const (
	eventTypeConfirmed = "appointment.confirmed"

	confirmedDetailType = "AppointmentConfirmed"
)

func eventTypeRequested(country domain.CountryISO) string {
	return "appointment.requested." + string(country)
}

func partitionKey(insuredID string, scheduleID int64) string {
	return fmt.Sprintf("%s-%d", insuredID, scheduleID)
}

func confirmedEventID(entry domain.Appointment) uuid.UUID {
	name := fmt.Sprintf("confirmed:%s:%d:%s", entry.InsuredID, entry.ScheduleID, entry.CountryISO)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}

// enqueueConfirmed records the "confirmed" notification in the outbox
// so it is published only after the ledger write it follows is
// durable. The wire envelope is the direct-event shape the completion
// side unwraps. The event id is derived from the appointment identity,
// not random: a redelivery that re-runs this step (a crash between
// here and the dedup mark) produces the same id and the outbox
// primary key collapses it into the existing row.
func (s *Service) enqueueConfirmed(ctx context.Context, entry domain.Appointment) error {
	occurredAt := s.nowFn()
	envelope := map[string]any{
		"detail-type": confirmedDetailType,
		"source":      s.cfg.ServiceName,
		"detail": confirmedEventPayload{
			InsuredID:  entry.InsuredID,
			ScheduleID: entry.ScheduleID,
			CountryISO: string(entry.CountryISO),
		},
	}
	payload, _ := json.Marshal(envelope)
	return s.outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:      confirmedEventID(entry),
		EventType:    eventTypeConfirmed,
		PartitionKey: partitionKey(entry.InsuredID, entry.ScheduleID),
		Payload:      payload,
		OccurredAt:   occurredAt,
	})
}

func hashRequest(v any) string {
	raw, _ := json.Marshal(v)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// reserveIdempotency claims the caller's Idempotency-Key. The
// repository reports a replayed key as domain.ErrConflict; any other
// failure passes through so a store outage does not masquerade as a
// replay.
func (s *Service) reserveIdempotency(ctx context.Context, key string, request any) error {
	if key == "" {
		return nil
	}
	return s.idempotency.Reserve(ctx, key, hashRequest(request), s.nowFn().Add(s.cfg.IdempotencyTTL))
}
