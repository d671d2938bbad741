package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saludcore/appointment-service/internal/domain"
)

// AppointmentRepository owns the canonical record keyed by
// (insuredID, scheduleID).
type AppointmentRepository interface {
	// Create stores a brand-new record. A record that already exists
	// under the same key is a domain.ErrConflict, never an overwrite.
	Create(ctx context.Context, appointment domain.Appointment) error
	FindByKey(ctx context.Context, insuredID string, scheduleID int64) (domain.Appointment, error)
	FindByInsuredID(ctx context.Context, insuredID string) ([]domain.Appointment, error)
	// UpdateStatus transitions the record and refreshes updatedAt. It
	// must be idempotent: updating to a status the record already holds
	// succeeds with no observable change beyond the timestamp.
	UpdateStatus(ctx context.Context, insuredID string, scheduleID int64, status domain.Status, at time.Time) error
}

// CountryLedgerRepository is the per-country system of record for
// finalized appointments. Inserts are append-only and duplicate-safe:
// re-inserting the same (insuredID, scheduleID, countryISO) is a no-op.
type CountryLedgerRepository interface {
	Insert(ctx context.Context, entry domain.Appointment) error
}

type OutboxEvent struct {
	EventID      uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
	TraceID      string
}

type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	PublishedAt  *time.Time
	LastError    *string
	LastErrorAt  *time.Time
	FirstSeenAt  time.Time
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}

type EventDedupRepository interface {
	IsDuplicate(ctx context.Context, eventID string, now time.Time) (bool, error)
	MarkProcessed(ctx context.Context, eventID, eventType string, expiresAt time.Time) error
}

type IdempotencyRepository interface {
	// Reserve claims the key for this request. A key that is already
	// held is domain.ErrConflict; other errors are store failures.
	Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error
}
