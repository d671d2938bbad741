package postgres

import (
	"time"

	"github.com/google/uuid"
)

type countryAppointmentModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InsuredID   string     `gorm:"column:insured_id"`
	ScheduleID  int64      `gorm:"column:schedule_id"`
	CountryISO  string     `gorm:"column:country_iso"`
	CenterID    *int64     `gorm:"column:center_id"`
	SpecialtyID *int64     `gorm:"column:specialty_id"`
	MedicID     *int64     `gorm:"column:medic_id"`
	Date        *time.Time `gorm:"column:appointment_date"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	RecordedAt  time.Time  `gorm:"column:recorded_at"`
}

func (countryAppointmentModel) TableName() string { return "country_appointments" }

type appointmentOutboxModel struct {
	OutboxID     uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      string     `gorm:"column:payload"`
	TraceID      string     `gorm:"column:trace_id"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	FirstSeenAt  time.Time  `gorm:"column:first_seen_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
	RetryCount   int        `gorm:"column:retry_count"`
	LastError    *string    `gorm:"column:last_error"`
	LastErrorAt  *time.Time `gorm:"column:last_error_at"`
}

func (appointmentOutboxModel) TableName() string { return "appointment_outbox" }

type eventDedupModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	EventType   string    `gorm:"column:event_type"`
	ProcessedAt time.Time `gorm:"column:processed_at"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
}

func (eventDedupModel) TableName() string { return "appointment_event_dedup" }

type idempotencyModel struct {
	IdempotencyKey string    `gorm:"column:idempotency_key;primaryKey"`
	RequestHash    string    `gorm:"column:request_hash"`
	ExpiresAt      time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (idempotencyModel) TableName() string { return "appointment_idempotency" }
