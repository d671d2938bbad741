package application

import (
	"time"

	"github.com/saludcore/appointment-service/internal/ports"
)

type Service struct {
	cfg          Config
	appointments ports.AppointmentRepository
	ledger       ports.CountryLedgerRepository
	outbox       ports.OutboxRepository
	eventDedup   ports.EventDedupRepository
	idempotency  ports.IdempotencyRepository
	publisher    ports.EventPublisher
	nowFn        func() time.Time
}

type Dependencies struct {
	Config       Config
	Appointments ports.AppointmentRepository
	Ledger       ports.CountryLedgerRepository
	Outbox       ports.OutboxRepository
	EventDedup   ports.EventDedupRepository
	Idempotency  ports.IdempotencyRepository
	Publisher    ports.EventPublisher
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "appointment-service"
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
	}
	if cfg.EventDedupTTL <= 0 {
		cfg.EventDedupTTL = 7 * 24 * time.Hour
	}

	return &Service{
		cfg:          cfg,
		appointments: deps.Appointments,
		ledger:       deps.Ledger,
		outbox:       deps.Outbox,
		eventDedup:   deps.EventDedup,
		idempotency:  deps.Idempotency,
		publisher:    deps.Publisher,
		nowFn:        func() time.Time { return time.Now().UTC() },
	}
}
