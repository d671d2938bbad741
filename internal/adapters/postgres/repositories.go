package postgres

import (
	"github.com/saludcore/appointment-service/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Ledger      ports.CountryLedgerRepository
	Outbox      ports.OutboxRepository
	EventDedup  ports.EventDedupRepository
	Idempotency ports.IdempotencyRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Ledger:      &ledgerRepository{db: db},
		Outbox:      &outboxRepository{db: db},
		EventDedup:  &eventDedupRepository{db: db},
		Idempotency: &idempotencyRepository{db: db},
	}
}
