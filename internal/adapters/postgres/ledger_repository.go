package postgres

import (
	"context"
	"time"

	"github.com/saludcore/appointment-service/internal/domain"
	"github.com/saludcore/appointment-service/internal/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ledgerRepository appends finalized appointments to the per-country
// system of record. The (insured_id, schedule_id, country_iso) unique
// index plus DO NOTHING makes redelivered notifications converge on a
// single row instead of accumulating duplicates.
type ledgerRepository struct {
	db *gorm.DB
}

func (r *ledgerRepository) Insert(ctx context.Context, entry domain.Appointment) error {
	rec := countryAppointmentModel{
		InsuredID:   entry.InsuredID,
		ScheduleID:  entry.ScheduleID,
		CountryISO:  string(entry.CountryISO),
		CenterID:    entry.CenterID,
		SpecialtyID: entry.SpecialtyID,
		MedicID:     entry.MedicID,
		Date:        entry.Date,
		Status:      string(entry.Status),
		CreatedAt:   entry.CreatedAt,
		RecordedAt:  time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "insured_id"}, {Name: "schedule_id"}, {Name: "country_iso"}},
			DoNothing: true,
		}).
		Create(&rec).Error
}

var _ ports.CountryLedgerRepository = (*ledgerRepository)(nil)
