package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/saludcore/appointment-service/internal/domain"
	"github.com/saludcore/appointment-service/internal/ports"
)

// RedisAppointmentStore holds the canonical appointment record as a
// JSON value keyed by (insuredId, scheduleId), with a per-insured set
// acting as the history index. Membership order of the index is
// unspecified, so history reads carry no ordering guarantee.
type RedisAppointmentStore struct {
	client *redis.Client
}

func NewRedisAppointmentStore(client *redis.Client) *RedisAppointmentStore {
	return &RedisAppointmentStore{client: client}
}

type appointmentRecord struct {
	InsuredID   string     `json:"insuredId"`
	ScheduleID  int64      `json:"scheduleId"`
	CountryISO  string     `json:"countryISO"`
	CenterID    *int64     `json:"centerId"`
	SpecialtyID *int64     `json:"specialtyId"`
	MedicID     *int64     `json:"medicId"`
	Date        *time.Time `json:"date"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func recordKey(insuredID string, scheduleID int64) string {
	return fmt.Sprintf("appt:%s:%d", insuredID, scheduleID)
}

func indexKey(insuredID string) string {
	return "appt:idx:" + insuredID
}

func (s *RedisAppointmentStore) Create(ctx context.Context, appointment domain.Appointment) error {
	raw, err := json.Marshal(toRecord(appointment))
	if err != nil {
		return err
	}
	key := recordKey(appointment.InsuredID, appointment.ScheduleID)
	// Record and index membership land in one MULTI/EXEC so a record
	// can never exist without being reachable through the index. The
	// SAdd re-run on an existing record is a no-op.
	pipe := s.client.TxPipeline()
	setCmd := pipe.SetNX(ctx, key, raw, 0)
	pipe.SAdd(ctx, indexKey(appointment.InsuredID), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if !setCmd.Val() {
		return fmt.Errorf("%w: appointment %s/%d already exists", domain.ErrConflict, appointment.InsuredID, appointment.ScheduleID)
	}
	return nil
}

func (s *RedisAppointmentStore) FindByKey(ctx context.Context, insuredID string, scheduleID int64) (domain.Appointment, error) {
	raw, err := s.client.Get(ctx, recordKey(insuredID, scheduleID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Appointment{}, fmt.Errorf("%w: appointment %s/%d", domain.ErrNotFound, insuredID, scheduleID)
		}
		return domain.Appointment{}, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	var rec appointmentRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Appointment{}, err
	}
	return fromRecord(rec), nil
}

func (s *RedisAppointmentStore) FindByInsuredID(ctx context.Context, insuredID string) ([]domain.Appointment, error) {
	keys, err := s.client.SMembers(ctx, indexKey(insuredID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if len(keys) == 0 {
		return []domain.Appointment{}, nil
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	out := make([]domain.Appointment, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var rec appointmentRecord
		if err := json.Unmarshal([]byte(str), &rec); err != nil {
			continue
		}
		out = append(out, fromRecord(rec))
	}
	return out, nil
}

func (s *RedisAppointmentStore) UpdateStatus(ctx context.Context, insuredID string, scheduleID int64, status domain.Status, at time.Time) error {
	appointment, err := s.FindByKey(ctx, insuredID, scheduleID)
	if err != nil {
		return err
	}
	if appointment.Status != status && !appointment.Status.CanTransition(status) {
		return fmt.Errorf("%w: cannot move appointment %s/%d from %s to %s", domain.ErrConflict, insuredID, scheduleID, appointment.Status, status)
	}
	appointment.Status = status
	appointment.UpdatedAt = &at
	raw, err := json.Marshal(toRecord(appointment))
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, recordKey(insuredID, scheduleID), raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func toRecord(a domain.Appointment) appointmentRecord {
	return appointmentRecord{
		InsuredID:   a.InsuredID,
		ScheduleID:  a.ScheduleID,
		CountryISO:  string(a.CountryISO),
		CenterID:    a.CenterID,
		SpecialtyID: a.SpecialtyID,
		MedicID:     a.MedicID,
		Date:        a.Date,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func fromRecord(rec appointmentRecord) domain.Appointment {
	return domain.Appointment{
		InsuredID:   rec.InsuredID,
		ScheduleID:  rec.ScheduleID,
		CountryISO:  domain.CountryISO(rec.CountryISO),
		CenterID:    rec.CenterID,
		SpecialtyID: rec.SpecialtyID,
		MedicID:     rec.MedicID,
		Date:        rec.Date,
		Status:      domain.Status(rec.Status),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

var _ ports.AppointmentRepository = (*RedisAppointmentStore)(nil)
