package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/saludcore/appointment-service/internal/domain"
)

func unreachableStore() *RedisAppointmentStore {
	return NewRedisAppointmentStore(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}))
}

func TestCreateUnreachableStoreIsNotConflict(t *testing.T) {
	t.Parallel()
	store := unreachableStore()

	err := store.Create(context.Background(), domain.Appointment{
		InsuredID:  "00001",
		ScheduleID: 100,
		CountryISO: domain.CountryPE,
		Status:     domain.StatusPending,
		CreatedAt:  time.Now().UTC(),
	})
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	// A failed pipeline writes neither the record nor the index, so it
	// must never read as a key that already exists.
	if errors.Is(err, domain.ErrConflict) {
		t.Fatalf("store failure must not read as conflict, got %v", err)
	}
}

func TestFindByKeyUnreachableStore(t *testing.T) {
	t.Parallel()
	store := unreachableStore()

	_, err := store.FindByKey(context.Background(), "00001", 100)
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("store failure must not read as not-found, got %v", err)
	}
}
