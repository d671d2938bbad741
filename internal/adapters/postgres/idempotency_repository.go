package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saludcore/appointment-service/internal/domain"
	"github.com/saludcore/appointment-service/internal/ports"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

func (r *idempotencyRepository) Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error {
	rec := idempotencyModel{
		IdempotencyKey: key,
		RequestHash:    requestHash,
		ExpiresAt:      expiresAt,
		CreatedAt:      time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: idempotency key %q already reserved", domain.ErrConflict, key)
		}
		// Anything else is a store failure, not a replay; it must not
		// read as caller-caused upstream.
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

var _ ports.IdempotencyRepository = (*idempotencyRepository)(nil)
