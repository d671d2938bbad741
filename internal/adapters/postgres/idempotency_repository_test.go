package postgres

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	if !isUniqueViolation(gorm.ErrDuplicatedKey) {
		t.Fatalf("expected translated duplicate-key error to be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey)) {
		t.Fatalf("expected wrapped duplicate-key error to be a unique violation")
	}
	if !isUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "appointment_idempotency_pkey"`)) {
		t.Fatalf("expected raw postgres message to be a unique violation")
	}
	if isUniqueViolation(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")) {
		t.Fatalf("a connection failure must not read as a unique violation")
	}
	if isUniqueViolation(nil) {
		t.Fatalf("nil is not a unique violation")
	}
}
