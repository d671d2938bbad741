package application

import (
	"context"
	"fmt"

	"github.com/saludcore/appointment-service/internal/domain"
)

// CompleteAppointment drives the canonical record to its terminal
// state once a country system has confirmed. The raw message may
// arrive in any of the supported envelope shapes; a payload missing
// either key field is rejected as invalid input so the caller can skip
// it without aborting the rest of its batch. The status update itself
// is idempotent under redelivery.
func (s *Service) CompleteAppointment(ctx context.Context, raw []byte) error {
	msg, _, err := parseConfirmation(raw)
	if err != nil {
		return err
	}
	if msg.InsuredID == "" || msg.ScheduleID == 0 {
		return fmt.Errorf("%w: confirmation payload missing insuredId or scheduleId", domain.ErrInvalidInput)
	}
	return s.appointments.UpdateStatus(ctx, msg.InsuredID, msg.ScheduleID, domain.StatusCompleted, s.nowFn())
}
