package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/saludcore/appointment-service/internal/domain"
)

// ProcessCountryAppointment finalizes one "requested" notification for
// a specific country: it re-checks the routed country against the
// payload, loads the canonical record, writes the derived ledger entry
// and enqueues the "confirmed" notification through the outbox. Every
// step tolerates redelivery: the dedup record short-circuits repeats,
// the ledger insert is duplicate-safe, and the outbox enqueue only
// happens on the first pass.
func (s *Service) ProcessCountryAppointment(ctx context.Context, payload []byte, country domain.CountryISO) error {
	var evt requestedEventPayload
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("%w: malformed requested payload", domain.ErrInvalidInput)
	}
	if evt.CountryISO != string(country) {
		// Routing-layer filtering is not trusted; a mismatched country
		// is discarded here rather than processed for the wrong ledger.
		return fmt.Errorf("%w: countryISO %q does not match processor country %q", domain.ErrInvalidInput, evt.CountryISO, country)
	}

	dedupID := requestedDedupID(evt.InsuredID, evt.ScheduleID, country)
	dup, err := s.eventDedup.IsDuplicate(ctx, dedupID, s.nowFn())
	if err != nil {
		return err
	}
	if dup {
		return nil
	}

	canonical, err := s.appointments.FindByKey(ctx, evt.InsuredID, evt.ScheduleID)
	if err != nil {
		// domain.ErrNotFound surfaces to the delivery layer; under a
		// write/notify race its redelivery policy closes the gap.
		return err
	}

	entry := canonical
	entry.Status = domain.StatusCompleted
	entry.CountryISO = country
	if err := s.ledger.Insert(ctx, entry); err != nil {
		return err
	}

	if err := s.enqueueConfirmed(ctx, entry); err != nil {
		return err
	}
	return s.eventDedup.MarkProcessed(ctx, dedupID, "appointment.requested", s.nowFn().Add(s.cfg.EventDedupTTL))
}

func requestedDedupID(insuredID string, scheduleID int64, country domain.CountryISO) string {
	return fmt.Sprintf("requested:%s:%d:%s", insuredID, scheduleID, country)
}
