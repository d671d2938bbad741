package application

import (
	"encoding/json"
	"fmt"

	"github.com/saludcore/appointment-service/internal/domain"
)

// The confirmed channel delivers two envelope shapes depending on the
// relay path, plus the bare payload as a fallback. The shape is
// resolved once here into a tagged variant; handlers never sniff JSON
// themselves.
type envelopeKind int

const (
	envelopeBare envelopeKind = iota
	envelopeNotificationRelay
	envelopeDirectEvent
)

type confirmationMessage struct {
	InsuredID  string `json:"insuredId"`
	ScheduleID int64  `json:"scheduleId"`
	CountryISO string `json:"countryISO"`
}

type notificationRelayEnvelope struct {
	Type    string `json:"Type"`
	Message string `json:"Message"`
}

type directEventEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

func parseConfirmation(raw []byte) (confirmationMessage, envelopeKind, error) {
	var relay notificationRelayEnvelope
	if err := json.Unmarshal(raw, &relay); err == nil && relay.Type == "Notification" && relay.Message != "" {
		var msg confirmationMessage
		if err := json.Unmarshal([]byte(relay.Message), &msg); err != nil {
			return confirmationMessage{}, envelopeNotificationRelay, fmt.Errorf("%w: malformed relay message", domain.ErrInvalidInput)
		}
		return msg, envelopeNotificationRelay, nil
	}

	var direct directEventEnvelope
	if err := json.Unmarshal(raw, &direct); err == nil && len(direct.Detail) > 0 {
		var msg confirmationMessage
		if err := json.Unmarshal(direct.Detail, &msg); err != nil {
			return confirmationMessage{}, envelopeDirectEvent, fmt.Errorf("%w: malformed event detail", domain.ErrInvalidInput)
		}
		return msg, envelopeDirectEvent, nil
	}

	var msg confirmationMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return confirmationMessage{}, envelopeBare, fmt.Errorf("%w: unparseable confirmation message", domain.ErrInvalidInput)
	}
	return msg, envelopeBare, nil
}
