package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/saludcore/appointment-service/internal/application"
	"github.com/saludcore/appointment-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type Message struct {
	Topic   string
	Key     string
	Payload []byte

	raw kafka.Message
}

type Consumer interface {
	Poll(ctx context.Context, max int) ([]Message, error)
	// Commit acknowledges the messages with the broker. An
	// uncommitted message is redelivered to the group.
	Commit(ctx context.Context, msgs ...Message) error
}

// Routes binds broker topics to the pipeline stages that consume them:
// one requested topic per country processor, one confirmed topic for
// the completion handler.
type Routes struct {
	RequestedByTopic map[string]domain.CountryISO
	ConfirmedTopic   string
}

// ConsumerWorker drains both notification channels. Messages are
// handled one at a time and a failure is logged per message, never
// propagated: one malformed or premature notification must not stall
// the rest of a poll batch. Offsets are committed per message after
// handling. Invalid input commits anyway, since redelivery cannot fix
// it; any other failure leaves the message uncommitted so the broker
// redelivers it, and every handler is idempotent under that.
type ConsumerWorker struct {
	logger   *slog.Logger
	consumer Consumer
	service  *application.Service
	routes   Routes
	interval time.Duration
}

func NewConsumerWorker(logger *slog.Logger, consumer Consumer, service *application.Service, routes Routes, interval time.Duration) *ConsumerWorker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &ConsumerWorker{
		logger: logger, consumer: consumer, service: service, routes: routes, interval: interval,
	}
}

func (w *ConsumerWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.ProcessOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.ErrorContext(ctx, "consumer iteration failed",
				"module", "events.consumer_worker",
				"layer", "adapter",
				"operation", "process_once",
				"outcome", "failure",
				"error", err,
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *ConsumerWorker) ProcessOnce(ctx context.Context) error {
	msgs, err := w.consumer.Poll(ctx, 50)
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		operation, err := w.dispatch(ctx, msg)
		if err != nil {
			w.logRejected(ctx, operation, msg, err)
			if !errors.Is(err, domain.ErrInvalidInput) {
				// Left uncommitted: the broker redelivers once the
				// canonical write or the store catches up.
				continue
			}
		}
		if commitErr := w.consumer.Commit(ctx, msg); commitErr != nil {
			w.logger.WarnContext(ctx, "offset commit failed",
				"module", "events.consumer_worker",
				"layer", "adapter",
				"topic", msg.Topic,
				"key", msg.Key,
				"error", commitErr,
			)
		}
	}
	return nil
}

func (w *ConsumerWorker) dispatch(ctx context.Context, msg Message) (string, error) {
	if country, ok := w.routes.RequestedByTopic[msg.Topic]; ok {
		return "process_country_appointment", w.service.ProcessCountryAppointment(ctx, msg.Payload, country)
	}
	if msg.Topic == w.routes.ConfirmedTopic {
		return "complete_appointment", w.service.CompleteAppointment(ctx, msg.Payload)
	}
	w.logger.WarnContext(ctx, "message on unrouted topic dropped",
		"module", "events.consumer_worker",
		"layer", "adapter",
		"topic", msg.Topic,
	)
	return "drop", nil
}

func (w *ConsumerWorker) logRejected(ctx context.Context, operation string, msg Message, err error) {
	level := slog.LevelWarn
	if errors.Is(err, domain.ErrNotFound) {
		// Usually a delivery race ahead of the canonical write; the
		// uncommitted offset brings the message back.
		level = slog.LevelInfo
	}
	w.logger.Log(ctx, level, "message not processed",
		"module", "events.consumer_worker",
		"layer", "adapter",
		"operation", operation,
		"outcome", "failure",
		"topic", msg.Topic,
		"key", msg.Key,
		"error", err,
	)
}
