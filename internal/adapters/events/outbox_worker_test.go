package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saludcore/appointment-service/internal/ports"
)

type recordingOutbox struct {
	pending   []ports.OutboxRecord
	published []uuid.UUID
	failed    []uuid.UUID
}

func (r *recordingOutbox) Enqueue(context.Context, ports.OutboxEvent) error { return nil }

func (r *recordingOutbox) FetchUnpublished(context.Context, int) ([]ports.OutboxRecord, error) {
	return r.pending, nil
}

func (r *recordingOutbox) MarkPublished(_ context.Context, outboxID uuid.UUID, _ time.Time) error {
	r.published = append(r.published, outboxID)
	return nil
}

func (r *recordingOutbox) MarkFailed(_ context.Context, outboxID uuid.UUID, _ string, _ time.Time) error {
	r.failed = append(r.failed, outboxID)
	return nil
}

type flakyPublisher struct {
	failKeys map[string]bool
	calls    int
}

func (p *flakyPublisher) Publish(_ context.Context, _ string, _ []byte, partitionKey string) error {
	p.calls++
	if p.failKeys[partitionKey] {
		return errors.New("broker rejected message")
	}
	return nil
}

func TestOutboxProcessOncePublishesAndMarks(t *testing.T) {
	t.Parallel()

	okID, badID := uuid.New(), uuid.New()
	outbox := &recordingOutbox{pending: []ports.OutboxRecord{
		{OutboxID: okID, EventType: "appointment.confirmed", PartitionKey: "00001-1", Payload: []byte(`{}`)},
		{OutboxID: badID, EventType: "appointment.confirmed", PartitionKey: "00002-2", Payload: []byte(`{}`)},
	}}
	publisher := &flakyPublisher{failKeys: map[string]bool{"00002-2": true}}
	worker := NewOutboxWorker(slog.New(slog.NewTextHandler(io.Discard, nil)), outbox, publisher, time.Second, 10)

	if err := worker.ProcessOnce(context.Background()); err != nil {
		t.Fatalf("expected outbox pass to succeed, got %v", err)
	}
	if publisher.calls != 2 {
		t.Fatalf("expected both records attempted, got %d calls", publisher.calls)
	}
	if len(outbox.published) != 1 || outbox.published[0] != okID {
		t.Fatalf("expected only the acked record marked published, got %v", outbox.published)
	}
	if len(outbox.failed) != 1 || outbox.failed[0] != badID {
		t.Fatalf("expected the rejected record marked failed, got %v", outbox.failed)
	}
}
