package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	eventadapter "github.com/saludcore/appointment-service/internal/adapters/events"
	"github.com/saludcore/appointment-service/internal/application"
	"github.com/saludcore/appointment-service/internal/domain"
	"github.com/saludcore/appointment-service/internal/ports"
)

type noopAppointments struct{}

func (noopAppointments) Create(context.Context, domain.Appointment) error { return nil }

func (noopAppointments) FindByKey(context.Context, string, int64) (domain.Appointment, error) {
	return domain.Appointment{}, domain.ErrNotFound
}

func (noopAppointments) FindByInsuredID(context.Context, string) ([]domain.Appointment, error) {
	return nil, nil
}

func (noopAppointments) UpdateStatus(context.Context, string, int64, domain.Status, time.Time) error {
	return nil
}

type noopLedger struct{}

func (noopLedger) Insert(context.Context, domain.Appointment) error { return nil }

type noopOutbox struct{}

func (noopOutbox) Enqueue(context.Context, ports.OutboxEvent) error { return nil }

func (noopOutbox) FetchUnpublished(context.Context, int) ([]ports.OutboxRecord, error) {
	return nil, nil
}

func (noopOutbox) MarkPublished(context.Context, uuid.UUID, time.Time) error { return nil }

func (noopOutbox) MarkFailed(context.Context, uuid.UUID, string, time.Time) error { return nil }

type noopDedup struct{}

func (noopDedup) IsDuplicate(context.Context, string, time.Time) (bool, error) { return false, nil }

func (noopDedup) MarkProcessed(context.Context, string, string, time.Time) error { return nil }

type noopIdempotency struct{}

func (noopIdempotency) Reserve(context.Context, string, string, time.Time) error { return nil }

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, []byte, string) error { return nil }

func testRuntime(t *testing.T, cfg Config) (*Runtime, *bool) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := application.NewService(application.Dependencies{
		Appointments: noopAppointments{},
		Ledger:       noopLedger{},
		Outbox:       noopOutbox{},
		EventDedup:   noopDedup{},
		Idempotency:  noopIdempotency{},
		Publisher:    noopPublisher{},
	})
	cleaned := false
	return &Runtime{
		cfg:    cfg,
		logger: logger,
		router: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }),
		outbox: eventadapter.NewOutboxWorker(logger, noopOutbox{}, noopPublisher{}, 20*time.Millisecond, 10),
		consumer: eventadapter.NewConsumerWorker(logger, eventadapter.NewNoopConsumer(), service, eventadapter.Routes{
			RequestedByTopic: map[string]domain.CountryISO{},
			ConfirmedTopic:   "appointments.confirmed",
		}, 20*time.Millisecond),
		cleanupFn: func(context.Context) { cleaned = true },
	}, &cleaned
}

func TestRunWorkerDoesNotBindAPIPorts(t *testing.T) {
	t.Parallel()

	// Occupy a port and hand it to the worker's config; the worker must
	// run and stop cleanly without ever trying to bind it.
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	defer lis.Close()
	port := lis.Addr().(*net.TCPAddr).Port

	rt, cleaned := testRuntime(t, Config{HTTPPort: port, GRPCPort: port})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()
	if err := rt.RunWorker(ctx); err != nil {
		t.Fatalf("expected worker to run beside a bound port, got %v", err)
	}
	if !*cleaned {
		t.Fatalf("expected cleanup to run on worker shutdown")
	}
}

func TestRunAPIStartsAndShutsDown(t *testing.T) {
	t.Parallel()

	rt, cleaned := testRuntime(t, Config{HTTPPort: 0, GRPCPort: 0})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()
	if err := rt.RunAPI(ctx); err != nil {
		t.Fatalf("expected api runtime to shut down cleanly, got %v", err)
	}
	if !*cleaned {
		t.Fatalf("expected cleanup to run on api shutdown")
	}
}
