package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saludcore/appointment-service/internal/adapters/cache"
	eventadapter "github.com/saludcore/appointment-service/internal/adapters/events"
	httpadapter "github.com/saludcore/appointment-service/internal/adapters/http"
	"github.com/saludcore/appointment-service/internal/adapters/postgres"
	"github.com/saludcore/appointment-service/internal/application"
	"github.com/saludcore/appointment-service/internal/domain"
	"github.com/saludcore/appointment-service/internal/ports"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Runtime holds the wired dependencies shared by both processes. The
// serving surfaces (HTTP server, gRPC listener) are created inside
// RunAPI only, so the worker process never binds the API's ports.
type Runtime struct {
	cfg       Config
	logger    *slog.Logger
	router    http.Handler
	outbox    *eventadapter.OutboxWorker
	consumer  *eventadapter.ConsumerWorker
	cleanupFn func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := postgres.RunMigrations(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	redisClient, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	appointments := cache.NewRedisAppointmentStore(redisClient)
	repos := postgres.NewRepositories(db)

	publisher := ports.EventPublisher(eventadapter.NewLoggingPublisher(logger))
	consumerAdapter := eventadapter.Consumer(eventadapter.NewNoopConsumer())
	var closers []io.Closer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, map[string]string{
			"appointment.requested.PE": cfg.TopicRequestedPE,
			"appointment.requested.CL": cfg.TopicRequestedCL,
			"appointment.confirmed":    cfg.TopicConfirmed,
		})
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			closers = append(closers, kafkaPublisher)
		}

		kafkaConsumer, conErr := eventadapter.NewKafkaConsumer(
			cfg.KafkaBrokers,
			cfg.KafkaConsumerGroup,
			[]string{cfg.TopicRequestedPE, cfg.TopicRequestedCL, cfg.TopicConfirmed},
		)
		if conErr != nil {
			logger.WarnContext(ctx, "kafka consumer disabled, using noop consumer", "error", conErr)
		} else {
			consumerAdapter = kafkaConsumer
			closers = append(closers, kafkaConsumer)
		}
	}

	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:    cfg.ServiceID,
			IdempotencyTTL: cfg.IdempotencyTTL,
			EventDedupTTL:  cfg.EventDedupTTL,
		},
		Appointments: appointments,
		Ledger:       repos.Ledger,
		Outbox:       repos.Outbox,
		EventDedup:   repos.EventDedup,
		Idempotency:  repos.Idempotency,
		Publisher:    publisher,
	})

	router := httpadapter.NewRouter(httpadapter.NewHandler(service), logger)

	outbox := eventadapter.NewOutboxWorker(logger, repos.Outbox, publisher, cfg.OutboxPollInterval, cfg.OutboxBatchSize)
	consumer := eventadapter.NewConsumerWorker(logger, consumerAdapter, service, eventadapter.Routes{
		RequestedByTopic: map[string]domain.CountryISO{
			cfg.TopicRequestedPE: domain.CountryPE,
			cfg.TopicRequestedCL: domain.CountryCL,
		},
		ConfirmedTopic: cfg.TopicConfirmed,
	}, cfg.ConsumerPollInterval)

	return &Runtime{
		cfg:      cfg,
		logger:   logger,
		router:   router,
		outbox:   outbox,
		consumer: consumer,
		cleanupFn: func(ctx context.Context) {
			for _, closer := range closers {
				_ = closer.Close()
			}
			_ = redisClient.Close()
			_ = sqlDB.Close()
		},
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", r.cfg.HTTPPort),
		Handler:           r.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", r.cfg.GRPCPort))
	if err != nil {
		r.cleanupFn(context.Background())
		return err
	}

	errCh := make(chan error, 2)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := grpcServer.Serve(grpcLis); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 2)

	go func() {
		if err := r.outbox.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		r.cleanupFn(context.Background())
		return nil
	case err := <-errCh:
		r.cleanupFn(context.Background())
		return err
	}
}
