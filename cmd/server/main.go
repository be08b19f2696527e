package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/twmb/franz-go/pkg/kgo"

	"sourcing/internal/catalog"
	dshandler "sourcing/internal/datasourcing/handler"
	dsservice "sourcing/internal/datasourcing/service"
	dsstore "sourcing/internal/datasourcing/store"
	"sourcing/internal/dataset"
	jwttoken "sourcing/internal/jwt_token"
	"sourcing/internal/notification"
	"sourcing/internal/platform/config"
	"sourcing/internal/platform/httpserver"
	"sourcing/internal/platform/kafka"
	"sourcing/internal/platform/logger"
	"sourcing/internal/platform/postgres"
	"sourcing/internal/platform/redis"
	requesthandler "sourcing/internal/request/handler"
	"sourcing/internal/request/metrics"
	requestservice "sourcing/internal/request/service"
	requeststore "sourcing/internal/request/store"
	httptransport "sourcing/internal/transport/http"
	"sourcing/migrations"
	"sourcing/pkg/platform/circuit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

type backends struct {
	tx        requestservice.StoreTx
	requests  requestservice.RequestStore
	sourcings requestservice.SourcingStore
	directory catalog.CompanyDirectory
	datasets  requestservice.DatasetCatalog
	health    map[string]httptransport.HealthCheck
	closers   []func() error
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		for _, closeFn := range b.closers {
			_ = closeFn()
		}
	}()

	publisher, closePublisher, err := newPublisher(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	validator := catalog.NewValidator(b.directory, cfg.Catalog.DataTypes, cfg.Catalog.MinReportingPeriod)
	requestSvc, err := requestservice.New(b.tx, b.requests, b.sourcings, validator, b.datasets,
		requestservice.WithLogger(log),
		requestservice.WithMetrics(m),
		requestservice.WithPublisher(publisher),
		requestservice.WithMaxDimensions(cfg.Bulk.MaxDimensions),
	)
	if err != nil {
		return err
	}
	sourcingSvc, err := dsservice.New(b.tx, b.sourcings,
		dsservice.WithLogger(log),
		dsservice.WithMetrics(m),
		dsservice.WithPublisher(publisher),
	)
	if err != nil {
		return err
	}

	if cfg.Auth.AdminToken == "" {
		log.Warn("ADMIN_API_TOKEN not set; operator routes will reject every call")
	}
	jwtValidator := jwttoken.NewMiddlewareAdapter(jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer))
	router := httptransport.NewRouter(httptransport.Options{
		Logger:         log,
		Gatherer:       reg,
		HealthChecks:   b.health,
		RequestTimeout: cfg.Server.RequestTimeout,
	},
		requesthandler.New(requestSvc, log, jwtValidator, cfg.Auth.AdminToken),
		dshandler.New(sourcingSvc, log, cfg.Auth.AdminToken),
	)

	srv := httpserver.New(cfg.Server, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting sourcing service", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openBackends(ctx context.Context, cfg config.Config, log *slog.Logger) (*backends, error) {
	b := &backends{health: map[string]httptransport.HealthCheck{}}

	var directory catalog.CompanyDirectory
	if cfg.Database.URL == "" {
		log.Info("DATABASE_URL not set; using in-memory stores")
		requests := requeststore.NewInMemory()
		sourcings := dsstore.NewInMemory()
		b.tx = requestservice.NewShardedTx(requestservice.Stores{Requests: requests, Sourcings: sourcings}, cfg.Database.TxTimeout)
		b.requests = requests
		b.sourcings = sourcings
		directory = catalog.NewInMemoryDirectory()
		b.datasets = dataset.NewInMemoryCatalog()
	} else {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, db.Close)
		if err := migrations.Apply(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		b.tx = newRequestPostgresTx(db, cfg.Database.TxTimeout)
		b.requests = requeststore.NewPostgres(db)
		b.sourcings = dsstore.NewPostgres(db)
		directory = catalog.NewPostgresDirectory(db)
		b.datasets = dataset.NewPostgresCatalog(db)
		b.health["database"] = db.PingContext
	}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client != nil {
		b.closers = append(b.closers, client.Close)
		b.health["redis"] = client.Health
		directory = catalog.NewCachedDirectory(directory, client, cfg.Catalog.CompanyCacheTTL, log)
	}
	b.directory = directory
	return b, nil
}

func newPublisher(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (requestservice.Publisher, func(), error) {
	if len(cfg.Brokers) == 0 {
		log.Info("KAFKA_BROKERS not set; request events stay in memory")
		return notification.NewMemoryPublisher(), func() {}, nil
	}
	client, err := kafka.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := kafka.EnsureTopic(ctx, client, cfg); err != nil {
		client.Close()
		return nil, nil, err
	}
	breaker := circuit.New("kafka",
		circuit.WithFailureThreshold(cfg.BreakerFailures),
		circuit.WithCooldown(cfg.BreakerCooldown),
	)
	publisher := notification.NewBreakerPublisher(notification.NewKafkaPublisher(client, cfg.Topic), breaker, log)
	return publisher, closeKafka(client), nil
}

func closeKafka(client *kgo.Client) func() {
	return func() { client.Close() }
}
