package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	jwttoken "portal/internal/jwt_token"
	"portal/internal/licenses"
	licensemetrics "portal/internal/licenses/metrics"
	"portal/internal/notices/feed"
	partnerstore "portal/internal/partner/store"
	"portal/internal/plans"
	"portal/internal/platform/config"
	"portal/internal/platform/httpserver"
	"portal/internal/platform/kafka"
	"portal/internal/platform/logger"
	"portal/internal/platform/metrics"
	"portal/internal/platform/postgres"
	"portal/internal/platform/redis"
	"portal/internal/platform/wpcom"
	"portal/internal/portal"
	httptransport "portal/internal/transport/http"
	audit "portal/pkg/platform/audit"
	kafkastore "portal/pkg/platform/audit/store/kafka"
	auditmemory "portal/pkg/platform/audit/store/memory"
	"portal/pkg/platform/audit/publisher"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. State and side effects live in internal packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	if cfg.UsesDevSigningKey() {
		log.Warn("using the development JWT signing key; set JWT_SIGNING_KEY in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	checks := map[string]httptransport.HealthCheck{}

	auditStore, closeAudit, err := buildAuditStore(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closeAudit()
	auditor := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(cfg.Kafka.AuditBuffer),
		publisher.WithLogger(log),
	)
	defer auditor.Close()

	keys, err := buildKeyStore(ctx, cfg.Postgres, log, checks)
	if err != nil {
		return err
	}
	notices, err := buildNoticeFeed(ctx, cfg.Redis, log, checks)
	if err != nil {
		return err
	}

	api, err := wpcom.New(cfg.WPCOM.BaseURL,
		wpcom.WithToken(cfg.WPCOM.Token),
		wpcom.WithTimeout(cfg.WPCOM.Timeout),
		wpcom.WithUserAgent("partner-portal"),
	)
	if err != nil {
		return fmt.Errorf("licensing api client: %w", err)
	}
	fetcher, err := licenses.NewHandler(licenses.NewAPIClient(api),
		licenses.WithLogger(log),
		licenses.WithMetrics(licensemetrics.New(reg)),
		licenses.WithAuditor(auditor),
		licenses.WithTracer(otel.Tracer("portal/licenses")),
	)
	if err != nil {
		return err
	}
	defer fetcher.Wait()

	store := portal.NewStore(portal.Deps{
		LicenseHandler: fetcher,
		NoticeFeed:     notices,
		Logger:         log,
		Observer:       metrics.New(reg).ObserveDispatch,
	})

	if cfg.Plans.CatalogPath != "" {
		catalog, err := plans.LoadCatalog(cfg.Plans.CatalogPath)
		if err != nil {
			return err
		}
		plans.Apply(ctx, store, catalog)
		_ = auditor.Emit(ctx, audit.Event{
			Action:  string(audit.EventPlansCatalogLoaded),
			Subject: "system",
			Detail:  cfg.Plans.CatalogPath,
		})
		log.Info("plans catalog loaded", "path", cfg.Plans.CatalogPath, "plans", len(catalog.Plans))
	}

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:    log,
		Validator: jwttoken.NewMiddlewareValidator(jwtService),
		Auditor:   auditor,
		Gatherer:  reg,
		Checks:    checks,
		Timeout:   cfg.Server.WriteTimeout,
	},
		httptransport.NewLicensesHandler(store, log),
		httptransport.NewPartnerHandler(store, keys, auditor, log),
		httptransport.NewNoticesHandler(store, auditor, log),
		httptransport.NewPlansHandler(store),
	)
	srv := httpserver.New(cfg.Server, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting partner portal", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func buildAuditStore(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (audit.Store, func(), error) {
	client, err := kafka.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Info("audit events kept in memory")
		return auditmemory.NewInMemoryStore(), func() {}, nil
	}
	if err := kafka.EnsureTopic(ctx, client, cfg.AuditTopic, 1); err != nil {
		client.Close()
		return nil, nil, err
	}
	log.Info("audit events streamed to kafka", "topic", cfg.AuditTopic)
	return kafkastore.New(client, cfg.AuditTopic), client.Close, nil
}

func buildKeyStore(ctx context.Context, cfg config.PostgresConfig, log *slog.Logger, checks map[string]httptransport.HealthCheck) (partnerstore.Store, error) {
	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if db == nil {
		log.Info("partner keys kept in memory")
		return partnerstore.NewInMemory(), nil
	}
	keys := partnerstore.NewPostgres(db)
	if err := keys.Migrate(ctx); err != nil {
		return nil, err
	}
	checks["postgres"] = db.PingContext
	return keys, nil
}

func buildNoticeFeed(ctx context.Context, cfg config.RedisConfig, log *slog.Logger, checks map[string]httptransport.HealthCheck) (feed.Feed, error) {
	client, err := redis.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if client == nil {
		log.Info("notice feed kept in memory")
		return feed.NewInMemory(cfg.NoticeCapacity), nil
	}
	checks["redis"] = client.Health
	return feed.NewRedis(client, feed.WithKey(cfg.NoticeKey), feed.WithCapacity(cfg.NoticeCapacity)), nil
}
