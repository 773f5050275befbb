package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	assignmentsvc "edumatch/internal/assignment/service"
	"edumatch/internal/matching"
	matchingmetrics "edumatch/internal/matching/metrics"
	matchingsvc "edumatch/internal/matching/service"
	"edumatch/internal/platform/config"
	"edumatch/internal/platform/httpserver"
	"edumatch/internal/platform/keylock"
	"edumatch/internal/platform/logger"
	pgplatform "edumatch/internal/platform/postgres"
	redisplatform "edumatch/internal/platform/redis"
	"edumatch/internal/quota"
	quotasvc "edumatch/internal/quota/service"
	"edumatch/internal/score"
	scoresvc "edumatch/internal/score/service"
	"edumatch/internal/seat"
	seatmetrics "edumatch/internal/seat/metrics"
	seatsvc "edumatch/internal/seat/service"
	httptransport "edumatch/internal/transport/http"
	id "edumatch/pkg/domain"
	audit "edumatch/pkg/platform/audit"
	kafkapublisher "edumatch/pkg/platform/audit/publisher"
	auditmemory "edumatch/pkg/platform/audit/store/memory"
	auditpostgres "edumatch/pkg/platform/audit/store/postgres"
	auditworker "edumatch/pkg/platform/audit/worker"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: durable when POSTGRES_URL is set, in-memory otherwise.
	var (
		seatStore   seat.Store
		scoreStore  score.Store
		quotaStore  quota.Store
		auditStore  audit.Store
		outboxStore *auditpostgres.Store
	)
	if cfg.PostgresURL != "" {
		db, err := pgplatform.Open(cfg.PostgresURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		seatStore = seat.NewPostgres(db)
		scoreStore = score.NewPostgres(db)
		quotaStore = quota.NewPostgres(db)
		outboxStore = auditpostgres.New(db)
		auditStore = outboxStore
	} else {
		seatStore = seat.NewInMemoryStore()
		scoreStore = score.NewInMemoryStore()
		quotaStore = quota.NewInMemoryStore()
		auditStore = auditmemory.New()
	}

	var resultStore matching.ResultStore
	if cfg.RedisURL != "" {
		rc, err := redisplatform.New(cfg.RedisURL)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer rc.Close()
		resultStore = matching.NewRedisResultStore(rc.Client)
	} else {
		resultStore = matching.NewInMemoryResultStore()
	}

	// Audit pipeline: handlers publish without blocking, the worker persists,
	// and the relay ships persisted events to Kafka when brokers are set.
	auditInbox := make(chan audit.Event, 256)
	auditPublisher := audit.NewChanPublisher(auditInbox, log)
	worker := auditworker.New(auditStore, auditInbox)

	var relay *kafkapublisher.Relay
	if len(cfg.KafkaBrokers) > 0 && outboxStore != nil {
		kafka, err := kafkapublisher.NewKafka(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		relay = kafkapublisher.NewRelay(outboxStore, kafka, config.AuditRelayInterval, log)
	}

	locks := keylock.New()
	seatMetrics := seatmetrics.New()

	seats, err := seatsvc.New(seatStore, quotaStore, locks,
		seatsvc.WithLogger(log),
		seatsvc.WithAuditPublisher(auditPublisher),
		seatsvc.WithMetrics(seatMetrics),
	)
	if err != nil {
		log.Error("seat service init failed", "error", err)
		os.Exit(1)
	}

	scores, err := scoresvc.New(scoreStore, locks,
		scoresvc.WithLogger(log),
		scoresvc.WithAuditPublisher(auditPublisher),
		scoresvc.WithMaxScore(cfg.MaxScore),
	)
	if err != nil {
		log.Error("score service init failed", "error", err)
		os.Exit(1)
	}

	quotas, err := quotasvc.New(quotaStore, locks,
		quotasvc.WithLogger(log),
		quotasvc.WithAuditPublisher(auditPublisher),
	)
	if err != nil {
		log.Error("quota service init failed", "error", err)
		os.Exit(1)
	}

	priority := make([]id.InstitutionID, 0, len(cfg.InstitutionPriority))
	for _, inst := range cfg.InstitutionPriority {
		priority = append(priority, id.InstitutionID(inst))
	}

	matcher, err := matchingsvc.New(seatStore, scoreStore, resultStore, locks, cfg.CycleYear,
		matchingsvc.WithLogger(log),
		matchingsvc.WithAuditPublisher(auditPublisher),
		matchingsvc.WithMetrics(matchingmetrics.New()),
		matchingsvc.WithInstitutionPriority(priority),
	)
	if err != nil {
		log.Error("matching service init failed", "error", err)
		os.Exit(1)
	}

	assignments, err := assignmentsvc.New(seatStore, locks,
		assignmentsvc.WithLogger(log),
		assignmentsvc.WithAuditPublisher(auditPublisher),
		assignmentsvc.WithMetrics(seatMetrics),
	)
	if err != nil {
		log.Error("assignment service init failed", "error", err)
		os.Exit(1)
	}

	handler := httptransport.NewHandler(seats, scores, quotas, matcher, assignments, cfg.CycleYear, log)
	router := httptransport.NewRouter(handler, httptransport.RouterConfig{
		JWTSigningKey: cfg.JWTSigningKey,
		AdminToken:    cfg.AdminToken,
	}, log)

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting edumatch", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return worker.Run(ctx)
	})

	if relay != nil {
		g.Go(func() error {
			return relay.Run(ctx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("shutdown with error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
