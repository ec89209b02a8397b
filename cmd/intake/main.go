package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/lead-intake/internal/config"
	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/cache"
	"github.com/xavierca1/lead-intake/internal/infra/console"
	"github.com/xavierca1/lead-intake/internal/infra/database"
	"github.com/xavierca1/lead-intake/internal/infra/http/handlers"
	"github.com/xavierca1/lead-intake/internal/infra/mail"
	"github.com/xavierca1/lead-intake/internal/infra/metrics"
	"github.com/xavierca1/lead-intake/internal/infra/queue"
	"github.com/xavierca1/lead-intake/internal/infra/simulator"
	"github.com/xavierca1/lead-intake/internal/infra/worker"
	"github.com/xavierca1/lead-intake/internal/logger"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "intake:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	baseLog, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer baseLog.Sync()
	log := baseLog.With(zap.String("run_id", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Lead log
	csvRecords, err := database.NewCSVLeadRecordRepository(cfg.Intake.LeadLogPath)
	if err != nil {
		return err
	}
	checks := map[string]handlers.Check{
		"lead_log": func(context.Context) error { return csvRecords.Healthy() },
	}

	var records entity.LeadRecordRepository = csvRecords
	var counter usecase.StatusCounter = csvRecords
	if cfg.Postgres.DSN != "" {
		db, err := database.NewDBConnection(ctx, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		pgRecords := database.NewLeadRecordRepository(db)
		if err := pgRecords.EnsureSchema(ctx); err != nil {
			return err
		}
		records = database.NewMultiLeadRecordRepository(csvRecords, pgRecords)
		counter = pgRecords
		checks["database"] = dbCheck(db)
		log.Info("postgres lead records enabled")
	}

	// 2. Follow-up markers and email
	var store usecase.FollowUpStore = cache.NewMemoryFollowUpStore()
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis)
		defer client.Close()

		redisStore := cache.NewRedisFollowUpStore(client, 24*time.Hour)
		if err := redisStore.Ping(ctx); err != nil {
			return err
		}
		store = redisStore
		checks["redis"] = redisStore.Ping
		log.Info("redis follow-up store enabled", zap.String("addr", cfg.Redis.Addr))
	}

	var email usecase.EmailService
	if cfg.SMTP.Enabled() {
		email = mail.NewEmailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
		log.Info("follow-up email enabled", zap.String("smtp_host", cfg.SMTP.Host))
	}

	// 3. Console and use cases
	term := console.New(os.Stdin, os.Stdout, console.WithMessageDelay(cfg.Intake.MessageDelay))
	tracker := usecase.NewInteractionTracker()
	interview := usecase.NewInterviewLeadUseCase(term, term, records, tracker, log)
	followUp := usecase.NewFollowUpLeadUseCase(store, term, records, tracker, email, log)

	// 4. Queue and producers
	leads := queue.NewMemoryQueue()
	var producer entity.LeadProducer = leads

	g, gctx := errgroup.WithContext(ctx)

	external := false
	if cfg.RabbitMQ.URL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			return err
		}
		defer rabbit.Close()

		producer = queue.NewProducer(rabbit.Ch)
		relay := queue.NewRelay(rabbit.Ch, leads, log)
		g.Go(func() error { return relay.Start(gctx, queue.QueueName) })
		checks["rabbitmq"] = func(context.Context) error {
			if rabbit.Conn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}
		external = true
		log.Info("rabbitmq transport enabled")
	}

	if cfg.HTTP.Addr != "" {
		leadHandler := handlers.NewLeadHandler(producer, log)
		defer leadHandler.Close()

		srv := &http.Server{
			Addr: cfg.HTTP.Addr,
			Handler: handlers.NewRouter(
				leadHandler,
				handlers.NewHealthHandler(checks, leads.Len),
				log,
			),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			log.Info("http intake listening", zap.String("addr", cfg.HTTP.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		external = true
	}

	// 5. Workers
	handler := worker.NewLeadHandlerWorker(leads, interview, term, cfg.Intake.IdleNotice, log)
	sweeper := worker.NewFollowUpWorker(tracker, followUp, cfg.FollowUp.Threshold, cfg.FollowUp.Interval, log)

	sim := simulator.New(metrics.CountEnqueued(producer, "simulator"), cfg.Intake.SubmissionDelay, log)
	sim.Announce = func(lead entity.Lead) {
		term.Status("New lead triggered: %d, %s", lead.ID, lead.Name)
	}

	term.Banner("Sales Agent",
		"Welcome! The sales agent is online and ready to engage new leads.",
		usecase.ToneWelcome)
	term.Status("Triggering %d leads...", cfg.Intake.LeadCount)

	sweepCtx, stopSweep := context.WithCancel(gctx)
	defer stopSweep()
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		sweeper.Start(sweepCtx)
	}()

	g.Go(func() error {
		if err := sim.TriggerLeads(gctx, cfg.Intake.LeadCount); err != nil {
			return err
		}
		if !external {
			leads.Close()
		}
		return nil
	})

	g.Go(func() error {
		defer stop()
		return handler.Start(gctx)
	})

	err = g.Wait()
	stopSweep()
	<-sweepDone
	leads.Close()

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("intake stopped with error", zap.Error(err))
		return err
	}

	term.Divider()
	term.Banner("Done", "✅ All leads handled successfully!", usecase.ToneSuccess)
	printSummary(term, counter, log)
	log.Info("intake finished", zap.Int("handled", handler.Handled()))
	return nil
}

func printSummary(term *console.Console, counter usecase.StatusCounter, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	summary, err := usecase.SummarizeLeadLog(ctx, counter)
	if err != nil {
		log.Warn("lead log summary unavailable", zap.Error(err))
		return
	}
	term.Status("%s", summary)
}

func dbCheck(db *sql.DB) handlers.Check {
	return func(ctx context.Context) error { return db.PingContext(ctx) }
}
