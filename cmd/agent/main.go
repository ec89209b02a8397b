package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xavierca1/lead-intake/internal/config"
	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/console"
	"github.com/xavierca1/lead-intake/internal/infra/database"
	"github.com/xavierca1/lead-intake/internal/logger"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

const (
	sampleLeadID   = 1234
	sampleLeadName = "Sample Lead"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "agent:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := database.NewCSVLeadRecordRepository(cfg.Intake.LeadLogPath)
	if err != nil {
		return err
	}

	term := console.New(os.Stdin, os.Stdout, console.WithMessageDelay(cfg.Intake.MessageDelay))
	interview := usecase.NewInterviewLeadUseCase(term, term, records, usecase.NewInteractionTracker(), log)

	lead, err := entity.NewLead(sampleLeadID, sampleLeadName, "")
	if err != nil {
		return err
	}

	term.Header("Welcome to the Lead Interaction System!")

	record, err := interview.Execute(ctx, *lead)
	if err != nil {
		log.Error("sample interview failed", zap.Error(err))
		return err
	}

	term.Divider()
	term.Success("✅ Operation Completed Successfully!")
	if summary, err := usecase.SummarizeLeadLog(context.Background(), records); err == nil {
		term.Status("%s", summary)
	} else {
		log.Warn("lead log summary unavailable", zap.Error(err))
	}
	log.Info("sample interview finished",
		zap.Int("lead_id", record.LeadID),
		zap.String("status", string(record.Status)),
		zap.String("lead_log", records.Path()))
	return nil
}
