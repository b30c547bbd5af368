// Package scheduler runs the background liability sweep: a periodic scan for
// bets that have stayed PENDING past the configured age. Each stake sits
// debited from its player's balance until settlement, so a growing pending
// book is money the house owes an answer for.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/config"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/metrics"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/repository"
	"github.com/shopspring/decimal"
)

// Scheduler owns the liability sweep goroutine. Call Start(ctx) once from
// main(); cancel the context to shut it down gracefully.
type Scheduler struct {
	betRepo *repository.BetRepository
	cfg     *config.Config
	logger  *slog.Logger
}

// NewScheduler creates a Scheduler.
func NewScheduler(betRepo *repository.BetRepository, cfg *config.Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		betRepo: betRepo,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start launches the sweep goroutine. It returns immediately; the loop runs
// until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.liabilitySweepLoop(ctx)
	s.logger.Info("scheduler started",
		"sweep_interval", s.cfg.Casino.SweepInterval,
		"pending_max_age", s.cfg.Casino.PendingMaxAge)
}

// ──────────────────────────────────────────────────────────────────────────────
// liabilitySweepLoop
// ──────────────────────────────────────────────────────────────────────────────

// liabilitySweepLoop measures the stale pending book on every tick and
// publishes it to the Prometheus gauges. Stale bets are reported, never
// auto-settled: forcing an outcome is an operator decision.
func (s *Scheduler) liabilitySweepLoop(ctx context.Context) {
	defer s.recoverAndLog("liabilitySweepLoop")

	ticker := time.NewTicker(s.cfg.Casino.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("liabilitySweepLoop: shutting down")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep is the inner body of liabilitySweepLoop, extracted so that the
// defer/recover in the loop catches panics correctly.
func (s *Scheduler) sweep(ctx context.Context) {
	count, total, err := s.betRepo.PendingLiability(ctx, s.cfg.Casino.PendingMaxAge)
	if err != nil {
		s.logger.Error("liabilitySweepLoop: query failed", "err", err)
		return
	}

	metrics.PendingBets.Set(float64(count))
	metrics.PendingLiability.Set(total.InexactFloat64())

	if count > 0 {
		s.logger.Warn("stale pending bets detected",
			"count", count,
			"total_stake", total.StringFixed(4),
			"older_than", s.cfg.Casino.PendingMaxAge)
	} else if !total.Equal(decimal.Zero) {
		// COUNT(*)=0 with a non-zero SUM means the query drifted from the schema.
		s.logger.Error("liabilitySweepLoop: inconsistent aggregate",
			"count", count, "total_stake", total.StringFixed(4))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Panic recovery
// ──────────────────────────────────────────────────────────────────────────────

// recoverAndLog is deferred inside the goroutine to catch unexpected panics,
// log them, and allow the process to continue running.
func (s *Scheduler) recoverAndLog(loop string) {
	if r := recover(); r != nil {
		s.logger.Error("PANIC recovered in scheduler loop",
			"loop", loop, "panic", r)
	}
}
