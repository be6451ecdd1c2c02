// Package jobs schedules the reconciliation sweeps that keep reservation
// state aligned with the calendar.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"space-booking/internal/obs"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/config"
	"space-booking/internal/usecase/commands"
)

type Reconciler struct {
	reconcile commands.ReconcileCommands
	metrics   *obs.Metrics
	clock     clock.Clock
	cfg       config.JobsConfig

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewReconciler(reconcile commands.ReconcileCommands, metrics *obs.Metrics, clk clock.Clock, cfg config.JobsConfig) *Reconciler {
	return &Reconciler{
		reconcile: reconcile,
		metrics:   metrics,
		clock:     clk,
		cfg:       cfg,
	}
}

// Start launches the expiry sweep (every sweep interval) and the daily
// calendar sweep (activation, completion, reminders).
func (r *Reconciler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	r.wg.Add(2)
	go r.runExpiryLoop(ctx)
	go r.runDailyLoop(ctx)
}

func (r *Reconciler) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

func (r *Reconciler) runExpiryLoop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.ExpirySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runSweep(ctx, "expire_overdue", r.reconcile.ExpireOverdue)
		}
	}
}

func (r *Reconciler) runDailyLoop(ctx context.Context) {
	defer r.wg.Done()

	for {
		wait := r.untilNextDailyRun()
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			r.runSweep(ctx, "activate_due", r.reconcile.ActivateDue)
			r.runSweep(ctx, "complete_due", r.reconcile.CompleteDue)
			r.runSweep(ctx, "send_reminders", r.reconcile.SendReminders)
		}
	}
}

func (r *Reconciler) untilNextDailyRun() time.Duration {
	now := r.clock.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), r.cfg.DailyHourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (r *Reconciler) runSweep(ctx context.Context, name string, sweep func(ctx context.Context) (int, error)) {
	start := time.Now()
	processed, err := sweep(ctx)
	r.metrics.SweepDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		r.metrics.SweepRuns.WithLabelValues(name, "error").Inc()
		slog.Error("reconciliation sweep failed", "job", name, "error", err.Error())
		return
	}

	r.metrics.SweepRuns.WithLabelValues(name, "ok").Inc()
	r.metrics.SweepProcessed.WithLabelValues(name).Add(float64(processed))
	if processed > 0 {
		slog.Info("reconciliation sweep finished", "job", name, "processed", processed)
	}
}
