package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/subscription"
	"github.com/paycal/backend/internal/pkg/clock"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/metrics"
)

// BillingRoller moves next billing dates that have passed forward by whole
// billing cycles so the calendar always shows the upcoming charge.
type BillingRoller struct {
	subs     subscription.Repository
	clock    clock.Clock
	schedule string
	logger   *logger.Logger

	scheduler *cron.Cron
	mu        sync.Mutex
}

// NewBillingRoller creates a new billing roller worker. schedule is a
// standard five-field cron expression.
func NewBillingRoller(subs subscription.Repository, clk clock.Clock, schedule string, log *logger.Logger) *BillingRoller {
	return &BillingRoller{
		subs:     subs,
		clock:    clk,
		schedule: schedule,
		logger:   log,
	}
}

// Start schedules the roller and runs it once immediately. The scheduler
// stops when ctx is cancelled.
func (r *BillingRoller) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.scheduler != nil {
		return fmt.Errorf("billing roller is already running")
	}
	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule: %w", err)
	}

	r.scheduler = cron.New()
	if _, err := r.scheduler.AddFunc(r.schedule, func() { r.run(ctx) }); err != nil {
		r.scheduler = nil
		return fmt.Errorf("failed to schedule billing roller: %w", err)
	}
	r.scheduler.Start()

	r.logger.WithFields(map[string]interface{}{
		"schedule": r.schedule,
	}).Info("Starting billing roller worker")

	go r.run(ctx)
	go func() {
		<-ctx.Done()
		r.Stop()
	}()
	return nil
}

// Stop halts the scheduler and waits for a running roll to finish
func (r *BillingRoller) Stop() {
	r.mu.Lock()
	scheduler := r.scheduler
	r.scheduler = nil
	r.mu.Unlock()

	if scheduler == nil {
		return
	}
	<-scheduler.Stop().Done()
	r.logger.Info("Billing roller worker stopped")
}

func (r *BillingRoller) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := r.RollOnce(ctx); err != nil {
		r.logger.ErrorWithErr(err, "Failed to roll billing dates")
	}
}

// RollOnce advances every past billing date and reports how many changed
func (r *BillingRoller) RollOnce(ctx context.Context) (int, error) {
	today := r.clock.Now().UTC().Truncate(24 * time.Hour)

	due, err := r.subs.ListBillingBefore(ctx, today.Format(db.DateLayout))
	if err != nil {
		return 0, err
	}

	rolled := 0
	for _, s := range due {
		if s.NextBillingDate == nil {
			continue
		}
		current, err := time.Parse(db.DateLayout, *s.NextBillingDate)
		if err != nil {
			r.logger.WithFields(map[string]interface{}{
				"subscription_id": s.ID,
				"date":            *s.NextBillingDate,
			}).Warn("Skipping unparseable billing date")
			continue
		}

		next := subscription.NextBillingDate(current, today, s.BillingCycle).Format(db.DateLayout)
		if err := r.subs.SetNextBillingDate(ctx, s.ID, next); err != nil {
			r.logger.WithFields(map[string]interface{}{
				"subscription_id": s.ID,
			}).ErrorWithErr(err, "Failed to roll billing date")
			continue
		}
		rolled++
	}

	metrics.RecordBillingRolled(rolled)
	if rolled > 0 {
		r.logger.WithFields(map[string]interface{}{
			"rolled": rolled,
		}).Info("Rolled billing dates")
	}
	return rolled, nil
}
