package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/internal/infrastructure/journal"
)

// SweeperConfig controls how often old journal entries are purged and how
// long they are kept.
type SweeperConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// JournalSweeper enforces the journal retention policy on a cron schedule.
type JournalSweeper struct {
	store  *journal.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    SweeperConfig
}

func NewJournalSweeper(store *journal.Store, logger *zap.Logger, cfg SweeperConfig) *JournalSweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	js := &JournalSweeper{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = js.cron.AddFunc(schedule, func() {
		if err := js.Sweep(); err != nil {
			js.logger.Error("journal sweep failed", zap.Error(err))
		}
	})

	return js
}

// Start launches the cron scheduler.
func (js *JournalSweeper) Start() {
	if js == nil || js.cron == nil {
		return
	}
	js.cron.Start()
	js.logger.Info("journal sweeper started",
		zap.Duration("interval", js.cfg.Interval),
		zap.Duration("retention", js.cfg.Retention))
}

// Stop gracefully stops the scheduler.
func (js *JournalSweeper) Stop(ctx context.Context) {
	if js == nil || js.cron == nil {
		return
	}
	stopCtx := js.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	js.logger.Info("journal sweeper stopped")
}

// Sweep removes entries that fell out of the retention window.
func (js *JournalSweeper) Sweep() error {
	if js == nil || js.store == nil {
		return nil
	}
	cutoff := time.Now().UTC().Add(-js.cfg.Retention)
	if err := js.store.Cleanup(cutoff); err != nil {
		return err
	}
	js.logger.Debug("journal sweep completed", zap.Time("cutoff", cutoff))
	return nil
}
