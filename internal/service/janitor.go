package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleSweeper removes sessions that have been idle for too long.
type IdleSweeper interface {
	SweepIdle(ttl time.Duration) int
}

// Janitor periodically evicts idle quiz sessions.
type Janitor struct {
	sweeper  IdleSweeper
	schedule string
	ttl      time.Duration
	logger   *zap.Logger
}

// NewJanitor creates a new Janitor. schedule uses the robfig/cron syntax,
// e.g. "@every 5m".
func NewJanitor(sweeper IdleSweeper, schedule string, ttl time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		sweeper:  sweeper,
		schedule: schedule,
		ttl:      ttl,
		logger:   logger,
	}
}

// Start runs the sweep on schedule until ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(j.schedule, j.sweep); err != nil {
		return fmt.Errorf("add janitor job %q: %w", j.schedule, err)
	}

	c.Start()
	j.logger.Info("session janitor started",
		zap.String("schedule", j.schedule),
		zap.Duration("ttl", j.ttl),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")

	return nil
}

func (j *Janitor) sweep() {
	removed := j.sweeper.SweepIdle(j.ttl)
	if removed > 0 {
		j.logger.Info("idle quiz sessions evicted", zap.Int("count", removed))
	}
}
