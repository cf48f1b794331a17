package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/platform-admin/internal/schedule"
)

// StartSchedulerWorker runs every registered maintenance task once per tick
// until the context is cancelled. Failures are already captured in the run
// records, so the loop only logs and keeps going.
func StartSchedulerWorker(ctx context.Context, runner *schedule.Runner, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("scheduler worker started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduler worker stopped")
			return
		case <-ticker.C:
			runAll(ctx, runner, logger)
		}
	}
}

func runAll(ctx context.Context, runner *schedule.Runner, logger *zap.Logger) {
	for _, task := range runner.Tasks() {
		record, err := runner.Run(ctx, task.Name)
		if err != nil {
			logger.Error("task run failed", zap.String("task", task.Name), zap.Error(err))
			continue
		}
		logger.Info("task run finished",
			zap.String("task", task.Name),
			zap.String("status", record.Status),
			zap.String("duration", record.Duration))
	}
}
