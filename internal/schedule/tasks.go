package schedule

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/platform-admin/internal/config"
	"github.com/spec-kit/platform-admin/internal/events"
	"github.com/spec-kit/platform-admin/internal/repository"
)

// Task names surfaced on the admin schedule page.
const (
	TaskPresenceSync = "presence-sync"
	TaskStaleDevices = "stale-devices"
	TaskDispatchJobs = "dispatch-jobs"
	TaskDataCleanup  = "data-cleanup"
	TaskCachePrune   = "cache-prune"
)

// TaskDependencies bundles what the maintenance tasks touch.
type TaskDependencies struct {
	Devices       repository.DeviceRepository
	Jobs          repository.JobRepository
	APILogs       repository.APILogRepository
	Notifications repository.NotificationRepository
	Redis         *redis.Client
	Dispatcher    events.Dispatcher
	Config        config.ScheduleConfig
	Logger        *zap.Logger
}

// RegisterMaintenanceTasks fills the registry with the static task set.
func RegisterMaintenanceTasks(registry *Registry, deps TaskDependencies) {
	registry.Register(Task{
		Name:        TaskPresenceSync,
		Description: "Recompute device online/offline flags from last check-in",
		Run:         presenceSync(deps),
	})
	registry.Register(Task{
		Name:        TaskStaleDevices,
		Description: "Flag devices silent past the stale cutoff",
		Run:         staleDevices(deps),
	})
	registry.Register(Task{
		Name:        TaskDispatchJobs,
		Description: "Move due pending jobs to running",
		Run:         dispatchJobs(deps),
	})
	registry.Register(Task{
		Name:        TaskDataCleanup,
		Description: "Purge old API logs and read notifications",
		Run:         dataCleanup(deps),
	})
	registry.Register(Task{
		Name:        TaskCachePrune,
		Description: "Remove presence cache keys left without an expiry",
		Run:         cachePrune(deps),
	})
}

func presenceSync(deps TaskDependencies) TaskFunc {
	return func(ctx context.Context) (string, error) {
		cutoff := time.Now().Add(-deps.Config.StaleDeviceCutoff())
		updated, err := deps.Devices.SyncPresence(ctx, cutoff)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("updated %d devices", updated), nil
	}
}

func staleDevices(deps TaskDependencies) TaskFunc {
	return func(ctx context.Context) (string, error) {
		cutoff := time.Now().Add(-deps.Config.StaleDeviceCutoff())
		stale, err := deps.Devices.MarkStale(ctx, cutoff)
		if err != nil {
			return "", err
		}
		for i := range stale {
			device := &stale[i]
			_ = deps.Dispatcher.Publish(ctx, events.Event{
				ID:        uuid.NewString(),
				Type:      events.EventDeviceStale,
				Timestamp: time.Now().UTC(),
				Payload: events.DeviceStalePayload{
					DeviceID: device.ID,
					OwnerID:  device.OwnerID,
					Name:     device.Name,
					LastSeen: device.LastSeenAt,
				},
			})
		}
		return fmt.Sprintf("flagged %d stale devices", len(stale)), nil
	}
}

func dispatchJobs(deps TaskDependencies) TaskFunc {
	return func(ctx context.Context) (string, error) {
		dispatched, err := deps.Jobs.DispatchDue(ctx, time.Now())
		if err != nil {
			return "", err
		}
		for i := range dispatched {
			job := &dispatched[i]
			_ = deps.Dispatcher.Publish(ctx, events.Event{
				ID:        uuid.NewString(),
				Type:      events.EventJobDispatched,
				Timestamp: time.Now().UTC(),
				Payload: events.JobDispatchedPayload{
					JobID:    job.ID,
					OwnerID:  job.OwnerID,
					Title:    job.Title,
					DeviceID: job.DeviceID,
				},
			})
		}
		return fmt.Sprintf("dispatched %d jobs", len(dispatched)), nil
	}
}

func dataCleanup(deps TaskDependencies) TaskFunc {
	return func(ctx context.Context) (string, error) {
		logCutoff := time.Now().AddDate(0, 0, -deps.Config.APILogRetentionDays)
		logsRemoved, err := deps.APILogs.DeleteBefore(ctx, logCutoff)
		if err != nil {
			return "", err
		}

		notifCutoff := time.Now().AddDate(0, 0, -deps.Config.NotificationRetentionDays)
		notifsRemoved, err := deps.Notifications.DeleteReadBefore(ctx, notifCutoff)
		if err != nil {
			return "", err
		}

		detail := fmt.Sprintf("removed %d api logs, %d notifications", logsRemoved, notifsRemoved)
		if err := appendCleanupLog(deps.Config.CleanupLogPath, detail); err != nil {
			deps.Logger.Warn("failed to append cleanup log", zap.Error(err))
		}
		return detail, nil
	}
}

func cachePrune(deps TaskDependencies) TaskFunc {
	return func(ctx context.Context) (string, error) {
		// Presence keys are written with a TTL; anything persistent is an
		// orphan from a crashed writer.
		var pruned int
		iter := deps.Redis.Scan(ctx, 0, "presence:*", 100).Iterator()
		for iter.Next(ctx) {
			key := iter.Val()
			ttl, err := deps.Redis.TTL(ctx, key).Result()
			if err != nil {
				return "", err
			}
			if ttl < 0 {
				if err := deps.Redis.Del(ctx, key).Err(); err != nil {
					return "", err
				}
				pruned++
			}
		}
		if err := iter.Err(); err != nil {
			return "", err
		}
		return fmt.Sprintf("pruned %d cache keys", pruned), nil
	}
}

func appendCleanupLog(path, detail string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line := fmt.Sprintf("%s %s\n", time.Now().UTC().Format(time.RFC3339), detail)
	_, err = f.WriteString(line)
	return err
}
