package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/platform-admin/internal/events"
)

// Run outcome statuses stored in the last-run cache entry.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

const lastRunKeyPrefix = "schedule_last_run:"

// RunRecord is the cached bookkeeping entry for a task's latest execution.
type RunRecord struct {
	Time     time.Time `json:"time"`
	Status   string    `json:"status"`
	Duration string    `json:"duration,omitempty"`
	Detail   string    `json:"detail,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// RunStore persists last-run bookkeeping.
type RunStore interface {
	SaveLastRun(ctx context.Context, task string, record RunRecord) error
	// LastRun returns nil when the task has no cached entry.
	LastRun(ctx context.Context, task string) (*RunRecord, error)
}

type redisRunStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRunStore stores run records under schedule_last_run:<task> with a TTL.
func NewRedisRunStore(client *redis.Client, ttl time.Duration) RunStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisRunStore{client: client, ttl: ttl}
}

func (s *redisRunStore) SaveLastRun(ctx context.Context, task string, record RunRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, lastRunKeyPrefix+task, payload, s.ttl).Err()
}

func (s *redisRunStore) LastRun(ctx context.Context, task string) (*RunRecord, error) {
	raw, err := s.client.Get(ctx, lastRunKeyPrefix+task).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var record RunRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Runner executes registry tasks and records their outcome.
type Runner struct {
	registry   *Registry
	store      RunStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewRunner constructs a runner.
func NewRunner(registry *Registry, store RunStore, dispatcher events.Dispatcher, logger *zap.Logger) *Runner {
	return &Runner{registry: registry, store: store, dispatcher: dispatcher, logger: logger}
}

// Run executes the named task. Task failures are captured in the returned
// record, not returned as an error; only an unknown task name errors.
func (r *Runner) Run(ctx context.Context, name string) (RunRecord, error) {
	task, ok := r.registry.Get(name)
	if !ok {
		return RunRecord{}, fmt.Errorf("unknown task %q", name)
	}

	start := time.Now()
	detail, err := task.Run(ctx)
	duration := time.Since(start)

	record := RunRecord{
		Time:     start.UTC(),
		Status:   StatusSuccess,
		Duration: duration.String(),
		Detail:   detail,
	}
	if err != nil {
		record.Status = StatusFailed
		record.Error = err.Error()
		r.logger.Warn("scheduled task failed",
			zap.String("task", name),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	} else {
		r.logger.Info("scheduled task finished",
			zap.String("task", name),
			zap.Duration("duration", duration),
			zap.String("detail", detail),
		)
	}

	if saveErr := r.store.SaveLastRun(ctx, name, record); saveErr != nil {
		r.logger.Warn("failed to save last-run entry", zap.String("task", name), zap.Error(saveErr))
	}

	if r.dispatcher != nil {
		_ = r.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTaskRunFinished,
			Timestamp: time.Now().UTC(),
			Payload: events.TaskRunFinishedPayload{
				Task:     name,
				Status:   record.Status,
				Duration: record.Duration,
				Error:    record.Error,
			},
		})
	}

	return record, nil
}

// LastRun reads the cached record for a task.
func (r *Runner) LastRun(ctx context.Context, name string) (*RunRecord, error) {
	return r.store.LastRun(ctx, name)
}

// Tasks lists the registry contents.
func (r *Runner) Tasks() []Task {
	return r.registry.List()
}
