package schedule

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRunStore struct {
	records map[string]RunRecord
}

func newMemoryRunStore() *memoryRunStore {
	return &memoryRunStore{records: make(map[string]RunRecord)}
}

func (s *memoryRunStore) SaveLastRun(_ context.Context, task string, record RunRecord) error {
	s.records[task] = record
	return nil
}

func (s *memoryRunStore) LastRun(_ context.Context, task string) (*RunRecord, error) {
	record, ok := s.records[task]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func TestRunnerRecordsSuccess(t *testing.T) {
	registry := NewRegistry()
	registry.Register(Task{
		Name:        "noop",
		Description: "does nothing",
		Run: func(context.Context) (string, error) {
			return "did nothing", nil
		},
	})
	store := newMemoryRunStore()
	runner := NewRunner(registry, store, nil, zap.NewNop())

	record, err := runner.Run(context.Background(), "noop")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, record.Status)
	assert.Equal(t, "did nothing", record.Detail)
	assert.False(t, record.Time.IsZero())
	assert.NotEmpty(t, record.Duration)

	cached, err := runner.LastRun(context.Background(), "noop")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, StatusSuccess, cached.Status)
}

func TestRunnerRecordsFailure(t *testing.T) {
	registry := NewRegistry()
	registry.Register(Task{
		Name:        "broken",
		Description: "always fails",
		Run: func(context.Context) (string, error) {
			return "", errors.New("disk on fire")
		},
	})
	store := newMemoryRunStore()
	runner := NewRunner(registry, store, nil, zap.NewNop())

	record, err := runner.Run(context.Background(), "broken")
	require.NoError(t, err, "task failures are recorded, not returned")
	assert.Equal(t, StatusFailed, record.Status)
	assert.Equal(t, "disk on fire", record.Error)
	assert.False(t, record.Time.IsZero())

	cached, err := runner.LastRun(context.Background(), "broken")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, StatusFailed, cached.Status)
	assert.Equal(t, "disk on fire", cached.Error)
}

func TestRunnerUnknownTask(t *testing.T) {
	runner := NewRunner(NewRegistry(), newMemoryRunStore(), nil, zap.NewNop())

	_, err := runner.Run(context.Background(), "missing")
	assert.Error(t, err)
}

func TestRunnerNeverRunTaskHasNoRecord(t *testing.T) {
	registry := NewRegistry()
	registry.Register(Task{Name: "idle", Run: func(context.Context) (string, error) { return "", nil }})
	runner := NewRunner(registry, newMemoryRunStore(), nil, zap.NewNop())

	record, err := runner.LastRun(context.Background(), "idle")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestRegistryOrderStable(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		registry.Register(Task{Name: name, Run: func(context.Context) (string, error) { return "", nil }})
	}

	var names []string
	for _, task := range registry.List() {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestTailCleanupLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleanup.log")

	lines, err := TailCleanupLog(path, 50)
	require.NoError(t, err)
	assert.Nil(t, lines, "missing file reads as empty log")

	var content string
	for i := 0; i < 60; i++ {
		content += time.Now().Format(time.RFC3339) + " pass\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lines, err = TailCleanupLog(path, 50)
	require.NoError(t, err)
	assert.Len(t, lines, 50)
}
