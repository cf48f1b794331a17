package sysinfo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	return &Collector{
		goos:     "linux",
		procPath: t.TempDir(),
		dataDir:  t.TempDir(),
		exec: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return nil, errors.New("command not found")
		},
		statfs: func(path string, buf *syscall.Statfs_t) error {
			return errors.New("statfs unavailable")
		},
	}
}

func TestProbesDegradeToPlaceholder(t *testing.T) {
	c := newTestCollector(t)

	for _, metric := range c.CollectAll(context.Background()) {
		assert.Equal(t, StatusUnknown, metric.Status, metric.Name)
		assert.Equal(t, Placeholder, metric.Display, metric.Name)
	}
}

func TestMemoryLinux(t *testing.T) {
	c := newTestCollector(t)
	meminfo := "MemTotal:       16384000 kB\nMemFree:         1024000 kB\nMemAvailable:    8192000 kB\n"
	require.NoError(t, os.WriteFile(filepath.Join(c.procPath, "meminfo"), []byte(meminfo), 0o644))

	total := c.MemoryTotal(context.Background())
	require.Equal(t, StatusOK, total.Status)
	assert.Equal(t, float64(16384000*1024), total.Value)

	used := c.MemoryUsed(context.Background())
	require.Equal(t, StatusOK, used.Status)
	assert.Equal(t, float64((16384000-8192000)*1024), used.Value)
}

func TestLoadAverageLinux(t *testing.T) {
	c := newTestCollector(t)
	require.NoError(t, os.WriteFile(filepath.Join(c.procPath, "loadavg"), []byte("1.25 0.80 0.60 2/345 6789\n"), 0o644))

	metric := c.LoadAverage(context.Background())
	require.Equal(t, StatusOK, metric.Status)
	assert.Equal(t, 1.25, metric.Value)
	assert.Equal(t, "1.25", metric.Display)
}

func TestCPUCountFromCommand(t *testing.T) {
	c := newTestCollector(t)
	c.exec = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		require.Equal(t, "nproc", name)
		return []byte("8\n"), nil
	}

	metric := c.CPUCount(context.Background())
	require.Equal(t, StatusOK, metric.Status)
	assert.Equal(t, "8", metric.Display)
}

func TestProcessCountGarbageOutput(t *testing.T) {
	c := newTestCollector(t)
	c.exec = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("not a number"), nil
	}

	metric := c.ProcessCount(context.Background())
	assert.Equal(t, StatusUnknown, metric.Status)
	assert.Equal(t, Placeholder, metric.Display)
}

func TestParseVMStatFreePages(t *testing.T) {
	out := "Mach Virtual Memory Statistics: (page size of 4096 bytes)\nPages free:      123456.\nPages active:    7890.\n"
	pages, err := parseVMStatFreePages(out)
	require.NoError(t, err)
	assert.Equal(t, uint64(123456), pages)

	_, err = parseVMStatFreePages("no such line")
	assert.Error(t, err)
}
