// Package sysinfo reads host-level metrics for the admin system widgets.
// Probes branch on OS family and degrade to an "unknown" placeholder on any
// read or subprocess failure; they never return errors to callers.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

// Status marks whether a probe produced a usable value.
type Status string

const (
	StatusOK      Status = "ok"
	StatusUnknown Status = "unknown"
)

// Placeholder is rendered when a probe fails.
const Placeholder = "N/A"

// Metric is one widget value.
type Metric struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
	Status  Status  `json:"status"`
}

// Collector gathers host metrics. The exec and statfs hooks exist so tests
// can simulate missing OS commands.
type Collector struct {
	logger   *zap.Logger
	goos     string
	procPath string
	dataDir  string
	exec     func(ctx context.Context, name string, args ...string) ([]byte, error)
	statfs   func(path string, buf *syscall.Statfs_t) error
}

// NewCollector builds a collector for the current OS.
func NewCollector(logger *zap.Logger, dataDir string) *Collector {
	return &Collector{
		logger:   logger,
		goos:     runtime.GOOS,
		procPath: "/proc",
		dataDir:  dataDir,
		exec: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
		statfs: syscall.Statfs,
	}
}

// CollectAll runs every probe and returns metrics in a fixed display order.
func (c *Collector) CollectAll(ctx context.Context) []Metric {
	return []Metric{
		c.MemoryUsed(ctx),
		c.MemoryTotal(ctx),
		c.LoadAverage(ctx),
		c.CPUCount(ctx),
		c.ProcessCount(ctx),
		c.DiskFree(),
		c.DiskTotal(),
	}
}

// MemoryTotal reports total physical memory in bytes.
func (c *Collector) MemoryTotal(ctx context.Context) Metric {
	total, _, err := c.memory(ctx)
	if err != nil {
		return c.unknown("memory_total", err)
	}
	return ok("memory_total", float64(total), formatBytes(total))
}

// MemoryUsed reports memory in use in bytes.
func (c *Collector) MemoryUsed(ctx context.Context) Metric {
	total, available, err := c.memory(ctx)
	if err != nil {
		return c.unknown("memory_used", err)
	}
	used := total - available
	return ok("memory_used", float64(used), formatBytes(used))
}

func (c *Collector) memory(ctx context.Context) (total, available uint64, err error) {
	switch c.goos {
	case "darwin":
		return c.memoryDarwin(ctx)
	default:
		return c.memoryLinux()
	}
}

func (c *Collector) memoryLinux() (total, available uint64, err error) {
	raw, err := os.ReadFile(filepath.Join(c.procPath, "meminfo"))
	if err != nil {
		return 0, 0, err
	}
	values := map[string]uint64{}
	for _, line := range strings.Split(string(raw), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		key := strings.TrimSuffix(fields[0], ":")
		kb, parseErr := strconv.ParseUint(fields[1], 10, 64)
		if parseErr != nil {
			continue
		}
		values[key] = kb * 1024
	}
	total, okTotal := values["MemTotal"]
	available, okAvail := values["MemAvailable"]
	if !okTotal || !okAvail {
		return 0, 0, fmt.Errorf("meminfo missing MemTotal/MemAvailable")
	}
	return total, available, nil
}

func (c *Collector) memoryDarwin(ctx context.Context) (total, available uint64, err error) {
	rawTotal, err := c.exec(ctx, "sysctl", "-n", "hw.memsize")
	if err != nil {
		return 0, 0, err
	}
	total, err = strconv.ParseUint(strings.TrimSpace(string(rawTotal)), 10, 64)
	if err != nil {
		return 0, 0, err
	}

	rawVM, err := c.exec(ctx, "vm_stat")
	if err != nil {
		return 0, 0, err
	}
	freePages, err := parseVMStatFreePages(string(rawVM))
	if err != nil {
		return 0, 0, err
	}
	const pageSize = 4096
	return total, freePages * pageSize, nil
}

func parseVMStatFreePages(out string) (uint64, error) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "Pages free:") {
			continue
		}
		value := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(line, "Pages free:")), ".")
		return strconv.ParseUint(value, 10, 64)
	}
	return 0, fmt.Errorf("vm_stat output missing Pages free")
}

// LoadAverage reports the one-minute load average.
func (c *Collector) LoadAverage(ctx context.Context) Metric {
	var raw string
	switch c.goos {
	case "darwin":
		out, err := c.exec(ctx, "sysctl", "-n", "vm.loadavg")
		if err != nil {
			return c.unknown("load_average", err)
		}
		raw = strings.Trim(strings.TrimSpace(string(out)), "{} ")
	default:
		out, err := os.ReadFile(filepath.Join(c.procPath, "loadavg"))
		if err != nil {
			return c.unknown("load_average", err)
		}
		raw = string(out)
	}

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return c.unknown("load_average", fmt.Errorf("empty loadavg"))
	}
	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return c.unknown("load_average", err)
	}
	return ok("load_average", load, strconv.FormatFloat(load, 'f', 2, 64))
}

// CPUCount reports logical CPU count via the OS tools.
func (c *Collector) CPUCount(ctx context.Context) Metric {
	var out []byte
	var err error
	switch c.goos {
	case "darwin":
		out, err = c.exec(ctx, "sysctl", "-n", "hw.ncpu")
	default:
		out, err = c.exec(ctx, "nproc")
	}
	if err != nil {
		return c.unknown("cpu_count", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return c.unknown("cpu_count", err)
	}
	return ok("cpu_count", float64(count), strconv.Itoa(count))
}

// ProcessCount reports the number of running processes.
func (c *Collector) ProcessCount(ctx context.Context) Metric {
	out, err := c.exec(ctx, "pgrep", "-c", ".")
	if err != nil {
		return c.unknown("process_count", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return c.unknown("process_count", err)
	}
	return ok("process_count", float64(count), strconv.Itoa(count))
}

// DiskFree reports free bytes on the data directory's filesystem.
func (c *Collector) DiskFree() Metric {
	var stat syscall.Statfs_t
	if err := c.statfs(c.dataDir, &stat); err != nil {
		return c.unknown("disk_free", err)
	}
	free := stat.Bavail * uint64(stat.Bsize)
	return ok("disk_free", float64(free), formatBytes(free))
}

// DiskTotal reports total bytes on the data directory's filesystem.
func (c *Collector) DiskTotal() Metric {
	var stat syscall.Statfs_t
	if err := c.statfs(c.dataDir, &stat); err != nil {
		return c.unknown("disk_total", err)
	}
	total := stat.Blocks * uint64(stat.Bsize)
	return ok("disk_total", float64(total), formatBytes(total))
}

func (c *Collector) unknown(name string, err error) Metric {
	if c.logger != nil {
		c.logger.Debug("sysinfo probe failed", zap.String("metric", name), zap.Error(err))
	}
	return Metric{Name: name, Display: Placeholder, Status: StatusUnknown}
}

func ok(name string, value float64, display string) Metric {
	return Metric{Name: name, Value: value, Display: display, Status: StatusOK}
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
