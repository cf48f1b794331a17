package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/platform-admin/internal/api/dto"
	"github.com/spec-kit/platform-admin/internal/schedule"
)

// ScheduleHandler exposes the admin maintenance-task endpoints.
type ScheduleHandler struct {
	runner         *schedule.Runner
	cleanupLogPath string
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(runner *schedule.Runner, cleanupLogPath string) *ScheduleHandler {
	return &ScheduleHandler{runner: runner, cleanupLogPath: cleanupLogPath}
}

// List handles GET /admin/schedule. Each task is returned with its cached
// last-run entry, or null when it has never run (or the entry expired).
func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	tasks := h.runner.Tasks()
	items := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		item := dto.TaskResponse{Name: task.Name, Description: task.Description}
		record, err := h.runner.LastRun(c.Context(), task.Name)
		if err == nil && record != nil {
			item.LastRun = &dto.LastRunDetail{
				Time:     record.Time,
				Status:   record.Status,
				Duration: record.Duration,
				Detail:   record.Detail,
				Error:    record.Error,
			}
		}
		items = append(items, item)
	}
	return c.JSON(fiber.Map{"data": items})
}

// Run handles POST /admin/schedule/:name/run. The run outcome is returned
// either way; a failing task is a failed record, not an HTTP error.
func (h *ScheduleHandler) Run(c *fiber.Ctx) error {
	record, err := h.runner.Run(c.Context(), c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{"data": dto.LastRunDetail{
		Time:     record.Time,
		Status:   record.Status,
		Duration: record.Duration,
		Detail:   record.Detail,
		Error:    record.Error,
	}})
}

// CleanupLog handles GET /admin/schedule/cleanup-log. It tails the last 50
// lines of the data-cleanup log file.
func (h *ScheduleHandler) CleanupLog(c *fiber.Ctx) error {
	lines, err := schedule.TailCleanupLog(h.cleanupLogPath, 50)
	if err != nil {
		return err
	}
	if lines == nil {
		lines = []string{}
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"lines": lines}})
}
