package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/platform-admin/internal/api/dto"
	"github.com/spec-kit/platform-admin/internal/repository"
)

// APILogsHandler exposes the admin request-log browser.
type APILogsHandler struct {
	logs repository.APILogRepository
}

// NewAPILogsHandler constructs handler.
func NewAPILogsHandler(logs repository.APILogRepository) *APILogsHandler {
	return &APILogsHandler{logs: logs}
}

// List handles GET /admin/api-logs.
func (h *APILogsHandler) List(c *fiber.Ctx) error {
	var filter repository.APILogFilter
	if method := c.Query("method"); method != "" {
		filter.Method = &method
	}
	if prefix := c.Query("path_prefix"); prefix != "" {
		filter.PathPrefix = &prefix
	}
	if minStatus := parseIntQuery(c, "min_status", 0); minStatus > 0 {
		filter.MinStatus = &minStatus
	}
	if from := c.Query("from"); from != "" {
		if parsed, err := time.Parse(time.RFC3339, from); err == nil {
			filter.CreatedFrom = &parsed
		}
	}
	if to := c.Query("to"); to != "" {
		if parsed, err := time.Parse(time.RFC3339, to); err == nil {
			filter.CreatedTo = &parsed
		}
	}
	filter.Limit, filter.Offset = parsePagination(c)

	logs, err := h.logs.ListWithFilter(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.APILogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, dto.NewAPILogResponse(&logs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
