package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/platform-admin/internal/api/dto"
	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/repository"
	"github.com/spec-kit/platform-admin/internal/service"
)

// JobsHandler exposes job endpoints for customers and admins.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobs *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

// Create handles POST /me/jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	job, err := h.jobs.Create(c.Context(), service.CreateJobInput{
		OwnerID:     p.User.ID,
		Title:       req.Title,
		DeviceID:    req.DeviceID,
		FlowID:      req.FlowID,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// ListMine handles GET /me/jobs.
func (h *JobsHandler) ListMine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	limit, offset := parsePagination(c)
	jobs, err := h.jobs.ListForOwner(c.Context(), p.User.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobItems(jobs)})
}

// Get handles GET /me/jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	job, err := h.jobs.Get(c.Context(), p.User.ID, isAdmin(p), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// Cancel handles POST /me/jobs/:id/cancel.
func (h *JobsHandler) Cancel(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	job, err := h.jobs.Cancel(c.Context(), p.User.ID, isAdmin(p), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// Complete handles POST /me/jobs/:id/complete.
func (h *JobsHandler) Complete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	job, err := h.jobs.Complete(c.Context(), p.User.ID, isAdmin(p), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// Fail handles POST /me/jobs/:id/fail.
func (h *JobsHandler) Fail(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.FailJobRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	job, err := h.jobs.Fail(c.Context(), p.User.ID, isAdmin(p), c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// AdminList handles GET /admin/jobs.
func (h *JobsHandler) AdminList(c *fiber.Ctx) error {
	var filter repository.JobFilter
	if owner := c.Query("owner_id"); owner != "" {
		filter.OwnerID = &owner
	}
	if deviceID := c.Query("device_id"); deviceID != "" {
		filter.DeviceID = &deviceID
	}
	if status := c.Query("status"); status != "" {
		filter.Statuses = append(filter.Statuses, domain.JobStatus(status))
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	filter.Limit, filter.Offset = parsePagination(c)

	jobs, err := h.jobs.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobItems(jobs)})
}

func jobItems(jobs []domain.Job) []dto.JobResponse {
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, dto.NewJobResponse(&jobs[i]))
	}
	return items
}
