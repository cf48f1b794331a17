package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/platform-admin/internal/api/dto"
	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/repository"
	"github.com/spec-kit/platform-admin/internal/service"
)

// BillingHandler exposes package catalog and transaction endpoints.
type BillingHandler struct {
	billing *service.BillingService
}

// NewBillingHandler constructs handler.
func NewBillingHandler(billing *service.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// ListPackages handles GET /packages. Customers only see active plans;
// admins may pass include_inactive=true.
func (h *BillingHandler) ListPackages(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	activeOnly := true
	if isAdmin(p) && parseBoolQuery(c, "include_inactive", false) {
		activeOnly = false
	}

	packages, err := h.billing.ListPackages(c.Context(), activeOnly)
	if err != nil {
		return err
	}
	items := make([]dto.PackageResponse, 0, len(packages))
	for i := range packages {
		items = append(items, dto.NewPackageResponse(&packages[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreatePackage handles POST /admin/packages.
func (h *BillingHandler) CreatePackage(c *fiber.Ctx) error {
	in, err := parsePackageInput(c)
	if err != nil {
		return err
	}
	pkg, err := h.billing.CreatePackage(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPackageResponse(pkg)})
}

// UpdatePackage handles PUT /admin/packages/:id.
func (h *BillingHandler) UpdatePackage(c *fiber.Ctx) error {
	in, err := parsePackageInput(c)
	if err != nil {
		return err
	}
	pkg, err := h.billing.UpdatePackage(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPackageResponse(pkg)})
}

// DeletePackage handles DELETE /admin/packages/:id.
func (h *BillingHandler) DeletePackage(c *fiber.Ctx) error {
	if err := h.billing.DeletePackage(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Purchase handles POST /me/purchases.
func (h *BillingHandler) Purchase(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	txn, err := h.billing.Purchase(c.Context(), p.User.ID, req.PackageID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTransactionResponse(txn)})
}

// ListMyTransactions handles GET /me/transactions.
func (h *BillingHandler) ListMyTransactions(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	limit, offset := parsePagination(c)
	txns, err := h.billing.ListTransactions(c.Context(), repository.TransactionFilter{
		UserID: &p.User.ID, Limit: limit, Offset: offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": transactionItems(txns)})
}

// AdminListTransactions handles GET /admin/transactions.
func (h *BillingHandler) AdminListTransactions(c *fiber.Ctx) error {
	var filter repository.TransactionFilter
	if userID := c.Query("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if status := c.Query("status"); status != "" {
		filter.Statuses = append(filter.Statuses, domain.TransactionStatus(status))
	}
	filter.Limit, filter.Offset = parsePagination(c)

	txns, err := h.billing.ListTransactions(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": transactionItems(txns)})
}

// MarkPaid handles POST /admin/transactions/:id/paid.
func (h *BillingHandler) MarkPaid(c *fiber.Ctx) error {
	txn, err := h.billing.MarkPaid(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTransactionResponse(txn)})
}

func parsePackageInput(c *fiber.Ctx) (service.PackageInput, error) {
	var req dto.PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return service.PackageInput{}, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return service.PackageInput{}, err
	}
	return service.PackageInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Period:      req.Period,
		JobQuota:    req.JobQuota,
		DeviceQuota: req.DeviceQuota,
		IsActive:    req.IsActive,
	}, nil
}

func transactionItems(txns []domain.Transaction) []dto.TransactionResponse {
	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, dto.NewTransactionResponse(&txns[i]))
	}
	return items
}
