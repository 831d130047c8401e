package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mkulimalink/internal/api/dto"
	"github.com/spec-kit/mkulimalink/internal/service"
	apperrors "github.com/spec-kit/mkulimalink/pkg/util"
)

// AdminHandler exposes the approval workflow endpoints.
type AdminHandler struct {
	accounts *service.AccountService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(accounts *service.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

// PendingFarmers handles GET /api/admin/pending-farmers.
func (h *AdminHandler) PendingFarmers(c *fiber.Ctx) error {
	farmers, err := h.accounts.ListPendingFarmers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"farmers": dto.FromUsers(farmers)})
}

// ApproveFarmer handles POST /api/admin/approve-farmer.
func (h *AdminHandler) ApproveFarmer(c *fiber.Ctx) error {
	var req dto.ApproveFarmerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	message, err := h.accounts.ApproveFarmer(c.Context(), req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": message})
}

// ApprovedUsers handles GET /api/admin/approved-users.
func (h *AdminHandler) ApprovedUsers(c *fiber.Ctx) error {
	users, err := h.accounts.ListApprovedUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"users": dto.FromUsers(users)})
}
