package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mkulimalink/internal/api/dto"
	"github.com/spec-kit/mkulimalink/internal/service"
	apperrors "github.com/spec-kit/mkulimalink/pkg/util"
)

// AccountsHandler exposes registration and login endpoints.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accounts *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// Register handles POST /api/register.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	message, err := h.accounts.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Location: req.Location,
		IDNumber: req.IDNumber,
		CropType: req.CropType,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": message})
}

// Login handles POST /api/login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if req.Phone == "" || req.Password == "" {
		return apperrors.NewInvalidInput("phone and password required", nil)
	}

	user, token, exp, err := h.accounts.Authenticate(c.Context(), req.Phone, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.LoginResponse{
		User:      dto.FromUser(*user),
		Token:     token,
		ExpiresAt: exp,
	})
}
