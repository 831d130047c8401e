package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mkulimalink/internal/api/dto"
	"github.com/spec-kit/mkulimalink/internal/service"
	apperrors "github.com/spec-kit/mkulimalink/pkg/util"
)

// ProduceHandler exposes the marketplace catalog endpoints.
type ProduceHandler struct {
	catalog *service.CatalogService
}

// NewProduceHandler constructs handler.
func NewProduceHandler(catalog *service.CatalogService) *ProduceHandler {
	return &ProduceHandler{catalog: catalog}
}

// AddProduce handles POST /api/farmer/add-produce.
func (h *ProduceHandler) AddProduce(c *fiber.Ctx) error {
	var req dto.AddProduceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	quantity, ok := req.Quantity.Int()
	if !ok {
		return apperrors.NewInvalidInput("quantity must be an integer", nil)
	}
	price, ok := req.Price.Int()
	if !ok {
		return apperrors.NewInvalidInput("price must be an integer", nil)
	}

	if _, err := h.catalog.AddListing(c.Context(), service.AddListingInput{
		Phone:    req.Phone,
		CropType: req.CropType,
		Quantity: quantity,
		Price:    price,
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Produce added successfully"})
}

// List handles GET /api/produce.
func (h *ProduceHandler) List(c *fiber.Ctx) error {
	listings, err := h.catalog.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"produce": dto.FromListings(listings)})
}
