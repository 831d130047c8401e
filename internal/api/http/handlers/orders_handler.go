package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mkulimalink/internal/api/dto"
	"github.com/spec-kit/mkulimalink/internal/service"
	apperrors "github.com/spec-kit/mkulimalink/pkg/util"
)

// OrdersHandler exposes the order lifecycle endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Place handles POST /api/orders.
func (h *OrdersHandler) Place(c *fiber.Ctx) error {
	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	quantity, ok := req.Quantity.Int()
	if !ok {
		return apperrors.NewInvalidInput("quantity must be an integer", nil)
	}

	if _, err := h.orders.PlaceOrder(c.Context(), service.PlaceOrderInput{
		BuyerName:       req.BuyerName,
		BuyerNationalID: req.BuyerNationalID,
		BuyerPhone:      req.BuyerPhone,
		FarmerPhone:     req.FarmerPhone,
		CropType:        req.CropType,
		Quantity:        quantity,
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Order placed"})
}

// BuyerOrders handles GET /api/buyer/orders/:phone.
func (h *OrdersHandler) BuyerOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListForBuyer(c.Context(), c.Params("phone"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orders": dto.FromOrders(orders)})
}

// FarmerOrders handles GET /api/farmer/orders/:phone.
func (h *OrdersHandler) FarmerOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListForFarmer(c.Context(), c.Params("phone"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orders": dto.FromOrders(orders)})
}

// UpdateStatus handles PUT /api/farmer/order-status.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	orderID, ok := req.OrderID.Int()
	if !ok {
		return apperrors.NewInvalidInput("orderId must be an integer", nil)
	}

	if _, err := h.orders.UpdateStatus(c.Context(), int64(orderID), req.Status); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Order updated"})
}
