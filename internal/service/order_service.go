package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/mkulimalink/internal/domain"
	"github.com/spec-kit/mkulimalink/internal/events"
	"github.com/spec-kit/mkulimalink/internal/phone"
	"github.com/spec-kit/mkulimalink/internal/repository"
	apperrors "github.com/spec-kit/mkulimalink/pkg/util"
)

// OrderService coordinates the order lifecycle.
type OrderService struct {
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, dispatcher: dispatcher}
}

// PlaceOrderInput describes a buyer purchase request.
type PlaceOrderInput struct {
	BuyerName       string
	BuyerNationalID string
	BuyerPhone      string
	FarmerPhone     string
	CropType        string
	Quantity        int
}

// PlaceOrder records a PENDING order against a farmer. Catalog stock is not
// decremented; the order records the requested quantity only.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error) {
	if strings.TrimSpace(input.BuyerName) == "" || strings.TrimSpace(input.BuyerNationalID) == "" ||
		strings.TrimSpace(input.CropType) == "" {
		return nil, apperrors.NewInvalidInput("Missing required fields", nil)
	}
	if input.Quantity <= 0 {
		return nil, apperrors.NewInvalidInput("Quantity must be a positive integer", nil)
	}

	buyerPhone, err := phone.Normalize(input.BuyerPhone)
	if err != nil {
		return nil, apperrors.NewInvalidPhone()
	}
	farmerPhone, err := phone.Normalize(input.FarmerPhone)
	if err != nil {
		return nil, apperrors.NewInvalidPhone()
	}

	order := &domain.Order{
		BuyerName:       strings.TrimSpace(input.BuyerName),
		BuyerNationalID: strings.TrimSpace(input.BuyerNationalID),
		BuyerPhone:      buyerPhone,
		FarmerPhone:     farmerPhone,
		CropType:        strings.TrimSpace(input.CropType),
		Quantity:        input.Quantity,
		Status:          domain.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:  events.EventOrderPlaced,
		Phone: farmerPhone,
		Payload: events.OrderPlacedPayload{
			OrderID:     order.ID,
			FarmerPhone: farmerPhone,
			CropType:    order.CropType,
			Quantity:    order.Quantity,
		},
	})
	return order, nil
}

// ListForBuyer returns the buyer's orders, most recent first.
func (s *OrderService) ListForBuyer(ctx context.Context, rawPhone string) ([]domain.Order, error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, apperrors.NewInvalidPhone()
	}
	orders, err := s.orders.ListByBuyerPhone(ctx, canonical)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return orders, nil
}

// ListForFarmer returns the farmer's orders, most recent first.
func (s *OrderService) ListForFarmer(ctx context.Context, rawPhone string) ([]domain.Order, error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, apperrors.NewInvalidPhone()
	}
	orders, err := s.orders.ListByFarmerPhone(ctx, canonical)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return orders, nil
}

// UpdateStatus applies a guarded status transition. Only PENDING orders may
// move, and only to ACCEPTED or REJECTED.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, rawStatus string) (*domain.Order, error) {
	target, ok := domain.ParseOrderStatus(rawStatus)
	if !ok {
		return nil, apperrors.NewInvalidStatus("Unknown order status: " + rawStatus)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"order_id": orderID})
		}
		return nil, apperrors.MapError(err)
	}

	if err := domain.CanTransition(order.Status, target); err != nil {
		return nil, apperrors.NewInvalidStatus(err.Error())
	}

	if err := s.orders.UpdateStatus(ctx, orderID, target); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"order_id": orderID})
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := order.Status
	order.Status = target

	s.publish(ctx, events.Event{
		Type:  events.EventOrderStatusChanged,
		Phone: order.BuyerPhone,
		Payload: events.OrderStatusChangedPayload{
			OrderID:    order.ID,
			BuyerPhone: order.BuyerPhone,
			CropType:   order.CropType,
			OldStatus:  oldStatus,
			NewStatus:  target,
		},
	})
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
