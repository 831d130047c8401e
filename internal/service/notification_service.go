package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/mkulimalink/internal/events"
	"github.com/spec-kit/mkulimalink/internal/sms"
)

// NotificationService reacts to domain events with best-effort SMS delivery.
// Failures are logged and never propagated; the mutations that triggered the
// events have already committed.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     sms.Sender
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sender sms.Sender, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventFarmerApproved, n.handleFarmerApproved)
	n.dispatcher.Subscribe(events.EventOrderPlaced, n.handleOrderPlaced)
	n.dispatcher.Subscribe(events.EventOrderStatusChanged, n.handleOrderStatusChanged)
}

// handleFarmerApproved only audits the event; the approval SMS itself is sent
// synchronously by AccountService so the HTTP response can report delivery.
func (n *NotificationService) handleFarmerApproved(_ context.Context, event events.Event) error {
	n.logger.Info("FarmerApproved", zap.String("phone", event.Phone), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleOrderPlaced(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderPlaced", zap.String("phone", event.Phone), zap.Any("payload", event.Payload))

	payload, ok := event.Payload.(events.OrderPlacedPayload)
	if !ok {
		return nil
	}
	text := fmt.Sprintf("New MkulimaLink order #%d: %d x %s. Log in to accept or reject it.",
		payload.OrderID, payload.Quantity, payload.CropType)
	n.send(ctx, payload.FarmerPhone, text)
	return nil
}

func (n *NotificationService) handleOrderStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderStatusChanged", zap.String("phone", event.Phone), zap.Any("payload", event.Payload))

	payload, ok := event.Payload.(events.OrderStatusChangedPayload)
	if !ok {
		return nil
	}
	text := fmt.Sprintf("Your MkulimaLink order #%d for %s has been %s.",
		payload.OrderID, payload.CropType, payload.NewStatus)
	n.send(ctx, payload.BuyerPhone, text)
	return nil
}

func (n *NotificationService) send(ctx context.Context, to, text string) {
	if n.sender == nil {
		return
	}
	if err := n.sender.Send(ctx, to, text); err != nil && err != sms.ErrDisabled {
		n.logger.Warn("notification sms failed", zap.String("to", to), zap.Error(err))
	}
}
