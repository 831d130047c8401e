package events

import (
	"time"

	"github.com/spec-kit/mkulimalink/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventFarmerApproved     EventType = "farmer_approved"
	EventProduceAdded       EventType = "produce_added"
	EventOrderPlaced        EventType = "order_placed"
	EventOrderStatusChanged EventType = "order_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Phone     string      `json:"phone"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

// FarmerApprovedPayload payload.
type FarmerApprovedPayload struct {
	Name string `json:"name"`
}

// ProduceAddedPayload payload.
type ProduceAddedPayload struct {
	ListingID int64  `json:"listing_id"`
	CropType  string `json:"crop_type"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	OrderID     int64  `json:"order_id"`
	FarmerPhone string `json:"farmer_phone"`
	CropType    string `json:"crop_type"`
	Quantity    int    `json:"quantity"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OrderID    int64              `json:"order_id"`
	BuyerPhone string             `json:"buyer_phone"`
	CropType   string             `json:"crop_type"`
	OldStatus  domain.OrderStatus `json:"old_status"`
	NewStatus  domain.OrderStatus `json:"new_status"`
}
