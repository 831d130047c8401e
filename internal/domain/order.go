package domain

import (
	"fmt"
	"time"
)

// OrderStatus enumerates lifecycle states for orders.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusAccepted OrderStatus = "ACCEPTED"
	OrderStatusRejected OrderStatus = "REJECTED"
)

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusRejected:
		return OrderStatus(raw), true
	}
	return "", false
}

// validTransitions is the authoritative state machine definition. ACCEPTED
// and REJECTED are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusAccepted, OrderStatusRejected},
}

// CanTransition reports whether from -> to is a permitted status change.
func CanTransition(from, to OrderStatus) error {
	for _, next := range validTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("invalid transition %s -> %s", from, to)
}

// IsTerminal reports whether no further transition is defined from s.
func (s OrderStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Order records a buyer purchase request against a farmer's produce.
type Order struct {
	ID              int64
	BuyerName       string
	BuyerNationalID string
	BuyerPhone      string
	FarmerPhone     string
	CropType        string
	Quantity        int
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
