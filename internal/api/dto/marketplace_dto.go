package dto

import (
	"time"

	"github.com/spec-kit/mkulimalink/internal/domain"
)

// AddProduceRequest payload for POST /api/farmer/add-produce.
type AddProduceRequest struct {
	Phone    string   `json:"phone"`
	CropType string   `json:"cropType"`
	Quantity IntField `json:"quantity"`
	Price    IntField `json:"price"`
}

// ProduceResponse is a single marketplace listing.
type ProduceResponse struct {
	ID          int64     `json:"id"`
	FarmerPhone string    `json:"farmerPhone"`
	CropType    string    `json:"cropType"`
	Quantity    int       `json:"quantity"`
	Price       int       `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromListing maps a domain listing.
func FromListing(l domain.ProduceListing) ProduceResponse {
	return ProduceResponse{
		ID:          l.ID,
		FarmerPhone: l.FarmerPhone,
		CropType:    l.CropType,
		Quantity:    l.Quantity,
		Price:       l.Price,
		CreatedAt:   l.CreatedAt,
	}
}

// FromListings maps a slice of domain listings.
func FromListings(listings []domain.ProduceListing) []ProduceResponse {
	out := make([]ProduceResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, FromListing(l))
	}
	return out
}

// PlaceOrderRequest payload for POST /api/orders.
type PlaceOrderRequest struct {
	BuyerName       string   `json:"buyerName"`
	BuyerNationalID string   `json:"buyerNationalId"`
	BuyerPhone      string   `json:"buyerPhone"`
	FarmerPhone     string   `json:"farmerPhone"`
	CropType        string   `json:"cropType"`
	Quantity        IntField `json:"quantity"`
}

// UpdateOrderStatusRequest payload for PUT /api/farmer/order-status.
type UpdateOrderStatusRequest struct {
	OrderID IntField `json:"orderId"`
	Status  string   `json:"status"`
}

// OrderResponse is a single order row.
type OrderResponse struct {
	ID              int64     `json:"id"`
	BuyerName       string    `json:"buyerName"`
	BuyerNationalID string    `json:"buyerNationalId"`
	BuyerPhone      string    `json:"buyerPhone"`
	FarmerPhone     string    `json:"farmerPhone"`
	CropType        string    `json:"cropType"`
	Quantity        int       `json:"quantity"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FromOrder maps a domain order.
func FromOrder(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		BuyerName:       o.BuyerName,
		BuyerNationalID: o.BuyerNationalID,
		BuyerPhone:      o.BuyerPhone,
		FarmerPhone:     o.FarmerPhone,
		CropType:        o.CropType,
		Quantity:        o.Quantity,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
	}
}

// FromOrders maps a slice of domain orders.
func FromOrders(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}
