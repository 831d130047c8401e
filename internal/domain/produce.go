package domain

import "time"

// ProduceListing is an append-only marketplace entry owned by a farmer.
// Listings are immutable after creation.
type ProduceListing struct {
	ID          int64
	FarmerPhone string
	CropType    string
	Quantity    int
	Price       int
	CreatedAt   time.Time
}
