package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mkulimalink/internal/domain"
)

// ProduceRepository defines persistence access for produce listings.
type ProduceRepository interface {
	Create(ctx context.Context, listing *domain.ProduceListing) error
	ListAll(ctx context.Context) ([]domain.ProduceListing, error)
}

type produceRepository struct {
	pool *pgxpool.Pool
}

// NewProduceRepository returns a Postgres-backed implementation.
func NewProduceRepository(pool *pgxpool.Pool) ProduceRepository {
	return &produceRepository{pool: pool}
}

func (r *produceRepository) Create(ctx context.Context, listing *domain.ProduceListing) error {
	const query = `
        INSERT INTO produce (farmer_phone, crop_type, quantity, price)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		listing.FarmerPhone,
		listing.CropType,
		listing.Quantity,
		listing.Price,
	).Scan(&listing.ID, &listing.CreatedAt)
}

func (r *produceRepository) ListAll(ctx context.Context) ([]domain.ProduceListing, error) {
	const query = `
        SELECT id, farmer_phone, crop_type, quantity, price, created_at
        FROM produce ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]domain.ProduceListing, 0)
	for rows.Next() {
		var listing domain.ProduceListing
		if err := rows.Scan(
			&listing.ID,
			&listing.FarmerPhone,
			&listing.CropType,
			&listing.Quantity,
			&listing.Price,
			&listing.CreatedAt,
		); err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}
