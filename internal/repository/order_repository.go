package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mkulimalink/internal/domain"
)

// OrderRepository defines persistence access for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByBuyerPhone(ctx context.Context, phone string) ([]domain.Order, error)
	ListByFarmerPhone(ctx context.Context, phone string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, buyer_name, buyer_national_id, buyer_phone, farmer_phone, crop_type, quantity, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	if err := row.Scan(
		&order.ID,
		&order.BuyerName,
		&order.BuyerNationalID,
		&order.BuyerPhone,
		&order.FarmerPhone,
		&order.CropType,
		&order.Quantity,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (buyer_name, buyer_national_id, buyer_phone, farmer_phone, crop_type, quantity, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		order.BuyerName,
		order.BuyerNationalID,
		order.BuyerPhone,
		order.FarmerPhone,
		order.CropType,
		order.Quantity,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) ListByBuyerPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE buyer_phone=$1 ORDER BY id DESC`
	return r.list(ctx, query, phone)
}

func (r *orderRepository) ListByFarmerPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE farmer_phone=$1 ORDER BY id DESC`
	return r.list(ctx, query, phone)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) list(ctx context.Context, query, phone string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}
