// Package inmem provides in-memory repository implementations used to
// substitute Postgres in tests.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/mkulimalink/internal/domain"
	"github.com/spec-kit/mkulimalink/internal/repository"
)

type UserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domain.User
}

// NewUserRepository returns an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.Phone] = &clone
	return nil
}

func (r *UserRepository) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[phone]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *UserRepository) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[phone]
	return ok, nil
}

func (r *UserRepository) ListPendingFarmers(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0)
	for _, u := range r.users {
		if u.Role == domain.RoleFarmer && !u.Approved {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) ListApproved(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0)
	for _, u := range r.users {
		if u.Approved {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UserRepository) SetApproved(_ context.Context, phone string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[phone]
	if !ok {
		return 0, nil
	}
	user.Approved = true
	user.UpdatedAt = time.Now()
	return 1, nil
}

type ProduceRepository struct {
	mu       sync.Mutex
	nextID   int64
	listings []domain.ProduceListing
}

// NewProduceRepository returns an empty in-memory produce repository.
func NewProduceRepository() *ProduceRepository {
	return &ProduceRepository{}
}

var _ repository.ProduceRepository = (*ProduceRepository)(nil)

func (r *ProduceRepository) Create(_ context.Context, listing *domain.ProduceListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	listing.ID = r.nextID
	listing.CreatedAt = time.Now()
	r.listings = append(r.listings, *listing)
	return nil
}

func (r *ProduceRepository) ListAll(_ context.Context) ([]domain.ProduceListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ProduceListing, len(r.listings))
	copy(out, r.listings)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type OrderRepository struct {
	mu     sync.Mutex
	nextID int64
	orders []domain.Order
}

// NewOrderRepository returns an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = r.nextID
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders = append(r.orders, *order)
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			clone := o
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *OrderRepository) ListByBuyerPhone(_ context.Context, phone string) ([]domain.Order, error) {
	return r.listBy(func(o domain.Order) bool { return o.BuyerPhone == phone })
}

func (r *OrderRepository) ListByFarmerPhone(_ context.Context, phone string) ([]domain.Order, error) {
	return r.listBy(func(o domain.Order) bool { return o.FarmerPhone == phone })
}

func (r *OrderRepository) listBy(match func(domain.Order) bool) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Order, 0)
	for _, o := range r.orders {
		if match(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return pgx.ErrNoRows
}
