package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mkulimalink/internal/domain"
)

// UserRepository defines persistence access for marketplace accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ListPendingFarmers(ctx context.Context) ([]domain.User, error)
	ListApproved(ctx context.Context) ([]domain.User, error)
	SetApproved(ctx context.Context, phone string) (int64, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, phone, email, password_hash, role, location, id_number, crop_type, approved, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Phone,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Location,
		&user.IDNumber,
		&user.CropType,
		&user.Approved,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, phone, email, password_hash, role, location, id_number, crop_type, approved)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Phone,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Location,
		user.IDNumber,
		user.CropType,
		user.Approved,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE phone=$1`
	return scanUser(r.pool.QueryRow(ctx, query, phone))
}

func (r *userRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE phone=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, phone).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) ListPendingFarmers(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users
        WHERE role=$1 AND approved=FALSE ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, domain.RoleFarmer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *userRepository) ListApproved(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users
        WHERE approved=TRUE ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

// SetApproved flips the approval flag and returns the number of rows touched.
// Re-approving an already approved farmer still matches the row, keeping the
// operation idempotent.
func (r *userRepository) SetApproved(ctx context.Context, phone string) (int64, error) {
	const query = `UPDATE users SET approved=TRUE, updated_at=NOW() WHERE phone=$1`

	cmd, err := r.pool.Exec(ctx, query, phone)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
