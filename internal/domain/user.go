package domain

import "time"

// Role enumerates account types in the marketplace.
type Role string

const (
	RoleFarmer Role = "Farmer"
	RoleBuyer  Role = "Buyer"
	RoleAdmin  Role = "Admin"
)

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleFarmer, RoleBuyer, RoleAdmin:
		return Role(raw), true
	}
	return "", false
}

// User is the domain model for marketplace accounts. Phone is the canonical
// +254 form and is the unique account key.
type User struct {
	ID           int64
	Name         string
	Phone        string
	Email        *string
	PasswordHash string
	Role         Role
	Location     *string
	IDNumber     *string
	CropType     *string
	Approved     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Redacted returns a copy safe for API responses.
func (u User) Redacted() User {
	u.PasswordHash = ""
	return u
}
