package dto

import (
	"time"

	"github.com/spec-kit/mkulimalink/internal/domain"
)

// RegisterRequest payload for POST /api/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Location string `json:"location"`
	IDNumber string `json:"idNumber"`
	CropType string `json:"cropType"`
}

// LoginRequest payload for POST /api/login.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ApproveFarmerRequest payload for POST /api/admin/approve-farmer.
type ApproveFarmerRequest struct {
	Phone string `json:"phone"`
}

// UserResponse is the redacted account representation.
type UserResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email"`
	Role     string  `json:"role"`
	Location *string `json:"location"`
	IDNumber *string `json:"idNumber,omitempty"`
	CropType *string `json:"cropType,omitempty"`
	Approved bool    `json:"approved"`
}

// LoginResponse carries the account plus a signed access token.
type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// FromUser maps a domain user into the response shape.
func FromUser(u domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Phone:    u.Phone,
		Email:    u.Email,
		Role:     string(u.Role),
		Location: u.Location,
		IDNumber: u.IDNumber,
		CropType: u.CropType,
		Approved: u.Approved,
	}
}

// FromUsers maps a slice of domain users.
func FromUsers(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}
