package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/mkulimalink/internal/auth"
	"github.com/spec-kit/mkulimalink/internal/config"
	"github.com/spec-kit/mkulimalink/internal/domain"
	"github.com/spec-kit/mkulimalink/internal/events"
	"github.com/spec-kit/mkulimalink/internal/phone"
	"github.com/spec-kit/mkulimalink/internal/repository"
	"github.com/spec-kit/mkulimalink/internal/sms"
	apperrors "github.com/spec-kit/mkulimalink/pkg/util"
)

// Confirmation messages returned by registration and approval.
const (
	msgFarmerRegistered = "Registration successful. Waiting for admin approval."
	msgUserRegistered   = "Registration successful. You can now login."
	msgApprovedSMSSent  = "Farmer approved and SMS sent"
	msgApprovedSMSFail  = "Farmer approved but SMS failed"

	approvalSMSText = "🎉 Your MkulimaLink account has been approved! You can now login and start selling."
)

// AccountService coordinates registration, login and the approval workflow.
type AccountService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	notifier   sms.Sender
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AccountDependencies bundles collaborators for the account service.
type AccountDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Notifier   sms.Sender
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		notifier:   deps.Notifier,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput describes a registration payload.
type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Role     string
	Location string
	IDNumber string
	CropType string
}

// Register creates a new account. Farmers start unapproved; buyers and
// admins are approved on creation.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (string, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "" ||
		input.Password == "" || strings.TrimSpace(input.Role) == "" {
		return "", apperrors.NewInvalidInput("Missing required fields", nil)
	}

	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return "", apperrors.NewInvalidInput("Unknown role", map[string]any{"role": input.Role})
	}

	canonical, err := phone.Normalize(input.Phone)
	if err != nil {
		return "", apperrors.NewInvalidPhone()
	}

	exists, err := s.users.ExistsByPhone(ctx, canonical)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	if exists {
		return "", apperrors.NewDuplicatePhone()
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return "", apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Phone:        canonical,
		Email:        optional(input.Email),
		PasswordHash: hash,
		Role:         role,
		Location:     optional(input.Location),
		IDNumber:     optional(input.IDNumber),
		CropType:     optional(input.CropType),
		Approved:     role != domain.RoleFarmer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		Phone:   canonical,
		Payload: events.UserRegisteredPayload{Name: user.Name, Role: user.Role},
	})

	if role == domain.RoleFarmer {
		return msgFarmerRegistered, nil
	}
	return msgUserRegistered, nil
}

// Authenticate verifies credentials and returns the account with a signed
// access token. The password hash never leaves this layer.
func (s *AccountService) Authenticate(ctx context.Context, rawPhone, password string) (*domain.User, string, time.Time, error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidPhone()
	}

	user, err := s.users.GetByPhone(ctx, canonical)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	if user.Role == domain.RoleFarmer && !user.Approved {
		return nil, "", time.Time{}, apperrors.NewPendingApproval()
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.Phone, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	redacted := user.Redacted()
	return &redacted, token, exp, nil
}

// ListPendingFarmers returns all unapproved farmer accounts.
func (s *AccountService) ListPendingFarmers(ctx context.Context) ([]domain.User, error) {
	farmers, err := s.users.ListPendingFarmers(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return redactAll(farmers), nil
}

// ListApprovedUsers returns all approved accounts ordered by name.
func (s *AccountService) ListApprovedUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListApproved(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return redactAll(users), nil
}

// ApproveFarmer flips the approval flag and sends the approval SMS. The
// approval commits before delivery is attempted; an SMS failure only changes
// the confirmation message, never the stored flag.
func (s *AccountService) ApproveFarmer(ctx context.Context, rawPhone string) (string, error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return "", apperrors.NewInvalidPhone()
	}

	user, err := s.users.GetByPhone(ctx, canonical)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("farmer", map[string]any{"phone": canonical})
		}
		return "", apperrors.MapError(err)
	}
	if user.Role != domain.RoleFarmer {
		return "", apperrors.NewInvalidInput("Account is not a farmer", nil)
	}

	if _, err := s.users.SetApproved(ctx, canonical); err != nil {
		return "", apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventFarmerApproved,
		Phone:   canonical,
		Payload: events.FarmerApprovedPayload{Name: user.Name},
	})

	if err := s.notifier.Send(ctx, canonical, approvalSMSText); err != nil {
		return msgApprovedSMSFail, nil
	}
	return msgApprovedSMSSent, nil
}

func (s *AccountService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func redactAll(users []domain.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Redacted())
	}
	return out
}
