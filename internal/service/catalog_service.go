package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/mkulimalink/internal/cache"
	"github.com/spec-kit/mkulimalink/internal/domain"
	"github.com/spec-kit/mkulimalink/internal/events"
	"github.com/spec-kit/mkulimalink/internal/phone"
	"github.com/spec-kit/mkulimalink/internal/repository"
	apperrors "github.com/spec-kit/mkulimalink/pkg/util"
)

// CatalogService manages the append-only produce marketplace.
type CatalogService struct {
	produce    repository.ProduceRepository
	users      repository.UserRepository
	cache      *cache.ProduceCache
	dispatcher events.Dispatcher
}

// CatalogDependencies bundles collaborators for the catalog service.
type CatalogDependencies struct {
	ProduceRepo repository.ProduceRepository
	UserRepo    repository.UserRepository
	Cache       *cache.ProduceCache
	Dispatcher  events.Dispatcher
}

// NewCatalogService builds the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		produce:    deps.ProduceRepo,
		users:      deps.UserRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// AddListingInput describes a new produce listing.
type AddListingInput struct {
	Phone    string
	CropType string
	Quantity int
	Price    int
}

// AddListing records a listing for an approved farmer.
func (s *CatalogService) AddListing(ctx context.Context, input AddListingInput) (*domain.ProduceListing, error) {
	if strings.TrimSpace(input.Phone) == "" || strings.TrimSpace(input.CropType) == "" {
		return nil, apperrors.NewInvalidInput("Missing required fields", nil)
	}
	if input.Quantity < 0 || input.Price < 0 {
		return nil, apperrors.NewInvalidInput("Quantity and price must be non-negative", nil)
	}

	canonical, err := phone.Normalize(input.Phone)
	if err != nil {
		return nil, apperrors.NewInvalidPhone()
	}

	owner, err := s.users.GetByPhone(ctx, canonical)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("farmer", map[string]any{"phone": canonical})
		}
		return nil, apperrors.MapError(err)
	}
	if owner.Role != domain.RoleFarmer || !owner.Approved {
		return nil, apperrors.NewForbidden("only approved farmers can add produce")
	}

	listing := &domain.ProduceListing{
		FarmerPhone: canonical,
		CropType:    strings.TrimSpace(input.CropType),
		Quantity:    input.Quantity,
		Price:       input.Price,
	}
	if err := s.produce.Create(ctx, listing); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Invalidate(ctx)

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventProduceAdded,
			Phone:     canonical,
			Timestamp: time.Now(),
			Payload: events.ProduceAddedPayload{
				ListingID: listing.ID,
				CropType:  listing.CropType,
				Quantity:  listing.Quantity,
				Price:     listing.Price,
			},
		})
	}
	return listing, nil
}

// ListAll returns every listing, most recent first, via the read-through cache.
func (s *CatalogService) ListAll(ctx context.Context) ([]domain.ProduceListing, error) {
	if listings, ok := s.cache.Get(ctx); ok {
		return listings, nil
	}

	listings, err := s.produce.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Set(ctx, listings)
	return listings, nil
}
