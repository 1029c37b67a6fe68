package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"medfinder-api/internal/geo"
	"medfinder-api/internal/models"
)

// StoreService manages an owner's stores and their inventory
type StoreService struct {
	repo StoreRepository
	now  func() time.Time
}

// StoreRepository interface for dependency injection
type StoreRepository interface {
	CreateStore(ctx context.Context, store models.Store) error
	ListActiveStoresByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
	FindStoreByOwner(ctx context.Context, storeID, ownerID uuid.UUID) (*models.Store, error)
	CreateMedicine(ctx context.Context, medicine models.Medicine) error
	ListMedicinesByStore(ctx context.Context, storeID uuid.UUID) ([]models.Medicine, error)
}

// NewStoreService creates a new store service
func NewStoreService(repo StoreRepository) *StoreService {
	return &StoreService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

var errStoreAccess = &models.AuthorizationError{Message: "Store not found or access denied", Forbidden: true}

// CreateStore registers a new active store owned by ownerID.
func (s *StoreService) CreateStore(ctx context.Context, ownerID uuid.UUID, req models.CreateStoreRequest) (*models.StoreResponse, error) {
	// Zero coordinates are rejected along with empty fields.
	if blank(req.Name, req.Address, req.Phone, req.Email) || req.Latitude == 0 || req.Longitude == 0 {
		return nil, models.NewValidationError("All fields are required")
	}
	if !(geo.Point{Lat: req.Latitude, Lng: req.Longitude}).Valid() {
		return nil, models.NewValidationError("Coordinates out of range")
	}

	now := s.now()
	store := models.Store{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Location:  models.NewGeoPoint(req.Latitude, req.Longitude),
		OwnerID:   ownerID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateStore(ctx, store); err != nil {
		return nil, fmt.Errorf("service: failed to create store: %w", err)
	}

	resp := models.NewStoreResponse(store)
	return &resp, nil
}

// ListStores returns the owner's active stores.
func (s *StoreService) ListStores(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	stores, err := s.repo.ListActiveStoresByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list stores: %w", err)
	}
	return stores, nil
}

// CreateMedicine adds a medicine to a store owned by ownerID. InStock is
// derived from the quantity.
func (s *StoreService) CreateMedicine(ctx context.Context, ownerID uuid.UUID, req models.CreateMedicineRequest) (*models.MedicineResponse, error) {
	if blank(req.Name, req.Category, req.StoreID) || req.Price <= 0 || req.Quantity <= 0 {
		return nil, models.NewValidationError("Name, price, quantity, category, and store are required")
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return nil, errStoreAccess
	}
	if err := s.authorize(ctx, storeID, ownerID); err != nil {
		return nil, err
	}

	now := s.now()
	medicine := models.Medicine{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		GenericName: strings.TrimSpace(req.GenericName),
		Brand:       strings.TrimSpace(req.Brand),
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		InStock:     req.Quantity > 0,
		StoreID:     storeID,
		ExpiryDate:  req.ExpiryDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateMedicine(ctx, medicine); err != nil {
		return nil, fmt.Errorf("service: failed to create medicine: %w", err)
	}

	resp := models.NewMedicineResponse(medicine)
	return &resp, nil
}

// ListMedicines returns a store's inventory, newest first.
func (s *StoreService) ListMedicines(ctx context.Context, ownerID uuid.UUID, rawStoreID string) ([]models.Medicine, error) {
	if strings.TrimSpace(rawStoreID) == "" {
		return nil, models.NewValidationError("Store ID is required")
	}
	storeID, err := uuid.Parse(rawStoreID)
	if err != nil {
		return nil, errStoreAccess
	}
	if err := s.authorize(ctx, storeID, ownerID); err != nil {
		return nil, err
	}

	medicines, err := s.repo.ListMedicinesByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list medicines: %w", err)
	}
	return medicines, nil
}

func (s *StoreService) authorize(ctx context.Context, storeID, ownerID uuid.UUID) error {
	if _, err := s.repo.FindStoreByOwner(ctx, storeID, ownerID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return errStoreAccess
		}
		return fmt.Errorf("service: failed to verify store ownership: %w", err)
	}
	return nil
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
