package models

import (
	"time"

	"github.com/google/uuid"
)

// Store is a physical retailer with contact details and a geographic location.
type Store struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Location  *GeoPoint `json:"location"`
	OwnerID   uuid.UUID `json:"owner"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateStoreRequest is the payload of POST /api/stores.
type CreateStoreRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StoreResponse is the public view of a store returned to owners.
type StoreResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
	Location *GeoPoint `json:"location"`
}

// NewStoreResponse strips owner-only fields from s.
func NewStoreResponse(s Store) StoreResponse {
	return StoreResponse{
		ID:       s.ID,
		Name:     s.Name,
		Address:  s.Address,
		Phone:    s.Phone,
		Email:    s.Email,
		Location: s.Location,
	}
}
