package models

import (
	"time"

	"github.com/google/uuid"
)

// Medicine is one inventory line of a store.
type Medicine struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	GenericName string     `json:"genericName,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	Category    string     `json:"category"`
	Description string     `json:"description,omitempty"`
	InStock     bool       `json:"inStock"`
	StoreID     uuid.UUID  `json:"store"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Store is populated by search queries; nil when the reference does not resolve.
	Store *Store `json:"-"`
}

// CreateMedicineRequest is the payload of POST /api/medicines.
type CreateMedicineRequest struct {
	Name        string     `json:"name"`
	GenericName string     `json:"genericName"`
	Brand       string     `json:"brand"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	StoreID     string     `json:"storeId"`
	ExpiryDate  *time.Time `json:"expiryDate"`
}

// MedicineResponse is returned after creating a medicine.
type MedicineResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	GenericName string     `json:"genericName,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	Category    string     `json:"category"`
	Description string     `json:"description,omitempty"`
	InStock     bool       `json:"inStock"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
}

// NewMedicineResponse builds the creation response for m.
func NewMedicineResponse(m Medicine) MedicineResponse {
	return MedicineResponse{
		ID:          m.ID,
		Name:        m.Name,
		GenericName: m.GenericName,
		Brand:       m.Brand,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Category:    m.Category,
		Description: m.Description,
		InStock:     m.InStock,
		ExpiryDate:  m.ExpiryDate,
	}
}
