package models

import (
	"github.com/google/uuid"

	"medfinder-api/internal/geo"
)

// NoResultsMessage accompanies an empty search response.
const NoResultsMessage = "No medicines found matching your search"

// SearchQuery is a validated search request. Origin is nil when the caller
// did not supply a location; RadiusKm is nil when no radius was given.
type SearchQuery struct {
	Text     string
	Origin   *geo.Point
	RadiusKm *float64
}

// MedicineSnapshot is the customer-facing view of a matched medicine.
type MedicineSnapshot struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	GenericName string    `json:"genericName,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
}

// NewMedicineSnapshot strips owner-only fields from m.
func NewMedicineSnapshot(m Medicine) MedicineSnapshot {
	return MedicineSnapshot{
		ID:          m.ID,
		Name:        m.Name,
		GenericName: m.GenericName,
		Brand:       m.Brand,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Category:    m.Category,
		Description: m.Description,
	}
}

// SearchResult groups the matching medicines of one store.
type SearchResult struct {
	Store     StoreResponse      `json:"store"`
	Medicines []MedicineSnapshot `json:"medicines"`
	// Distance from the caller in kilometers, 0 without a caller location.
	Distance float64 `json:"distance"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
	Message string         `json:"message,omitempty"`
}
