package service

import (
	"github.com/google/uuid"

	"medfinder-api/internal/geo"
	"medfinder-api/internal/models"
)

var origin = &geo.Point{Lat: 12.97, Lng: 77.59}

func newStore(name string, location *models.GeoPoint) *models.Store {
	return &models.Store{
		ID:       uuid.New(),
		Name:     name,
		Address:  name + " street",
		Phone:    "080-000000",
		Email:    "owner@example.com",
		Location: location,
		OwnerID:  uuid.New(),
		IsActive: true,
	}
}

func newMedicine(name string, store *models.Store) models.Medicine {
	m := models.Medicine{
		ID:       uuid.New(),
		Name:     name,
		Price:    12.5,
		Quantity: 10,
		Category: "analgesic",
		InStock:  true,
		Store:    store,
	}
	if store != nil {
		m.StoreID = store.ID
	}
	return m
}

func radiusKm(km float64) *float64 {
	return &km
}

func medicineNames(medicines []models.Medicine) []string {
	names := make([]string, len(medicines))
	for i, m := range medicines {
		names[i] = m.Name
	}
	return names
}

// stores around the origin: here 0 km, near ≈2.5 km, mid ≈3.5 km, far ≈8.9 km.
var (
	hereStore   = newStore("Here Pharmacy", models.NewGeoPoint(12.97, 77.59))
	nearStore   = newStore("Near Pharmacy", models.NewGeoPoint(12.95, 77.58))
	midStore    = newStore("Mid Pharmacy", models.NewGeoPoint(13.0, 77.6))
	farStore    = newStore("Far Pharmacy", models.NewGeoPoint(13.05, 77.59))
	unlocatable = newStore("Lost Pharmacy", nil)
	brokenStore = newStore("Broken Pharmacy", &models.GeoPoint{Type: models.GeoPointType, Coordinates: []float64{77.59}})
	outOfRange  = newStore("Orbit Pharmacy", &models.GeoPoint{Type: models.GeoPointType, Coordinates: []float64{500, 12.97}})
)
