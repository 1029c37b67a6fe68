package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"medfinder-api/internal/geo"
	"medfinder-api/internal/models"
)

// measured is the outcome of locating one medicine's store: either a
// distance or a reason it could not be computed.
type measured struct {
	medicine models.Medicine
	distance float64
	err      error
}

func (m measured) ok() bool { return m.err == nil }

// measure computes the distance from origin to the medicine's store.
func measure(origin geo.Point, m models.Medicine) measured {
	if m.Store == nil {
		return measured{medicine: m, err: &models.ComputationError{Reason: "medicine has no resolvable store"}}
	}
	p, err := m.Store.Location.Point()
	if err != nil {
		return measured{medicine: m, err: err}
	}
	return measured{medicine: m, distance: geo.Distance(origin, p)}
}

// storeDistance is the distance reported for a store: 0 without an origin or
// when the store cannot be located.
func storeDistance(origin *geo.Point, s *models.Store) float64 {
	if origin == nil || s == nil {
		return 0
	}
	p, err := s.Location.Point()
	if err != nil {
		return 0
	}
	return geo.Distance(*origin, p)
}

// rankByDistance keeps the medicines whose store lies within radiusKm of
// origin (inclusive) and orders them nearest first. Without an origin the
// input is returned unchanged.
func rankByDistance(ctx context.Context, medicines []models.Medicine, origin *geo.Point, radiusKm float64) []models.Medicine {
	if origin == nil {
		return medicines
	}

	logger := zerolog.Ctx(ctx)
	kept := make([]measured, 0, len(medicines))
	for _, m := range medicines {
		res := measure(*origin, m)
		if !res.ok() {
			logger.Warn().
				Err(res.err).
				Str("medicine_id", m.ID.String()).
				Str("store_id", m.StoreID.String()).
				Msg("skipping medicine without locatable store")
			continue
		}
		if res.distance <= radiusKm {
			kept = append(kept, res)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].distance < kept[j].distance
	})

	ranked := make([]models.Medicine, len(kept))
	for i, res := range kept {
		ranked[i] = res.medicine
	}
	return ranked
}
