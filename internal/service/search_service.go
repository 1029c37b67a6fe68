package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"medfinder-api/internal/metrics"
	"medfinder-api/internal/models"
)

// DefaultRadiusKm is used when the caller gives no radius.
const DefaultRadiusKm = 10.0

// SearchService contains the medicine search and ranking logic
type SearchService struct {
	repo          MedicineSearchRepository
	defaultRadius float64
}

// MedicineSearchRepository interface for dependency injection
type MedicineSearchRepository interface {
	SearchInStockMedicines(ctx context.Context, text string) ([]models.Medicine, error)
}

// NewSearchService creates a new search service
func NewSearchService(repo MedicineSearchRepository, defaultRadiusKm float64) *SearchService {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = DefaultRadiusKm
	}
	return &SearchService{repo: repo, defaultRadius: defaultRadiusKm}
}

// Search matches in-stock medicines, optionally filters and orders them by
// distance from q.Origin, and groups them by store.
func (s *SearchService) Search(ctx context.Context, q models.SearchQuery) (*models.SearchResponse, error) {
	medicines, err := s.match(ctx, q.Text)
	if err != nil {
		return nil, err
	}

	radius := s.defaultRadius
	if q.RadiusKm != nil {
		radius = *q.RadiusKm
	}

	ranked := rankByDistance(ctx, medicines, q.Origin, radius)
	results := aggregateByStore(ctx, ranked, q.Origin)

	zerolog.Ctx(ctx).Debug().
		Str("query", q.Text).
		Int("matched", len(medicines)).
		Int("kept", len(ranked)).
		Int("stores", len(results)).
		Msg("search completed")
	metrics.ObserveSearch(q.Origin != nil, len(results))

	resp := &models.SearchResponse{Results: results, Total: len(results)}
	if len(results) == 0 {
		resp.Message = models.NoResultsMessage
	}
	return resp, nil
}

func (s *SearchService) match(ctx context.Context, text string) ([]models.Medicine, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Search query is required")
	}

	medicines, err := s.repo.SearchInStockMedicines(ctx, text)
	if err != nil {
		var dataErr *models.DataAccessError
		if errors.As(err, &dataErr) {
			return nil, err
		}
		return nil, &models.DataAccessError{Op: "service: failed to search medicines", Err: err}
	}

	return medicines, nil
}
