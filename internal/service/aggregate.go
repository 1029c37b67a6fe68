package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"medfinder-api/internal/geo"
	"medfinder-api/internal/models"
)

// storeGroups is an insertion-ordered map of store ID to search result.
type storeGroups struct {
	index map[uuid.UUID]int
	items []models.SearchResult
}

func newStoreGroups(capacity int) *storeGroups {
	return &storeGroups{
		index: make(map[uuid.UUID]int, capacity),
		items: make([]models.SearchResult, 0, capacity),
	}
}

// get returns the group for id, creating it with init on first sight. The
// pointer is only valid until the next call.
func (g *storeGroups) get(id uuid.UUID, init func() models.SearchResult) *models.SearchResult {
	if i, ok := g.index[id]; ok {
		return &g.items[i]
	}
	g.index[id] = len(g.items)
	g.items = append(g.items, init())
	return &g.items[len(g.items)-1]
}

func (g *storeGroups) results() []models.SearchResult {
	return g.items
}

// aggregateByStore groups medicines by owning store in first-seen order.
// Medicines without a resolvable store are skipped.
func aggregateByStore(ctx context.Context, medicines []models.Medicine, origin *geo.Point) []models.SearchResult {
	groups := newStoreGroups(len(medicines))

	for _, m := range medicines {
		store := m.Store
		if store == nil {
			zerolog.Ctx(ctx).Warn().
				Str("medicine_id", m.ID.String()).
				Msg("skipping medicine with unresolved store")
			continue
		}

		group := groups.get(store.ID, func() models.SearchResult {
			return models.SearchResult{
				Store:     models.NewStoreResponse(*store),
				Medicines: []models.MedicineSnapshot{},
				Distance:  storeDistance(origin, store),
			}
		})
		group.Medicines = append(group.Medicines, models.NewMedicineSnapshot(m))
	}

	return groups.results()
}
