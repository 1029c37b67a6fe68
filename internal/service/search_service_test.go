package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medfinder-api/internal/geo"
	"medfinder-api/internal/models"
)

// MockMedicineSearchRepository is a mock implementation of the MedicineSearchRepository interface
type MockMedicineSearchRepository struct {
	mock.Mock
}

// SearchInStockMedicines implements MedicineSearchRepository.
func (m *MockMedicineSearchRepository) SearchInStockMedicines(ctx context.Context, text string) ([]models.Medicine, error) {
	args := m.Called(ctx, text)
	medicines, _ := args.Get(0).([]models.Medicine)
	return medicines, args.Error(1)
}

func TestSearchService_Search(t *testing.T) {
	paracetamolNear := newMedicine("Paracetamol 500", nearStore)
	paracetamolFar := newMedicine("Paracetamol 650", farStore)
	paracetamolLost := newMedicine("Paracetamol Syrup", unlocatable)
	aspirinMid := newMedicine("Aspirin", midStore)
	aspirinFar := newMedicine("Aspirin Forte", farStore)
	aspirinNear := newMedicine("Aspirin Junior", nearStore)
	aspirinHere := newMedicine("Aspirin Chewable", hereStore)

	tests := []struct {
		name          string
		query         models.SearchQuery
		mockMedicines []models.Medicine
		mockError     error
		expectStores  []string
		expectTotal   int
		expectMessage string
		expectErr     any
		expectRepo    bool
	}{
		{
			name:      "empty query",
			query:     models.SearchQuery{Text: ""},
			expectErr: &models.ValidationError{},
		},
		{
			name:      "whitespace query",
			query:     models.SearchQuery{Text: "   ", Origin: origin},
			expectErr: &models.ValidationError{},
		},
		{
			name:          "no location returns every store with zero distance",
			query:         models.SearchQuery{Text: "Paracetamol"},
			mockMedicines: []models.Medicine{paracetamolFar, paracetamolLost, paracetamolNear},
			expectStores:  []string{"Far Pharmacy", "Lost Pharmacy", "Near Pharmacy"},
			expectTotal:   3,
			expectRepo:    true,
		},
		{
			name:          "location filters by radius nearest first",
			query:         models.SearchQuery{Text: "Asp", Origin: origin, RadiusKm: radiusKm(5)},
			mockMedicines: []models.Medicine{aspirinMid, aspirinFar, aspirinNear},
			expectStores:  []string{"Near Pharmacy", "Mid Pharmacy"},
			expectTotal:   2,
			expectRepo:    true,
		},
		{
			name:          "unlocatable store excluded with location",
			query:         models.SearchQuery{Text: "Paracetamol", Origin: origin, RadiusKm: radiusKm(5)},
			mockMedicines: []models.Medicine{paracetamolLost, paracetamolNear},
			expectStores:  []string{"Near Pharmacy"},
			expectTotal:   1,
			expectRepo:    true,
		},
		{
			name:          "explicit zero radius keeps only stores at the origin",
			query:         models.SearchQuery{Text: "Asp", Origin: origin, RadiusKm: radiusKm(0)},
			mockMedicines: []models.Medicine{aspirinFar, aspirinHere, aspirinNear},
			expectStores:  []string{"Here Pharmacy"},
			expectTotal:   1,
			expectRepo:    true,
		},
		{
			name:          "surrounding spaces are part of the search text",
			query:         models.SearchQuery{Text: " Asp", Origin: origin},
			mockMedicines: []models.Medicine{},
			expectStores:  []string{},
			expectTotal:   0,
			expectMessage: models.NoResultsMessage,
			expectRepo:    true,
		},
		{
			name:          "default radius applies",
			query:         models.SearchQuery{Text: "Asp", Origin: origin},
			mockMedicines: []models.Medicine{aspirinFar, aspirinMid},
			expectStores:  []string{"Mid Pharmacy", "Far Pharmacy"},
			expectTotal:   2,
			expectRepo:    true,
		},
		{
			name:          "no matches",
			query:         models.SearchQuery{Text: "Unobtainium"},
			mockMedicines: []models.Medicine{},
			expectStores:  []string{},
			expectTotal:   0,
			expectMessage: models.NoResultsMessage,
			expectRepo:    true,
		},
		{
			name:       "repository error",
			query:      models.SearchQuery{Text: "Paracetamol"},
			mockError:  assert.AnError,
			expectErr:  &models.DataAccessError{},
			expectRepo: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockMedicineSearchRepository)
			service := NewSearchService(mockRepo, DefaultRadiusKm)

			if tt.expectRepo {
				mockRepo.On("SearchInStockMedicines", mock.Anything, tt.query.Text).Return(tt.mockMedicines, tt.mockError)
			}

			// Execute
			resp, err := service.Search(context.Background(), tt.query)

			// Assert
			if tt.expectErr != nil {
				require.Error(t, err)
				switch tt.expectErr.(type) {
				case *models.ValidationError:
					var target *models.ValidationError
					assert.ErrorAs(t, err, &target)
				case *models.DataAccessError:
					var target *models.DataAccessError
					assert.ErrorAs(t, err, &target)
					assert.ErrorIs(t, err, assert.AnError)
				}
			} else {
				require.NoError(t, err)
				stores := make([]string, len(resp.Results))
				for i, r := range resp.Results {
					stores[i] = r.Store.Name
					if tt.query.Origin == nil {
						assert.Equal(t, 0.0, r.Distance)
					}
				}
				assert.Equal(t, tt.expectStores, stores)
				assert.Equal(t, tt.expectTotal, resp.Total)
				assert.Equal(t, tt.expectMessage, resp.Message)
				assert.NotNil(t, resp.Results)
			}

			if tt.expectRepo {
				mockRepo.AssertExpectations(t)
			} else {
				mockRepo.AssertNotCalled(t, "SearchInStockMedicines", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestSearchService_SearchGroupsSameStore(t *testing.T) {
	mockRepo := new(MockMedicineSearchRepository)
	service := NewSearchService(mockRepo, 0)

	first := newMedicine("Aspirin", midStore)
	second := newMedicine("Aspirin Forte", midStore)
	mockRepo.On("SearchInStockMedicines", mock.Anything, "asp").Return([]models.Medicine{first, second}, nil)

	resp, err := service.Search(context.Background(), models.SearchQuery{Text: "asp", Origin: &geo.Point{Lat: 13.0, Lng: 77.6}})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.Total)
	assert.Len(t, resp.Results[0].Medicines, 2)
	assert.InDelta(t, 0, resp.Results[0].Distance, 1e-9)
}
