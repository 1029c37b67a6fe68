package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"medfinder-api/internal/geo"
	"medfinder-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSearchService is a mock implementation of the SearchService interface
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, q models.SearchQuery) (*models.SearchResponse, error) {
	args := m.Called(ctx, q)
	resp, _ := args.Get(0).(*models.SearchResponse)
	return resp, args.Error(1)
}

func TestSearchHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	storeID := uuid.MustParse("6a1f3c4e-8d2b-4f7a-9c1e-2b3d4e5f6a7b")
	medicineID := uuid.MustParse("0b9c8d7e-6f5a-4b3c-8d2e-1f0a9b8c7d6e")

	truncated, zero := 5.0, 0.0

	found := &models.SearchResponse{
		Results: []models.SearchResult{{
			Store: models.StoreResponse{
				ID:       storeID,
				Name:     "Apollo",
				Address:  "MG Road",
				Phone:    "080-1",
				Email:    "apollo@example.com",
				Location: models.NewGeoPoint(12.95, 77.58),
			},
			Medicines: []models.MedicineSnapshot{{
				ID:       medicineID,
				Name:     "Paracetamol 500",
				Price:    20,
				Quantity: 10,
				Category: "analgesic",
			}},
			Distance: 2.5,
		}},
		Total: 1,
	}

	tests := []struct {
		name           string
		params         url.Values
		expectQuery    *models.SearchQuery
		mockResponse   *models.SearchResponse
		mockError      error
		expectedStatus int
		expectedBody   interface{}
	}{
		{
			name:           "missing query parameter",
			params:         url.Values{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Search query is required"},
		},
		{
			name:           "malformed latitude",
			params:         url.Values{"q": {"para"}, "lat": {"north"}, "lng": {"77.59"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "invalid latitude format"},
		},
		{
			name:           "malformed longitude",
			params:         url.Values{"q": {"para"}, "lat": {"12.97"}, "lng": {"east"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "invalid longitude format"},
		},
		{
			name:           "negative radius",
			params:         url.Values{"q": {"para"}, "radius": {"-5"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "invalid radius format"},
		},
		{
			name:           "coordinates out of range",
			params:         url.Values{"q": {"para"}, "lat": {"100"}, "lng": {"77.59"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "coordinates out of range"},
		},
		{
			name:           "location with truncated radius",
			params:         url.Values{"q": {"para"}, "lat": {"12.97"}, "lng": {"77.59"}, "radius": {"5.9"}},
			expectQuery:    &models.SearchQuery{Text: "para", Origin: &geo.Point{Lat: 12.97, Lng: 77.59}, RadiusKm: &truncated},
			mockResponse:   found,
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"results": []interface{}{
					map[string]interface{}{
						"store": map[string]interface{}{
							"id":      storeID.String(),
							"name":    "Apollo",
							"address": "MG Road",
							"phone":   "080-1",
							"email":   "apollo@example.com",
							"location": map[string]interface{}{
								"type":        "Point",
								"coordinates": []interface{}{77.58, 12.95},
							},
						},
						"medicines": []interface{}{
							map[string]interface{}{
								"id":       medicineID.String(),
								"name":     "Paracetamol 500",
								"price":    float64(20),
								"quantity": float64(10),
								"category": "analgesic",
							},
						},
						"distance": 2.5,
					},
				},
				"total": float64(1),
			},
		},
		{
			name:           "explicit zero radius is kept",
			params:         url.Values{"q": {"para"}, "lat": {"12.97"}, "lng": {"77.59"}, "radius": {"0.5"}},
			expectQuery:    &models.SearchQuery{Text: "para", Origin: &geo.Point{Lat: 12.97, Lng: 77.59}, RadiusKm: &zero},
			mockResponse:   &models.SearchResponse{Results: []models.SearchResult{}, Message: models.NoResultsMessage},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"results": []interface{}{},
				"total":   float64(0),
				"message": models.NoResultsMessage,
			},
		},
		{
			name:           "empty radius means default",
			params:         url.Values{"q": {" para"}, "radius": {""}},
			expectQuery:    &models.SearchQuery{Text: " para"},
			mockResponse:   &models.SearchResponse{Results: []models.SearchResult{}, Message: models.NoResultsMessage},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"results": []interface{}{},
				"total":   float64(0),
				"message": models.NoResultsMessage,
			},
		},
		{
			name:           "zero latitude means no location",
			params:         url.Values{"q": {"para"}, "lat": {"0"}, "lng": {"77.59"}},
			expectQuery:    &models.SearchQuery{Text: "para"},
			mockResponse:   &models.SearchResponse{Results: []models.SearchResult{}, Message: models.NoResultsMessage},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"results": []interface{}{},
				"total":   float64(0),
				"message": models.NoResultsMessage,
			},
		},
		{
			name:           "validation error from service",
			params:         url.Values{"q": {"   "}},
			expectQuery:    &models.SearchQuery{Text: "   "},
			mockError:      models.NewValidationError("Search query is required"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Search query is required"},
		},
		{
			name:           "storage failure",
			params:         url.Values{"q": {"para"}},
			expectQuery:    &models.SearchQuery{Text: "para"},
			mockError:      &models.DataAccessError{Op: "search medicines", Err: assert.AnError},
			expectedStatus: http.StatusInternalServerError,
			expectedBody: map[string]interface{}{
				"error":   "Database query failed",
				"message": "search medicines: " + assert.AnError.Error(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockSearchService)
			handler := NewSearchHandler(mockSvc, ErrorWriter{})

			if tt.expectQuery != nil {
				mockSvc.On("Search", mock.Anything, *tt.expectQuery).Return(tt.mockResponse, tt.mockError)
			}

			// Create request
			req := httptest.NewRequest(http.MethodGet, "/search?"+tt.params.Encode(), nil)
			w := httptest.NewRecorder()

			// Create Gin context
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			// Execute
			handler.Search(c)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)

			var actualBody interface{}
			err := json.Unmarshal(w.Body.Bytes(), &actualBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, actualBody)

			mockSvc.AssertExpectations(t)
		})
	}
}
