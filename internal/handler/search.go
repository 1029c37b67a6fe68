package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"medfinder-api/internal/geo"
	"medfinder-api/internal/models"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles medicine search requests
type SearchHandler struct {
	service SearchService
	errs    ErrorWriter
}

// Service interface for dependency injection
type SearchService interface {
	Search(context.Context, models.SearchQuery) (*models.SearchResponse, error)
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(svc SearchService, errs ErrorWriter) *SearchHandler {
	return &SearchHandler{service: svc, errs: errs}
}

// Search godoc
// @Summary Search medicines near a location
// @Description Case-insensitive substring match on name, generic name or brand of in-stock medicines,
// @Description grouped by store. With lat/lng, only stores within radius km are returned, nearest first.
// @Tags Search
// @Produce json
// @Param q query string true "Search text"
// @Param lat query number false "Caller latitude" default(0)
// @Param lng query number false "Caller longitude" default(0)
// @Param radius query int false "Radius in kilometers" default(10)
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	text := c.Query("q")
	if text == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Search query is required"})
		return
	}

	lat, err := strconv.ParseFloat(c.DefaultQuery("lat", "0"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid latitude format"})
		return
	}

	lng, err := strconv.ParseFloat(c.DefaultQuery("lng", "0"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid longitude format"})
		return
	}

	query := models.SearchQuery{Text: text}

	if raw, ok := c.GetQuery("radius"); ok && raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil || radius < 0 || math.IsInf(radius, 0) || math.IsNaN(radius) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid radius format"})
			return
		}
		radius = math.Trunc(radius)
		query.RadiusKm = &radius
	}

	// A zero on either axis means the caller has no location.
	if lat != 0 && lng != 0 {
		origin := geo.Point{Lat: lat, Lng: lng}
		if !origin.Valid() {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "coordinates out of range"})
			return
		}
		query.Origin = &origin
	}

	resp, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		h.errs.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
