package handler

import (
	"context"
	"net/http"

	"medfinder-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StoreHandler handles owner store and inventory requests. All routes require
// RequireAuth.
type StoreHandler struct {
	service StoreService
	errs    ErrorWriter
}

// StoreService interface for dependency injection
type StoreService interface {
	CreateStore(ctx context.Context, ownerID uuid.UUID, req models.CreateStoreRequest) (*models.StoreResponse, error)
	ListStores(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
	CreateMedicine(ctx context.Context, ownerID uuid.UUID, req models.CreateMedicineRequest) (*models.MedicineResponse, error)
	ListMedicines(ctx context.Context, ownerID uuid.UUID, storeID string) ([]models.Medicine, error)
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(svc StoreService, errs ErrorWriter) *StoreHandler {
	return &StoreHandler{service: svc, errs: errs}
}

// CreateStore godoc
// @Summary Register a store
// @Tags Stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.CreateStoreRequest true "Store details"
// @Success 200 {object} models.StoreResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/stores [post]
func (h *StoreHandler) CreateStore(c *gin.Context) {
	var req models.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.service.CreateStore(c.Request.Context(), userIDFrom(c), req)
	if err != nil {
		h.errs.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListStores godoc
// @Summary List the caller's active stores
// @Tags Stores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]models.Store
// @Failure 401 {object} models.ErrorResponse
// @Router /api/stores [get]
func (h *StoreHandler) ListStores(c *gin.Context) {
	stores, err := h.service.ListStores(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.errs.Write(c, err)
		return
	}
	if stores == nil {
		stores = []models.Store{}
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// CreateMedicine godoc
// @Summary Add a medicine to one of the caller's stores
// @Tags Medicines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.CreateMedicineRequest true "Medicine details"
// @Success 200 {object} models.MedicineResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/medicines [post]
func (h *StoreHandler) CreateMedicine(c *gin.Context) {
	var req models.CreateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.service.CreateMedicine(c.Request.Context(), userIDFrom(c), req)
	if err != nil {
		h.errs.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMedicines godoc
// @Summary List a store's inventory, newest first
// @Tags Medicines
// @Produce json
// @Security BearerAuth
// @Param storeId query string true "Store ID"
// @Success 200 {object} map[string][]models.Medicine
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/medicines [get]
func (h *StoreHandler) ListMedicines(c *gin.Context) {
	medicines, err := h.service.ListMedicines(c.Request.Context(), userIDFrom(c), c.Query("storeId"))
	if err != nil {
		h.errs.Write(c, err)
		return
	}
	if medicines == nil {
		medicines = []models.Medicine{}
	}

	c.JSON(http.StatusOK, gin.H{"medicines": medicines})
}
