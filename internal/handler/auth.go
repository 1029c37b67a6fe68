package handler

import (
	"context"
	"net/http"

	"medfinder-api/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	service AccountService
	errs    ErrorWriter
}

// AccountService interface for dependency injection
type AccountService interface {
	Register(context.Context, models.RegisterRequest) (*models.AuthResponse, error)
	Login(context.Context, models.LoginRequest) (*models.AuthResponse, error)
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc AccountService, errs ErrorWriter) *AuthHandler {
	return &AuthHandler{service: svc, errs: errs}
}

// Register godoc
// @Summary Register an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Account details"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.errs.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Login godoc
// @Summary Log in and receive a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.errs.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
