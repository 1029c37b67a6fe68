package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medfinder-api/internal/models"
)

func TestErrorWriter_Write(t *testing.T) {
	gin.SetMode(gin.TestMode)

	traced := pkgerrors.WithStack(assert.AnError)

	tests := []struct {
		name           string
		debug          bool
		err            error
		expectedStatus int
		expectedError  string
		expectMessage  bool
		expectStack    bool
	}{
		{
			name:           "validation",
			err:            fmt.Errorf("service: %w", models.NewValidationError("All fields are required")),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "All fields are required",
		},
		{
			name:           "unauthorized",
			err:            &models.AuthorizationError{Message: "Invalid credentials"},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid credentials",
		},
		{
			name:           "forbidden",
			err:            &models.AuthorizationError{Message: "Store not found or access denied", Forbidden: true},
			expectedStatus: http.StatusForbidden,
			expectedError:  "Store not found or access denied",
		},
		{
			name:           "data access in production",
			err:            &models.DataAccessError{Op: "list stores", Err: traced},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Database query failed",
			expectMessage:  true,
		},
		{
			name:           "data access in development",
			debug:          true,
			err:            &models.DataAccessError{Op: "list stores", Err: traced},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Database query failed",
			expectMessage:  true,
			expectStack:    true,
		},
		{
			name:           "unknown error without stack",
			debug:          true,
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal server error",
			expectMessage:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			ErrorWriter{Debug: tt.debug}.Write(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, c.IsAborted())

			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedError, body.Error)
			if tt.expectMessage {
				assert.Equal(t, tt.err.Error(), body.Message)
			} else {
				assert.Empty(t, body.Message)
			}
			if tt.expectStack {
				assert.Contains(t, body.Stack, "TestErrorWriter_Write")
			} else {
				assert.Empty(t, body.Stack)
			}
		})
	}
}
