package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"medfinder-api/internal/models"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// ErrorWriter renders service errors as JSON. Stacks are attached to server
// errors only when Debug is set.
type ErrorWriter struct {
	Debug bool
}

// Write maps err onto a status code and error body and aborts the request.
func (w ErrorWriter) Write(c *gin.Context, err error) {
	var (
		valErr  *models.ValidationError
		authErr *models.AuthorizationError
		dataErr *models.DataAccessError
	)

	switch {
	case errors.As(err, &valErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: valErr.Message})
		return
	case errors.As(err, &authErr):
		status := http.StatusUnauthorized
		if authErr.Forbidden {
			status = http.StatusForbidden
		}
		c.AbortWithStatusJSON(status, models.ErrorResponse{Error: authErr.Message})
		return
	}

	body := models.ErrorResponse{Error: "Internal server error", Message: err.Error()}
	if errors.As(err, &dataErr) {
		body.Error = "Database query failed"
	}
	if w.Debug {
		body.Stack = stackOf(err)
	}

	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg(body.Error)
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

// stackOf returns the first stack trace recorded in err's chain.
func stackOf(err error) string {
	var st stackTracer
	if !errors.As(err, &st) {
		return ""
	}
	return fmt.Sprintf("%+v", st.StackTrace())
}
