package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/application/services/session"
	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/repositories/memory"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Hint  string `json:"hint,omitempty"`
}

// statusFor maps core errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrDuplicateItem), errors.Is(err, memory.ErrDuplicateSupplier):
		return http.StatusConflict
	case errors.Is(err, entities.ErrIndexOutOfRange):
		return http.StatusConflict
	case errors.Is(err, session.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	body := errorResponse{Error: err.Error()}

	var validationErr *entities.ValidationError
	if errors.As(err, &validationErr) {
		body.Field = validationErr.Field
	}
	if errors.Is(err, entities.ErrIndexOutOfRange) {
		body.Hint = "the cart changed since it was last read; refresh and retry"
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		body.Error = "internal error"
	}

	c.AbortWithStatusJSON(status, body)
}

func (s *Server) badRequest(c *gin.Context, field, format string, args ...interface{}) {
	s.abortWithError(c, entities.NewValidationError(field, format, args...))
}
