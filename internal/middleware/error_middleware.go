package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// HandleAPIError maps err to a status code and the standard error envelope.
// Only messages carried by apperrors reach the client.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		AbortUnauthorized(c)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		respondError(c, http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Incorrect username or password"))

	case errors.Is(err, apperrors.ErrDuplicate):
		respondError(c, http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, apperrors.PublicMessage(err, "Resource already exists")))

	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.PublicMessage(err, "Resource not found")).
				WithSeverity(dto.ErrorSeverityWarning))

	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.PublicMessage(err, "Validation failed")))

	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceConflict, apperrors.PublicMessage(err, "Resource conflict")))

	case errors.Is(err, apperrors.ErrUnavailable):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Store unavailable")
		respondError(c, http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Internal server error").
				WithSeverity(dto.ErrorSeverityCritical))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		respondError(c, http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
				WithSeverity(dto.ErrorSeverityCritical))
	}
}

func respondError(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
