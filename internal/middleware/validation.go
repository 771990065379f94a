package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/gradebook/internal/app/models/dto"
)

// HandleValidationError writes a 400 for a failed bind. Field constraint
// failures are listed individually.
func HandleValidationError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]dto.FieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, dto.FieldError{
				Field:   fieldName(fe),
				Message: formatValidationError(fe),
			})
		}
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, fields[0].Message).
			WithField(fields[0].Field).
			WithDetails(fields)
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// fieldName converts the struct field name to the wire name
func fieldName(e validator.FieldError) string {
	switch e.Field() {
	case "StudentID":
		return "student_id"
	default:
		return strings.ToLower(e.Field())
	}
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := fieldName(e)
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + e.Param()
	default:
		return field + " validation failed: " + e.Tag()
	}
}
