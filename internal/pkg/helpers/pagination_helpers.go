package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

const (
	DefaultSkip  = 0
	DefaultLimit = 100
	MaxLimit     = 100
)

// ParseSkipLimit extracts the skip/limit query parameters. Missing values take
// the defaults and a limit above MaxLimit is capped.
func ParseSkipLimit(c *gin.Context) (skip, limit int, err error) {
	skip, err = queryInt(c, "skip", DefaultSkip)
	if err != nil {
		return 0, 0, err
	}
	limit, err = queryInt(c, "limit", DefaultLimit)
	if err != nil {
		return 0, 0, err
	}

	if skip < 0 {
		return 0, 0, apperrors.NewValidationError("skip must not be negative")
	}
	if limit <= 0 {
		return 0, 0, apperrors.NewValidationError("limit must be positive")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit, nil
}

// ParseIDParam parses a positive int64 path parameter
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid " + name)
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(name + " must be an integer")
	}
	return n, nil
}
