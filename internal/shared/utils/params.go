package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cardly/internal/shared/errors"
)

// ParseUintParam parses a positive numeric path parameter.
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID")
	}
	return uint(n), nil
}

// ParseOptionalBool parses a boolean filter value. Empty input yields nil.
// Anything other than a recognised boolean is a validation error.
func ParseOptionalBool(field, raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		v := true
		return &v, nil
	case "0", "false", "no":
		v := false
		return &v, nil
	}
	return nil, errors.NewValidationError(field+" must be a boolean", raw)
}
