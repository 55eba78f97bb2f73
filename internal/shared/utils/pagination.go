package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"cardly/internal/shared/constants"
)

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page    int
	PerPage int
}

// ValidatePagination clamps page to >= 1 and per_page to 1..MaxPageSize.
func ValidatePagination(page, perPage int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}
	if perPage < 1 {
		perPage = constants.DefaultPageSize
	}
	if perPage > constants.MaxPageSize {
		perPage = constants.MaxPageSize
	}
	return Pagination{Page: page, PerPage: perPage}
}

// ParsePagination reads page and per_page from the query string.
func ParsePagination(c *gin.Context) Pagination {
	return ValidatePagination(
		parseQueryInt(c, "page", constants.DefaultPage),
		parseQueryInt(c, "per_page", constants.DefaultPageSize),
	)
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}

// TotalPages calculates total pages for a given total count.
func TotalPages(total int64, perPage int) int {
	if total == 0 || perPage <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
