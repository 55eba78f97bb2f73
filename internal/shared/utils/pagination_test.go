package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name          string
		page, perPage int
		want          Pagination
	}{
		{"defaults", 0, 0, Pagination{Page: 1, PerPage: 15}},
		{"kept", 3, 25, Pagination{Page: 3, PerPage: 25}},
		{"capped", 1, 1000, Pagination{Page: 1, PerPage: 100}},
		{"negative", -4, -1, Pagination{Page: 1, PerPage: 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePagination(tt.page, tt.perPage))
		})
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/users?page=2&per_page=abc", nil)

	assert.Equal(t, Pagination{Page: 2, PerPage: 15}, ParsePagination(c))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 15))
	assert.Equal(t, 1, TotalPages(15, 15))
	assert.Equal(t, 2, TotalPages(16, 15))
	assert.Equal(t, 1, TotalPages(10, 0))
}
