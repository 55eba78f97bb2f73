package authorization

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cardly/internal/shared/constants"
)

func TestActor_CanAccessOwned(t *testing.T) {
	owner := uint(7)
	other := uint(8)

	admin := Actor{UserID: 1, Role: RoleAdmin}
	client := Actor{UserID: 7, Role: RoleClient}

	assert.True(t, admin.CanAccessOwned(nil))
	assert.True(t, admin.CanAccessOwned(&other))
	assert.True(t, client.CanAccessOwned(&owner))
	assert.False(t, client.CanAccessOwned(&other))
	assert.False(t, client.CanAccessOwned(nil))
}

func TestParseUserRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseUserRole("admin"))
	assert.Equal(t, RoleClient, ParseUserRole("client"))
	assert.Equal(t, RoleClient, ParseUserRole("root"))
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		setup  func(c *gin.Context)
		status int
	}{
		{"anonymous", func(c *gin.Context) {}, http.StatusUnauthorized},
		{"client", func(c *gin.Context) {
			c.Set(constants.ContextKeyUserID, uint(2))
			c.Set(constants.ContextKeyUserRole, "client")
		}, http.StatusForbidden},
		{"admin", func(c *gin.Context) {
			c.Set(constants.ContextKeyUserID, uint(1))
			c.Set(constants.ContextKeyUserRole, "admin")
		}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)
			r.GET("/admin", func(c *gin.Context) { tt.setup(c); c.Next() }, RequireAdmin(), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
