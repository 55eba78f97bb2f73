package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
)

type staticEnforcer map[string]bool

func (s staticEnforcer) Enforce(role, resource, action string) (bool, error) {
	return s[role+":"+resource+":"+action], nil
}
func (staticEnforcer) AddPolicy(string, string, string) error           { return nil }
func (staticEnforcer) RemovePolicy(string, string, string) error        { return nil }
func (staticEnforcer) GetPermissionsForRole(string) ([][]string, error) { return nil, nil }
func (staticEnforcer) LoadPolicy() error                                { return nil }

func TestRequire(t *testing.T) {
	e := staticEnforcer{"admin:card:delete": true}

	admin := authorization.Actor{UserID: 1, Role: authorization.RoleAdmin}
	client := authorization.Actor{UserID: 2, Role: authorization.RoleClient}

	assert.NoError(t, Require(e, admin, vo.ResourceCard, vo.ActionDelete))
	assert.True(t, errors.IsForbiddenError(Require(e, client, vo.ResourceCard, vo.ActionDelete)))

	assert.NoError(t, Require(e, authorization.SystemActor(), vo.ResourceCard, vo.ActionDelete))

	err := Require(e, authorization.Actor{}, vo.ResourceCard, vo.ActionDelete)
	appErr := errors.GetAppError(err)
	if assert.NotNil(t, appErr) {
		assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
	}
}

func TestNewAction(t *testing.T) {
	a, err := vo.NewAction("bulk")
	assert.NoError(t, err)
	assert.Equal(t, vo.ActionBulk, a)

	_, err = vo.NewAction("import")
	assert.Error(t, err)
	_, err = vo.NewAction("")
	assert.Error(t, err)
}
