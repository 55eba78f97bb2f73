package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "cardly/internal/domain/permission"
	vo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/infrastructure/persistence/testdb"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

func newSeededEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	e, err := NewEnforcer(testdb.New(t), logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, e.InitDefaultPolicies())
	return e
}

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e := newSeededEnforcer(t)

	tests := []struct {
		role     string
		resource vo.Resource
		action   vo.Action
		want     bool
	}{
		{"client", vo.ResourceCard, vo.ActionUpdate, true},
		{"client", vo.ResourceAnalytics, vo.ActionRead, true},
		{"client", vo.ResourceCard, vo.ActionDelete, false},
		{"client", vo.ResourceUser, vo.ActionList, false},
		{"client", vo.ResourceActivationCode, vo.ActionSell, false},
		{"admin", vo.ResourceCard, vo.ActionUpdate, true},
		{"admin", vo.ResourceCard, vo.ActionBulk, true},
		{"admin", vo.ResourceUser, vo.ActionExport, true},
		{"admin", vo.ResourceActivationCode, vo.ActionSell, true},
		{"admin", vo.ResourceSetting, vo.ActionUpdate, true},
		{"admin", vo.ResourceSetting, vo.ActionDelete, false},
		{"root", vo.ResourceCard, vo.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.resource.String()+"/"+tt.action.String(), func(t *testing.T) {
			got, err := e.Enforce(tt.role, tt.resource.String(), tt.action.String())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnforcer_InitIsIdempotent(t *testing.T) {
	e := newSeededEnforcer(t)
	before, err := e.GetPermissionsForRole("admin")
	require.NoError(t, err)

	require.NoError(t, e.InitDefaultPolicies())
	require.NoError(t, e.LoadPolicy())

	after, err := e.GetPermissionsForRole("admin")
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after)
	assert.Len(t, after, len(adminPolicies)+len(clientPolicies))
}

func TestEnforcer_AddAndRemovePolicy(t *testing.T) {
	e := newSeededEnforcer(t)

	require.NoError(t, e.AddPolicy("client", "setting", "read"))
	ok, err := e.Enforce("client", "setting", "read")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, e.RemovePolicy("client", "setting", "read"))
	ok, err = e.Enforce("client", "setting", "read")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequireWithCasbin(t *testing.T) {
	e := newSeededEnforcer(t)
	client := authorization.Actor{UserID: 5, Role: authorization.RoleClient}

	assert.NoError(t, domain.Require(e, client, vo.ResourceCard, vo.ActionRead))
	assert.True(t, errors.IsForbiddenError(domain.Require(e, client, vo.ResourceCard, vo.ActionBulk)))
}
