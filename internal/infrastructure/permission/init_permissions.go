package permission

import (
	"fmt"

	vo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/shared/authorization"
)

type policy struct {
	role     authorization.UserRole
	resource vo.Resource
	action   vo.Action
}

// clients manage the cards they own; ownership and the activation code requirement for
// self-service creation are checked by the use case
var clientPolicies = []policy{
	{authorization.RoleClient, vo.ResourceCard, vo.ActionCreate},
	{authorization.RoleClient, vo.ResourceCard, vo.ActionRead},
	{authorization.RoleClient, vo.ResourceCard, vo.ActionList},
	{authorization.RoleClient, vo.ResourceCard, vo.ActionUpdate},
	{authorization.RoleClient, vo.ResourceAnalytics, vo.ActionRead},
	{authorization.RoleClient, vo.ResourceAnalytics, vo.ActionExport},
}

var adminPolicies = []policy{
	{authorization.RoleAdmin, vo.ResourceCard, vo.ActionDelete},
	{authorization.RoleAdmin, vo.ResourceCard, vo.ActionToggle},
	{authorization.RoleAdmin, vo.ResourceCard, vo.ActionBulk},
	{authorization.RoleAdmin, vo.ResourceActivationCode, vo.ActionCreate},
	{authorization.RoleAdmin, vo.ResourceActivationCode, vo.ActionRead},
	{authorization.RoleAdmin, vo.ResourceActivationCode, vo.ActionList},
	{authorization.RoleAdmin, vo.ResourceActivationCode, vo.ActionSell},
	{authorization.RoleAdmin, vo.ResourceUser, "*"},
	{authorization.RoleAdmin, vo.ResourceSetting, vo.ActionRead},
	{authorization.RoleAdmin, vo.ResourceSetting, vo.ActionUpdate},
}

// InitDefaultPolicies seeds the built-in role capabilities. Admins inherit every
// client capability. Existing rows are left alone, so it is safe on every start.
func (e *Enforcer) InitDefaultPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddGroupingPolicy(authorization.RoleAdmin.String(), authorization.RoleClient.String()); err != nil {
		return fmt.Errorf("failed to add role inheritance: %w", err)
	}

	for _, list := range [][]policy{clientPolicies, adminPolicies} {
		for _, p := range list {
			if _, err := e.enforcer.AddPolicy(p.role.String(), p.resource.String(), p.action.String()); err != nil {
				e.logger.Errorw("failed to add permission policy",
					"error", err,
					"role", p.role,
					"resource", p.resource,
					"action", p.action)
				return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
					p.role, p.resource, p.action, err)
			}
		}
	}

	e.logger.Info("default permissions initialized successfully")
	return nil
}
